package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("signup"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors should be registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.activityCount.Set(12)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() == "test_signup_catalog_size" {
						found = true
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating two managers on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second registration should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestSignupMetrics(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording an accepted signup", func() {
			before := testutil.ToFloat64(globalManager.signupsAccepted.WithLabelValues("Chess Club"))
			RecordSignup("Chess Club")

			Convey("Then the per-activity counter should increase", func() {
				after := testutil.ToFloat64(globalManager.signupsAccepted.WithLabelValues("Chess Club"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording a rejected signup", func() {
			before := testutil.ToFloat64(globalManager.signupsRejected.WithLabelValues("duplicate"))
			RecordSignupRejected("duplicate")

			Convey("Then the reason counter should increase", func() {
				after := testutil.ToFloat64(globalManager.signupsRejected.WithLabelValues("duplicate"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When updating occupancy", func() {
			UpdateActivityOccupancy("Art Club", 4, 16)
			UpdateActivityOccupancy("Unlimited", 3, 0)

			Convey("Then participants and utilization should be set", func() {
				So(testutil.ToFloat64(globalManager.activityOccupancy.WithLabelValues("Art Club")), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.activityUtilization.WithLabelValues("Art Club")), ShouldEqual, 0.25)
				So(testutil.ToFloat64(globalManager.activityOccupancy.WithLabelValues("Unlimited")), ShouldEqual, 3)
			})
		})
	})
}

func TestPipelineAndHTTPMetrics(t *testing.T) {
	Convey("Given pipeline and HTTP helpers", t, func() {
		Convey("Then none of them should panic", func() {
			So(func() {
				UpdateActivityCount(12)
				UpdateQueueSize(3)
				UpdateQueueCapacity(1024)
				RecordEventDropped()
				RecordEventPublished(1.5)
				RecordPublishError()
				UpdateWorkerCount(2)
				RecordHTTPRequest("activities", "GET", "200")
				RecordHTTPRequestDuration("activities", "GET", "200", 0.4)
				RecordErrorByEndpoint("signup", "POST", "not_found")
				RecordErrorByType("client_error", "medium")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should expose the HTTP counter", func() {
			RecordHTTPRequest("activities", "GET", "200")
			n, err := testutil.GatherAndCount(GetRegistry(), "mergington_activities_http_requests_total")
			So(err, ShouldBeNil)
			So(n, ShouldBeGreaterThan, 0)
		})

		Convey("Then the exposition should mention the gauges", func() {
			UpdateQueueCapacity(1024)
			err := testutil.GatherAndCompare(GetRegistry(), strings.NewReader(`
# HELP mergington_activities_event_queue_capacity Capacity of the signup event queue
# TYPE mergington_activities_event_queue_capacity gauge
mergington_activities_event_queue_capacity 1024
`), "mergington_activities_event_queue_capacity")
			So(err, ShouldBeNil)
		})
	})
}
