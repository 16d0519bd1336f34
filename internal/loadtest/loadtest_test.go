package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mergington/internal/adapters/http/api"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, opts ...service.Option) *httptest.Server {
	t.Helper()
	svc := service.New(append([]service.Option{service.WithWorkerCount(1)}, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv
}

func TestGenerateSignups(t *testing.T) {
	Convey("Given activity names", t, func() {
		ctx := context.Background()
		names := []string{"Chess Club", "Art Club"}
		stats := &Stats{}

		Convey("When generating with a duplicate ratio", func() {
			signups, err := generateSignups(ctx, &Config{NumSignups: 10, DuplicateRatio: 0.3}, names, stats)

			Convey("Then uniques should round-robin and duplicates repeat the first ones", func() {
				So(err, ShouldBeNil)
				So(len(signups), ShouldEqual, 13)
				So(stats.Generated, ShouldEqual, 13)
				So(signups[0].Activity, ShouldEqual, "Chess Club")
				So(signups[1].Activity, ShouldEqual, "Art Club")
				So(signups[10].Email, ShouldEqual, signups[0].Email)
				So(signups[10].Duplicate, ShouldBeTrue)
				So(signups[0].Email, ShouldEndWith, "@mergington.edu")
				So(signups[0].Email, ShouldNotEqual, signups[2].Email)
			})
		})

		Convey("When the ratio is out of range", func() {
			signups, err := generateSignups(ctx, &Config{NumSignups: 4, DuplicateRatio: 7}, names, stats)

			Convey("Then it should be clamped", func() {
				So(err, ShouldBeNil)
				So(len(signups), ShouldEqual, 8)
			})
		})

		Convey("When there is nothing to generate", func() {
			_, errNames := generateSignups(ctx, &Config{NumSignups: 4}, nil, stats)
			_, errCount := generateSignups(ctx, &Config{NumSignups: 0}, names, stats)

			Convey("Then errors should be returned", func() {
				So(errNames, ShouldNotBeNil)
				So(errCount, ShouldNotBeNil)
			})
		})
	})
}

func TestVerifyResults(t *testing.T) {
	Convey("Given a final catalog", t, func() {
		ctx := context.Background()
		catalog := model.Catalog{{Name: "Chess Club", Activity: model.Activity{
			Participants: []string{"a@mergington.edu", "b@mergington.edu"},
		}}}

		Convey("Then accepted signups present once should verify", func() {
			stats := &Stats{}
			err := verifyResults(ctx, catalog, []Signup{{Activity: "Chess Club", Email: "b@mergington.edu"}}, stats)
			So(err, ShouldBeNil)
			So(stats.Verified, ShouldEqual, 1)
		})

		Convey("Then a lost signup should fail", func() {
			err := verifyResults(ctx, catalog, []Signup{{Activity: "Chess Club", Email: "c@mergington.edu"}}, &Stats{})
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
		})

		Convey("Then an unknown activity should fail", func() {
			err := verifyResults(ctx, catalog, []Signup{{Activity: "Drama", Email: "a@mergington.edu"}}, &Stats{})
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
		})

		Convey("Then a doubled participant should fail", func() {
			catalog[0].Activity.Participants = append(catalog[0].Activity.Participants, "a@mergington.edu")
			err := verifyResults(ctx, catalog, nil, &Stats{})
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "listed twice")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running activities service", t, func() {
		srv := newTestServer(t)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		out := filepath.Join(t.TempDir(), "out", "signups.json")

		Convey("When a concurrent load run with duplicates completes", func() {
			stats, err := Run(ctx, &Config{
				BaseURL:        srv.URL,
				NumSignups:     120,
				DuplicateRatio: 0.25,
				Workers:        8,
				Timeout:        5 * time.Second,
				OutputFile:     out,
			})

			Convey("Then every unique signup should be accepted exactly once", func() {
				So(err, ShouldBeNil)
				So(stats.Submitted, ShouldEqual, 150)
				So(stats.Accepted, ShouldEqual, 120)
				So(stats.Duplicates, ShouldEqual, 30)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Verified, ShouldEqual, 120)
			})

			Convey("And the generated signups should be saved", func() {
				data, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				var saved []Signup
				So(json.Unmarshal(data, &saved), ShouldBeNil)
				So(len(saved), ShouldEqual, 150)
			})
		})
	})

	Convey("Given a service enforcing capacity", t, func() {
		seed := model.Catalog{{Name: "Robotics", Activity: model.Activity{MaxParticipants: 5}}}
		srv := newTestServer(t, service.WithCatalog(seed), service.WithCapacityEnforcement(true))

		Convey("When more signups than seats are submitted", func() {
			stats, err := Run(context.Background(), &Config{
				BaseURL: srv.URL, NumSignups: 20, Workers: 4, Timeout: 5 * time.Second,
			})

			Convey("Then only the seats should be filled", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 5)
				So(stats.Full, ShouldEqual, 15)
			})
		})
	})

	Convey("Given an unreachable service", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		Convey("Then the health check should fail the run", func() {
			_, err := Run(context.Background(), &Config{BaseURL: srv.URL, NumSignups: 1, Timeout: time.Second})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var buf bytes.Buffer
		ShowHelp(&buf)

		Convey("Then every flag should be documented", func() {
			for _, flag := range []string{"-url", "-signups", "-duplicates", "-workers", "-timeout", "-output", "-log", "-verbose"} {
				So(strings.Contains(buf.String(), flag), ShouldBeTrue)
			}
		})
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "load.log")

		Convey("When logging is set up verbosely", func() {
			So(SetupLogging(path, true), ShouldBeNil)
			logger.Get().Debug(context.Background(), "mirrored record")

			Convey("Then debug records should reach the file", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "mirrored record")
				So(logger.SetLevelString("info"), ShouldBeNil)
			})
		})

		Convey("When the log file cannot be created", func() {
			err := SetupLogging(filepath.Join(path, "nested", "x.log"), false)

			Convey("Then an error should be returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
