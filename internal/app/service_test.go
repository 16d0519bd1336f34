package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type capturePublisher struct {
	mu     sync.Mutex
	events []model.SignupEvent
	closed bool
}

func (p *capturePublisher) Publish(_ context.Context, e model.SignupEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *capturePublisher) snapshot() []model.SignupEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.SignupEvent(nil), p.events...)
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service that has not been started", t, func() {
		ctx := context.Background()
		svc := New()

		Convey("Then operations should fail with ErrNotStarted", func() {
			_, err := svc.ListActivities(ctx)
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
			_, err = svc.Signup(ctx, "Chess Club", "zoe@mergington.edu")
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldBeFalse)
		})

		Convey("Then Stop should be a no-op", func() {
			So(func() { svc.Stop() }, ShouldNotPanic)
		})

		Convey("When started twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then it should report the default catalog", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["activities"], ShouldEqual, 12)
				So(stats["queueClosed"], ShouldBeFalse)
			})
		})
	})

	Convey("Given a service that has been started and stopped", t, func() {
		ctx := context.Background()
		pub := &capturePublisher{}
		svc := New(WithPublisher(pub))
		So(svc.Start(ctx), ShouldBeNil)
		svc.Stop()

		Convey("Then the publisher should be closed", func() {
			So(pub.closed, ShouldBeTrue)
		})

		Convey("Then starting it again should fail with ErrStopped", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, ErrStopped), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldBeFalse)
			So(svc.GetStats()["stopped"], ShouldBeTrue)
		})

		Convey("Then operations should fail with ErrNotStarted", func() {
			_, err := svc.Signup(ctx, "Chess Club", "zoe@mergington.edu")
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
		})

		Convey("Then a second Stop should not close the publisher again", func() {
			pub.closed = false
			svc.Stop()
			So(pub.closed, ShouldBeFalse)
		})
	})

	Convey("Given a seed catalog with duplicate names", t, func() {
		svc := New(WithCatalog(model.Catalog{{Name: "A"}, {Name: "A"}}))

		Convey("Then Start should fail", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrDuplicateName), ShouldBeTrue)
		})
	})
}

func TestService_Signup(t *testing.T) {
	Convey("Given a started service with a capturing publisher", t, func() {
		ctx := context.Background()
		pub := &capturePublisher{}
		fixed := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
		svc := New(WithPublisher(pub), WithWorkerCount(1), WithQueueSize(16))
		svc.now = func() time.Time { return fixed }
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When signing up a new participant for Chess Club", func() {
			res, err := svc.Signup(ctx, "Chess Club", "zoe@mergington.edu")
			svc.Stop()

			Convey("Then the confirmation message should name email and activity", func() {
				So(err, ShouldBeNil)
				So(res.Message, ShouldEqual, "Signed up zoe@mergington.edu for Chess Club")
			})

			Convey("And one signup event should be published", func() {
				events := pub.snapshot()
				So(len(events), ShouldEqual, 1)
				So(events[0].Activity, ShouldEqual, "Chess Club")
				So(events[0].Email, ShouldEqual, "zoe@mergington.edu")
				So(events[0].OccurredAt, ShouldEqual, fixed)
				So(events[0].Participants, ShouldEqual, 3)
				So(events[0].ID, ShouldNotBeBlank)
				So(pub.closed, ShouldBeTrue)
			})

			Convey("And the stats should count it", func() {
				So(svc.GetStats()["signups"], ShouldEqual, int64(1))
			})
		})

		Convey("When the same participant signs up twice", func() {
			_, first := svc.Signup(ctx, "Chess Club", "zoe@mergington.edu")
			_, second := svc.Signup(ctx, "Chess Club", "zoe@mergington.edu")
			list, _ := svc.ListActivities(ctx)
			svc.Stop()

			Convey("Then the second should be rejected and no extra event emitted", func() {
				So(first, ShouldBeNil)
				So(errors.Is(second, repository.ErrAlreadySignedUp), ShouldBeTrue)
				chess, _ := list.Lookup("Chess Club")
				So(len(chess.Participants), ShouldEqual, 3)
				So(len(pub.snapshot()), ShouldEqual, 1)
				So(svc.GetStats()["rejected"], ShouldEqual, int64(1))
			})
		})

		Convey("When signing up for an unknown activity", func() {
			before, _ := svc.ListActivities(ctx)
			_, err := svc.Signup(ctx, "Quidditch", "zoe@mergington.edu")
			after, _ := svc.ListActivities(ctx)
			svc.Stop()

			Convey("Then ErrNotFound should be returned and the catalog unchanged", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(after, ShouldResemble, before)
				So(pub.snapshot(), ShouldBeEmpty)
			})
		})
	})
}

func TestService_CapacityAndCatalog(t *testing.T) {
	Convey("Given a service with a tiny custom catalog and enforcement", t, func() {
		ctx := context.Background()
		seed := model.Catalog{{Name: "Robotics", Activity: model.Activity{
			Description: "Build robots", Schedule: "Saturdays", MaxParticipants: 1,
		}}}
		svc := New(WithCatalog(seed), WithCapacityEnforcement(true), WithPublisher(&capturePublisher{}))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When two students sign up", func() {
			_, first := svc.Signup(ctx, "Robotics", "a@mergington.edu")
			_, second := svc.Signup(ctx, "Robotics", "b@mergington.edu")

			Convey("Then the second should be rejected as full", func() {
				So(first, ShouldBeNil)
				So(errors.Is(second, repository.ErrActivityFull), ShouldBeTrue)
				So(svc.GetStats()["enforceCapacity"], ShouldBeTrue)
			})
		})

		Convey("When listing", func() {
			list, err := svc.ListActivities(ctx)

			Convey("Then only the custom catalog should be present", func() {
				So(err, ShouldBeNil)
				So(list.Names(), ShouldResemble, []string{"Robotics"})
			})
		})
	})
}

func TestRejectReason(t *testing.T) {
	Convey("Given store errors", t, func() {
		So(rejectReason(repository.ErrNotFound), ShouldEqual, "not_found")
		So(rejectReason(repository.ErrAlreadySignedUp), ShouldEqual, "duplicate")
		So(rejectReason(repository.ErrActivityFull), ShouldEqual, "full")
		So(rejectReason(errors.New("other")), ShouldEqual, "error")
	})
}
