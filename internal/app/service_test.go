package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	service "github.com/okian/curvecast/internal/app"
	"github.com/okian/curvecast/internal/domain/curve"
	"github.com/okian/curvecast/internal/domain/fitting"
	"github.com/okian/curvecast/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newStartedService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("service start: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestBuildSnapshot(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(t, service.WithSeed(5))

		Convey("When building a snapshot", func() {
			snap, err := svc.BuildSnapshot(context.Background())

			Convey("Then it carries the documented shape", func() {
				So(err, ShouldBeNil)
				So(len(snap.TenorYears), ShouldEqual, curve.TenorGridSize)
				So(len(snap.RawRates), ShouldEqual, curve.TenorGridSize)
				So(len(snap.Fit.GridYears), ShouldEqual, curve.EvalGridSize)
				So(len(snap.Fit.Rates), ShouldEqual, curve.EvalGridSize)
				So(len(snap.Fit.Coefficients), ShouldEqual, fitting.DefaultDegree+1)
			})

			Convey("Then the timestamp parses as UTC RFC3339", func() {
				So(err, ShouldBeNil)
				ts, parseErr := time.Parse(time.RFC3339Nano, snap.Timestamp)
				So(parseErr, ShouldBeNil)
				So(ts.Location(), ShouldEqual, time.UTC)
			})

			Convey("Then the JSON form has exactly the four contract fields", func() {
				So(err, ShouldBeNil)
				payload, marshalErr := json.Marshal(snap)
				So(marshalErr, ShouldBeNil)

				var decoded map[string]json.RawMessage
				So(json.Unmarshal(payload, &decoded), ShouldBeNil)
				So(len(decoded), ShouldEqual, 4)
				for _, key := range []string{"timestamp", "tenorYears", "rawRates", "fit"} {
					_, ok := decoded[key]
					So(ok, ShouldBeTrue)
				}

				var fit map[string]json.RawMessage
				So(json.Unmarshal(decoded["fit"], &fit), ShouldBeNil)
				So(len(fit), ShouldEqual, 3)
				for _, key := range []string{"gridYears", "rates", "polynomialCoefficients"} {
					_, ok := fit[key]
					So(ok, ShouldBeTrue)
				}
			})
		})

		Convey("When building snapshots repeatedly", func() {
			first, err1 := svc.BuildSnapshot(context.Background())
			second, err2 := svc.BuildSnapshot(context.Background())

			Convey("Then each tick advances the shared state", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second.RawRates, ShouldNotResemble, first.RawRates)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		if err := logger.Init(); err != nil {
			t.Fatalf("logger init: %v", err)
		}
		svc := service.New()

		Convey("When building a snapshot", func() {
			_, err := svc.BuildSnapshot(context.Background())

			Convey("Then it fails with the not-started sentinel", func() {
				So(err, ShouldWrap, service.ErrNotStarted)
			})
		})
	})
}

func TestStreamIntervalValidation(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(t)
		statsBefore := svc.GetStats()

		Convey("When requesting a stream with interval zero", func() {
			snapshots, errs, err := svc.Stream(context.Background(), 0)

			Convey("Then it is rejected before any state is touched", func() {
				So(err, ShouldWrap, service.ErrInvalidInterval)
				So(snapshots, ShouldBeNil)
				So(errs, ShouldBeNil)
				So(svc.GetStats()["snapshotsBuilt"], ShouldEqual, statsBefore["snapshotsBuilt"])
			})
		})

		Convey("When requesting a stream with a negative interval", func() {
			_, _, err := svc.Stream(context.Background(), -time.Second)

			Convey("Then it is rejected the same way", func() {
				So(err, ShouldWrap, service.ErrInvalidInterval)
			})
		})
	})
}

func TestStreamPublishing(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(t, service.WithSeed(21))

		Convey("When consuming a few ticks and disconnecting", func() {
			ctx, cancel := context.WithCancel(context.Background())
			snapshots, errs, err := svc.Stream(ctx, time.Millisecond)
			So(err, ShouldBeNil)

			var got int
			for snap := range snapshots {
				So(len(snap.Fit.Rates), ShouldEqual, curve.EvalGridSize)
				got++
				if got == 3 {
					cancel()
				}
			}
			cancel()

			Convey("Then frames arrived one per tick and the loop closed", func() {
				So(got, ShouldBeGreaterThanOrEqualTo, 3)
				_, open := <-errs
				So(open, ShouldBeFalse)
			})
		})

		Convey("When two consumers stream concurrently", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			a, _, errA := svc.Stream(ctx, time.Millisecond)
			b, _, errB := svc.Stream(ctx, time.Millisecond)
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)

			snapA := <-a
			snapB := <-b

			Convey("Then each loop publishes complete snapshots independently", func() {
				So(len(snapA.RawRates), ShouldEqual, curve.TenorGridSize)
				So(len(snapB.RawRates), ShouldEqual, curve.TenorGridSize)
			})
		})
	})
}

func TestStreamPropagatesFitFailure(t *testing.T) {
	Convey("Given a service whose fit degree exceeds the observation count", t, func() {
		svc := newStartedService(t, service.WithFitDegree(30))

		Convey("When a consumer streams", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			snapshots, errs, err := svc.Stream(ctx, time.Millisecond)
			So(err, ShouldBeNil)

			var streamErr error
			for e := range errs {
				streamErr = e
			}
			_, open := <-snapshots

			Convey("Then the failure is propagated and the loop terminates", func() {
				So(streamErr, ShouldWrap, fitting.ErrInputMismatch)
				So(open, ShouldBeFalse)
			})

			Convey("Then the mutation had already committed", func() {
				So(svc.GetStats()["fitFailures"], ShouldBeGreaterThan, int64(0))
				snap, buildErr := svc.BuildSnapshot(ctx)
				So(buildErr, ShouldNotBeNil)
				So(snap.RawRates, ShouldBeEmpty)
			})
		})
	})
}

func TestRecentSnapshots(t *testing.T) {
	Convey("Given a started service with a small history", t, func() {
		svc := newStartedService(t, service.WithHistoryCapacity(2))
		ctx := context.Background()

		Convey("When no snapshot has been built", func() {
			Convey("Then the history is empty", func() {
				got, err := svc.RecentSnapshots(ctx, 5)
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When more snapshots were built than the capacity holds", func() {
			var stamps []string
			for i := 0; i < 3; i++ {
				snap, err := svc.BuildSnapshot(ctx)
				So(err, ShouldBeNil)
				stamps = append(stamps, snap.Timestamp)
			}

			Convey("Then only the newest survive, newest first", func() {
				got, err := svc.RecentSnapshots(ctx, 5)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].Timestamp, ShouldEqual, stamps[2])
				So(got[1].Timestamp, ShouldEqual, stamps[1])
				So(svc.GetStats()["historySize"], ShouldEqual, 2)
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a started service with some activity", t, func() {
		svc := newStartedService(t)
		_, _ = svc.BuildSnapshot(context.Background())

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then the counters reflect the activity", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["tenorCount"], ShouldEqual, curve.TenorGridSize)
				So(stats["gridSize"], ShouldEqual, curve.EvalGridSize)
				So(stats["snapshotsBuilt"], ShouldEqual, int64(1))
			})
		})
	})
}
