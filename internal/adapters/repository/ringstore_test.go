package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/curvecast/internal/domain/model"
)

func snapshotStamped(ts string) model.Snapshot {
	return model.Snapshot{Timestamp: ts}
}

func TestRingStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty ring store", t, func() {
		store := NewRingStore(WithCapacity(3))

		Convey("Latest reports an empty history", func() {
			_, err := store.Latest(ctx)
			So(err, ShouldWrap, ErrEmptyHistory)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("Recent rejects non-positive limits", func() {
			_, err := store.Recent(ctx, 0)
			So(err, ShouldWrap, ErrInvalidLimit)
			_, err = store.Recent(ctx, -5)
			So(err, ShouldWrap, ErrInvalidLimit)
		})
	})

	Convey("Given a store below capacity", t, func() {
		store := NewRingStore(WithCapacity(3))
		So(store.Append(ctx, snapshotStamped("t1")), ShouldBeNil)
		So(store.Append(ctx, snapshotStamped("t2")), ShouldBeNil)

		Convey("Latest returns the newest entry", func() {
			snap, err := store.Latest(ctx)
			So(err, ShouldBeNil)
			So(snap.Timestamp, ShouldEqual, "t2")
		})

		Convey("Recent orders newest first", func() {
			got, err := store.Recent(ctx, 10)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[0].Timestamp, ShouldEqual, "t2")
			So(got[1].Timestamp, ShouldEqual, "t1")
		})
	})

	Convey("Given a store past capacity", t, func() {
		store := NewRingStore(WithCapacity(3))
		for i := 1; i <= 5; i++ {
			So(store.Append(ctx, snapshotStamped(fmt.Sprintf("t%d", i))), ShouldBeNil)
		}

		Convey("the oldest entries were evicted", func() {
			So(store.Count(ctx), ShouldEqual, 3)

			got, err := store.Recent(ctx, 3)
			So(err, ShouldBeNil)
			So(got[0].Timestamp, ShouldEqual, "t5")
			So(got[1].Timestamp, ShouldEqual, "t4")
			So(got[2].Timestamp, ShouldEqual, "t3")
		})

		Convey("a limit smaller than the size truncates", func() {
			got, err := store.Recent(ctx, 1)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 1)
			So(got[0].Timestamp, ShouldEqual, "t5")
		})
	})

	Convey("Given concurrent writers and readers", t, func() {
		store := NewRingStore(WithCapacity(16))

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					_ = store.Append(ctx, snapshotStamped(fmt.Sprintf("g%d-%d", g, i)))
					_, _ = store.Recent(ctx, 8)
				}
			}(g)
		}
		wg.Wait()

		Convey("the store stays at capacity and readable", func() {
			So(store.Count(ctx), ShouldEqual, 16)
			got, err := store.Recent(ctx, 16)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 16)
		})
	})
}
