package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

func newTestService(repo *fakeRepository, guides *fakeGuideService) *service {
	return &service{
		repo:    repo,
		guides:  guides,
		engine:  NewAvailabilityEngine(repo, guides),
		pricing: NewHourlyPriceCalculator(),
		now: func() time.Time {
			return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

var (
	travelerActor = auth.Actor{UserID: "u-traveler", Role: user.RoleUser}
	guideActor    = auth.Actor{UserID: "u-guide", Role: user.RoleGuide}
	adminActor    = auth.Actor{UserID: "u-admin", Role: user.RoleAdmin}
	strangerActor = auth.Actor{UserID: "u-stranger", Role: user.RoleUser}
)

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking with computed price", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(repo, guides)

		b, err := svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{10 * 60, 12 * 60},
			Notes:   "meet at the station",
		}, travelerActor)
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "u-traveler", b.UserID)
		assert.Equal(t, int64(10000), b.TotalPriceCents) // 2h at 50.00/h
	})

	t.Run("date must be after today", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(repo, guides)

		today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		for _, date := range []time.Time{today, today.AddDate(0, 0, -1)} {
			_, err := svc.Create(ctx, CreateRequest{
				GuideID: "g1",
				Date:    date,
				Window:  TimeWindow{10 * 60, 11 * 60},
			}, travelerActor)
			assert.ErrorIs(t, err, ErrDateNotFuture, date)
		}
	})

	t.Run("unknown guide", func(t *testing.T) {
		svc := newTestService(newFakeRepository(), &fakeGuideService{})

		_, err := svc.Create(ctx, CreateRequest{
			GuideID: "missing",
			Date:    testDate(),
			Window:  TimeWindow{10 * 60, 11 * 60},
		}, travelerActor)
		assert.ErrorIs(t, err, ErrGuideNotFound)
	})

	t.Run("unapproved guide cannot be booked", func(t *testing.T) {
		g := approvedGuide("g1", "u-guide")
		g.IsApproved = false
		svc := newTestService(newFakeRepository(), &fakeGuideService{guides: []*guide.Guide{g}})

		_, err := svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{10 * 60, 11 * 60},
		}, travelerActor)
		assert.ErrorIs(t, err, ErrGuideNotApproved)
	})

	t.Run("overlapping window rejected", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(repo, guides)

		_, err := svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{10 * 60, 12 * 60},
		}, travelerActor)
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{11 * 60, 13 * 60},
		}, strangerActor)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("adjacent window allowed", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(repo, guides)

		_, err := svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{10 * 60, 12 * 60},
		}, travelerActor)
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{12 * 60, 13 * 60},
		}, strangerActor)
		assert.NoError(t, err)
	})

	t.Run("notes length limit", func(t *testing.T) {
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(newFakeRepository(), guides)

		_, err := svc.Create(ctx, CreateRequest{
			GuideID: "g1",
			Date:    testDate(),
			Window:  TimeWindow{10 * 60, 11 * 60},
			Notes:   strings.Repeat("x", maxNotesLength+1),
		}, travelerActor)
		assert.ErrorIs(t, err, ErrNotesTooLong)
	})
}

func TestServiceGetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
	svc := newTestService(repo, guides)

	b := repo.add(&Booking{
		UserID:      "u-traveler",
		GuideID:     "g1",
		BookingDate: testDate(),
		Window:      TimeWindow{10 * 60, 12 * 60},
		Status:      StatusPending,
	})

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.GetByID(ctx, b.ID, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("booked guide can read", func(t *testing.T) {
		_, err := svc.GetByID(ctx, b.ID, guideActor)
		assert.NoError(t, err)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := svc.GetByID(ctx, b.ID, adminActor)
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(ctx, b.ID, strangerActor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "missing", adminActor)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("repeated reads return the same booking", func(t *testing.T) {
		first, err := svc.GetByID(ctx, b.ID, travelerActor)
		require.NoError(t, err)
		second, err := svc.GetByID(ctx, b.ID, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
	svc := newTestService(repo, guides)

	repo.add(&Booking{UserID: "u-traveler", GuideID: "g1", BookingDate: testDate(), Window: TimeWindow{9 * 60, 10 * 60}, Status: StatusPending})
	repo.add(&Booking{UserID: "u-stranger", GuideID: "g1", BookingDate: testDate(), Window: TimeWindow{11 * 60, 12 * 60}, Status: StatusPending})
	repo.add(&Booking{UserID: "u-traveler", GuideID: "g2", BookingDate: testDate(), Window: TimeWindow{9 * 60, 10 * 60}, Status: StatusPending})

	t.Run("regular user sees only own bookings", func(t *testing.T) {
		bookings, total, err := svc.List(ctx, Filter{}, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, b := range bookings {
			assert.Equal(t, "u-traveler", b.UserID)
		}
	})

	t.Run("guide sees bookings against their profile", func(t *testing.T) {
		bookings, total, err := svc.List(ctx, Filter{}, guideActor)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, b := range bookings {
			assert.Equal(t, "g1", b.GuideID)
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		_, total, err := svc.List(ctx, Filter{}, adminActor)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("guide role without a profile", func(t *testing.T) {
		_, _, err := svc.List(ctx, Filter{}, auth.Actor{UserID: "u-orphan", Role: user.RoleGuide})
		assert.ErrorIs(t, err, ErrGuideNotFound)
	})

	t.Run("inclusive date range, newest first", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestService(repo, guides)

		day1 := testDate()
		day2 := day1.AddDate(0, 0, 1)
		day3 := day1.AddDate(0, 0, 2)
		repo.add(&Booking{UserID: "u-traveler", GuideID: "g1", BookingDate: day1, Window: TimeWindow{9 * 60, 10 * 60}, Status: StatusPending})
		repo.add(&Booking{UserID: "u-traveler", GuideID: "g1", BookingDate: day2, Window: TimeWindow{9 * 60, 10 * 60}, Status: StatusPending})
		repo.add(&Booking{UserID: "u-traveler", GuideID: "g1", BookingDate: day2, Window: TimeWindow{14 * 60, 15 * 60}, Status: StatusPending})
		repo.add(&Booking{UserID: "u-traveler", GuideID: "g1", BookingDate: day3, Window: TimeWindow{9 * 60, 10 * 60}, Status: StatusPending})

		bookings, total, err := svc.List(ctx, Filter{DateFrom: &day1, DateTo: &day2}, travelerActor)
		require.NoError(t, err)
		require.Equal(t, 3, total)

		// Both bounds are inclusive, ordered by date then start time, newest first.
		assert.Equal(t, day2, bookings[0].BookingDate)
		assert.Equal(t, 14*60, bookings[0].Window.Start)
		assert.Equal(t, day2, bookings[1].BookingDate)
		assert.Equal(t, 9*60, bookings[1].Window.Start)
		assert.Equal(t, day1, bookings[2].BookingDate)
	})
}

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(status Status) (*fakeRepository, Service, *Booking) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(repo, guides)
		b := repo.add(&Booking{
			UserID:      "u-traveler",
			GuideID:     "g1",
			BookingDate: testDate(),
			Window:      TimeWindow{10 * 60, 12 * 60},
			Status:      status,
		})
		return repo, svc, b
	}

	t.Run("owner cancels pending", func(t *testing.T) {
		_, svc, b := setup(StatusPending)
		got, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, nil, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("owner cannot confirm", func(t *testing.T) {
		_, svc, b := setup(StatusPending)
		_, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed, nil, travelerActor)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("guide confirms then completes", func(t *testing.T) {
		_, svc, b := setup(StatusPending)

		got, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed, nil, guideActor)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)

		got, err = svc.UpdateStatus(ctx, b.ID, StatusCompleted, nil, guideActor)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
	})

	t.Run("admin may leave a terminal status", func(t *testing.T) {
		_, svc, b := setup(StatusCompleted)
		got, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed, nil, adminActor)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, svc, b := setup(StatusPending)
		_, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, nil, strangerActor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("updates notes alongside the status", func(t *testing.T) {
		_, svc, b := setup(StatusPending)
		notes := "cancelled, flight moved"
		got, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, &notes, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Equal(t, notes, got.Notes)
	})

	t.Run("omitted notes are left untouched", func(t *testing.T) {
		repo, svc, _ := setup(StatusPending)
		b := repo.add(&Booking{
			UserID:      "u-traveler",
			GuideID:     "g1",
			BookingDate: testDate(),
			Window:      TimeWindow{13 * 60, 14 * 60},
			Status:      StatusPending,
			Notes:       "meet at the station",
		})

		got, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, nil, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, "meet at the station", got.Notes)
	})

	t.Run("oversized notes rejected", func(t *testing.T) {
		_, svc, b := setup(StatusPending)
		notes := strings.Repeat("x", maxNotesLength+1)
		_, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, &notes, travelerActor)
		assert.ErrorIs(t, err, ErrNotesTooLong)

		got, err := svc.GetByID(ctx, b.ID, travelerActor)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("retries once when the row changes underneath", func(t *testing.T) {
		repo, svc, b := setup(StatusPending)

		// First CAS sees stale state, the retry re-reads and succeeds.
		interfered := false
		repo.beforeUpdateStatus = func() {
			if !interfered {
				interfered = true
				repo.bookings[b.ID].Status = StatusConfirmed
			}
		}

		got, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, nil, adminActor)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("gives up after persistent interference", func(t *testing.T) {
		repo, svc, b := setup(StatusPending)

		flip := StatusConfirmed
		repo.beforeUpdateStatus = func() {
			// Keep the stored status one step ahead of every read.
			repo.bookings[b.ID].Status = flip
			if flip == StatusConfirmed {
				flip = StatusPending
			} else {
				flip = StatusConfirmed
			}
		}

		_, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, nil, adminActor)
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	setup := func(status Status) (Service, *Booking) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		svc := newTestService(repo, guides)
		b := repo.add(&Booking{
			UserID:      "u-traveler",
			GuideID:     "g1",
			BookingDate: testDate(),
			Window:      TimeWindow{10 * 60, 12 * 60},
			Status:      status,
		})
		return svc, b
	}

	t.Run("owner deletes pending", func(t *testing.T) {
		svc, b := setup(StatusPending)
		assert.NoError(t, svc.Delete(ctx, b.ID, travelerActor))
	})

	t.Run("owner deletes cancelled", func(t *testing.T) {
		svc, b := setup(StatusCancelled)
		assert.NoError(t, svc.Delete(ctx, b.ID, travelerActor))
	})

	t.Run("confirmed booking cannot be deleted", func(t *testing.T) {
		svc, b := setup(StatusConfirmed)
		assert.ErrorIs(t, svc.Delete(ctx, b.ID, adminActor), ErrInvalidState)
	})

	t.Run("guide cannot delete", func(t *testing.T) {
		svc, b := setup(StatusPending)
		assert.ErrorIs(t, svc.Delete(ctx, b.ID, guideActor), ErrPermissionDenied)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		svc, b := setup(StatusPending)
		assert.ErrorIs(t, svc.Delete(ctx, b.ID, strangerActor), ErrPermissionDenied)
	})
}
