// Package service contains the booking workflows that sit between the
// HTTP handlers and the repositories.  The reservation transaction in
// this file is the one correctness-critical path in the system: it
// guarantees that no two committed non-cancelled bookings overlap.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/pgclosets/booking-api/internal/model"
	"github.com/pgclosets/booking-api/internal/queue"
	"github.com/pgclosets/booking-api/internal/repository"
)

// BookingStore is the persistence surface the booking service needs.
// *repository.BookingRepo satisfies it.
type BookingStore interface {
	Begin(ctx context.Context) (repository.Tx, error)
	AnyOverlapTx(ctx context.Context, tx repository.Tx, start, end time.Time) (bool, error)
	CreateTx(ctx context.Context, tx repository.Tx, b *model.Booking) error
	ListSlotsByDay(ctx context.Context, dayStart, dayEnd time.Time) ([]repository.BookedSlot, error)
}

// BlockedDateStore is the read surface over the blocked-dates registry.
// *repository.BlockedDateRepo satisfies it.
type BlockedDateStore interface {
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
	IsBlockedTx(ctx context.Context, tx repository.Tx, date time.Time) (bool, error)
}

// ErrUnknownService is returned when the service kind survives schema
// validation but has no duration entry.  It maps to HTTP 400.
var ErrUnknownService = errors.New("unknown service kind")

// ReserveRequest carries an already-validated reservation request.
// TimeStart is the composed date+time instant in UTC; all enum fields
// have passed schema validation before reaching the service.
type ReserveRequest struct {
	Service            string
	TimeStart          time.Time
	GuestName          string
	GuestEmail         string
	GuestPhone         string
	Location           string
	ProjectDescription *string
}

// DayAvailability is the result of an availability read.  When the day
// is blocked, Slots is empty and DayBlocked is true; otherwise Slots
// lists the occupied ranges.
type DayAvailability struct {
	DayBlocked bool
	Slots      []repository.BookedSlot
}

// BookingService implements slot reservation and availability reads.
// The publish hook is optional; when set it receives a booking-created
// event after a successful commit and its errors never fail the
// reservation.
type BookingService struct {
	bookings BookingStore
	blocked  BlockedDateStore
	publish  func(ctx context.Context, ev queue.BookingCreatedEvent) error
	now      func() time.Time
}

// NewBookingService constructs a BookingService.  publish may be nil.
func NewBookingService(bookings BookingStore, blocked BlockedDateStore, publish func(ctx context.Context, ev queue.BookingCreatedEvent) error) *BookingService {
	if bookings == nil || blocked == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		bookings: bookings,
		blocked:  blocked,
		publish:  publish,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Reserve atomically reserves a time slot.  The check-then-insert
// sequence runs inside one serializable transaction: the blocked-date
// check, the overlap check and the insert all observe a single
// snapshot, and the row/gap locks taken by the overlap check force
// concurrent requests for overlapping ranges to serialize on the
// store.
//
// Two truly simultaneous requests over an empty range are a special
// case: both overlap checks acquire compatible gap locks and pass, and
// the competing inserts then deadlock.  InnoDB rolls one transaction
// back (no partial booking survives) and that loser is retried once;
// on the retry the overlap check observes the winner's committed row
// and the request fails with repository.ErrSlotTaken.
func (s *BookingService) Reserve(ctx context.Context, req ReserveRequest) (*model.Booking, error) {
	duration, ok := model.ServiceDuration(req.Service)
	if !ok {
		return nil, ErrUnknownService
	}
	rng := model.NewTimeRange(req.TimeStart.UTC(), duration)
	day, _ := model.DayBounds(rng.Start)

	booking, err := s.reserveOnce(ctx, req, rng, day, duration)
	if err != nil && lockConflict(err) {
		booking, err = s.reserveOnce(ctx, req, rng, day, duration)
	}
	if err != nil {
		return nil, err
	}

	if s.publish != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:     booking.ID,
			BookingNumber: booking.BookingNumber,
			Service:       booking.Service,
			Location:      booking.Location,
			TimeStart:     booking.TimeStart.Format(time.RFC3339),
			TimeEnd:       booking.TimeEnd.Format(time.RFC3339),
			GuestName:     booking.GuestName,
			GuestEmail:    booking.GuestEmail,
			CreatedAt:     booking.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			// The booking is committed; the audit event is best effort.
			log.Printf("booking-service: publish booking.created failed: %v", err)
		}
	}
	return booking, nil
}

// reserveOnce runs one attempt of the reservation transaction.  A
// request that fails mid-transaction leaves no partial booking behind.
func (s *BookingService) reserveOnce(ctx context.Context, req ReserveRequest, rng model.TimeRange, day time.Time, duration int) (*model.Booking, error) {
	tx, err := s.bookings.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	blocked, err := s.blocked.IsBlockedTx(ctx, tx, day)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, repository.ErrDayBlocked
	}

	taken, err := s.bookings.AnyOverlapTx(ctx, tx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrSlotTaken
	}

	booking := &model.Booking{
		BookingNumber:      model.NewBookingNumber(s.now()),
		Service:            req.Service,
		Date:               day,
		TimeStart:          rng.Start,
		TimeEnd:            rng.End,
		DurationMinutes:    duration,
		GuestName:          req.GuestName,
		GuestEmail:         req.GuestEmail,
		GuestPhone:         req.GuestPhone,
		Location:           req.Location,
		ProjectDescription: req.ProjectDescription,
		Status:             model.StatusConfirmed,
	}
	if err := s.bookings.CreateTx(ctx, tx, booking); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return booking, nil
}

// lockConflict reports whether the error is an InnoDB deadlock (1213)
// or lock wait timeout (1205).  Both leave the transaction rolled back
// or abandoned, so one retry is safe.
func lockConflict(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1213 || me.Number == 1205)
}

// Availability reports which time ranges are already occupied on the
// given calendar day, or that the whole day is blocked.  It is a
// read-only advisory view; the reservation transaction re-checks
// before any write.
func (s *BookingService) Availability(ctx context.Context, date time.Time) (DayAvailability, error) {
	dayStart, dayEnd := model.DayBounds(date)
	blocked, err := s.blocked.IsBlocked(ctx, dayStart)
	if err != nil {
		return DayAvailability{}, err
	}
	if blocked {
		return DayAvailability{DayBlocked: true, Slots: []repository.BookedSlot{}}, nil
	}
	slots, err := s.bookings.ListSlotsByDay(ctx, dayStart, dayEnd)
	if err != nil {
		return DayAvailability{}, err
	}
	return DayAvailability{Slots: slots}, nil
}
