package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/pgclosets/booking-api/internal/model"
)

// BookingRepo provides persistence for bookings.  All writes that can
// race with concurrent reservation attempts are exposed as ...Tx
// methods operating on a caller-owned transaction; the caller is
// responsible for commit or rollback.  All timestamp fields are stored
// in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Begin opens a reservation transaction.  Serializable isolation plus
// the FOR UPDATE locks taken by AnyOverlapTx keep the no-overlap
// invariant under whatever isolation InnoDB actually grants.  The
// returned handle is shared with the blocked-date repository so all
// checks observe one snapshot.
func (r *BookingRepo) Begin(ctx context.Context) (Tx, error) {
	return r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// BookedSlot is the minimal projection returned by availability reads:
// the occupied time range of one non-cancelled booking.
type BookedSlot struct {
    TimeStart time.Time `json:"timeStart"`
    TimeEnd   time.Time `json:"timeEnd"`
}

// AnyOverlapTx reports whether any non-cancelled booking overlaps the
// half-open range [start, end).  The predicate uses strict inequality
// on both ends so that a booking ending exactly at another's start is
// not a conflict.  It must run inside the reservation transaction: the
// FOR UPDATE clause locks matching rows (and, under InnoDB, the
// surrounding index gap) so that two concurrent reservation attempts
// for overlapping ranges serialize on the store rather than both
// passing the check.
func (r *BookingRepo) AnyOverlapTx(ctx context.Context, tx Tx, start, end time.Time) (bool, error) {
    const q = `SELECT id FROM bookings
               WHERE status <> 'cancelled' AND time_start < ? AND time_end > ?
               LIMIT 1 FOR UPDATE`
    var id uint64
    err := tx.QueryRowContext(ctx, q, end, start).Scan(&id)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and the database-side
// timestamps on the provided record.  The caller must commit or
// rollback the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (booking_number, service, date, time_start, time_end, duration_minutes,
                guest_name, guest_email, guest_phone, location, project_description, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        b.BookingNumber, b.Service, b.Date, b.TimeStart, b.TimeEnd, b.DurationMinutes,
        b.GuestName, b.GuestEmail, b.GuestPhone, b.Location, b.ProjectDescription, b.Status,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the row to populate database defaults.
    const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// ListSlotsByDay returns the occupied time ranges of all non-cancelled
// bookings whose range falls within the given day boundaries, ordered
// by start time.  It is a plain read outside any transaction; the
// availability endpoint is advisory and the reservation transaction
// re-checks before writing.
func (r *BookingRepo) ListSlotsByDay(ctx context.Context, dayStart, dayEnd time.Time) ([]BookedSlot, error) {
    const q = `SELECT time_start, time_end FROM bookings
               WHERE status <> 'cancelled' AND time_start >= ? AND time_start <= ?
               ORDER BY time_start`
    rows, err := r.db.QueryContext(ctx, q, dayStart, dayEnd)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    slots := make([]BookedSlot, 0)
    for rows.Next() {
        var s BookedSlot
        if err := rows.Scan(&s.TimeStart, &s.TimeEnd); err != nil {
            return nil, err
        }
        slots = append(slots, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return slots, nil
}

// GetByID returns a single booking.  When no booking with the given ID
// exists, ErrBookingNotFound is returned.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT id, booking_number, service, date, time_start, time_end, duration_minutes,
                      guest_name, guest_email, guest_phone, location, project_description, status,
                      created_at, updated_at
               FROM bookings WHERE id = ?`
    var b model.Booking
    var desc sql.NullString
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &b.ID, &b.BookingNumber, &b.Service, &b.Date, &b.TimeStart, &b.TimeEnd, &b.DurationMinutes,
        &b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.Location, &desc, &b.Status,
        &b.CreatedAt, &b.UpdatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    if desc.Valid {
        d := desc.String
        b.ProjectDescription = &d
    }
    return &b, nil
}

// List returns bookings for the admin back-office, optionally filtered
// by calendar day and/or status.  Results are ordered by start time
// ascending so the day reads like a schedule.
func (r *BookingRepo) List(ctx context.Context, date *time.Time, status string) ([]model.Booking, error) {
    q := `SELECT id, booking_number, service, date, time_start, time_end, duration_minutes,
                 guest_name, guest_email, guest_phone, location, project_description, status,
                 created_at, updated_at
          FROM bookings WHERE 1=1`
    args := make([]interface{}, 0, 3)
    if date != nil {
        dayStart, dayEnd := model.DayBounds(*date)
        q += ` AND time_start >= ? AND time_start <= ?`
        args = append(args, dayStart, dayEnd)
    }
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY time_start`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    bookings := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        var desc sql.NullString
        if err := rows.Scan(
            &b.ID, &b.BookingNumber, &b.Service, &b.Date, &b.TimeStart, &b.TimeEnd, &b.DurationMinutes,
            &b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.Location, &desc, &b.Status,
            &b.CreatedAt, &b.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        if desc.Valid {
            d := desc.String
            b.ProjectDescription = &d
        }
        bookings = append(bookings, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return bookings, nil
}

// UpdateStatus moves a booking to a new lifecycle status.  The current
// status is read under a row lock and the transition validated against
// the one-directional lifecycle before the update, all inside a single
// transaction so concurrent admin actions cannot interleave.  It
// returns ErrBookingNotFound when the booking does not exist and
// ErrInvalidTransition when the lifecycle forbids the change.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, to string) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    var current string
    err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ? FOR UPDATE`, id).Scan(&current)
    if err == sql.ErrNoRows {
        return ErrBookingNotFound
    }
    if err != nil {
        return err
    }
    if !model.CanTransition(current, to) {
        return ErrInvalidTransition
    }
    if _, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, to, id); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
