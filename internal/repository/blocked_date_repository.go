package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/pgclosets/booking-api/internal/model"
)

// BlockedDateRepo provides access to the blocked-dates registry.  The
// reservation path only reads it; rows are created and removed through
// the admin back-office.  Dates are stored as DATE columns, so lookups
// compare against the midnight-UTC normalization of the day.
type BlockedDateRepo struct {
    db *sql.DB
}

// NewBlockedDateRepo returns a new BlockedDateRepo bound to the given database.
func NewBlockedDateRepo(db *sql.DB) *BlockedDateRepo { return &BlockedDateRepo{db: db} }

// IsBlocked reports whether the given calendar day is administratively
// unavailable.  Only the date part of the argument is significant.
func (r *BlockedDateRepo) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
    var id uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM blocked_dates WHERE date = ?`, dateOnly(date)).Scan(&id)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// IsBlockedTx is the transactional variant used inside the reservation
// transaction so that the blocked-date check and the overlap check
// observe a single consistent snapshot.
func (r *BlockedDateRepo) IsBlockedTx(ctx context.Context, tx Tx, date time.Time) (bool, error) {
    var id uint64
    err := tx.QueryRowContext(ctx, `SELECT id FROM blocked_dates WHERE date = ?`, dateOnly(date)).Scan(&id)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// List returns all blocked dates ordered chronologically.
func (r *BlockedDateRepo) List(ctx context.Context) ([]model.BlockedDate, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, date, reason, created_at FROM blocked_dates ORDER BY date`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    dates := make([]model.BlockedDate, 0)
    for rows.Next() {
        var d model.BlockedDate
        var reason sql.NullString
        if err := rows.Scan(&d.ID, &d.Date, &reason, &d.CreatedAt); err != nil {
            return nil, err
        }
        if reason.Valid {
            s := reason.String
            d.Reason = &s
        }
        dates = append(dates, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return dates, nil
}

// Create inserts a new blocked date.  The date column carries a unique
// key, so blocking an already-blocked day surfaces as
// ErrDateAlreadyBlocked rather than a driver error.
func (r *BlockedDateRepo) Create(ctx context.Context, d *model.BlockedDate) error {
    result, err := r.db.ExecContext(ctx,
        `INSERT INTO blocked_dates (date, reason) VALUES (?, ?)`, dateOnly(d.Date), d.Reason)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrDateAlreadyBlocked
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    d.ID = uint64(id)
    return r.db.QueryRowContext(ctx, `SELECT created_at FROM blocked_dates WHERE id = ?`, d.ID).Scan(&d.CreatedAt)
}

// DeleteByDate removes a blocked date.  Deleting a day that was never
// blocked is not an error; the registry simply ends in the desired
// state.  The number of removed rows is returned for the handler to
// report.
func (r *BlockedDateRepo) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
    result, err := r.db.ExecContext(ctx, `DELETE FROM blocked_dates WHERE date = ?`, dateOnly(date))
    if err != nil {
        return 0, err
    }
    return result.RowsAffected()
}

// dateOnly truncates an instant to its calendar day at midnight UTC so
// that DATE-column comparisons are stable regardless of the time of
// day carried by the argument.
func dateOnly(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isDuplicateKey detects a MySQL unique-constraint violation (error
// number 1062) so callers see a domain sentinel instead of a driver error.
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}
