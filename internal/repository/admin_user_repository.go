package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/pgclosets/booking-api/internal/model"
)

// AdminUserRepo stores back-office operator accounts.  Accounts are
// provisioned through the adminctl tool, never over HTTP, so the API
// surface is a lookup for login plus a create for provisioning.
type AdminUserRepo struct{ DB *sql.DB }

func NewAdminUserRepo(db *sql.DB) *AdminUserRepo { return &AdminUserRepo{DB: db} }

// GetByEmail fetches an admin user by normalized email.  sql.ErrNoRows
// is returned when no account matches; handlers treat that the same as
// a wrong password to avoid leaking which emails exist.
func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.AdminUser
    err := r.DB.QueryRowContext(ctx,
        "SELECT id, email, password_hash, created_at FROM admin_users WHERE email=? LIMIT 1",
        email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
    return u, err
}

// Create inserts a new operator account.  The email must be unique;
// a duplicate yields ErrEmailTaken.
func (r *AdminUserRepo) Create(ctx context.Context, u *model.AdminUser) error {
    u.Email = strings.ToLower(strings.TrimSpace(u.Email))
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO admin_users (email, password_hash) VALUES (?, ?)",
        u.Email, u.PasswordHash)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrEmailTaken
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    u.ID = uint64(id)
    return nil
}
