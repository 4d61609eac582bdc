package model

import "time"

// AdminUser is a back-office operator allowed to confirm or cancel
// bookings and to manage blocked dates.  Customer-facing requests are
// unauthenticated; only /v1/admin routes require an AdminUser session.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login email (unique).
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – creation timestamp.
type AdminUser struct {
    ID           uint64    // admin_users.id
    Email        string    // admin_users.email
    PasswordHash string    // admin_users.password_hash
    CreatedAt    time.Time // admin_users.created_at
}
