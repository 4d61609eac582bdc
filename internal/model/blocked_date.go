package model

import "time"

// BlockedDate marks a calendar day as fully unavailable for booking,
// e.g. a statutory holiday or an installation-crew day off.  Rows are
// created and removed through the admin back-office; the reservation
// path only ever reads them.
//
// Fields:
//  ID        – primary key identifier.
//  Date      – the blocked calendar day (unique, midnight UTC).
//  Reason    – optional note shown in the admin UI.
//  CreatedAt – creation timestamp.
type BlockedDate struct {
    ID        uint64    // blocked_dates.id
    Date      time.Time // blocked_dates.date
    Reason    *string   // blocked_dates.reason (nullable)
    CreatedAt time.Time // blocked_dates.created_at
}
