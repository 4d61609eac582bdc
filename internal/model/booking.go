package model

import (
    "fmt"
    "strings"
    "time"

    "github.com/google/uuid"
)

// Service kinds form a closed enumeration.  The duration of a booking
// is derived from its kind rather than supplied by the client.
const (
    ServiceConsultation = "consultation"
    ServiceMeasurement  = "measurement"
    ServiceInstallation = "installation"
)

// Booking statuses.  Transitions are one-directional: a pending booking
// may be confirmed or cancelled, a confirmed booking may be cancelled,
// and a cancelled booking never leaves that state.  Bookings are never
// physically deleted.
const (
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCancelled = "cancelled"
)

// serviceDurations maps each service kind to its appointment length in
// minutes.  Installations block out half a working day; consultations
// and measurements take a single hour.
var serviceDurations = map[string]int{
    ServiceConsultation: 60,
    ServiceMeasurement:  60,
    ServiceInstallation: 240,
}

// serviceLocations is the closed set of regions the company serves.
// Requests naming any other location are rejected at validation time.
var serviceLocations = map[string]bool{
    "ottawa":      true,
    "kanata":      true,
    "nepean":      true,
    "orleans":     true,
    "barrhaven":   true,
    "stittsville": true,
    "gloucester":  true,
    "gatineau":    true,
}

// Booking records one reserved appointment.
//
// Fields:
//  ID                 – primary key identifier.
//  BookingNumber      – human-readable reference (time-based prefix plus
//                       a random suffix, e.g. BK-1748771400123-9F3A21BC).
//  Service            – service kind (consultation, measurement,
//                       installation).
//  Date               – calendar day of the appointment (midnight UTC).
//  TimeStart          – start instant of the reserved range.
//  TimeEnd            – end instant; always TimeStart plus the duration
//                       derived from Service.
//  DurationMinutes    – derived appointment length in minutes.
//  GuestName          – requester's full name.
//  GuestEmail         – requester's email address.
//  GuestPhone         – requester's phone number.
//  Location           – service region (closed enumeration).
//  ProjectDescription – optional free-text notes, length-capped.
//  Status             – lifecycle state (pending, confirmed, cancelled).
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Booking struct {
    ID                 uint64    // bookings.id
    BookingNumber      string    // bookings.booking_number
    Service            string    // bookings.service
    Date               time.Time // bookings.date
    TimeStart          time.Time // bookings.time_start
    TimeEnd            time.Time // bookings.time_end
    DurationMinutes    int       // bookings.duration_minutes
    GuestName          string    // bookings.guest_name
    GuestEmail         string    // bookings.guest_email
    GuestPhone         string    // bookings.guest_phone
    Location           string    // bookings.location
    ProjectDescription *string   // bookings.project_description (nullable)
    Status             string    // bookings.status
    CreatedAt          time.Time // bookings.created_at
    UpdatedAt          time.Time // bookings.updated_at
}

// Range returns the booking's occupied time range.
func (b *Booking) Range() TimeRange {
    return TimeRange{Start: b.TimeStart, End: b.TimeEnd}
}

// ServiceDuration returns the appointment length in minutes for the
// given service kind.  The second return value is false for unknown
// kinds.
func ServiceDuration(service string) (int, bool) {
    d, ok := serviceDurations[service]
    return d, ok
}

// ValidService reports whether the given string is a known service kind.
func ValidService(service string) bool {
    _, ok := serviceDurations[service]
    return ok
}

// ValidLocation reports whether the given region is served.  Matching
// is case-insensitive; callers should store the lowercased form.
func ValidLocation(location string) bool {
    return serviceLocations[strings.ToLower(location)]
}

// CanTransition reports whether a booking may move from one status to
// another.  Only forward transitions are allowed; in particular a
// cancelled booking can never be revived.
func CanTransition(from, to string) bool {
    switch from {
    case StatusPending:
        return to == StatusConfirmed || to == StatusCancelled
    case StatusConfirmed:
        return to == StatusCancelled
    default:
        return false
    }
}

// NewBookingNumber generates a human-readable booking reference.  The
// millisecond timestamp keeps numbers roughly sortable by creation
// time while the random suffix makes collisions between same-instant
// requests practically impossible.
func NewBookingNumber(now time.Time) string {
    suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
    return fmt.Sprintf("BK-%d-%s", now.UnixMilli(), suffix)
}
