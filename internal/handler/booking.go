package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"
    "unicode"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/pgclosets/booking-api/internal/model"
    "github.com/pgclosets/booking-api/internal/repository"
    "github.com/pgclosets/booking-api/internal/service"
)

// BookingService is the slice of the booking service the public
// handlers need.  *service.BookingService satisfies it; tests inject
// mocks.
type BookingService interface {
    Reserve(ctx context.Context, req service.ReserveRequest) (*model.Booking, error)
    Availability(ctx context.Context, date time.Time) (service.DayAvailability, error)
}

// BookingHandler exposes the public availability and reservation
// endpoints.  Requests are unauthenticated; the rate limiter in front
// of the create endpoint is the only admission control.
type BookingHandler struct {
    Svc BookingService
}

// NewBookingHandler constructs a BookingHandler.  The service must be non-nil.
func NewBookingHandler(svc BookingService) *BookingHandler {
    if svc == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc}
}

// validate holds the compiled request schema.  The struct tags on
// createBookingRequest encode the closed service and location
// enumerations, email well-formedness and the free-text length cap;
// the phone digit-count rule needs code and lives in validPhone.
var validate = validator.New()

// createBookingRequest is the wire shape of POST /v1/bookings.  The
// inbound JSON is untyped at the transport boundary, so it is
// revalidated against this schema immediately on receipt.  Date and
// time-of-day arrive as separate fields; the overloaded single field
// the storefront once sent is not accepted.
type createBookingRequest struct {
    Service            string  `json:"service" validate:"required,oneof=consultation measurement installation"`
    Date               string  `json:"date" validate:"required"`
    Time               string  `json:"time" validate:"required"`
    GuestName          string  `json:"guestName" validate:"required,min=2,max=100"`
    GuestEmail         string  `json:"guestEmail" validate:"required,email"`
    GuestPhone         string  `json:"guestPhone" validate:"required"`
    Location           string  `json:"location" validate:"required,oneof=ottawa kanata nepean orleans barrhaven stittsville gloucester gatineau"`
    ProjectDescription *string `json:"projectDescription" validate:"omitempty,max=2000"`
}

// validPhone reports whether the number contains 10 or 11 digits once
// separators are stripped, mirroring the storefront's phone pattern.
func validPhone(phone string) bool {
    digits := 0
    for _, r := range phone {
        switch {
        case unicode.IsDigit(r):
            digits++
        case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+' || r == '.':
            // separator characters are ignored
        default:
            return false
        }
    }
    return digits == 10 || digits == 11
}

// Create handles POST /v1/bookings.  It validates the request against
// the schema, composes the start instant from the date and time
// fields, and delegates to the reservation transaction.  Responses:
// 201 with the booking identifier and number on success, 400 on
// validation failure, 409 when the slot is taken or the day blocked,
// 500 otherwise.  No transaction is opened for invalid input.
func (h *BookingHandler) Create(c echo.Context) error {
    var req createBookingRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Service = strings.ToLower(strings.TrimSpace(req.Service))
    req.Location = strings.ToLower(strings.TrimSpace(req.Location))

    if err := validate.Struct(&req); err != nil {
        var verrs validator.ValidationErrors
        if errors.As(err, &verrs) {
            fields := make([]string, 0, len(verrs))
            for _, fe := range verrs {
                fields = append(fields, fieldName(fe.Field()))
            }
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error":  "validation failed",
                "fields": fields,
            })
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
    }
    if !validPhone(req.GuestPhone) {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":  "validation failed",
            "fields": []string{"guestPhone"},
        })
    }

    day, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":  "validation failed",
            "fields": []string{"date"},
        })
    }
    tod, err := time.Parse("15:04", req.Time)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":  "validation failed",
            "fields": []string{"time"},
        })
    }
    start := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)

    booking, err := h.Svc.Reserve(c.Request().Context(), service.ReserveRequest{
        Service:            req.Service,
        TimeStart:          start,
        GuestName:          strings.TrimSpace(req.GuestName),
        GuestEmail:         strings.ToLower(strings.TrimSpace(req.GuestEmail)),
        GuestPhone:         strings.TrimSpace(req.GuestPhone),
        Location:           req.Location,
        ProjectDescription: req.ProjectDescription,
    })
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrSlotTaken):
            return c.JSON(http.StatusConflict, echo.Map{"error": "slot no longer available"})
        case errors.Is(err, repository.ErrDayBlocked):
            return c.JSON(http.StatusConflict, echo.Map{"error": "selected date is unavailable"})
        case errors.Is(err, service.ErrUnknownService):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service selected"})
        default:
            c.Logger().Errorf("create booking failed: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking, please try again"})
        }
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "success":       true,
        "bookingId":     booking.ID,
        "bookingNumber": booking.BookingNumber,
    })
}

// Availability handles GET /v1/bookings/availability?date=YYYY-MM-DD.
// On a blocked day it returns an empty slots list with dayBlocked set;
// otherwise it returns the occupied ranges so the client can render
// the remaining choices.  The read is idempotent: repeated calls with
// no intervening writes return identical results.
func (h *BookingHandler) Availability(c echo.Context) error {
    dateStr := c.QueryParam("date")
    if dateStr == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
    }
    date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }

    avail, err := h.Svc.Availability(c.Request().Context(), date)
    if err != nil {
        c.Logger().Errorf("availability check failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
    }
    if avail.DayBlocked {
        return c.JSON(http.StatusOK, echo.Map{
            "date":       dateStr,
            "dayBlocked": true,
            "slots":      []interface{}{},
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":        dateStr,
        "bookedSlots": avail.Slots,
    })
}

// fieldName maps a struct field name back to its JSON key so
// validation errors identify the offending fields in the client's own
// vocabulary.
func fieldName(structField string) string {
    switch structField {
    case "Service":
        return "service"
    case "Date":
        return "date"
    case "Time":
        return "time"
    case "GuestName":
        return "guestName"
    case "GuestEmail":
        return "guestEmail"
    case "GuestPhone":
        return "guestPhone"
    case "Location":
        return "location"
    case "ProjectDescription":
        return "projectDescription"
    default:
        return structField
    }
}
