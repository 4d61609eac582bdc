package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pgclosets/booking-api/internal/model"
    "github.com/pgclosets/booking-api/internal/repository"
)

// BookingAdminStore is the persistence surface the admin booking
// handlers need.  *repository.BookingRepo satisfies it.
type BookingAdminStore interface {
    List(ctx context.Context, date *time.Time, status string) ([]model.Booking, error)
    GetByID(ctx context.Context, id uint64) (*model.Booking, error)
    UpdateStatus(ctx context.Context, id uint64, to string) error
}

// AdminBookingHandler exposes the back-office view over bookings:
// listing a day's schedule and driving the one-directional status
// lifecycle.  Bookings are never deleted; cancelling is the terminal
// state.
type AdminBookingHandler struct {
    Bookings BookingAdminStore
}

// NewAdminBookingHandler constructs an AdminBookingHandler.
func NewAdminBookingHandler(bookings BookingAdminStore) *AdminBookingHandler {
    if bookings == nil {
        panic("nil store passed to NewAdminBookingHandler")
    }
    return &AdminBookingHandler{Bookings: bookings}
}

// bookingView is the JSON projection of a booking returned to the
// back-office.  Guest contact details are included; this surface is
// behind admin auth.
type bookingView struct {
    ID                 uint64  `json:"id"`
    BookingNumber      string  `json:"bookingNumber"`
    Service            string  `json:"service"`
    Date               string  `json:"date"`
    TimeStart          string  `json:"timeStart"`
    TimeEnd            string  `json:"timeEnd"`
    DurationMinutes    int     `json:"durationMinutes"`
    GuestName          string  `json:"guestName"`
    GuestEmail         string  `json:"guestEmail"`
    GuestPhone         string  `json:"guestPhone"`
    Location           string  `json:"location"`
    ProjectDescription *string `json:"projectDescription,omitempty"`
    Status             string  `json:"status"`
    CreatedAt          string  `json:"createdAt"`
}

func toBookingView(b model.Booking) bookingView {
    return bookingView{
        ID:                 b.ID,
        BookingNumber:      b.BookingNumber,
        Service:            b.Service,
        Date:               b.Date.Format("2006-01-02"),
        TimeStart:          b.TimeStart.UTC().Format(time.RFC3339),
        TimeEnd:            b.TimeEnd.UTC().Format(time.RFC3339),
        DurationMinutes:    b.DurationMinutes,
        GuestName:          b.GuestName,
        GuestEmail:         b.GuestEmail,
        GuestPhone:         b.GuestPhone,
        Location:           b.Location,
        ProjectDescription: b.ProjectDescription,
        Status:             b.Status,
        CreatedAt:          b.CreatedAt.UTC().Format(time.RFC3339),
    }
}

// List handles GET /v1/admin/bookings.  Optional query parameters:
// date=YYYY-MM-DD restricts to one calendar day, status filters on the
// lifecycle state.  Results are ordered by start time so the response
// reads like a schedule.
func (h *AdminBookingHandler) List(c echo.Context) error {
    var datePtr *time.Time
    if dateStr := c.QueryParam("date"); dateStr != "" {
        d, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
        }
        datePtr = &d
    }
    status := c.QueryParam("status")
    if status != "" && status != model.StatusPending && status != model.StatusConfirmed && status != model.StatusCancelled {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }

    bookings, err := h.Bookings.List(c.Request().Context(), datePtr, status)
    if err != nil {
        c.Logger().Errorf("list bookings failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    views := make([]bookingView, 0, len(bookings))
    for _, b := range bookings {
        views = append(views, toBookingView(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": views})
}

// Get handles GET /v1/admin/bookings/:id.
func (h *AdminBookingHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Bookings.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        c.Logger().Errorf("get booking failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toBookingView(*b))
}

// Confirm handles POST /v1/admin/bookings/:id/confirm.  Only pending
// bookings may be confirmed; anything else is an invalid transition.
func (h *AdminBookingHandler) Confirm(c echo.Context) error {
    return h.transition(c, model.StatusConfirmed)
}

// Cancel handles POST /v1/admin/bookings/:id/cancel.  Pending and
// confirmed bookings may be cancelled; a cancelled booking stays
// cancelled.
func (h *AdminBookingHandler) Cancel(c echo.Context) error {
    return h.transition(c, model.StatusCancelled)
}

func (h *AdminBookingHandler) transition(c echo.Context, to string) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if err := h.Bookings.UpdateStatus(c.Request().Context(), id, to); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, repository.ErrInvalidTransition):
            return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
        default:
            c.Logger().Errorf("update booking status failed: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": to})
}
