package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pgclosets/booking-api/internal/model"
    "github.com/pgclosets/booking-api/internal/repository"
)

// BlockedDateAdminStore is the persistence surface for the blocked-date
// registry.  *repository.BlockedDateRepo satisfies it.
type BlockedDateAdminStore interface {
    List(ctx context.Context) ([]model.BlockedDate, error)
    Create(ctx context.Context, d *model.BlockedDate) error
    DeleteByDate(ctx context.Context, date time.Time) (int64, error)
}

// AdminBlockedDateHandler manages the registry of administratively
// unavailable calendar days.  The reservation path only reads blocked
// dates; all mutation goes through these endpoints.
type AdminBlockedDateHandler struct {
    Dates BlockedDateAdminStore
}

// NewAdminBlockedDateHandler constructs an AdminBlockedDateHandler.
func NewAdminBlockedDateHandler(dates BlockedDateAdminStore) *AdminBlockedDateHandler {
    if dates == nil {
        panic("nil store passed to NewAdminBlockedDateHandler")
    }
    return &AdminBlockedDateHandler{Dates: dates}
}

// List handles GET /v1/admin/blocked-dates, returning all blocked days
// in chronological order.
func (h *AdminBlockedDateHandler) List(c echo.Context) error {
    dates, err := h.Dates.List(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("list blocked dates failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type view struct {
        ID     uint64  `json:"id"`
        Date   string  `json:"date"`
        Reason *string `json:"reason,omitempty"`
    }
    views := make([]view, 0, len(dates))
    for _, d := range dates {
        views = append(views, view{ID: d.ID, Date: d.Date.Format("2006-01-02"), Reason: d.Reason})
    }
    return c.JSON(http.StatusOK, echo.Map{"blockedDates": views})
}

// Create handles POST /v1/admin/blocked-dates with body
// {"date": "YYYY-MM-DD", "reason": "..."}.  Blocking a day that is
// already blocked returns 409.
func (h *AdminBlockedDateHandler) Create(c echo.Context) error {
    var body struct {
        Date   string  `json:"date"`
        Reason *string `json:"reason"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    date, err := time.ParseInLocation("2006-01-02", body.Date, time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }

    d := &model.BlockedDate{Date: date, Reason: body.Reason}
    if err := h.Dates.Create(c.Request().Context(), d); err != nil {
        if errors.Is(err, repository.ErrDateAlreadyBlocked) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "date already blocked"})
        }
        c.Logger().Errorf("create blocked date failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": d.ID, "date": body.Date})
}

// Delete handles DELETE /v1/admin/blocked-dates/:date.  Removing a day
// that was never blocked returns 404 so admin tooling can detect typos.
func (h *AdminBlockedDateHandler) Delete(c echo.Context) error {
    date, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }
    n, err := h.Dates.DeleteByDate(c.Request().Context(), date)
    if err != nil {
        c.Logger().Errorf("delete blocked date failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if n == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "date not blocked"})
    }
    return c.NoContent(http.StatusNoContent)
}
