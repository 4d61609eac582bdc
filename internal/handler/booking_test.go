package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pgclosets/booking-api/internal/model"
	"github.com/pgclosets/booking-api/internal/repository"
	"github.com/pgclosets/booking-api/internal/service"
)

// mockBookingService lets each test script the service layer without a
// database.  Calls to an unset function fail the test via the nil map
// panic, which is the desired loud failure.
type mockBookingService struct {
	reserveFn      func(ctx context.Context, req service.ReserveRequest) (*model.Booking, error)
	availabilityFn func(ctx context.Context, date time.Time) (service.DayAvailability, error)
	reserveCalls   int
}

func (m *mockBookingService) Reserve(ctx context.Context, req service.ReserveRequest) (*model.Booking, error) {
	m.reserveCalls++
	return m.reserveFn(ctx, req)
}

func (m *mockBookingService) Availability(ctx context.Context, date time.Time) (service.DayAvailability, error) {
	return m.availabilityFn(ctx, date)
}

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func validBody(overrides map[string]any) string {
	body := map[string]any{
		"service":    "installation",
		"date":       "2025-06-02",
		"time":       "09:00",
		"guestName":  "Jamie Tremblay",
		"guestEmail": "jamie@example.com",
		"guestPhone": "613-555-0142",
		"location":   "ottawa",
	}
	for k, v := range overrides {
		if v == nil {
			delete(body, k)
			continue
		}
		body[k] = v
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func TestCreateBookingSuccess(t *testing.T) {
	svc := &mockBookingService{
		reserveFn: func(_ context.Context, req service.ReserveRequest) (*model.Booking, error) {
			if req.Service != "installation" {
				t.Errorf("service = %q, want installation", req.Service)
			}
			want := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
			if !req.TimeStart.Equal(want) {
				t.Errorf("start = %v, want %v", req.TimeStart, want)
			}
			if req.GuestEmail != "jamie@example.com" {
				t.Errorf("email = %q, want lowercased trimmed form", req.GuestEmail)
			}
			return &model.Booking{ID: 7, BookingNumber: "BK-1748854800000-9F3A21BC", Status: model.StatusConfirmed}, nil
		},
	}
	rec := postBooking(t, NewBookingHandler(svc), validBody(nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success       bool   `json:"success"`
		BookingID     uint64 `json:"bookingId"`
		BookingNumber string `json:"bookingNumber"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.BookingID != 7 || resp.BookingNumber != "BK-1748854800000-9F3A21BC" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCreateBookingValidationRejects(t *testing.T) {
	cases := []struct {
		name      string
		overrides map[string]any
		field     string
	}{
		{"bad email", map[string]any{"guestEmail": "not-an-email"}, "guestEmail"},
		{"unknown service", map[string]any{"service": "delivery"}, "service"},
		{"unknown location", map[string]any{"location": "toronto"}, "location"},
		{"short name", map[string]any{"guestName": "J"}, "guestName"},
		{"missing time", map[string]any{"time": nil}, "time"},
		{"bad date format", map[string]any{"date": "06/02/2025"}, "date"},
		{"bad time format", map[string]any{"time": "9am"}, "time"},
		{"phone too short", map[string]any{"guestPhone": "555-0142"}, "guestPhone"},
		{"phone with letters", map[string]any{"guestPhone": "613-555-CALL"}, "guestPhone"},
		{"description too long", map[string]any{"projectDescription": strings.Repeat("x", 2001)}, "projectDescription"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBookingService{
				reserveFn: func(context.Context, service.ReserveRequest) (*model.Booking, error) {
					t.Fatal("Reserve called for invalid input")
					return nil, nil
				},
			}
			rec := postBooking(t, NewBookingHandler(svc), validBody(tc.overrides))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if svc.reserveCalls != 0 {
				t.Fatalf("Reserve called %d times for invalid input", svc.reserveCalls)
			}
			if tc.field != "" && !strings.Contains(rec.Body.String(), tc.field) {
				t.Fatalf("body %s does not name field %q", rec.Body.String(), tc.field)
			}
		})
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"slot taken", repository.ErrSlotTaken, http.StatusConflict, "slot no longer available"},
		{"day blocked", repository.ErrDayBlocked, http.StatusConflict, "selected date is unavailable"},
		{"unknown service kind", service.ErrUnknownService, http.StatusBadRequest, "invalid service selected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBookingService{
				reserveFn: func(context.Context, service.ReserveRequest) (*model.Booking, error) {
					return nil, tc.err
				},
			}
			rec := postBooking(t, NewBookingHandler(svc), validBody(nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if !strings.Contains(rec.Body.String(), tc.message) {
				t.Fatalf("body %s missing %q", rec.Body.String(), tc.message)
			}
		})
	}
}

func getAvailability(t *testing.T, h *BookingHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/availability"+query, nil)
	rec := httptest.NewRecorder()
	if err := h.Availability(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestAvailabilityOpenDay(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(_ context.Context, date time.Time) (service.DayAvailability, error) {
			if want := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
				t.Errorf("date = %v, want %v", date, want)
			}
			return service.DayAvailability{Slots: []repository.BookedSlot{{
				TimeStart: time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
				TimeEnd:   time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC),
			}}}, nil
		},
	}
	rec := getAvailability(t, NewBookingHandler(svc), "?date=2025-06-02")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Date        string `json:"date"`
		BookedSlots []struct {
			TimeStart time.Time `json:"timeStart"`
			TimeEnd   time.Time `json:"timeEnd"`
		} `json:"bookedSlots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Date != "2025-06-02" || len(resp.BookedSlots) != 1 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestAvailabilityBlockedDay(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(context.Context, time.Time) (service.DayAvailability, error) {
			return service.DayAvailability{DayBlocked: true}, nil
		},
	}
	rec := getAvailability(t, NewBookingHandler(svc), "?date=2025-12-25")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		DayBlocked bool              `json:"dayBlocked"`
		Slots      []json.RawMessage `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.DayBlocked {
		t.Fatal("dayBlocked not set")
	}
	if resp.Slots == nil || len(resp.Slots) != 0 {
		t.Fatalf("slots = %v, want empty list", resp.Slots)
	}
}

func TestAvailabilityBadDate(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(context.Context, time.Time) (service.DayAvailability, error) {
			t.Fatal("Availability called for invalid date")
			return service.DayAvailability{}, nil
		},
	}
	for _, query := range []string{"", "?date=junk", "?date=2025-13-40"} {
		rec := getAvailability(t, NewBookingHandler(svc), query)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
}
