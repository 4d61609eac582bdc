package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pgclosets/booking-api/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	body := []byte(`{"date":"2025-06-02","bookedSlots":[]}`)

	raw, err := encodePayload(http.StatusOK, header, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHeader, gotBody, ok := decodePayload(raw)
	if !ok {
		t.Fatal("decode reported failure")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if gotHeader.Get("Content-Type") != "application/json" {
		t.Fatalf("header = %v", gotHeader)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("x"), []byte("not a payload at all")} {
		if _, _, _, ok := decodePayload(raw); ok {
			t.Fatalf("decodePayload(%q) accepted garbage", raw)
		}
	}
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}
	e := echo.New()

	key := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		return cacheKeyFrom(cfg, c)
	}

	a := key("/v1/bookings/availability?date=2025-06-02")
	b := key("/v1/bookings/availability?date=2025-06-03")
	if a == b {
		t.Fatal("different dates produced the same cache key")
	}
	if a != key("/v1/bookings/availability?date=2025-06-02") {
		t.Fatal("identical requests produced different cache keys")
	}
}
