package model

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestServiceDuration(t *testing.T) {
	cases := []struct {
		service string
		want    int
		ok      bool
	}{
		{ServiceConsultation, 60, true},
		{ServiceMeasurement, 60, true},
		{ServiceInstallation, 240, true},
		{"delivery", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ServiceDuration(tc.service)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ServiceDuration(%q) = (%d, %v), want (%d, %v)", tc.service, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInstallationBlocksFourHours(t *testing.T) {
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	d, _ := ServiceDuration(ServiceInstallation)
	r := NewTimeRange(start, d)
	if want := time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC); !r.End.Equal(want) {
		t.Fatalf("installation starting 09:00 ends %v, want %v", r.End, want)
	}
}

func TestValidLocation(t *testing.T) {
	for _, loc := range []string{"ottawa", "Kanata", "GATINEAU"} {
		if !ValidLocation(loc) {
			t.Errorf("ValidLocation(%q) = false, want true", loc)
		}
	}
	for _, loc := range []string{"toronto", "", "ottawa "} {
		if ValidLocation(loc) {
			t.Errorf("ValidLocation(%q) = true, want false", loc)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCancelled}: true,
	}
	statuses := []string{StatusPending, StatusConfirmed, StatusCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if CanTransition("unknown", StatusConfirmed) {
		t.Error("transition from unknown status allowed")
	}
}

func TestNewBookingNumber(t *testing.T) {
	now := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	n := NewBookingNumber(now)

	prefix := fmt.Sprintf("BK-%d-", now.UnixMilli())
	if !strings.HasPrefix(n, prefix) {
		t.Fatalf("number %q lacks prefix %q", n, prefix)
	}
	suffix := strings.TrimPrefix(n, prefix)
	if len(suffix) != 8 {
		t.Fatalf("suffix %q has length %d, want 8", suffix, len(suffix))
	}
	if suffix != strings.ToUpper(suffix) {
		t.Fatalf("suffix %q is not upper case", suffix)
	}

	// Same instant, distinct numbers.
	if NewBookingNumber(now) == n {
		t.Fatal("two numbers for the same instant collided")
	}
}
