package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pgclosets/booking-api/internal/model"
	"github.com/pgclosets/booking-api/internal/utils"
)

type mockAdminUserStore struct {
	getByEmailFn func(ctx context.Context, email string) (model.AdminUser, error)
}

func (m *mockAdminUserStore) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	return m.getByEmailFn(ctx, email)
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestLoginSuccess(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	store := &mockAdminUserStore{
		getByEmailFn: func(_ context.Context, email string) (model.AdminUser, error) {
			if email != "ops@pgclosets.com" {
				t.Errorf("email = %q", email)
			}
			return model.AdminUser{ID: 1, Email: email, PasswordHash: hash}, nil
		},
	}
	h := NewAuthHandler(store, "test-secret", 15)

	rec := postLogin(t, h, `{"email":"ops@pgclosets.com","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   string `json:"expires_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken == "" || resp.ExpiresAt == "" {
		t.Fatalf("incomplete response: %+v", resp)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	h := NewAuthHandler(&mockAdminUserStore{
		getByEmailFn: func(_ context.Context, email string) (model.AdminUser, error) {
			if email == "ops@pgclosets.com" {
				return model.AdminUser{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return model.AdminUser{}, errors.New("not found")
		},
	}, "test-secret", 15)

	// Unknown account and wrong password must be indistinguishable.
	for _, body := range []string{
		`{"email":"nobody@pgclosets.com","password":"s3cret"}`,
		`{"email":"ops@pgclosets.com","password":"wrong"}`,
	} {
		rec := postLogin(t, h, body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: status = %d, want 401", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid credentials") {
			t.Fatalf("body %s: unexpected message %s", body, rec.Body.String())
		}
	}
}

func TestLoginRequiresFields(t *testing.T) {
	h := NewAuthHandler(&mockAdminUserStore{
		getByEmailFn: func(context.Context, string) (model.AdminUser, error) {
			t.Fatal("GetByEmail called for incomplete request")
			return model.AdminUser{}, nil
		},
	}, "test-secret", 15)

	for _, body := range []string{`{}`, `{"email":"ops@pgclosets.com"}`, `{"password":"s3cret"}`} {
		rec := postLogin(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}
