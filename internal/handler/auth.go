package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pgclosets/booking-api/internal/model"
    "github.com/pgclosets/booking-api/internal/utils"
)

// AdminUserStore looks up back-office operator accounts.
// *repository.AdminUserRepo satisfies it.
type AdminUserStore interface {
    GetByEmail(ctx context.Context, email string) (model.AdminUser, error)
}

// AuthHandler implements the back-office login.  There is no
// registration or token refresh: accounts are provisioned out of band
// and access tokens are short-lived, so operators simply log in again.
type AuthHandler struct {
    Users        AdminUserStore
    JWTSecret    string
    AccessTTLMin int
}

// NewAuthHandler constructs an AuthHandler.  The store must be non-nil.
func NewAuthHandler(users AdminUserStore, jwtSecret string, accessTTLMin int) *AuthHandler {
    if users == nil {
        panic("nil store passed to NewAuthHandler")
    }
    return &AuthHandler{Users: users, JWTSecret: jwtSecret, AccessTTLMin: accessTTLMin}
}

// Login handles POST /v1/auth/login.  It verifies the operator's
// credentials and returns a signed access token.  Unknown emails and
// wrong passwords produce the same 401 response so the endpoint does
// not reveal which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
    var body struct {
        Email    string `json:"email"`
        Password string `json:"password"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Email == "" || body.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
    }

    user, err := h.Users.GetByEmail(c.Request().Context(), body.Email)
    if err != nil || !utils.VerifyPassword(user.PasswordHash, body.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    tok, err := utils.NewAccessToken(h.JWTSecret, user.ID, h.AccessTTLMin)
    if err != nil {
        c.Logger().Errorf("sign access token failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "access_token": tok.Token,
        "expires_at":   tok.Exp.Format(time.RFC3339),
    })
}
