package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, int64) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID int64
	next := func(c echo.Context) error {
		gotUserID, _ = c.Get(CtxUserIDKey).(int64)
		return c.NoContent(http.StatusOK)
	}

	mw := AuthJWT(config.Config{JWTSecret: testSecret})
	err := mw(next)(c)
	assert.NoError(t, err)
	return rec, gotUserID
}

func TestAuthJWT_ValidToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": 7,
		"iat": now.Unix(),
		"exp": now.Add(15 * time.Minute).Unix(),
	})

	rec, userID := runAuthJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), userID)
}

func TestAuthJWT_Rejects(t *testing.T) {
	now := time.Now()

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": 7,
		"exp": now.Add(-time.Minute).Unix(),
	})
	wrongSecret := signToken(t, "other_secret", jwt.MapClaims{
		"sub": 7,
		"exp": now.Add(15 * time.Minute).Unix(),
	})

	tests := []struct {
		name  string
		authz string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := runAuthJWT(t, tt.authz)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
