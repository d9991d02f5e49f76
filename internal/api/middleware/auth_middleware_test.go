package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, userID int64, role models.Role, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	return token
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testKey)

	t.Run("Success - Valid Token Injects Claims", func(t *testing.T) {
		var gotClaims *models.Claims

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotClaims, _ = middleware.ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleUser, time.Now().Add(time.Hour)))
		recorder := httptest.NewRecorder()

		authMiddleware.Authenticate(next)(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, int64(7), gotClaims.UserID)
		assert.Equal(t, models.RoleUser, gotClaims.Role)
	})

	t.Run("Failure - Missing Header", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest("GET", "/orders", nil)
		recorder := httptest.NewRecorder()

		authMiddleware.Authenticate(next)(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Malformed Header", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", "Token abc")
		recorder := httptest.NewRecorder()

		authMiddleware.Authenticate(next)(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleUser, time.Now().Add(-time.Hour)))
		recorder := httptest.NewRecorder()

		authMiddleware.Authenticate(next)(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Wrong Signing Key", func(t *testing.T) {
		otherMiddleware := middleware.NewAuthMiddleware([]byte("other-key"))

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleUser, time.Now().Add(time.Hour)))
		recorder := httptest.NewRecorder()

		otherMiddleware.Authenticate(next)(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireRole(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testKey)

	t.Run("Success - Admin Passes Admin Gate", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest("DELETE", "/books/10", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 1, models.RoleAdmin, time.Now().Add(time.Hour)))
		recorder := httptest.NewRecorder()

		authMiddleware.RequireRole(models.RoleAdmin, next)(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("Failure - Regular User Gets 403", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest("DELETE", "/books/10", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleUser, time.Now().Add(time.Hour)))
		recorder := httptest.NewRecorder()

		authMiddleware.RequireRole(models.RoleAdmin, next)(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Failure - Anonymous Gets 401", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest("DELETE", "/books/10", nil)
		recorder := httptest.NewRecorder()

		authMiddleware.RequireRole(models.RoleAdmin, next)(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
