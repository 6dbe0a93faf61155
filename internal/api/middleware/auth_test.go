package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newProtectedHandler(t *testing.T) (http.Handler, *domain.Actor) {
	t.Helper()
	captured := &domain.Actor{}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromContext(r.Context())
		require.NoError(t, err)
		*captured = actor
		w.WriteHeader(http.StatusOK)
	})

	return Auth(testSecret, nopLogger{})(next), captured
}

func TestAuth(t *testing.T) {
	t.Run("valid token puts actor into context", func(t *testing.T) {
		handler, captured := newProtectedHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"user_id": 7,
			"role":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), captured.ID)
		assert.Equal(t, domain.RoleAdmin, captured.Role)
	})

	t.Run("unknown role falls back to user", func(t *testing.T) {
		handler, captured := newProtectedHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"user_id": 3,
			"role":    "superuser",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.RoleUser, captured.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		handler, _ := newProtectedHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		handler, _ := newProtectedHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"user_id": 7,
			"role":    "user",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		handler, _ := newProtectedHandler(t)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 7,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestActorFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ActorFromContext(req.Context())
	assert.ErrorIs(t, err, ErrNoActor)
}
