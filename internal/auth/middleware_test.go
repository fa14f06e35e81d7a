package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(t *testing.T) http.Handler {
	t.Helper()
	return auth.AuthMiddleware(auth.RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		w.WriteHeader(http.StatusNoContent)
	})))
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	adminToken, err := auth.GenerateJWT(1, auth.RoleAdmin, time.Hour)
	require.NoError(t, err)
	userToken, err := auth.GenerateJWT(1, auth.RoleUser, time.Hour)
	require.NoError(t, err)
	expiredToken, err := auth.GenerateJWT(1, auth.RoleAdmin, -time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"MissingToken", func(r *http.Request) {}, http.StatusUnauthorized},
		{"GarbageToken", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusForbidden},
		{"ExpiredToken", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expiredToken) }, http.StatusUnauthorized},
		{"WrongRole", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) }, http.StatusForbidden},
		{"AdminBearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+adminToken) }, http.StatusNoContent},
		{"AdminCookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "jwt", Value: adminToken}) }, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/subjects", nil)
			tc.setup(r)
			w := httptest.NewRecorder()
			protected(t).ServeHTTP(w, r)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	auth.NewHandler().Logout(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}
