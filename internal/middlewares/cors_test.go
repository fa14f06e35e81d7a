package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCorsMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("Preflight", func(t *testing.T) {
		config.App.AllowedOrigin = "*"
		w := httptest.NewRecorder()
		CorsMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/subjects", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("ExplicitOrigin", func(t *testing.T) {
		config.App.AllowedOrigin = "https://quiz.example.com"
		w := httptest.NewRecorder()
		CorsMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/subjects", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "https://quiz.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
