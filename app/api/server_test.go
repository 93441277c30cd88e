package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", authMiddleware("secret"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	router := authTestRouter()

	tests := []struct {
		name     string
		headers  map[string]string
		expected int
	}{
		{"no credentials", nil, http.StatusUnauthorized},
		{"valid api key header", map[string]string{"X-API-Key": "secret"}, http.StatusOK},
		{"invalid api key header", map[string]string{"X-API-Key": "wrong"}, http.StatusUnauthorized},
		{"valid bearer token", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
		{"invalid bearer token", map[string]string{"Authorization": "Bearer wrong"}, http.StatusUnauthorized},
		{"malformed authorization header", map[string]string{"Authorization": "secret"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, recorder.Code)
			}
		})
	}
}
