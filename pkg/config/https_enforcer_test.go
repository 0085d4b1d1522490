package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func newHTTPSRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewHTTPSEnforcer(zap.NewNop(), enabled).HTTPSMiddleware())
	router.GET("/users", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func TestHTTPSEnforcer_Disabled(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/users", nil)
	newHTTPSRouter(false).ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
}

func TestHTTPSEnforcer_Redirects(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/users?name=a", nil)
	newHTTPSRouter(true).ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusMovedPermanently))
	Expect(w.Header().Get("Location")).To(Equal("https://api.example.com/users?name=a"))
}

func TestHTTPSEnforcer_AllowsForwardedAndLocal(t *testing.T) {
	RegisterTestingT(t)

	router := newHTTPSRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/users", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	router.ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusOK))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "http://localhost:5000/users", nil)
	router.ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusOK))
}
