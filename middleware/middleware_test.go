package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinicblocks/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAdminRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", JWTAuthAdminMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staffID": c.GetString("staffID"), "staffName": c.GetString("staffName")})
	})
	return r
}

func doGet(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	r := newAdminRouter()

	admin, err := utils.GenerateToken("u-1", "Dra. Ruiz", utils.RoleAdmin, time.Hour)
	require.NoError(t, err)
	nurse, err := utils.GenerateToken("u-2", "Enfermero", "staff", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken("u-1", "Dra. Ruiz", utils.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	w := doGet(r, "/admin", map[string]string{"Authorization": "Bearer " + admin})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"staffID":"u-1","staffName":"Dra. Ruiz"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/admin", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/admin", map[string]string{"Authorization": "Token " + admin}).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/admin", map[string]string{"Authorization": "Bearer garbage"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/admin", map[string]string{"Authorization": "Bearer " + expired}).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", map[string]string{"Authorization": "Bearer " + nurse}).Code)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}, "10.0.0.1"},
		{"skips unparseable hops", map[string]string{"X-Forwarded-For": "unknown, 10.0.0.2"}, "10.0.0.2"},
		{"real ip header", map[string]string{"X-Real-IP": " 10.0.0.3 "}, "10.0.0.3"},
		{"garbage falls back to peer", map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "nope"}, "192.0.2.1"},
		{"socket peer", nil, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = "192.0.2.1:4321"
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(rateLimit(newRateLimiterStore(2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hdr := map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}
	assert.Equal(t, http.StatusOK, doGet(r, "/", hdr).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/", hdr).Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "/", hdr).Code)

	other := map[string]string{"X-Real-IP": "10.0.0.2"}
	assert.Equal(t, http.StatusOK, doGet(r, "/", other).Code)
}

func TestRequestLogger_PropagatesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := doGet(r, "/", map[string]string{"X-Request-ID": "req-123"})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = doGet(r, "/", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
