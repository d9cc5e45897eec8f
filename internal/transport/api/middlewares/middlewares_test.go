package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubValidator map[string]error

func (v stubValidator) ValidateToken(token string) (*domain.UserClaims, error) {
	err, ok := v[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	return &domain.UserClaims{ID: 1, Account: "admin"}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMaskSensitive(t *testing.T) {
	in := map[string]any{
		"account":  "admin",
		"Password": "secret",
		"cards": []any{
			map[string]any{"cardNumber": "C1", "cardPassword": "P1"},
		},
		"nested": map[string]any{"token": "abc", "secret": "s"},
	}

	got := MaskSensitive(in)

	assert.Equal(t, map[string]any{
		"account":  "admin",
		"Password": maskedValue,
		"cards": []any{
			map[string]any{"cardNumber": "C1", "cardPassword": maskedValue},
		},
		"nested": map[string]any{"token": maskedValue, "secret": maskedValue},
	}, got)
}

func TestLogger(t *testing.T) {
	l, hook := logtest.NewNullLogger()
	r := gin.New()
	r.Use(Logger(l))
	r.POST("/login", func(c *gin.Context) {
		var payload map[string]string
		require.NoError(t, c.ShouldBindJSON(&payload))
		assert.Equal(t, "secret", payload["password"])
		c.Status(http.StatusUnauthorized)
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db down")).SetType(gin.ErrorTypePrivate)
		c.Status(http.StatusInternalServerError)
	})

	w := serve(r, http.MethodPost, "/login", `{"account":"admin","password":"secret"}`,
		map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, map[string]any{"account": "admin", "password": maskedValue}, entry.Data["body"])
	assert.Equal(t, http.StatusUnauthorized, entry.Data["status"])

	serve(r, http.MethodGet, "/boom", "", nil)
	entry = hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Data["errors"], "db down")
}

func TestAuthRequired(t *testing.T) {
	v := stubValidator{"good": nil, "old": domain.ErrTokenExpired}
	r := gin.New()
	r.GET("/me", AuthRequired(v), func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, claims)
	})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "bearer", header: "Bearer good", status: http.StatusOK, body: `"account":"admin"`},
		{name: "lowercase bearer", header: "bearer good", status: http.StatusOK, body: `"account":"admin"`},
		{name: "raw token", header: "good", status: http.StatusOK, body: `"account":"admin"`},
		{name: "missing", header: "", status: http.StatusUnauthorized, body: "未提供认证信息"},
		{name: "empty bearer", header: "Bearer ", status: http.StatusUnauthorized, body: "未提供认证信息"},
		{name: "expired", header: "Bearer old", status: http.StatusUnauthorized, body: "Token 已过期"},
		{name: "invalid", header: "Bearer forged", status: http.StatusUnauthorized, body: "Token 无效"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/me", "", map[string]string{"Authorization": tc.header})
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", OptionalAuth(stubValidator{"good": nil}), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authed": ok})
	})

	assert.JSONEq(t, `{"authed":true}`, serve(r, http.MethodGet, "/", "", map[string]string{"Authorization": "Bearer good"}).Body.String())
	assert.JSONEq(t, `{"authed":false}`, serve(r, http.MethodGet, "/", "", map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.JSONEq(t, `{"authed":false}`, serve(r, http.MethodGet, "/", "", nil).Body.String())
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0), 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "buckets are per ip")

	r := gin.New()
	r.GET("/", RateLimit(NewIPRateLimiter(rate.Limit(0), 1)), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "", nil).Code)
	w := serve(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "请求过于频繁")
}

func TestErrors(t *testing.T) {
	r := gin.New()
	r.Use(Errors())
	r.GET("/bind", func(c *gin.Context) {
		_ = c.Error(errors.New("json: cannot unmarshal")).SetType(gin.ErrorTypeBind)
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("缺少必填字段")).SetType(gin.ErrorTypePublic)
	})
	r.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("db down")).SetType(gin.ErrorTypePrivate)
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("db down")).SetType(gin.ErrorTypePrivate)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "会员卡不存在"})
	})

	w := serve(r, http.MethodGet, "/bind", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"缺少必填字段"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/private", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"服务器错误"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/written", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"会员卡不存在"}`, w.Body.String())
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/cards/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/cards/1", "", nil)
	serve(r, http.MethodGet, "/cards/2", "", nil)
	serve(r, http.MethodGet, "/missing", "", nil)

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/cards/:id", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")), 0)

	_, err = NewHTTPMetrics(reg)
	assert.Error(t, err, "second registration on the same registry")
}

func TestCORS(t *testing.T) {
	const origin = "http://dash.local"
	r := gin.New()
	r.Use(CORS(DefaultCORSOptions()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x", "", map[string]string{
		"Origin":                         origin,
		"Access-Control-Request-Method":  http.MethodDelete,
		"Access-Control-Request-Headers": "Authorization",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, []string{"*", origin}, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)

	w = serve(r, http.MethodGet, "/x", "", map[string]string{"Origin": origin})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, []string{"*", origin}, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")

	w = serve(r, http.MethodGet, "/x", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), "same origin request")
}

func TestDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Deadline(time.Minute))
	var left time.Duration
	r.GET("/x", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		left = time.Until(deadline)
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/x", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, left, 50*time.Second)
	assert.LessOrEqual(t, left, time.Minute)
}
