package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/logger"
	"github.com/fsdevblog/cenjin-cards/internal/transport/api/middlewares"
	"github.com/fsdevblog/cenjin-cards/internal/transport/api/mocks"
	"github.com/fsdevblog/cenjin-cards/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/suite"
	"golang.org/x/time/rate"
)

const validToken = "valid-token"

var testLocation = time.FixedZone("CST", 8*60*60)

// handlerSuite builds the full router over mocked services.
type handlerSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *mocks.MockUserServicer
	mockCardService  *mocks.MockCardServicer
	mockStatsService *mocks.MockStatsServicer
	uploadDir        string
	staticDir        string
	claims           *domain.UserClaims
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(ctrl)
	s.mockCardService = mocks.NewMockCardServicer(ctrl)
	s.mockStatsService = mocks.NewMockStatsServicer(ctrl)
	s.uploadDir = s.T().TempDir()
	s.staticDir = s.T().TempDir()
	s.claims = &domain.UserClaims{ID: 1, Account: "admin", Username: "管理员"}

	s.mockUserService.EXPECT().ValidateToken(validToken).Return(s.claims, nil).AnyTimes()

	reg := prometheus.NewRegistry()
	metrics, err := middlewares.NewHTTPMetrics(reg)
	s.Require().NoError(err)

	s.router, err = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		UserService:    s.mockUserService,
		CardService:    s.mockCardService,
		StatsService:   s.mockStatsService,
		Location:       testLocation,
		UploadDir:      s.uploadDir,
		MaxUploadBytes: 1 << 20,
		LoginLimiter:   middlewares.NewIPRateLimiter(rate.Every(time.Hour), 5),
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StaticDir:      s.staticDir,
	})
	s.Require().NoError(err)
}

func (s *handlerSuite) do(method, url string, body io.Reader, opts ...func(*testutils.RequestOptions)) *http.Response {
	return testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   body,
	}, opts...)
}

func (s *handlerSuite) envelope(res *http.Response) testutils.Envelope {
	env, err := testutils.DecodeEnvelope(res)
	s.Require().NoError(err)
	return env
}

type RouterTestSuite struct {
	handlerSuite
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) TestHealth() {
	res := s.do(http.MethodGet, RouteGroup+HealthRoute, nil)
	s.Equal(http.StatusOK, res.StatusCode)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	s.Require().NoError(decodeJSON(res, &body))
	s.Equal("ok", body.Status)
	_, err := time.Parse(time.RFC3339Nano, body.Timestamp)
	s.NoError(err)
}

func (s *RouterTestSuite) TestWelcome() {
	type welcome struct {
		Message string             `json:"message"`
		Version string             `json:"version"`
		User    *domain.UserClaims `json:"user"`
	}

	s.Run("anonymous", func() {
		res := s.do(http.MethodGet, "/", nil)
		s.Equal(http.StatusOK, res.StatusCode)
		var body welcome
		s.Require().NoError(decodeJSON(res, &body))
		s.Equal(welcomeMessage, body.Message)
		s.Equal(Version, body.Version)
		s.Nil(body.User)
	})

	s.Run("with token", func() {
		res := s.do(http.MethodGet, "/", nil, testutils.WithBearer(validToken))
		var body welcome
		s.Require().NoError(decodeJSON(res, &body))
		s.Require().NotNil(body.User)
		s.Equal(s.claims.Account, body.User.Account)
	})
}

func (s *RouterTestSuite) TestCardRoutesRequireToken() {
	s.mockUserService.EXPECT().ValidateToken("expired").Return(nil, domain.ErrTokenExpired)
	s.mockUserService.EXPECT().ValidateToken("garbage").Return(nil, domain.ErrTokenInvalid)

	cases := []struct {
		name    string
		opts    []func(*testutils.RequestOptions)
		message string
	}{
		{name: "no header", message: "未提供认证信息"},
		{name: "expired", opts: []func(*testutils.RequestOptions){testutils.WithBearer("expired")}, message: msgTokenExpired},
		{name: "invalid", opts: []func(*testutils.RequestOptions){testutils.WithBearer("garbage")}, message: msgTokenInvalid},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			res := s.do(http.MethodGet, RouteGroup+CardsRoute, nil, tc.opts...)
			s.Equal(http.StatusUnauthorized, res.StatusCode)
			env := s.envelope(res)
			s.False(env.Success)
			s.Equal(tc.message, env.Message)
		})
	}
}

func (s *RouterTestSuite) TestCORSPreflight() {
	res := s.do(http.MethodOptions, RouteGroup+CardsRoute, nil,
		testutils.WithHeader("Origin", "http://dash.local"),
		testutils.WithHeader("Access-Control-Request-Method", http.MethodPost),
	)
	defer res.Body.Close()
	s.Equal(http.StatusNoContent, res.StatusCode)
	s.Contains([]string{"*", "http://dash.local"}, res.Header.Get("Access-Control-Allow-Origin"))
}

func (s *RouterTestSuite) TestMetricsExposed() {
	s.do(http.MethodGet, RouteGroup+HealthRoute, nil).Body.Close()

	res := s.do(http.MethodGet, MetricsRoute, nil)
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)
	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.Contains(string(raw), "cenjin_http_requests_total")
}

func (s *RouterTestSuite) TestStaticFallback() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.staticDir, "index.html"), []byte("<html>app</html>"), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(s.staticDir, "app.js"), []byte("console.log(1)"), 0o600))

	read := func(res *http.Response) string {
		defer res.Body.Close()
		raw, err := io.ReadAll(res.Body)
		s.Require().NoError(err)
		return string(raw)
	}

	s.Run("asset", func() {
		res := s.do(http.MethodGet, "/app.js", nil)
		s.Equal(http.StatusOK, res.StatusCode)
		s.Equal("console.log(1)", read(res))
	})

	s.Run("client side route", func() {
		res := s.do(http.MethodGet, "/dashboard/cards", nil)
		s.Equal(http.StatusOK, res.StatusCode)
		s.Equal("<html>app</html>", read(res))
	})

	s.Run("unknown api path", func() {
		res := s.do(http.MethodGet, RouteGroup+"/nope", nil)
		s.Equal(http.StatusNotFound, res.StatusCode)
		s.False(s.envelope(res).Success)
	})
}
