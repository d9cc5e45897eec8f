package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultMultipartMem = 8 << 20

const (
	RouteGroup    = "/api"
	HealthRoute   = "/health"
	MetricsRoute  = "/metrics"
	LoginRoute    = "/auth/login"
	RegisterRoute = "/auth/register"
	VerifyRoute   = "/auth/verify"
	RefreshRoute  = "/auth/refresh"
	MeRoute       = "/auth/me"

	CardsRoute           = "/member-card"
	CardRoute            = "/member-card/:id"
	CardByNumberRoute    = "/member-card/card/:cardNumber"
	CardsBulkRoute       = "/member-card/bulk"
	CardsBulkDeleteRoute = "/member-card/bulk/delete"
	CardsImportRoute     = "/member-card/import"
	CardsExportRoute     = "/member-card/export"
	CardsStatsRoute      = "/member-card/stats"
	CardsChartRoute      = "/member-card/chart-data"
	CardsRankRoute       = "/member-card/rank"
)

type RouterArgs struct {
	Logger       *logrus.Logger
	UserService  UserServicer
	CardService  CardServicer
	StatsService StatsServicer
	// Location is used to read and render order times. UTC when nil.
	Location       *time.Location
	UploadDir      string
	MaxUploadBytes int64
	// LoginLimiter throttles login attempts per client IP. Disabled when nil.
	LoginLimiter   *middlewares.IPRateLimiter
	Metrics        *middlewares.HTTPMetrics
	MetricsHandler http.Handler
	// StaticDir holds the dashboard build. Static hosting is off when empty.
	StaticDir string
	// ServiceTimeout caps the request context handed to services. Zero leaves it to the store.
	ServiceTimeout time.Duration
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.New()
	r.MaxMultipartMemory = defaultMultipartMem
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.CORS(middlewares.DefaultCORSOptions()))
	if args.Metrics != nil {
		r.Use(args.Metrics.Middleware())
	}
	r.Use(middlewares.Errors())
	if args.ServiceTimeout > 0 {
		r.Use(middlewares.Deadline(args.ServiceTimeout))
	}

	authHandler := NewAuthHandler(args.UserService)
	cardsHandler := NewCardsHandler(args.CardService, args.Location)
	transferHandler := NewTransferHandler(args.CardService, args.UploadDir, args.MaxUploadBytes, args.Location)
	statsHandler := NewStatsHandler(args.StatsService)

	if args.MetricsHandler != nil {
		r.GET(MetricsRoute, gin.WrapH(args.MetricsHandler))
	}
	r.GET("/", middlewares.OptionalAuth(args.UserService), Welcome)

	api := r.Group(RouteGroup)
	api.GET(HealthRoute, Health)

	login := []gin.HandlerFunc{authHandler.Login}
	if args.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{middlewares.RateLimit(args.LoginLimiter)}, login...)
	}
	api.POST(LoginRoute, login...)
	api.POST(RegisterRoute, authHandler.Register)
	api.POST(VerifyRoute, authHandler.Verify)
	api.POST(RefreshRoute, authHandler.Refresh)

	// everything below needs a valid bearer token.
	authed := api.Group("", middlewares.AuthRequired(args.UserService))
	authed.GET(MeRoute, authHandler.Me)

	authed.GET(CardsRoute, cardsHandler.Index)
	authed.POST(CardsRoute, cardsHandler.Create)
	authed.POST(CardsBulkRoute, cardsHandler.BulkCreate)
	authed.DELETE(CardsBulkDeleteRoute, cardsHandler.BulkDelete)
	authed.POST(CardsImportRoute, transferHandler.Import)
	authed.GET(CardsExportRoute, transferHandler.Export)
	authed.GET(CardsStatsRoute, statsHandler.Stats)
	authed.GET(CardsChartRoute, statsHandler.Chart)
	authed.GET(CardsRankRoute, statsHandler.Rank)
	authed.GET(CardByNumberRoute, cardsHandler.ShowByNumber)
	authed.GET(CardRoute, cardsHandler.Show)
	authed.PUT(CardRoute, cardsHandler.Update)
	authed.DELETE(CardRoute, cardsHandler.Delete)

	if args.StaticDir != "" {
		r.NoRoute(spaFallback(args.StaticDir))
	}
	return r, nil
}

// spaFallback serves files from dir and sends index.html for unknown non api paths.
func spaFallback(dir string) gin.HandlerFunc {
	root := http.Dir(dir)
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, RouteGroup+"/") || p == RouteGroup {
			abortWithMessage(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			abortWithMessage(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		if f, err := root.Open(p); err == nil {
			st, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !st.IsDir() {
				c.File(filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+p))))
				return
			}
		}
		if _, err := os.Stat(index); err != nil {
			abortWithMessage(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		c.File(index)
	}
}
