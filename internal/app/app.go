package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/config"
	"github.com/fsdevblog/cenjin-cards/internal/logger"
	"github.com/fsdevblog/cenjin-cards/internal/repository/pgrepo"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/internal/service"
	"github.com/fsdevblog/cenjin-cards/internal/service/psswd"
	"github.com/fsdevblog/cenjin-cards/internal/service/tokens"
	"github.com/fsdevblog/cenjin-cards/internal/transport/api"
	"github.com/fsdevblog/cenjin-cards/internal/transport/api/middlewares"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	uploadDirPerm     = 0o750
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run serves the API until SIGINT or SIGTERM. A signal yields context.Canceled after a graceful shutdown.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Component(a.Logger, "app")
	log.Infof("Starting app with config: %s", a.Config)

	if err := os.MkdirAll(a.Config.UploadDir, uploadDirPerm); err != nil {
		return fmt.Errorf("app run: create upload dir: %w", err)
	}

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %w", uowErr)
	}

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:          unitOfWork,
		Hasher:       psswd.BcryptHasher{},
		TokenManager: tokens.NewManager([]byte(a.Config.JWTSecret), a.Config.JWTExpiresIn),
		Location:     a.Config.Location(),
	})
	if sErr != nil {
		return fmt.Errorf("app run: %w", sErr)
	}

	if err := a.bootstrapAdmin(notifyCtx, services.UserService, log); err != nil {
		return fmt.Errorf("app run: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, mErr := middlewares.NewHTTPMetrics(reg)
	if mErr != nil {
		return fmt.Errorf("app run: register metrics: %w", mErr)
	}

	router, rErr := api.New(api.RouterArgs{
		Logger:         a.Logger,
		UserService:    services.UserService,
		CardService:    services.CardService,
		StatsService:   services.StatsService,
		Location:       a.Config.Location(),
		UploadDir:      a.Config.UploadDir,
		MaxUploadBytes: a.Config.MaxUploadBytes(),
		LoginLimiter:   middlewares.NewIPRateLimiter(rate.Limit(a.Config.LoginRate), a.Config.LoginBurst),
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StaticDir:      a.Config.StaticDir,
		ServiceTimeout: a.Config.ServiceTimeout,
	})
	if rErr != nil {
		return fmt.Errorf("app run: %w", rErr)
	}

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", a.Config.RunAddress)
		if runErr := srv.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app shutdown: %w", err)
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return fmt.Errorf("app run: %w", err)
	}
}

// bootstrapAdmin creates the configured admin account when it does not exist yet.
func (a *App) bootstrapAdmin(ctx context.Context, users *service.UserService, log *logrus.Entry) error {
	if a.Config.AdminAccount == "" || a.Config.AdminPassword == "" {
		return nil
	}
	created, err := users.EnsureUser(ctx, service.RegisterUserArgs{
		Username: a.Config.AdminUsername,
		Account:  a.Config.AdminAccount,
		Password: a.Config.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		log.WithField("account", a.Config.AdminAccount).Info("admin account created")
	}
	return nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.MemberCardRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewMemberCardRepository(dbtx)
		},
		repoargs.StatsRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewStatsRepository(dbtx)
		},
	}
	for name, fn := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), fn); regErr != nil {
			return nil, fmt.Errorf("init UOW: %w", regErr)
		}
	}

	return unitOfWork, nil
}
