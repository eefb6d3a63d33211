package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/blackmouth-booking/internal/catalog"
	"github.com/iliyamo/blackmouth-booking/internal/config"
	"github.com/iliyamo/blackmouth-booking/internal/database"
	"github.com/iliyamo/blackmouth-booking/internal/handler"
	"github.com/iliyamo/blackmouth-booking/internal/logger"
	"github.com/iliyamo/blackmouth-booking/internal/middleware"
	"github.com/iliyamo/blackmouth-booking/internal/queue"
	"github.com/iliyamo/blackmouth-booking/internal/repository"
	"github.com/iliyamo/blackmouth-booking/internal/router"
	"github.com/iliyamo/blackmouth-booking/internal/service"
	"github.com/iliyamo/blackmouth-booking/internal/session"
	"github.com/iliyamo/blackmouth-booking/internal/slots"
)

func main() {
	// A missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("blackmouth-booking", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	menu, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("load catalog")
	}
	log.Info().Int("items", menu.Len()).Str("source", cfg.CatalogSource).Msg("catalog loaded")

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable: caching and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	slotsCfg := config.LoadSlotsConfig()
	opts := []slots.Option{slots.WithTimeout(slotsCfg.Timeout), slots.WithLogger(log)}
	if rdb != nil {
		opts = append(opts, slots.WithCache(slots.NewRedisCache(rdb, "slots"), slotsCfg.CacheTTL))
	}
	suggester := slots.NewEngine(slots.NewGeminiClient(slotsCfg), opts...)
	if !suggester.Live() {
		log.Info().Msg("GEMINI_API_KEY not set: reservation slots use the fallback list")
	}

	sessOpts := session.Options{
		Catalog:          menu,
		Slots:            suggester,
		ReservationDelay: cfg.ReservationDelay,
		DeliveryDelay:    cfg.DeliveryDelay,
		TTL:              cfg.SessionTTL,
		Logger:           log,
	}
	brokerURL := config.BrokerURL()
	if pub := service.NewPublisher(brokerURL, log); pub != nil {
		sessOpts.Notifier = pub
	}
	manager := session.NewManager(ctx, sessOpts)
	go manager.Run(ctx, time.Minute)

	if cfg.BookingConsumer && brokerURL != "" {
		c := &queue.Consumer{URL: brokerURL, Dir: "logs", Log: log}
		go func() {
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("booking consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(log))

	router.RegisterRoutes(e, &handler.HealthHandler{Redis: rdb, SlotsLive: suggester.Live()})
	sessions := &handler.SessionHandler{Manager: manager, Secret: cfg.SessionSecret, TokenTTL: cfg.TokenTTL}
	auth := middleware.SessionAuth(cfg.SessionSecret, cfg.TokenTTL)
	router.RegisterPublic(e, sessions, &handler.CatalogHandler{Catalog: menu},
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterSession(e, sessions, &handler.CartHandler{Sessions: manager}, auth)
	router.RegisterBooking(e, &handler.BookingHandler{Sessions: manager}, auth,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}

// loadCatalog returns the compiled-in menu, or the menu_items table when
// CATALOG_SOURCE=mysql.
func loadCatalog(ctx context.Context, cfg config.Config, log zerolog.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogSource != "mysql" {
		return catalog.Default(), nil
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	items, err := repository.NewMenuRepo(db).ListItems(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("db", cfg.DBName).Msg("menu read from mysql")
	return catalog.New(items)
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("session_id", middleware.SessionID(c)).
				Msg("request")
			return nil
		},
	})
}
