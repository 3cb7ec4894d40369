package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/healthstats/internal/calendar"
	"github.com/2beens/healthstats/internal/config"
	"github.com/2beens/healthstats/internal/db"
	"github.com/2beens/healthstats/internal/gemini"
	"github.com/2beens/healthstats/internal/middleware"
	"github.com/2beens/healthstats/internal/profile"
	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config           *config.Config
	clientSecretHash string // bcrypt hash of the API client secret
	dbPool           *pgxpool.Pool
	redisClient      *redis.Client
	geminiClient     *gemini.Client // nil when GEMINI_API_KEY is not set
	rateLimiter      middleware.RequestRateLimiter

	profileHandler  *profile.Handler
	calendarHandler *calendar.Handler
	geminiHandler   *gemini.Handler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config  *config.Config
	Secrets *config.Secrets
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	secrets := params.Secrets

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: secrets.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("healthstats", "main", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	serviceName := secrets.OtelServiceName
	if serviceName == "" {
		serviceName = "healthstats-backend"
	}
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	profileRepo := profile.NewRepo(dbPool)
	if err := profileRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate profiles: %w", err)
	}

	serviceParams := profile.NewServiceParams{
		Store:          profileRepo,
		Locker:         profile.NewRedisLocker(rdb, cfg.ProfileLockTTL()),
		Cache:          profile.NewCache(cfg.ProfileCacheSizeMB, cfg.ProfileCacheTTL(), metricsManager),
		MetricsManager: metricsManager,
	}

	geminiClient, err := gemini.NewClient(ctx, gemini.NewClientParams{
		APIKey:         secrets.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		Timeout:        cfg.GeminiRequestTimeout(),
		MetricsManager: metricsManager,
	})
	switch {
	case errors.Is(err, gemini.ErrNoAPIKey):
		log.Errorln("GEMINI_API_KEY not set, photo analysis and diet plans disabled")
	case err != nil:
		return nil, fmt.Errorf("new gemini client: %w", err)
	}

	geminiHandler := gemini.NewHandler(nil)
	if geminiClient != nil {
		geminiHandler = gemini.NewHandler(geminiClient)
		serviceParams.PhotoAnalyzer = gemini.NewPhotoAnalyzer(geminiClient)
		serviceParams.DietPlanner = gemini.NewDietPlanner(geminiClient)
	}

	profileService := profile.NewService(serviceParams)

	calendarParams := calendar.NewHandlerParams{
		States:         calendar.NewStateStore(rdb, cfg.OAuthStateTTL()),
		Profiles:       profileService,
		PublicBaseURL:  calendar.PublicBaseURL(secrets.GoogleRedirectURI),
		MetricsManager: metricsManager,
	}
	clientConfig, err := calendar.ParseClientConfig(secrets.GoogleClientConfigJSON, secrets.GoogleRedirectURI)
	if err != nil {
		log.Errorf("google calendar disabled: %s", err)
	} else {
		calendarParams.Scheduler = calendar.NewScheduler(calendar.NewSchedulerParams{
			OAuthConfig: clientConfig.OAuth2Config(secrets.GoogleRedirectURI, secrets.GoogleCalendarScopes),
			Tokens:      profileService,
			HTTPClient:  tracedHttpClient,
		})
	}

	return &Server{
		config:           cfg,
		clientSecretHash: secrets.ClientSecretHash,
		dbPool:           dbPool,
		redisClient:      rdb,
		geminiClient:     geminiClient,
		rateLimiter:      redis_rate.NewLimiter(rdb),

		profileHandler:  profile.NewHandler(profileService, cfg.MaxPhotoUploadBytes()),
		calendarHandler: calendar.NewHandler(calendarParams),
		geminiHandler:   geminiHandler,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) rateLimited(routeName string, handlerFunc http.HandlerFunc) http.Handler {
	return middleware.RateLimit(
		s.rateLimiter,
		routeName,
		s.config.GeminiRateLimit(),
		s.metricsManager,
	)(handlerFunc)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("healthstats-router"))

	r.HandleFunc("/profile/{user_id}", s.profileHandler.HandleUpdate).Methods("POST", "OPTIONS").Name("update-profile")
	r.HandleFunc("/profile/{user_id}", s.profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/track-progress/{user_id}", s.profileHandler.HandleTrackProgress).Methods("POST", "OPTIONS").Name("track-progress")
	r.Handle("/analyze-photo/{user_id}", s.rateLimited("analyze-photo", s.profileHandler.HandleAnalyzePhoto)).Methods("POST", "OPTIONS").Name("analyze-photo")
	r.Handle("/generate-diet-plan/{user_id}", s.rateLimited("generate-diet-plan", s.profileHandler.HandleGenerateDietPlan)).Methods("POST", "OPTIONS").Name("generate-diet-plan")

	r.HandleFunc("/profile/{user_id}/schedule-checkup", s.calendarHandler.HandleScheduleCheckup).Methods("POST", "OPTIONS").Name("schedule-checkup")
	r.HandleFunc("/authorize-google-calendar/{user_id}", s.calendarHandler.HandleAuthorize).Methods("GET").Name("authorize-calendar")
	r.HandleFunc("/oauth2callback", s.calendarHandler.HandleOAuthCallback).Methods("GET").Name("oauth-callback")
	r.HandleFunc("/auth_status", s.calendarHandler.HandleAuthStatus).Methods("GET").Name("auth-status")

	r.Handle("/test-gemini", s.rateLimited("test-gemini", s.geminiHandler.HandleTestGemini)).Methods("GET", "OPTIONS").Name("test-gemini")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.clientSecretHash)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// photo analysis and diet plans wait on gemini
		WriteTimeout: s.config.GeminiRequestTimeout() + 30*time.Second,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they depend on
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.geminiClient != nil {
		if err := s.geminiClient.Close(); err != nil {
			log.Errorf("failed to close gemini client: %s", err)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
