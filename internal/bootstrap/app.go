package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/aadeeee/booking-backend/internal/handler/http"
	rediscache "github.com/aadeeee/booking-backend/internal/infra/cache/redis"
	gormpersistence "github.com/aadeeee/booking-backend/internal/infra/persistence/gorm"
	"github.com/aadeeee/booking-backend/internal/infra/setup"
	"github.com/aadeeee/booking-backend/internal/middleware"
	"github.com/aadeeee/booking-backend/internal/service"
	"github.com/aadeeee/booking-backend/internal/tasks"
	"github.com/aadeeee/booking-backend/internal/worker"
)

// Config holds everything the process reads from the environment.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string

	JWTSecret      string
	JWTExpiryHours int
	AdminSecret    string

	ServerPort      string
	LogLevel        string
	AppEnv          string
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Timezone is the single civil timezone all same-day bookings are
	// interpreted in. The original deployment assumed Asia/Jakarta
	// implicitly; here it is explicit configuration.
	Timezone string
	// SweepSchedule is the asynq scheduler spec for the expiry sweep.
	SweepSchedule string
	// StatusCacheTTL bounds staleness of the cached room listing.
	StatusCacheTTL time.Duration
}

// LoadConfig reads configuration from the environment, with a .env file
// as optional local override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:     os.Getenv("REDIS_KEY_PREFIX"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminSecret:   os.Getenv("ADMIN_SECRET"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		AppEnv:        os.Getenv("APP_ENV"),
		Timezone:      os.Getenv("BOOKING_TIMEZONE"),
		SweepSchedule: os.Getenv("SWEEP_SCHEDULE"),

		JWTExpiryHours:  24,
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		StatusCacheTTL:  30 * time.Second,
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	if cfg.DBHost == "" {
		cfg.DBHost = "127.0.0.1"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "3306"
	}
	if cfg.DBName == "" {
		cfg.DBName = "room_booking"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rb:"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Jakarta"
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "@every 1m"
	}

	if cfg.DBUser == "" {
		return nil, fmt.Errorf("environment variable DB_USER must be set")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App holds every long-lived component of the process.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqServer *worker.WorkerServer
	HTTPServer  *http.Server

	redisClientOpt asynq.RedisClientOpt
	scheduler      *asynq.Scheduler
}

// NewApp builds and wires the whole application.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(logLevel)
	log.Info("Configuration loaded")

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}
	clock := service.NewLocationClock(loc)

	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Repositories.
	userRepo := gormpersistence.NewGormUserRepository(db)
	roomRepo := gormpersistence.NewGormRoomRepository(db)
	bookingRepo := gormpersistence.NewGormBookingRepository(db)

	if err := setup.SeedRooms(context.Background(), roomRepo); err != nil {
		return nil, fmt.Errorf("failed to seed rooms: %w", err)
	}

	statusCache := rediscache.NewRoomStatusCache(redisClient, cfg.KeyPrefix, cfg.StatusCacheTTL)

	// Services.
	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours, cfg.AdminSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	hours := service.NewOperationalHoursPolicy()
	bookingService := service.NewBookingService(bookingRepo, roomRepo, hours, clock, loc, statusCache)
	roomService := service.NewRoomService(roomRepo, bookingRepo, clock, loc, statusCache)
	sweepService := service.NewSweepService(bookingRepo, roomRepo, clock, loc, statusCache)
	log.Info("Services initialized")

	// Handlers.
	authHandler := httpHandler.NewAuthHandler(authService)
	bookingHandler := httpHandler.NewBookingHandler(bookingService)
	roomHandler := httpHandler.NewRoomHandler(roomService)

	workerServer := worker.NewWorkerServer(redisClientOpt, sweepService, log)

	// Router.
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/register-admin", authHandler.RegisterAdmin)
		authRoutes.POST("/login", authHandler.Login)
	}

	api.GET("/rooms", roomHandler.List)

	bookingRoutes := api.Group("/bookings").Use(middleware.Auth(cfg.JWTSecret))
	{
		bookingRoutes.POST("", bookingHandler.Create)
		bookingRoutes.GET("/mine", bookingHandler.Mine)
	}
	adminRoutes := api.Group("/bookings").
		Use(middleware.Auth(cfg.JWTSecret)).
		Use(middleware.RequireAdmin(userRepo))
	{
		adminRoutes.GET("", bookingHandler.All)
		adminRoutes.GET("/pending", bookingHandler.Pending)
		adminRoutes.PUT("/:id/decision", bookingHandler.Decide)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return &App{
		Config:         cfg,
		Log:            log,
		DB:             db,
		RedisClient:    redisClient,
		AsynqServer:    workerServer,
		HTTPServer:     httpServer,
		redisClientOpt: redisClientOpt,
	}, nil
}

// Start launches the worker, the sweep scheduler and the HTTP server.
func (a *App) Start() {
	go a.AsynqServer.Start()
	a.Log.Info("Worker server routine started")

	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("HTTP server listening on %s", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
}

func (a *App) registerPeriodicTasks() {
	scheduler := asynq.NewScheduler(a.redisClientOpt, &asynq.SchedulerOpts{})

	payload, err := tasks.NewExpirySweepPayload()
	if err != nil {
		a.Log.Errorf("Failed to build expiry sweep payload: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TypeBookingExpirySweep, payload)

	entryID, err := scheduler.Register(a.Config.SweepSchedule, task, asynq.Queue("critical"))
	if err != nil {
		a.Log.Errorf("Could not register expiry sweep task: %v", err)
		return
	}
	a.Log.Infof("Expiry sweep registered with schedule '%s' (EntryID: %s)", a.Config.SweepSchedule, entryID)

	a.scheduler = scheduler
	go func() {
		a.Log.Info("Asynq scheduler starting...")
		if err := scheduler.Run(); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
			a.Log.Errorf("Asynq scheduler stopped: %v", err)
		}
	}()
}

// Shutdown stops every component gracefully.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.scheduler != nil {
		a.scheduler.Shutdown()
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully")
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete")
}

// LoggerMiddleware logs each request with structured fields.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errMsg := c.Errors.ByType(gin.ErrorTypePrivate).String(); errMsg != "" {
			entry.Error(errMsg)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}
