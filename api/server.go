package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/sportsbase/roster/common/apiutil"
	"github.com/sportsbase/roster/internal/records"
)

// Options tune the optional server middleware.
type Options struct {
	// RateLimit is a limiter formatted rate such as "100-M". Empty disables
	// rate limiting.
	RateLimit string
	// RedisClient backs the rate limiter store when set; nil falls back to
	// the in-memory store.
	RedisClient *redis.Client
	// OpenAPIPath is the OpenAPI document served under /docs. Empty defaults
	// to docs/openapi.yaml.
	OpenAPIPath string
}

// Server represents the API server
type Server struct {
	router  *gin.Engine
	logger  *zap.Logger
	records records.RecordService
	opts    Options
}

// NewServer creates a new API server over the record service
func NewServer(logger *zap.Logger, recordsSvc records.RecordService, opts Options) *Server {
	if opts.OpenAPIPath == "" {
		opts.OpenAPIPath = "docs/openapi.yaml"
	}

	server := &Server{
		logger:  logger,
		records: recordsSvc,
		opts:    opts,
	}

	apiutil.RegisterJSONTagNames()

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(otelgin.Middleware("roster-api"))
	router.Use(apiutil.MetricsMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if mw := server.rateLimiter(); mw != nil {
		router.Use(mw)
	}

	server.router = router
	server.registerRoutes()
	return server
}

// rateLimiter builds the per-IP rate limiting middleware, Redis-backed when
// a client is configured.
func (s *Server) rateLimiter() gin.HandlerFunc {
	if s.opts.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(s.opts.RateLimit)
	if err != nil {
		s.logger.Warn("invalid rate limit, rate limiting disabled", zap.String("rate", s.opts.RateLimit), zap.Error(err))
		return nil
	}

	var store limiter.Store
	if s.opts.RedisClient != nil {
		store, err = sredis.NewStore(s.opts.RedisClient)
		if err != nil {
			s.logger.Warn("redis limiter store unavailable, using memory store", zap.Error(err))
			store = memory.NewStore()
		}
	} else {
		store = memory.NewStore()
	}
	return ginlimiter.NewMiddleware(limiter.New(store, rate))
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and metrics
	s.router.GET("/healthz", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Record endpoints
	athletes := s.router.Group("/athletes")
	{
		athletes.POST("/", s.createAthlete)
		athletes.GET("/", s.listAthletes)
		athletes.GET("/:id", s.getAthlete)
	}

	centers := s.router.Group("/training_centers")
	{
		centers.POST("/", s.createTrainingCenter)
		centers.GET("/", s.listTrainingCenters)
	}

	categories := s.router.Group("/categories")
	{
		categories.POST("/", s.createCategory)
		categories.GET("/", s.listCategories)
	}

	// API Documentation (ReDoc + swagger-ui over a static OpenAPI file)
	openAPIPath := s.opts.OpenAPIPath
	s.router.GET("/docs/openapi.yaml", func(c *gin.Context) {
		c.File(openAPIPath)
	})
	s.router.GET("/docs", func(c *gin.Context) {
		html := `<!DOCTYPE html>
		<html>
		<head>
		  <title>API Docs</title>
		  <meta charset="utf-8" />
		  <meta name="viewport" content="width=device-width, initial-scale=1">
		  <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
		</head>
		<body>
		  <redoc spec-url='/docs/openapi.yaml'></redoc>
		</body>
		</html>`
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	})
	s.router.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/openapi.yaml")))
}

// healthCheck reports liveness and storage connectivity
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.records.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}
