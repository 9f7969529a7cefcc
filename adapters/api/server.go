package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trialsize/internal"
	"trialsize/ports"
)

// Config holds JSON API settings
type Config struct {
	Port    string
	GinMode string // debug, release or test; empty leaves gin's mode alone
}

// Server is the JSON API surface over the calculator
type Server struct {
	router  *gin.Engine
	handler *CalculationHandler
	logger  *internal.Logger
	port    string
}

// NewServer creates the API server and registers its routes
func NewServer(config Config, calculator ports.CalculatorPort, logger *internal.Logger) (*Server, error) {
	if calculator == nil {
		return nil, fmt.Errorf("calculator cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	port := config.Port
	if port == "" {
		port = "8081"
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		router:  router,
		handler: NewCalculationHandler(calculator, logger),
		logger:  logger,
		port:    port,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/fields", s.handler.GetFields)
		v1.GET("/defaults", s.handler.GetDefaults)
		v1.GET("/references", s.handler.GetReferences)
		v1.POST("/calculations", s.handler.CreateCalculation)
		v1.POST("/scenarios", s.handler.CreateScenarios)
	}
}

// WithScenarioSource serves GET /api/v1/scenarios from a workbook; name is
// reported as the manifest source
func (s *Server) WithScenarioSource(name string, reader ports.ScenarioReaderPort) *Server {
	if reader == nil {
		return s
	}
	s.handler.scenarios = reader
	s.handler.scenarioName = name
	s.router.GET("/api/v1/scenarios", s.handler.ListWorkbookScenarios)
	return s
}

// Handler exposes the router, mainly for tests and composition
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer builds the HTTP server for this API
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting trialsize API server on :%s", s.port)
	return s.HTTPServer().ListenAndServe()
}
