package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trialsize/internal"
	"trialsize/ports"
	"trialsize/ui/services"
)

//go:embed templates static
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router     *chi.Mux
	calculator ports.CalculatorPort
	templates  *template.Template
	render     *services.RenderService
	logger     *internal.Logger
	port       string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(config Config, calculator ports.CalculatorPort, logger *internal.Logger) (*App, error) {
	if calculator == nil {
		return nil, fmt.Errorf("calculator cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"ratio": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"count": func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	port := config.Port
	if port == "" {
		port = "8080"
	}

	app := &App{
		router:     chi.NewRouter(),
		calculator: calculator,
		templates:  templates,
		render:     services.NewRenderService(templates),
		logger:     logger,
		port:       port,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	// HTMX fragment endpoints
	a.router.Get("/fragments/results", a.handleFragmentResults)

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		a.logger.Error("[UI] static filesystem unavailable: %v", err)
		return
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

// Handler exposes the router, mainly for tests and composition
func (a *App) Handler() http.Handler {
	return a.router
}

// Server builds the HTTP server for this app
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:              ":" + a.port,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Start starts the HTTP server
func (a *App) Start() error {
	a.logger.Info("Starting trialsize UI server on :%s", a.port)
	return a.Server().ListenAndServe()
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
