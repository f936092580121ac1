package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"weather-cards/models"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// glyphs renders icon keys on the page
var glyphs = map[models.IconKey]string{
	models.IconClear:    "☀",
	models.IconCloud:    "☁",
	models.IconDrizzle:  "🌦",
	models.IconRain:     "🌧",
	models.IconSnow:     "❄",
	models.IconWind:     "🌬",
	models.IconHumidity: "💧",
}

// Server represents the HTTP server
type Server struct {
	presenter *Presenter
	engine    *gin.Engine
	server    *http.Server
	logger    *slog.Logger
}

// NewServer creates a new server rendering the presenter's state
func NewServer(presenter *Presenter, port int, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"celsius": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		"glyph":   func(key models.IconKey) string { return glyphs[key] },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		presenter: presenter,
		engine:    gin.New(),
		logger:    logger.With("component", "server"),
	}
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), s.requestLogger())

	// Page
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/search", s.handleSearch)

	// JSON
	s.engine.GET("/api/weather", s.handleWeather)
	s.engine.GET("/api/health", s.handleHealthCheck)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// pageData is what the index template renders
type pageData struct {
	ViewState
	IsDay bool
}

func (s *Server) render(c *gin.Context, status int) {
	state := s.presenter.Flash()
	// Night theme only when the current sample says so
	isDay := state.Current == nil || state.Current.IsDay
	c.HTML(status, "index.html", pageData{ViewState: state, IsDay: isDay})
}

// handleIndex renders the page from the current state
func (s *Server) handleIndex(c *gin.Context) {
	s.render(c, http.StatusOK)
}

// handleSearch runs a search for ?city= and renders the result
func (s *Server) handleSearch(c *gin.Context) {
	s.presenter.Search(c.Request.Context(), c.Query("city"))
	s.render(c, http.StatusOK)
}

// handleWeather returns the state as JSON, searching first when ?city= is given
func (s *Server) handleWeather(c *gin.Context) {
	city, ok := c.GetQuery("city")
	if !ok {
		c.JSON(http.StatusOK, s.presenter.Flash())
		return
	}

	outcome := s.presenter.Search(c.Request.Context(), city)
	state := s.presenter.Flash()

	switch outcome {
	case OutcomeRejected:
		c.JSON(http.StatusBadRequest, gin.H{"error": EmptyCityPrompt})
	case OutcomeProviderError:
		c.JSON(http.StatusBadGateway, gin.H{"error": state.Message, "state": state})
	default:
		c.JSON(http.StatusOK, state)
	}
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
