package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yt-feed/internal/config"
	"github.com/yt-feed/internal/feed"
	"github.com/yt-feed/internal/models"
	"github.com/yt-feed/internal/render"
)

// Server represents the API server
type Server struct {
	router  *gin.Engine
	view    *feed.View
	fetcher feed.Fetcher
	logger  *slog.Logger
}

// NewServer creates a new API server around the shared view. fetcher serves
// page requests for categories other than the shared view's.
func NewServer(cfg *config.Config, view *feed.View, fetcher feed.Fetcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.SetHTMLTemplate(render.Templates())

	server := &Server{
		router:  router,
		view:    view,
		fetcher: fetcher,
		logger:  logger,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Rendered feed
	s.router.GET("/", s.getFeedPage)
	s.router.GET("/feed", s.getFeedPage)

	// Feed state
	s.router.GET("/api/feed", s.getFeedState)
	s.router.POST("/api/feed/category", s.selectCategory)
	s.router.GET("/api/feed/events", s.streamFeedEvents)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// getFeedPage renders the card grid. The first page load starts the shared
// view's cycle; a page for any other category is fetched into a view private
// to the request so concurrent readers never overwrite each other's feed.
// Changing the shared category goes through POST /api/feed/category.
func (s *Server) getFeedPage(c *gin.Context) {
	category := models.ResolveCategory(c.Query("category"))
	collapsed, _ := strconv.ParseBool(c.Query("collapsed"))

	view := s.view
	seq, current, _ := view.Snapshot()
	if seq != 0 && category != current {
		view = feed.NewView(s.fetcher, feed.WithLogger(s.logger))
	}

	if seq == 0 || view != s.view {
		if _, err := view.Load(c.Request.Context(), category); err != nil {
			s.logger.Warn("feed page rendered before fetch settled",
				slog.String("category", category),
				slog.Any("error", err),
			)
		}
	}

	_, current, state := view.Snapshot()
	c.HTML(http.StatusOK, render.FeedTemplate, render.Page{
		State:            state,
		Category:         current,
		SidebarCollapsed: collapsed,
		Now:              time.Now(),
	})
}

type feedSnapshot struct {
	Seq      uint64           `json:"seq"`
	Category string           `json:"category"`
	State    models.FeedState `json:"state"`
}

// getFeedState handles requests for the current feed state
func (s *Server) getFeedState(c *gin.Context) {
	seq, category, state := s.view.Snapshot()
	c.JSON(http.StatusOK, feedSnapshot{Seq: seq, Category: category, State: state})
}

type selectCategoryRequest struct {
	Category string `json:"category"`
}

// selectCategory starts a fetch cycle without waiting for it
func (s *Server) selectCategory(c *gin.Context) {
	var req selectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	cycle := s.view.Select(c.Request.Context(), req.Category)
	c.JSON(http.StatusAccepted, gin.H{
		"seq":      cycle.Seq,
		"category": cycle.Category,
	})
}

// streamFeedEvents streams the current state and every later transition as
// server-sent events
func (s *Server) streamFeedEvents(c *gin.Context) {
	updates, unsubscribe := s.view.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	_, _, state := s.view.Snapshot()
	c.SSEvent("state", state)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case state, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("state", state)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// requestLogger logs every request through slog.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
