// Package server exposes analyses, run history and charts over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/service"
	"SignalSentinel/internal/watchlist"
)

const defaultHistoryLimit = 20

// HTTPServer serves the JSON API and chart pages.
type HTTPServer struct {
	addr    string
	svc     *service.Service
	metrics http.Handler
	router  *gin.Engine
}

type HTTPConfig struct {
	Addr    string
	Svc     *service.Service
	Metrics http.Handler // nil disables /metrics
}

func NewHTTPServer(cfg HTTPConfig) (*HTTPServer, error) {
	if cfg.Svc == nil {
		return nil, errors.New("server: service is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	s := &HTTPServer{
		addr:    cfg.Addr,
		svc:     cfg.Svc,
		metrics: cfg.Metrics,
		router:  router,
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler { return s.router }

func (s *HTTPServer) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics))
	}
	api := s.router.Group("/api/v1")
	api.GET("/analysis/:symbol", s.handleAnalysis)
	api.GET("/analysis/:symbol/history", s.handleHistory)
	api.GET("/chart/:symbol", s.handleChart)
}

// requestID tags every response with an X-Request-ID, reusing the caller's.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) handleAnalysis(c *gin.Context) {
	symbol := watchlist.Normalize(c.Param("symbol"))
	body, cached, err := s.svc.Snapshot(c.Request.Context(), symbol)
	if err != nil {
		log.Printf("[ERROR] analysis %s (request %s): %v", symbol, c.GetString("request_id"), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *HTTPServer) handleHistory(c *gin.Context) {
	symbol := watchlist.Normalize(c.Param("symbol"))
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	runs, err := s.svc.History(symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "runs": runs})
}

func (s *HTTPServer) handleChart(c *gin.Context) {
	symbol := watchlist.Normalize(c.Param("symbol"))
	ps, err := s.svc.Series(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, symbol, ps.Bars); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Printf("[INFO] HTTP server listening on %s", s.addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
