// Package server exposes free times over a read-only JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

// Handler contains dependencies for the route handlers.
type Handler struct {
	Service *availability.Service
	Logger  *zap.Logger
	now     func() time.Time
}

// NewHandler creates a Handler. A nil logger discards output.
func NewHandler(svc *availability.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Service: svc, Logger: logger, now: time.Now}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(h.LoggerMiddleware(), gin.Recovery())

	r.GET("/healthz", h.Health)

	api := r.Group("/api/professionals/:id")
	{
		api.GET("/free", h.Free)
		api.GET("/week", h.Week)
		api.GET("/week/export", h.WeekExport)
	}
	return r
}

// LoggerMiddleware logs every request through zap.
func (h *Handler) LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			h.Logger.Error("request failed", fields...)
			return
		}
		h.Logger.Info("request", fields...)
	}
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Free returns one day's free times.
func (h *Handler) Free(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	v, err := h.Service.Day(c.Request.Context(), q.professional, q.date, q.duration)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Week returns the Monday to Saturday week containing the date.
func (h *Handler) Week(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	w, err := h.Service.Week(c.Request.Context(), q.professional, q.date, q.duration)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// WeekExport returns the shareable week message as plain text.
func (h *Handler) WeekExport(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	w, err := h.Service.Week(c.Request.Context(), q.professional, q.date, q.duration)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.String(http.StatusOK, availability.ExportText(w))
}

type query struct {
	professional uuid.UUID
	date         time.Time
	duration     string
}

func (h *Handler) parseQuery(c *gin.Context) (query, bool) {
	id, err := agenda.ParseProfessionalID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return query{}, false
	}

	date, err := dateutil.ResolveDate(c.Query("date"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return query{}, false
	}

	return query{professional: id, date: date, duration: c.Query("duration")}, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, agenda.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, agenda.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, h *Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.Logger.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	h.Logger.Info("server stopped")
	return nil
}
