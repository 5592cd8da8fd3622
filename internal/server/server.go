// Package server exposes the aggregation use cases over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mferrerdev/gitfolio/internal/calendar"
	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/export"
	"github.com/mferrerdev/gitfolio/internal/reference"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handler bundles the use cases behind the HTTP routes.
type Handler struct {
	aggregator *usecase.Aggregator
	seeds      []domain.SeedProfile
	logger     *log.Logger
}

// NewHandler creates a handler. seeds may be nil when no seed file is
// configured.
func NewHandler(aggregator *usecase.Aggregator, seeds []domain.SeedProfile, logger *log.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		seeds:      seeds,
		logger:     logger,
	}
}

// NewRouter wires middleware and routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/profiles", h.GetProfile)
		v1.GET("/profiles/cv", h.GetProfileCV)
		v1.GET("/orgs/:org", h.GetOrganization)
		v1.GET("/users/:login/calendar", h.GetCalendar)
		v1.GET("/landing/:index", h.GetLanding)
	}
	return router
}

// requestID tags each request with an id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrIndexOutOfRange), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// resolveProfile classifies the submitted URL and runs the profile
// aggregation. The URL is a per-request value owned by the caller.
func (h *Handler) resolveProfile(c *gin.Context) (*domain.AggregatedProfile, error) {
	rawURL := c.Query("url")
	classification := reference.Classify(rawURL)
	if classification.Kind != reference.KindRepo {
		return nil, domain.ErrInvalidReference
	}
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil || index < 0 {
		return nil, domain.ErrIndexOutOfRange
	}
	return h.aggregator.AggregateProfile(c.Request.Context(), classification.Repo, index)
}

// GetProfile handles GET /api/v1/profiles?url=...&index=n
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.resolveProfile(c)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: "aggregation_failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfileCV handles GET /api/v1/profiles/cv?url=...&index=n and returns a
// standalone HTML document.
func (h *Handler) GetProfileCV(c *gin.Context) {
	profile, err := h.resolveProfile(c)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: "aggregation_failed", Message: err.Error()})
		return
	}
	doc, err := export.BuildCV(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "export_failed", Message: err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// GetOrganization handles GET /api/v1/orgs/:org
func (h *Handler) GetOrganization(c *gin.Context) {
	ref := reference.OrgReference{Org: c.Param("org")}
	digest, err := h.aggregator.AggregateOrganization(c.Request.Context(), ref)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: "aggregation_failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, digest)
}

// GetCalendar handles GET /api/v1/users/:login/calendar. With ?synthetic=true
// the grid is laid out from deterministic placeholder samples instead of the
// live API.
func (h *Handler) GetCalendar(c *gin.Context) {
	login := c.Param("login")
	today := time.Now().UTC()

	if c.Query("synthetic") == "true" {
		grid := calendar.Build(calendar.Synthetic(login, today), today)
		c.JSON(http.StatusOK, grid)
		return
	}

	grid, err := h.aggregator.BuildUserCalendar(c.Request.Context(), login, today)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: "calendar_failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, grid)
}

// GetLanding handles GET /api/v1/landing/:index, serving the locally seeded
// profile rows.
func (h *Handler) GetLanding(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(h.seeds) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "no seed profile at that index"})
		return
	}
	c.JSON(http.StatusOK, h.seeds[index])
}
