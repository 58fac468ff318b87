package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sleepr/sleepr/backend/go-services/internal/database"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation/service"
	"github.com/sleepr/sleepr/backend/go-services/pkg/logger"
	"github.com/sleepr/sleepr/backend/go-services/pkg/middleware"
)

var log = logger.Named("ReservationsHandler")

// RegisterReservationRoutes registers the reservation CRUD endpoints under /reservations.
// Handlers in mw (typically middleware.AuthMiddleware) run before every route.
func RegisterReservationRoutes(r gin.IRouter, svc service.Service, mw ...gin.HandlerFunc) {
	g := r.Group("/reservations", mw...)

	g.POST("", func(c *gin.Context) {
		var req reservation.CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err := svc.Create(c.Request.Context(), req, middleware.Subject(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	})

	// authenticated callers only see their own reservations; userId filters anonymous deployments
	g.GET("", func(c *gin.Context) {
		userID := c.Query("userId")
		if sub := middleware.Subject(c); sub != "" {
			userID = sub
		}
		list, err := svc.FindAll(c.Request.Context(), userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.GET("/:id", func(c *gin.Context) {
		res, err := svc.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})

	g.PATCH("/:id", func(c *gin.Context) {
		var req reservation.UpdateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		res, err := svc.Remove(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		// nothing matched: deleting is idempotent
		if res == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrNoChanges):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
