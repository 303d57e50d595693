package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"runway/models"
	"runway/services/runway"
	"runway/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuditReader lists recently journaled decisions.
type AuditReader interface {
	Recent(ctx context.Context, limit int64) ([]models.RunwayEvent, error)
}

// EventSource streams published runway events.
type EventSource interface {
	Subscribe(ctx context.Context) <-chan models.RunwayEvent
}

// RunwayHandler exposes the runway service over HTTP. Audit and Events may be nil.
type RunwayHandler struct {
	Service runway.RunwayService
	Audit   AuditReader
	Events  EventSource
}

func NewRunwayHandler(service runway.RunwayService) *RunwayHandler {
	return &RunwayHandler{Service: service}
}

// writeRunwayError maps store and codec errors onto HTTP responses.
func writeRunwayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidTimeFormat):
		utils.JSONError(c, http.StatusBadRequest, "Invalid time format.", err.Error())
	case errors.Is(err, utils.ErrInvalidTimeValue):
		utils.JSONError(c, http.StatusBadRequest, "Invalid time value.", err.Error())
	case errors.Is(err, runway.ErrConflict):
		utils.JSONConflict(c,
			"Requested time conflicts with existing reservations, does not meet the k-minute criteria, or is in the past.",
			runway.ConflictReason(err), err.Error())
	case errors.Is(err, runway.ErrEmptyStore):
		utils.JSONError(c, http.StatusNotFound, "No reservations made.", "")
	case errors.Is(err, runway.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "No reservation made at this time.", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// RequestReservation handles POST /api/runway/reservations.
func (h *RunwayHandler) RequestReservation(c *gin.Context) {
	var input models.RequestReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	minute, err := utils.ParseTimeOfDay(input.Time)
	if err != nil {
		writeRunwayError(c, err)
		return
	}

	res, err := h.Service.Request(c.Request.Context(), minute)
	if err != nil {
		writeRunwayError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation successfully made.",
		"reservation": res,
	})
}

// Land handles POST /api/runway/land.
func (h *RunwayHandler) Land(c *gin.Context) {
	res, err := h.Service.Land(c.Request.Context())
	if err != nil {
		if errors.Is(err, runway.ErrEmptyStore) {
			utils.JSONError(c, http.StatusNotFound, "No reservations to land.", "")
			return
		}
		writeRunwayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Plane landed successfully at time " + res.Time + ".",
		"reservation": res,
	})
}

func (h *RunwayHandler) GetMax(c *gin.Context) {
	h.respondPeek(c, h.Service.PeekMax)
}

func (h *RunwayHandler) GetMin(c *gin.Context) {
	h.respondPeek(c, h.Service.PeekMin)
}

func (h *RunwayHandler) GetNext(c *gin.Context) {
	h.respondPeek(c, h.Service.NextLanding)
}

func (h *RunwayHandler) respondPeek(c *gin.Context, peek func() (models.Reservation, error)) {
	res, err := peek()
	if err != nil {
		writeRunwayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// ListReservations handles GET /api/runway/reservations.
func (h *RunwayHandler) ListReservations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.List())
}

// SearchReservation handles GET /api/runway/reservations/:time.
func (h *RunwayHandler) SearchReservation(c *gin.Context) {
	minute, err := utils.ParseTimeOfDay(c.Param("time"))
	if err != nil {
		writeRunwayError(c, err)
		return
	}

	reserved := h.Service.Contains(minute)
	msg := "No reservation at this landing time."
	if reserved {
		msg = "Reservation already made for the requested landing time."
	}
	c.JSON(http.StatusOK, gin.H{
		"time":     utils.FormatTimeOfDay(minute),
		"reserved": reserved,
		"message":  msg,
	})
}

// GetRank handles GET /api/runway/reservations/:time/rank.
func (h *RunwayHandler) GetRank(c *gin.Context) {
	minute, err := utils.ParseTimeOfDay(c.Param("time"))
	if err != nil {
		writeRunwayError(c, err)
		return
	}

	n, err := h.Service.RankBefore(minute)
	if err != nil {
		writeRunwayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.RankResponse{Time: utils.FormatTimeOfDay(minute), Rank: n})
}

// GetAudit handles GET /api/runway/audit?limit=N.
func (h *RunwayHandler) GetAudit(c *gin.Context) {
	if h.Audit == nil {
		utils.JSONError(c, http.StatusNotFound, "Audit journal disabled", "")
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid limit", c.Query("limit"))
		return
	}

	evs, err := h.Audit.Recent(c.Request.Context(), limit)
	if err != nil {
		getLogger(c).Error("Failed to read audit journal", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read audit journal", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evs})
}

// StreamEvents handles GET /api/runway/events as server-sent events.
func (h *RunwayHandler) StreamEvents(c *gin.Context) {
	if h.Events == nil {
		utils.JSONError(c, http.StatusNotFound, "Event stream disabled", "")
		return
	}

	ch := h.Events.Subscribe(c.Request.Context())
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-ch
		if !ok {
			return false
		}
		c.SSEvent(ev.Type, ev)
		return true
	})
}
