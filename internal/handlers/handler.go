package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/repository"
	"github.com/harentsoaR/clinic-api/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler groups the HTTP endpoints. Each file in this package adds methods
// for one resource.
type Handler struct {
	Records      *services.RecordService
	Doctors      *services.DoctorService
	Availability *services.AvailabilityService
	Appointments *services.AppointmentService
	Store        Pinger
	Logger       zerolog.Logger
}

func NewHandler(
	records *services.RecordService,
	doctors *services.DoctorService,
	availability *services.AvailabilityService,
	appointments *services.AppointmentService,
	store Pinger,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		Records:      records,
		Doctors:      doctors,
		Availability: availability,
		Appointments: appointments,
		Store:        store,
		Logger:       logger,
	}
}

var badRequestErrors = []error{
	services.ErrInvalidDate,
	services.ErrInvalidTime,
	services.ErrInvalidSlot,
	services.ErrSlotOffGrid,
	services.ErrUnknownReason,
	services.ErrInvalidUrgency,
	services.ErrEmptyPatch,
	services.ErrMissingTarget,
	services.ErrInvalidWindow,
	services.ErrMissingRecordTarget,
}

// fail writes the error response for err. Unexpected errors are logged and
// reported as 500 without detail.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case repository.IsUnavailable(err):
		h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg("store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// respondMutation reports an update result. Nothing matched is a 404; a match
// that changed nothing is still a 200.
func respondMutation(c *gin.Context, res models.MutationResult, what string) {
	switch {
	case res.MatchedCount == 0:
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found", "result": res})
	case !res.Changed():
		c.JSON(http.StatusOK, gin.H{"message": "no changes made", "result": res})
	default:
		c.JSON(http.StatusOK, gin.H{"message": what + " updated successfully", "result": res})
	}
}

func idParam(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID"})
		return 0, false
	}
	return id, true
}
