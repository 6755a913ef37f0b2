package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

// CreateAppointment books a Pending appointment for the patient. The slot
// must be on the doctor's grid; double booking is not checked here.
func (h *Handler) CreateAppointment(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var draft models.AppointmentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appt, res, err := h.Appointments.Create(c.Request.Context(), id, draft)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

type updateAppointmentRequest struct {
	models.AppointmentRef
	Changes models.AppointmentPatch `json:"changes"`
}

// UpdateAppointment applies a partial update to one appointment. The body
// names the target (appointment_id, or original_date as it was before any
// edit) and the changed fields under "changes".
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Appointments.Update(c.Request.Context(), id, req.AppointmentRef, req.Changes)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondMutation(c, res, "Appointment")
}

type transitionFunc func(ctx context.Context, patientID int64, ref models.AppointmentRef) (models.MutationResult, error)

// transition builds the handler for a status-only change such as confirm.
func (h *Handler) transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "patient")
		if !ok {
			return
		}
		var ref models.AppointmentRef
		if err := c.ShouldBindJSON(&ref); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		res, err := fn(c.Request.Context(), id, ref)
		if err != nil {
			h.fail(c, err)
			return
		}
		respondMutation(c, res, "Appointment")
	}
}

func (h *Handler) ConfirmAppointment() gin.HandlerFunc  { return h.transition(h.Appointments.Confirm) }
func (h *Handler) CancelAppointment() gin.HandlerFunc   { return h.transition(h.Appointments.Cancel) }
func (h *Handler) CompleteAppointment() gin.HandlerFunc { return h.transition(h.Appointments.Complete) }

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var req struct {
		models.AppointmentRef
		NewDate     string `json:"new_date" binding:"required"`
		NewTimeSlot string `json:"new_time_slot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Appointments.Reschedule(c.Request.Context(), id, req.AppointmentRef, req.NewDate, req.NewTimeSlot)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondMutation(c, res, "Appointment")
}

// ListReasons returns the reasons a booking may give.
func (h *Handler) ListReasons(c *gin.Context) {
	c.JSON(http.StatusOK, services.Reasons())
}
