package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

// ListDoctors filters by specialisation (case-insensitive substring) and by an
// availability window the doctor must cover (?start=09:00&end=12:00).
func (h *Handler) ListDoctors(c *gin.Context) {
	search := models.DoctorSearch{
		Specialisation: c.Query("specialisation"),
		Start:          c.Query("start"),
		End:            c.Query("end"),
	}
	doctors, err := h.Doctors.List(c.Request.Context(), search)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req models.Doctor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	d, err := h.Doctors.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := idParam(c, "doctor")
	if !ok {
		return
	}
	d, err := h.Doctors.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetOpenSlots returns the doctor's free slots on ?date=. A fully booked day
// yields the single "No available slots" entry.
func (h *Handler) GetOpenSlots(c *gin.Context) {
	id, ok := idParam(c, "doctor")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	slots, err := h.Availability.OpenSlots(c.Request.Context(), id, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"doctor_id": id,
		"date":      date,
		"slots":     slots,
		"available": services.HasOpenSlots(slots),
	})
}

// GetDoctorAppointments lists the doctor's appointments from start_date to
// end_date inclusive. Without end_date only start_date is returned.
func (h *Handler) GetDoctorAppointments(c *gin.Context) {
	id, ok := idParam(c, "doctor")
	if !ok {
		return
	}
	start := c.Query("start_date")
	if start == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is required"})
		return
	}
	appts, err := h.Doctors.Appointments(c.Request.Context(), id, start, c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}
