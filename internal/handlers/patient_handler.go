package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/models"
)

// ListPatients returns every patient, or those matching any of the query
// fields first_name, last_name, contact_number, email.
func (h *Handler) ListPatients(c *gin.Context) {
	var search models.PatientSearch
	if err := c.ShouldBindQuery(&search); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}
	patients, err := h.Records.List(c.Request.Context(), search)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req models.Patient
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	p, err := h.Records.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	p, err := h.Records.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePatient applies a partial personal-info update. Only fields present in
// the body are written.
func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var patch models.PatientDetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Records.UpdateDetails(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondMutation(c, res, "Patient")
}

func (h *Handler) UpdateEmergencyContact(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var contact models.EmergencyContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Records.UpdateEmergencyContact(c.Request.Context(), id, contact)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondMutation(c, res, "Emergency contact")
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	deleted, err := h.Records.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}
