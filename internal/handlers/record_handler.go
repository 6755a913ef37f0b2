package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/models"
)

func (h *Handler) AddMedicalRecord(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var req models.MedicalRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	rec, res, err := h.Records.AddMedicalRecord(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

type updateRecordRequest struct {
	models.MedicalRecordRef
	Changes models.MedicalRecordPatch `json:"changes"`
}

// UpdateMedicalRecord patches one record, targeted by record_id or by
// record_date plus the diagnosis it currently has.
func (h *Handler) UpdateMedicalRecord(c *gin.Context) {
	id, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Records.UpdateMedicalRecord(c.Request.Context(), id, req.MedicalRecordRef, req.Changes)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondMutation(c, res, "Medical record")
}
