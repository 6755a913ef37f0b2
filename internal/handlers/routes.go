package handlers

import "github.com/gin-gonic/gin"

// Register mounts every endpoint on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/appointments/reasons", h.ListReasons)

		patients := api.Group("/patients")
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PATCH("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
		patients.PUT("/:id/emergency-contact", h.UpdateEmergencyContact)

		patients.POST("/:id/records", h.AddMedicalRecord)
		patients.PATCH("/:id/records", h.UpdateMedicalRecord)

		patients.POST("/:id/appointments", h.CreateAppointment)
		patients.PATCH("/:id/appointments", h.UpdateAppointment)
		patients.POST("/:id/appointments/confirm", h.ConfirmAppointment())
		patients.POST("/:id/appointments/cancel", h.CancelAppointment())
		patients.POST("/:id/appointments/complete", h.CompleteAppointment())
		patients.POST("/:id/appointments/reschedule", h.RescheduleAppointment)

		doctors := api.Group("/doctors")
		doctors.GET("", h.ListDoctors)
		doctors.POST("", h.CreateDoctor)
		doctors.GET("/:id", h.GetDoctor)
		doctors.GET("/:id/slots", h.GetOpenSlots)
		doctors.GET("/:id/appointments", h.GetDoctorAppointments)
	}
}
