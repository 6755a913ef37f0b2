package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

type slotsBody struct {
	DoctorID  int64    `json:"doctor_id"`
	Slots     []string `json:"slots"`
	Available bool     `json:"available"`
}

func TestDoctorEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/doctors", map[string]any{
		"first_name":              "Lisa",
		"second_name":             "Cuddy",
		"specialisation":          "Endocrinology",
		"availability_start_time": "08:00",
		"availability_end_time":   "16:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(4), decode[models.Doctor](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/api/doctors?specialisation=ENDO", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doctors := decode[[]models.Doctor](t, rec)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Cuddy", doctors[0].SecondName)

	rec = s.do(t, http.MethodGet, "/api/doctors?start=08:30&end=12:00", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Doctor](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/doctors/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "House", decode[models.Doctor](t, rec).SecondName)

	rec = s.do(t, http.MethodPost, "/api/doctors", map[string]any{
		"availability_start_time": "16:00",
		"availability_end_time":   "08:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenSlotsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/doctors/3/slots?date=2025/05/02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[slotsBody](t, rec)
	assert.Equal(t, []string{"09:00 - 09:30", "09:30 - 10:00"}, body.Slots)
	assert.True(t, body.Available)

	for _, slot := range body.Slots {
		rec = s.do(t, http.MethodPost, "/api/patients/1/appointments", models.AppointmentDraft{
			DoctorID: 3, Date: "2025-05-02", TimeSlot: slot, Urgency: "Medium", ReasonFor: "Blood Test",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/doctors/3/slots?date=2025-05-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[slotsBody](t, rec)
	assert.Equal(t, []string{services.NoAvailableSlots}, body.Slots)
	assert.False(t, body.Available)
}

func TestOpenSlotsEndpointErrors(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/doctors/3/slots", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/doctors/3/slots?date=tomorrow", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/doctors/42/slots?date=2025-05-02", nil).Code)
}

func TestDoctorAppointmentsEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/patients/1/appointments", models.AppointmentDraft{
		DoctorID: 3, Date: "2025-05-02", TimeSlot: "09:00 - 09:30", Urgency: "Low", ReasonFor: "Follow-up",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/doctors/3/appointments?start_date=2025-05-01&end_date=2025-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	appts := decode[[]models.DoctorAppointment](t, rec)
	require.Len(t, appts, 1)
	assert.Equal(t, "Lovelace", appts[0].LastName)
	assert.Equal(t, "09:00 - 09:30", appts[0].Appointment.TimeSlot)

	rec = s.do(t, http.MethodGet, "/api/doctors/3/appointments?start_date=2025-05-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.DoctorAppointment](t, rec))

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/doctors/3/appointments", nil).Code)
}
