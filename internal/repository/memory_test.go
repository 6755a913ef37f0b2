package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/clinic-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.InsertPatient(ctx, &models.Patient{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Appointments: []models.Appointment{
			{ID: "a1", Date: "2025-05-02", TimeSlot: "09:00 - 09:30", DoctorID: 3, Status: models.StatusPending},
			{ID: "a2", Date: "2025-05-02", TimeSlot: "10:00 - 10:30", DoctorID: 3, Status: models.StatusPending},
			{ID: "a3", Date: "2025-05-03", TimeSlot: "09:00 - 09:30", DoctorID: 4, Status: models.StatusPending},
		},
		MedicalRecords: []models.MedicalRecord{},
	}))
	require.NoError(t, s.InsertPatient(ctx, &models.Patient{ID: 2, FirstName: "Alan", LastName: "Turing"}))
	return s
}

func TestMemoryUpdateAppointmentByDateHitsFirstMatchOnly(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	res, err := s.UpdateAppointment(ctx, 1, models.AppointmentRef{OriginalDate: "2025-05-02"},
		models.AppointmentPatch{Status: ptr(models.StatusConfirmed)})
	require.NoError(t, err)
	assert.Equal(t, models.MutationResult{MatchedCount: 1, ModifiedCount: 1}, res)

	p, err := s.FindPatient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, p.Appointments[0].Status)
	assert.Equal(t, models.StatusPending, p.Appointments[1].Status)
}

func TestMemoryUpdateAppointmentByID(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	res, err := s.UpdateAppointment(ctx, 1, models.AppointmentRef{ID: "a2", OriginalDate: "2025-05-02"},
		models.AppointmentPatch{Status: ptr(models.StatusCancelled)})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	p, _ := s.FindPatient(ctx, 1)
	assert.Equal(t, models.StatusPending, p.Appointments[0].Status)
	assert.Equal(t, models.StatusCancelled, p.Appointments[1].Status)
}

func TestMemoryUpdateAppointmentNoop(t *testing.T) {
	s := seededStore(t)

	res, err := s.UpdateAppointment(context.Background(), 1, models.AppointmentRef{ID: "a1"},
		models.AppointmentPatch{Status: ptr(models.StatusPending), TimeSlot: ptr("09:00 - 09:30")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.ModifiedCount)
}

func TestMemoryUpdateAppointmentUnknownPatient(t *testing.T) {
	s := seededStore(t)

	res, err := s.UpdateAppointment(context.Background(), 99, models.AppointmentRef{ID: "a1"},
		models.AppointmentPatch{Status: ptr(models.StatusConfirmed)})
	require.NoError(t, err)
	assert.Equal(t, models.MutationResult{}, res)
}

func TestMemoryBookedSlotsFiltersDoctorAndDate(t *testing.T) {
	s := seededStore(t)

	slots, err := s.BookedSlots(context.Background(), 3, "2025-05-02", "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 - 09:30", "10:00 - 10:30"}, slots)

	slots, err = s.BookedSlots(context.Background(), 3, "2025-05-03", "2025-05-03")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestMemoryReadsAreCopies(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	p, _ := s.FindPatient(ctx, 1)
	p.Appointments[0].Status = models.StatusCompleted

	again, _ := s.FindPatient(ctx, 1)
	assert.Equal(t, models.StatusPending, again.Appointments[0].Status)
}

func TestMemoryListPatientsOrSearch(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	all, err := s.ListPatients(ctx, models.PatientSearch{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := s.ListPatients(ctx, models.PatientSearch{FirstName: "Alan", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = s.ListPatients(ctx, models.PatientSearch{LastName: "Hopper"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMemoryListDoctors(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, err := s.InsertDoctors(ctx, []models.Doctor{
		{ID: 1, Specialisation: "Cardiology", AvailabilityStartTime: "08:00", AvailabilityEndTime: "16:00", Role: models.RoleDoctor},
		{ID: 2, Specialisation: "Dermatology", AvailabilityStartTime: "10:00", AvailabilityEndTime: "18:00", Role: models.RoleDoctor},
		{ID: 3, Specialisation: "Cardiology", Role: "Nurse"},
	})
	require.NoError(t, err)

	got, err := s.ListDoctors(ctx, models.DoctorSearch{Specialisation: "cardio"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got, err = s.ListDoctors(ctx, models.DoctorSearch{Start: "09:00", End: "17:00"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListDoctors(ctx, models.DoctorSearch{Start: "10:00", End: "16:00"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	largest, err := s.LargestDoctorID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), largest)
}

func TestMemoryUpdateMedicalRecord(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	_, err := s.PushMedicalRecord(ctx, 1, models.MedicalRecord{RecordDate: "2024-01-09", Diagnosis: "flu"})
	require.NoError(t, err)

	res, err := s.UpdateMedicalRecord(ctx, 1, models.MedicalRecordRef{RecordDate: "2024-01-09", Diagnosis: "flu"},
		models.MedicalRecordPatch{Treatment: ptr("rest")})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	res, err = s.UpdateMedicalRecord(ctx, 1, models.MedicalRecordRef{RecordDate: "2024-01-09", Diagnosis: "cold"},
		models.MedicalRecordPatch{Treatment: ptr("rest")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)
}

func TestMemoryDeletePatient(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	n, err := s.DeletePatient(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.FindPatient(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
