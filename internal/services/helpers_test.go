package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/repository"
)

func ptr[T any](v T) *T { return &v }

var morningDoctor = models.Doctor{
	ID:                    3,
	FirstName:             "Gregory",
	SecondName:            "House",
	Specialisation:        "Diagnostics",
	AvailabilityStartTime: "09:00",
	AvailabilityEndTime:   "10:00",
	Role:                  models.RoleDoctor,
}

type fixture struct {
	store        *repository.MemoryStore
	availability *AvailabilityService
	appointments *AppointmentService
	notifier     *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	doctor := morningDoctor
	require.NoError(t, store.InsertDoctor(ctx, &doctor))
	require.NoError(t, store.InsertPatient(ctx, &models.Patient{
		ID:             1,
		FirstName:      "Ada",
		ContactNumber:  "+15550001",
		Appointments:   []models.Appointment{},
		MedicalRecords: []models.MedicalRecord{},
	}))

	notifier := &recordingNotifier{}
	seq := 0
	appts := NewAppointmentService(store, store, &RoomAllocator{intN: func(int) int { return 0 }}, notifier, nil, zerolog.Nop())
	appts.newID = func() string {
		seq++
		return "appt-" + string(rune('0'+seq))
	}
	return &fixture{
		store:        store,
		availability: NewAvailabilityService(store, store, nil, zerolog.Nop()),
		appointments: appts,
		notifier:     notifier,
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []models.Appointment
}

func (n *recordingNotifier) AppointmentStatusChanged(_ context.Context, _ *models.Patient, appt models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, appt)
}

func book(t *testing.T, f *fixture, date, slot string) models.Appointment {
	t.Helper()
	return bookWith(t, f, morningDoctor.ID, date, slot)
}

func bookWith(t *testing.T, f *fixture, doctorID int64, date, slot string) models.Appointment {
	t.Helper()
	appt, res, err := f.appointments.Create(context.Background(), 1, models.AppointmentDraft{
		DoctorID:  doctorID,
		Date:      date,
		TimeSlot:  slot,
		Urgency:   "Low",
		ReasonFor: "Follow-up",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.ModifiedCount)
	return appt
}
