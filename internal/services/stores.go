package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/models"
)

type DoctorFinder interface {
	FindDoctor(ctx context.Context, id int64) (*models.Doctor, error)
}

// DoctorInvalidator is implemented by finders that keep copies of doctors and
// must drop them when a doctor document is written.
type DoctorInvalidator interface {
	Invalidate(ctx context.Context, id int64) error
}

// ForgetDoctors drops cached copies of the given doctors when finder keeps
// any. Failures are logged.
func ForgetDoctors(ctx context.Context, finder DoctorFinder, logger zerolog.Logger, ids ...int64) {
	inv, ok := finder.(DoctorInvalidator)
	if !ok {
		return
	}
	for _, id := range ids {
		if err := inv.Invalidate(ctx, id); err != nil {
			logger.Warn().Err(err).Int64("doctor_id", id).Msg("doctor cache invalidation failed")
		}
	}
}

// BookedSlotSource lists the time slots already taken with a doctor between two
// dates, inclusive.
type BookedSlotSource interface {
	BookedSlots(ctx context.Context, doctorID int64, startDate, endDate string) ([]string, error)
}

type AppointmentStore interface {
	FindPatient(ctx context.Context, id int64) (*models.Patient, error)
	PushAppointment(ctx context.Context, patientID int64, a models.Appointment) (models.MutationResult, error)
	UpdateAppointment(ctx context.Context, patientID int64, ref models.AppointmentRef, patch models.AppointmentPatch) (models.MutationResult, error)
}

type PatientStore interface {
	FindPatient(ctx context.Context, id int64) (*models.Patient, error)
	ListPatients(ctx context.Context, search models.PatientSearch) ([]models.Patient, error)
	LargestPatientID(ctx context.Context) (int64, error)
	InsertPatient(ctx context.Context, p *models.Patient) error
	InsertPatients(ctx context.Context, patients []models.Patient) (int, error)
	DeletePatient(ctx context.Context, id int64) (int64, error)
	UpdatePatientDetails(ctx context.Context, id int64, patch models.PatientDetailsPatch) (models.MutationResult, error)
	UpdateEmergencyContact(ctx context.Context, id int64, c models.EmergencyContact) (models.MutationResult, error)
	PushMedicalRecord(ctx context.Context, patientID int64, r models.MedicalRecord) (models.MutationResult, error)
	UpdateMedicalRecord(ctx context.Context, patientID int64, ref models.MedicalRecordRef, patch models.MedicalRecordPatch) (models.MutationResult, error)
}

type StaffStore interface {
	DoctorFinder
	ListDoctors(ctx context.Context, search models.DoctorSearch) ([]models.Doctor, error)
	LargestDoctorID(ctx context.Context) (int64, error)
	InsertDoctor(ctx context.Context, d *models.Doctor) error
	InsertDoctors(ctx context.Context, doctors []models.Doctor) (int, error)
	DoctorAppointments(ctx context.Context, doctorID int64, startDate, endDate string) ([]models.DoctorAppointment, error)
}
