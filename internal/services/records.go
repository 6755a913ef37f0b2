package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// RecordService manages patient documents: personal info, emergency contact
// and medical records.
type RecordService struct {
	store  PatientStore
	logger zerolog.Logger
	newID  func() string
}

func NewRecordService(store PatientStore, logger zerolog.Logger) *RecordService {
	return &RecordService{store: store, logger: logger, newID: uuid.NewString}
}

func (s *RecordService) Get(ctx context.Context, id int64) (*models.Patient, error) {
	return s.store.FindPatient(ctx, id)
}

func (s *RecordService) List(ctx context.Context, search models.PatientSearch) ([]models.Patient, error) {
	return s.store.ListPatients(ctx, search)
}

// Create stores p under the next free id. Appointment and record lists start
// empty so later pushes have an array to append to.
func (s *RecordService) Create(ctx context.Context, p models.Patient) (*models.Patient, error) {
	if p.DateOfBirth != "" {
		dob, err := utils.NormalizeDate(p.DateOfBirth)
		if err != nil {
			return nil, err
		}
		p.DateOfBirth = dob
	}
	largest, err := s.store.LargestPatientID(ctx)
	if err != nil {
		return nil, err
	}
	p.ID = largest + 1
	p.Appointments = []models.Appointment{}
	p.MedicalRecords = []models.MedicalRecord{}
	if err := s.store.InsertPatient(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("patient_id", p.ID).Msg("patient created")
	return &p, nil
}

// Delete removes the patient document and reports whether one existed.
func (s *RecordService) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := s.store.DeletePatient(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RecordService) UpdateDetails(ctx context.Context, id int64, patch models.PatientDetailsPatch) (models.MutationResult, error) {
	if patch.IsEmpty() {
		return models.MutationResult{}, ErrEmptyPatch
	}
	if patch.DateOfBirth != nil {
		dob, err := utils.NormalizeDate(*patch.DateOfBirth)
		if err != nil {
			return models.MutationResult{}, err
		}
		patch.DateOfBirth = &dob
	}
	return s.store.UpdatePatientDetails(ctx, id, patch)
}

func (s *RecordService) UpdateEmergencyContact(ctx context.Context, id int64, c models.EmergencyContact) (models.MutationResult, error) {
	return s.store.UpdateEmergencyContact(ctx, id, c)
}

// AddMedicalRecord appends r to the patient's records with a fresh record id.
func (s *RecordService) AddMedicalRecord(ctx context.Context, patientID int64, r models.MedicalRecord) (models.MedicalRecord, models.MutationResult, error) {
	date, err := utils.NormalizeDate(r.RecordDate)
	if err != nil {
		return models.MedicalRecord{}, models.MutationResult{}, err
	}
	r.RecordDate = date
	r.ID = s.newID()
	if r.Prescriptions == nil {
		r.Prescriptions = []models.Prescription{}
	}
	res, err := s.store.PushMedicalRecord(ctx, patientID, r)
	if err != nil {
		return models.MedicalRecord{}, models.MutationResult{}, err
	}
	return r, res, nil
}

func (s *RecordService) UpdateMedicalRecord(ctx context.Context, patientID int64, ref models.MedicalRecordRef, patch models.MedicalRecordPatch) (models.MutationResult, error) {
	if patch.IsEmpty() {
		return models.MutationResult{}, ErrEmptyPatch
	}
	if ref.ID == "" {
		if ref.RecordDate == "" {
			return models.MutationResult{}, ErrMissingRecordTarget
		}
		date, err := utils.NormalizeDate(ref.RecordDate)
		if err != nil {
			return models.MutationResult{}, err
		}
		ref.RecordDate = date
	}
	return s.store.UpdateMedicalRecord(ctx, patientID, ref, patch)
}
