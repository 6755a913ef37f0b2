package repository

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/harentsoaR/clinic-api/internal/models"
)

// MemoryStore keeps documents in process. Updates follow the document store's
// rules: one document per call, the first matching array element only, and
// ModifiedCount is zero when nothing changed.
type MemoryStore struct {
	mu       sync.RWMutex
	patients map[int64]*models.Patient
	doctors  map[int64]*models.Doctor
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		patients: make(map[int64]*models.Patient),
		doctors:  make(map[int64]*models.Doctor),
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func clonePatient(p *models.Patient) *models.Patient {
	c := *p
	c.Appointments = slices.Clone(p.Appointments)
	c.MedicalRecords = make([]models.MedicalRecord, len(p.MedicalRecords))
	for i, r := range p.MedicalRecords {
		r.Prescriptions = slices.Clone(r.Prescriptions)
		c.MedicalRecords[i] = r
	}
	return &c
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// --- Patients ---

func (s *MemoryStore) FindPatient(_ context.Context, id int64) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePatient(p), nil
}

func (s *MemoryStore) ListPatients(_ context.Context, search models.PatientSearch) ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Patient, 0, len(s.patients))
	for _, id := range sortedKeys(s.patients) {
		p := s.patients[id]
		if search.IsEmpty() || search.Matches(p) {
			out = append(out, *clonePatient(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) LargestPatientID(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := sortedKeys(s.patients)
	if len(keys) == 0 {
		return 0, nil
	}
	return keys[len(keys)-1], nil
}

func (s *MemoryStore) InsertPatient(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.patients[p.ID]; exists {
		return fmt.Errorf("insert patient: duplicate _id %d", p.ID)
	}
	s.patients[p.ID] = clonePatient(p)
	return nil
}

func (s *MemoryStore) InsertPatients(ctx context.Context, patients []models.Patient) (int, error) {
	for i := range patients {
		if err := s.InsertPatient(ctx, &patients[i]); err != nil {
			return i, err
		}
	}
	return len(patients), nil
}

func (s *MemoryStore) DeletePatient(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		return 0, nil
	}
	delete(s.patients, id)
	return 1, nil
}

// mutate runs fn against the stored patient under the write lock. fn reports
// whether the patient matched the filter and whether anything changed.
func (s *MemoryStore) mutate(id int64, fn func(p *models.Patient) (matched, changed bool)) models.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return models.MutationResult{}
	}
	var res models.MutationResult
	matched, changed := fn(p)
	if matched {
		res.MatchedCount = 1
	}
	if changed {
		res.ModifiedCount = 1
	}
	return res
}

func (s *MemoryStore) UpdatePatientDetails(_ context.Context, id int64, patch models.PatientDetailsPatch) (models.MutationResult, error) {
	return s.mutate(id, func(p *models.Patient) (bool, bool) {
		return true, patch.ApplyTo(p)
	}), nil
}

func (s *MemoryStore) UpdateEmergencyContact(_ context.Context, id int64, c models.EmergencyContact) (models.MutationResult, error) {
	return s.mutate(id, func(p *models.Patient) (bool, bool) {
		if p.EmergencyContact == c {
			return true, false
		}
		p.EmergencyContact = c
		return true, true
	}), nil
}

// --- Appointments ---

func (s *MemoryStore) PushAppointment(_ context.Context, patientID int64, a models.Appointment) (models.MutationResult, error) {
	return s.mutate(patientID, func(p *models.Patient) (bool, bool) {
		p.Appointments = append(p.Appointments, a)
		return true, true
	}), nil
}

func (s *MemoryStore) UpdateAppointment(_ context.Context, patientID int64, ref models.AppointmentRef, patch models.AppointmentPatch) (models.MutationResult, error) {
	return s.mutate(patientID, func(p *models.Patient) (bool, bool) {
		for i := range p.Appointments {
			if ref.Matches(&p.Appointments[i]) {
				return true, patch.ApplyTo(&p.Appointments[i])
			}
		}
		return false, false
	}), nil
}

func (s *MemoryStore) eachAppointment(doctorID int64, startDate, endDate string, fn func(p *models.Patient, a models.Appointment)) {
	for _, id := range sortedKeys(s.patients) {
		p := s.patients[id]
		for _, a := range p.Appointments {
			if a.DoctorID == doctorID && a.Date >= startDate && a.Date <= endDate {
				fn(p, a)
			}
		}
	}
}

func (s *MemoryStore) BookedSlots(_ context.Context, doctorID int64, startDate, endDate string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := make([]string, 0)
	s.eachAppointment(doctorID, startDate, endDate, func(_ *models.Patient, a models.Appointment) {
		slots = append(slots, a.TimeSlot)
	})
	return slots, nil
}

func (s *MemoryStore) DoctorAppointments(_ context.Context, doctorID int64, startDate, endDate string) ([]models.DoctorAppointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DoctorAppointment, 0)
	s.eachAppointment(doctorID, startDate, endDate, func(p *models.Patient, a models.Appointment) {
		out = append(out, models.DoctorAppointment{
			PatientID:      p.ID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Appointment:    a,
			MedicalRecords: clonePatient(p).MedicalRecords,
		})
	})
	return out, nil
}

// --- Medical records ---

func (s *MemoryStore) PushMedicalRecord(_ context.Context, patientID int64, r models.MedicalRecord) (models.MutationResult, error) {
	return s.mutate(patientID, func(p *models.Patient) (bool, bool) {
		r.Prescriptions = slices.Clone(r.Prescriptions)
		p.MedicalRecords = append(p.MedicalRecords, r)
		return true, true
	}), nil
}

func (s *MemoryStore) UpdateMedicalRecord(_ context.Context, patientID int64, ref models.MedicalRecordRef, patch models.MedicalRecordPatch) (models.MutationResult, error) {
	return s.mutate(patientID, func(p *models.Patient) (bool, bool) {
		for i := range p.MedicalRecords {
			if ref.Matches(&p.MedicalRecords[i]) {
				return true, patch.ApplyTo(&p.MedicalRecords[i])
			}
		}
		return false, false
	}), nil
}

// --- Medical staff ---

func (s *MemoryStore) FindDoctor(_ context.Context, id int64) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *d
	return &c, nil
}

func (s *MemoryStore) ListDoctors(_ context.Context, search models.DoctorSearch) ([]models.Doctor, error) {
	var specialisation *regexp.Regexp
	if search.Specialisation != "" {
		specialisation = regexp.MustCompile("(?i)" + regexp.QuoteMeta(search.Specialisation))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Doctor, 0)
	for _, id := range sortedKeys(s.doctors) {
		d := s.doctors[id]
		switch {
		case d.Role != models.RoleDoctor:
		case specialisation != nil && !specialisation.MatchString(d.Specialisation):
		case search.Start != "" && d.AvailabilityStartTime > search.Start:
		case search.End != "" && d.AvailabilityEndTime < search.End:
		default:
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *MemoryStore) LargestDoctorID(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := sortedKeys(s.doctors)
	if len(keys) == 0 {
		return 0, nil
	}
	return keys[len(keys)-1], nil
}

func (s *MemoryStore) InsertDoctor(_ context.Context, d *models.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.doctors[d.ID]; exists {
		return fmt.Errorf("insert doctor: duplicate _id %d", d.ID)
	}
	c := *d
	s.doctors[d.ID] = &c
	return nil
}

func (s *MemoryStore) InsertDoctors(ctx context.Context, doctors []models.Doctor) (int, error) {
	for i := range doctors {
		if err := s.InsertDoctor(ctx, &doctors[i]); err != nil {
			return i, err
		}
	}
	return len(doctors), nil
}
