package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// DoctorService reads and creates medical staff. Single-doctor reads go
// through finder, which may be a cache in front of the store.
type DoctorService struct {
	store  StaffStore
	finder DoctorFinder
	logger zerolog.Logger
}

func NewDoctorService(store StaffStore, finder DoctorFinder, logger zerolog.Logger) *DoctorService {
	if finder == nil {
		finder = store
	}
	return &DoctorService{store: store, finder: finder, logger: logger}
}

func (s *DoctorService) Get(ctx context.Context, id int64) (*models.Doctor, error) {
	return s.finder.FindDoctor(ctx, id)
}

func (s *DoctorService) List(ctx context.Context, search models.DoctorSearch) ([]models.Doctor, error) {
	return s.store.ListDoctors(ctx, search)
}

// Create stores d as a Doctor under the next free id. The availability window
// must be non-empty.
func (s *DoctorService) Create(ctx context.Context, d models.Doctor) (*models.Doctor, error) {
	start, err := utils.ParseClock(d.AvailabilityStartTime)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClock(d.AvailabilityEndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, ErrInvalidWindow
	}

	largest, err := s.store.LargestDoctorID(ctx)
	if err != nil {
		return nil, err
	}
	d.ID = largest + 1
	d.Role = models.RoleDoctor
	if err := s.store.InsertDoctor(ctx, &d); err != nil {
		return nil, err
	}
	ForgetDoctors(ctx, s.finder, s.logger, d.ID)
	s.logger.Info().Int64("doctor_id", d.ID).Msg("doctor created")
	return &d, nil
}

// Appointments lists the doctor's appointments between two dates inclusive.
// An empty endDate means the single day startDate.
func (s *DoctorService) Appointments(ctx context.Context, doctorID int64, startDate, endDate string) ([]models.DoctorAppointment, error) {
	start, err := utils.NormalizeDate(startDate)
	if err != nil {
		return nil, err
	}
	end := start
	if endDate != "" {
		if end, err = utils.NormalizeDate(endDate); err != nil {
			return nil, err
		}
	}
	return s.store.DoctorAppointments(ctx, doctorID, start, end)
}
