package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harentsoaR/clinic-api/internal/metrics"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// StatusNotifier is told about appointments whose status actually changed.
type StatusNotifier interface {
	AppointmentStatusChanged(ctx context.Context, patient *models.Patient, appt models.Appointment)
}

// AppointmentService books appointments and applies partial updates to one
// embedded appointment at a time. Status values are not checked against a
// transition table.
type AppointmentService struct {
	store    AppointmentStore
	doctors  DoctorFinder
	rooms    *RoomAllocator
	notifier StatusNotifier
	metrics  *metrics.SchedulingMetrics
	logger   zerolog.Logger
	newID    func() string
}

func NewAppointmentService(store AppointmentStore, doctors DoctorFinder, rooms *RoomAllocator, notifier StatusNotifier, m *metrics.SchedulingMetrics, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		store:    store,
		doctors:  doctors,
		rooms:    rooms,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

func validUrgency(u string) bool {
	return u == "Low" || u == "Medium" || u == "High"
}

// Create appends a Pending appointment to the patient's list. The slot must be
// on the doctor's grid for the date; it is not checked against other bookings.
// A zero MatchedCount means the patient does not exist.
func (s *AppointmentService) Create(ctx context.Context, patientID int64, draft models.AppointmentDraft) (models.Appointment, models.MutationResult, error) {
	ctx, span := tracer.Start(ctx, "appointments.create")
	defer span.End()
	span.SetAttributes(attribute.Int64("clinic.patient_id", patientID), attribute.Int64("clinic.doctor_id", draft.DoctorID))

	date, err := utils.NormalizeDate(draft.Date)
	if err != nil {
		return models.Appointment{}, models.MutationResult{}, err
	}
	if !validUrgency(draft.Urgency) {
		return models.Appointment{}, models.MutationResult{}, fmt.Errorf("%w: %q", ErrInvalidUrgency, draft.Urgency)
	}
	room, err := s.rooms.Assign(draft.ReasonFor)
	if err != nil {
		return models.Appointment{}, models.MutationResult{}, err
	}

	doctor, err := s.doctors.FindDoctor(ctx, draft.DoctorID)
	if err != nil {
		return models.Appointment{}, models.MutationResult{}, fmt.Errorf("doctor %d: %w", draft.DoctorID, err)
	}
	if err := CheckSlot(doctor, date, draft.TimeSlot); err != nil {
		return models.Appointment{}, models.MutationResult{}, err
	}

	appt := models.Appointment{
		ID:        s.newID(),
		Date:      date,
		TimeSlot:  draft.TimeSlot,
		Room:      room,
		Urgency:   draft.Urgency,
		ReasonFor: draft.ReasonFor,
		DoctorID:  draft.DoctorID,
		Status:    models.StatusPending,
	}
	res, err := s.store.PushAppointment(ctx, patientID, appt)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveMutation("create", "error")
		return models.Appointment{}, models.MutationResult{}, err
	}
	s.metrics.ObserveMutation("create", resultLabel(res))
	s.logger.Info().
		Int64("patient_id", patientID).
		Str("appointment_id", appt.ID).
		Int64("doctor_id", appt.DoctorID).
		Str("date", appt.Date).
		Str("time_slot", appt.TimeSlot).
		Int64("matched", res.MatchedCount).
		Msg("appointment booked")
	return appt, res, nil
}

// Update merges patch into the appointment selected by ref. The appointment id
// is preferred; without it the first appointment on ref.OriginalDate is
// changed. A new time slot must sit on the booked doctor's grid. A zero
// ModifiedCount is a no-op and is not an error.
func (s *AppointmentService) Update(ctx context.Context, patientID int64, ref models.AppointmentRef, patch models.AppointmentPatch) (models.MutationResult, error) {
	ctx, span := tracer.Start(ctx, "appointments.update")
	defer span.End()
	span.SetAttributes(attribute.Int64("clinic.patient_id", patientID), attribute.String("clinic.appointment_id", ref.ID))

	ref, patch, err := normalizeUpdate(ref, patch)
	if err != nil {
		return models.MutationResult{}, err
	}
	target, err := s.locate(ctx, patientID, ref)
	if err != nil {
		span.RecordError(err)
		return models.MutationResult{}, err
	}
	if target != nil {
		if err := s.checkMove(ctx, target.appt, patch); err != nil {
			return models.MutationResult{}, err
		}
	}

	res, err := s.store.UpdateAppointment(ctx, patientID, ref, patch)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveMutation("update", "error")
		return models.MutationResult{}, err
	}
	s.metrics.ObserveMutation("update", resultLabel(res))
	s.logger.Info().
		Int64("patient_id", patientID).
		Str("appointment_id", ref.ID).
		Str("original_date", ref.OriginalDate).
		Int64("matched", res.MatchedCount).
		Int64("modified", res.ModifiedCount).
		Msg("appointment updated")

	if res.Changed() && patch.Status != nil && target != nil {
		s.notify(ctx, patientID, target)
	}
	return res, nil
}

// located is the appointment ref selected before an update, with its position
// in the patient's list.
type located struct {
	index int
	appt  models.Appointment
}

// find returns the same appointment in a reloaded patient. Appointments are
// only ever appended, so the position is stable when there is no id.
func (l *located) find(p *models.Patient) (models.Appointment, bool) {
	if l.appt.ID != "" {
		for _, a := range p.Appointments {
			if a.ID == l.appt.ID {
				return a, true
			}
		}
		return models.Appointment{}, false
	}
	if l.index < len(p.Appointments) {
		return p.Appointments[l.index], true
	}
	return models.Appointment{}, false
}

// locate returns the first appointment ref selects, or nil when the patient or
// the appointment does not exist.
func (s *AppointmentService) locate(ctx context.Context, patientID int64, ref models.AppointmentRef) (*located, error) {
	patient, err := s.store.FindPatient(ctx, patientID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range patient.Appointments {
		if ref.Matches(&patient.Appointments[i]) {
			return &located{index: i, appt: patient.Appointments[i]}, nil
		}
	}
	return nil, nil
}

// checkMove rejects a new time slot that is not on the grid of the doctor the
// appointment is (or will be) booked with. Appointments without a known doctor
// are not checked.
func (s *AppointmentService) checkMove(ctx context.Context, current models.Appointment, patch models.AppointmentPatch) error {
	doctorID := current.DoctorID
	if patch.DoctorID != nil {
		doctorID = *patch.DoctorID
	}
	if patch.TimeSlot == nil || doctorID == 0 {
		return nil
	}
	doctor, err := s.doctors.FindDoctor(ctx, doctorID)
	if errors.Is(err, ErrNotFound) {
		s.logger.Warn().Int64("doctor_id", doctorID).Str("appointment_id", current.ID).Msg("doctor missing, time slot not checked")
		return nil
	}
	if err != nil {
		return fmt.Errorf("doctor %d: %w", doctorID, err)
	}
	date := current.Date
	if patch.Date != nil {
		date = *patch.Date
	}
	return CheckSlot(doctor, date, *patch.TimeSlot)
}

func normalizeUpdate(ref models.AppointmentRef, patch models.AppointmentPatch) (models.AppointmentRef, models.AppointmentPatch, error) {
	if patch.IsEmpty() {
		return ref, patch, ErrEmptyPatch
	}
	if ref.ID == "" && ref.OriginalDate == "" {
		return ref, patch, ErrMissingTarget
	}
	if ref.OriginalDate != "" {
		d, err := utils.NormalizeDate(ref.OriginalDate)
		if err != nil {
			return ref, patch, err
		}
		ref.OriginalDate = d
	}
	if patch.Date != nil {
		d, err := utils.NormalizeDate(*patch.Date)
		if err != nil {
			return ref, patch, err
		}
		patch.Date = &d
	}
	if patch.TimeSlot != nil {
		if _, _, err := ParseSlot(*patch.TimeSlot); err != nil {
			return ref, patch, err
		}
	}
	if patch.Urgency != nil && !validUrgency(*patch.Urgency) {
		return ref, patch, fmt.Errorf("%w: %q", ErrInvalidUrgency, *patch.Urgency)
	}
	if patch.ReasonFor != nil {
		if _, ok := reasonRooms[*patch.ReasonFor]; !ok {
			return ref, patch, fmt.Errorf("%w: %q", ErrUnknownReason, *patch.ReasonFor)
		}
	}
	return ref, patch, nil
}

func (s *AppointmentService) setStatus(ctx context.Context, patientID int64, ref models.AppointmentRef, status string) (models.MutationResult, error) {
	return s.Update(ctx, patientID, ref, models.AppointmentPatch{Status: &status})
}

func (s *AppointmentService) Confirm(ctx context.Context, patientID int64, ref models.AppointmentRef) (models.MutationResult, error) {
	return s.setStatus(ctx, patientID, ref, models.StatusConfirmed)
}

func (s *AppointmentService) Cancel(ctx context.Context, patientID int64, ref models.AppointmentRef) (models.MutationResult, error) {
	return s.setStatus(ctx, patientID, ref, models.StatusCancelled)
}

func (s *AppointmentService) Complete(ctx context.Context, patientID int64, ref models.AppointmentRef) (models.MutationResult, error) {
	return s.setStatus(ctx, patientID, ref, models.StatusCompleted)
}

// Reschedule moves the appointment to newDate (and newSlot when non-empty) and
// marks it Rescheduled.
func (s *AppointmentService) Reschedule(ctx context.Context, patientID int64, ref models.AppointmentRef, newDate, newSlot string) (models.MutationResult, error) {
	status := models.StatusRescheduled
	patch := models.AppointmentPatch{Date: &newDate, Status: &status}
	if newSlot != "" {
		patch.TimeSlot = &newSlot
	}
	return s.Update(ctx, patientID, ref, patch)
}

// notify reloads the patient and hands the updated appointment to the
// notifier. Failures only get logged; the update already happened.
func (s *AppointmentService) notify(ctx context.Context, patientID int64, target *located) {
	if s.notifier == nil {
		return
	}
	patient, err := s.store.FindPatient(ctx, patientID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("patient_id", patientID).Msg("skipping status notification")
		return
	}
	if appt, ok := target.find(patient); ok {
		s.notifier.AppointmentStatusChanged(ctx, patient, appt)
	}
}

func resultLabel(res models.MutationResult) string {
	switch {
	case res.MatchedCount == 0:
		return "unmatched"
	case res.ModifiedCount == 0:
		return "noop"
	default:
		return "modified"
	}
}
