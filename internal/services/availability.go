package services

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harentsoaR/clinic-api/internal/metrics"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

const (
	SlotDuration = 30 * time.Minute

	// NoAvailableSlots is returned as the only element when a day is fully
	// booked. It is not a slot.
	NoAvailableSlots = "No available slots"

	slotClock     = "15:04"
	slotSeparator = " - "
)

var tracer = otel.Tracer("github.com/harentsoaR/clinic-api/internal/services")

func FormatSlot(start, end time.Time) string {
	return start.Format(slotClock) + slotSeparator + end.Format(slotClock)
}

// HasOpenSlots reports whether slots holds real slots rather than the
// NoAvailableSlots marker.
func HasOpenSlots(slots []string) bool {
	return len(slots) > 0 && !(len(slots) == 1 && slots[0] == NoAvailableSlots)
}

// SlotGrid yields every whole SlotDuration interval in [start, end), in order.
// The sequence is recomputed on each iteration; a trailing partial interval is
// dropped and an empty or inverted window yields nothing.
func SlotGrid(start, end time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := start; !t.Add(SlotDuration).After(end); t = t.Add(SlotDuration) {
			if !yield(FormatSlot(t, t.Add(SlotDuration))) {
				return
			}
		}
	}
}

// DoctorDaySlots is the slot grid for a doctor's window on date. date must
// already be normalized.
func DoctorDaySlots(doctor *models.Doctor, date string) (iter.Seq[string], error) {
	start, err := utils.CombineDateTime(date, doctor.AvailabilityStartTime)
	if err != nil {
		return nil, fmt.Errorf("doctor %d availability start: %w", doctor.ID, err)
	}
	end, err := utils.CombineDateTime(date, doctor.AvailabilityEndTime)
	if err != nil {
		return nil, fmt.Errorf("doctor %d availability end: %w", doctor.ID, err)
	}
	return SlotGrid(start, end), nil
}

// ParseSlot checks that slot has the "HH:MM - HH:MM" form.
func ParseSlot(slot string) (start, end time.Duration, err error) {
	from, to, ok := strings.Cut(slot, slotSeparator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if start, err = utils.ParseClock(from); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if end, err = utils.ParseClock(to); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return start, end, nil
}

// AvailabilityService resolves a doctor's free slots for a day.
type AvailabilityService struct {
	doctors DoctorFinder
	booked  BookedSlotSource
	metrics *metrics.SchedulingMetrics
	logger  zerolog.Logger
}

func NewAvailabilityService(doctors DoctorFinder, booked BookedSlotSource, m *metrics.SchedulingMetrics, logger zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{doctors: doctors, booked: booked, metrics: m, logger: logger}
}

// ComputeOpenSlots returns the doctor's slot grid on date minus every slot
// already booked with the doctor that day, in grid order. A fully booked day
// yields []string{NoAvailableSlots}. Store errors are returned as is; there
// is no retry.
func (s *AvailabilityService) ComputeOpenSlots(ctx context.Context, doctor *models.Doctor, date string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "availability.compute_open_slots")
	defer span.End()
	span.SetAttributes(attribute.Int64("clinic.doctor_id", doctor.ID), attribute.String("clinic.date", date))

	date, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	grid, err := DoctorDaySlots(doctor, date)
	if err != nil {
		return nil, err
	}

	booked, err := s.booked.BookedSlots(ctx, doctor.ID, date, date)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSlotError()
		return nil, fmt.Errorf("booked slots for doctor %d on %s: %w", doctor.ID, date, err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		taken[slot] = struct{}{}
	}
	open := slices.Collect(func(yield func(string) bool) {
		for slot := range grid {
			if _, ok := taken[slot]; ok {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	})

	s.metrics.ObserveSlots(len(open))
	s.logger.Debug().
		Int64("doctor_id", doctor.ID).
		Str("date", date).
		Int("booked", len(booked)).
		Int("open", len(open)).
		Msg("computed open slots")

	if len(open) == 0 {
		return []string{NoAvailableSlots}, nil
	}
	return open, nil
}

// OpenSlots looks the doctor up and computes their open slots on date.
func (s *AvailabilityService) OpenSlots(ctx context.Context, doctorID int64, date string) ([]string, error) {
	doctor, err := s.doctors.FindDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.ComputeOpenSlots(ctx, doctor, date)
}

// CheckSlot verifies that slot is one of the doctor's grid slots on date.
func CheckSlot(doctor *models.Doctor, date, slot string) error {
	if _, _, err := ParseSlot(slot); err != nil {
		return err
	}
	grid, err := DoctorDaySlots(doctor, date)
	if err != nil {
		return err
	}
	for s := range grid {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrSlotOffGrid, slot, date)
}
