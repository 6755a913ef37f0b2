package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotGridCountAndContiguity(t *testing.T) {
	day := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	for startMin := 0; startMin < 24*60; startMin += 85 {
		for length := 0; length <= 9*60; length += 47 {
			start := day.Add(time.Duration(startMin) * time.Minute)
			end := start.Add(time.Duration(length) * time.Minute)
			if end.Day() != day.Day() {
				continue
			}
			slots := slices.Collect(SlotGrid(start, end))

			require.Len(t, slots, length/30, "start=%s len=%d", start, length)
			for i, s := range slots {
				from := start.Add(time.Duration(i) * SlotDuration)
				assert.Equal(t, FormatSlot(from, from.Add(SlotDuration)), s)
			}
		}
	}
}

func TestSlotGridEmptyWhenEndNotAfterStart(t *testing.T) {
	start := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, slices.Collect(SlotGrid(start, start)))
	assert.Empty(t, slices.Collect(SlotGrid(start, start.Add(-time.Hour))))
}

func TestSlotGridTruncatesPartialSlot(t *testing.T) {
	start := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	slots := slices.Collect(SlotGrid(start, start.Add(75*time.Minute)))
	assert.Equal(t, []string{"09:00 - 09:30", "09:30 - 10:00"}, slots)
}

func TestSlotGridIsRestartable(t *testing.T) {
	start := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	grid := SlotGrid(start, start.Add(2*time.Hour))

	first := slices.Collect(grid)
	second := slices.Collect(grid)
	assert.Equal(t, first, second)

	for s := range grid {
		assert.Equal(t, "09:00 - 09:30", s)
		break
	}
}

func TestComputeOpenSlotsScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := morningDoctor

	open, err := f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 - 09:30", "09:30 - 10:00"}, open)

	book(t, f, "2025-05-02", "09:00 - 09:30")
	open, err = f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30 - 10:00"}, open)

	book(t, f, "2025-05-02", "09:30 - 10:00")
	open, err = f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, []string{NoAvailableSlots}, open)
	assert.False(t, HasOpenSlots(open))
}

func TestComputeOpenSlotsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := morningDoctor
	doctor.AvailabilityEndTime = "13:00"
	book(t, f, "2025-05-02", "09:30 - 10:00")

	first, err := f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	second, err := f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeOpenSlotsRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := morningDoctor
	doctor.ID = 7
	doctor.AvailabilityEndTime = "12:00"
	require.NoError(t, f.store.InsertDoctor(ctx, &doctor))

	open, err := f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	booked, err := f.store.BookedSlots(ctx, doctor.ID, "2025-05-02", "2025-05-02")
	require.NoError(t, err)
	for _, s := range open {
		assert.NotContains(t, booked, s)
	}

	pick := open[2]
	require.Equal(t, "10:00 - 10:30", pick)
	bookWith(t, f, doctor.ID, "2025-05-02", pick)
	after, err := f.availability.ComputeOpenSlots(ctx, &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.NotContains(t, after, pick)
	assert.Len(t, after, len(open)-1)
}

func TestComputeOpenSlotsNormalizesSlashedDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := morningDoctor
	book(t, f, "2025-05-02", "09:00 - 09:30")

	open, err := f.availability.ComputeOpenSlots(ctx, &doctor, "2025/05/02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30 - 10:00"}, open)
}

func TestComputeOpenSlotsOtherDayUnaffected(t *testing.T) {
	f := newFixture(t)
	doctor := morningDoctor
	book(t, f, "2025-05-02", "09:00 - 09:30")

	open, err := f.availability.ComputeOpenSlots(context.Background(), &doctor, "2025-05-03")
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestComputeOpenSlotsInvertedWindowIsSentinel(t *testing.T) {
	f := newFixture(t)
	doctor := morningDoctor
	doctor.AvailabilityStartTime, doctor.AvailabilityEndTime = "17:00", "09:00"

	open, err := f.availability.ComputeOpenSlots(context.Background(), &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, []string{NoAvailableSlots}, open)
}

func TestComputeOpenSlotsAcceptsSeconds(t *testing.T) {
	f := newFixture(t)
	doctor := morningDoctor
	doctor.AvailabilityStartTime, doctor.AvailabilityEndTime = "14:00:00", "15:10:00"

	open, err := f.availability.ComputeOpenSlots(context.Background(), &doctor, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00 - 14:30", "14:30 - 15:00"}, open)
}

func TestComputeOpenSlotsRejectsBadDate(t *testing.T) {
	f := newFixture(t)
	doctor := morningDoctor

	_, err := f.availability.ComputeOpenSlots(context.Background(), &doctor, "May 2nd")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

type failingSlots struct{ err error }

func (f failingSlots) BookedSlots(context.Context, int64, string, string) ([]string, error) {
	return nil, f.err
}

func TestComputeOpenSlotsPropagatesLookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewAvailabilityService(nil, failingSlots{err: boom}, nil, zerolog.Nop())
	doctor := morningDoctor

	_, err := svc.ComputeOpenSlots(context.Background(), &doctor, "2025-05-02")
	assert.ErrorIs(t, err, boom)
}

func TestOpenSlotsUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.availability.OpenSlots(context.Background(), 404, "2025-05-02")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckSlot(t *testing.T) {
	doctor := morningDoctor
	tests := []struct {
		slot string
		want error
	}{
		{"09:00 - 09:30", nil},
		{"09:30 - 10:00", nil},
		{"09:15 - 09:45", ErrSlotOffGrid},
		{"10:00 - 10:30", ErrSlotOffGrid},
		{"09:00-09:30", ErrInvalidSlot},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.slot), func(t *testing.T) {
			err := CheckSlot(&doctor, "2025-05-02", tt.slot)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHasOpenSlots(t *testing.T) {
	assert.False(t, HasOpenSlots(nil))
	assert.False(t, HasOpenSlots([]string{NoAvailableSlots}))
	assert.True(t, HasOpenSlots([]string{"09:00 - 09:30"}))
}
