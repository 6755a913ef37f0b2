package services

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/harentsoaR/clinic-api/internal/models"
)

type roomKind struct {
	prefix    string
	equipment string
}

// reasonRooms maps every bookable reason to the room kind it needs.
var reasonRooms = map[string]roomKind{
	"Routine Check-up":     {"Consultation", "Stethoscope, Blood Pressure Monitor"},
	"Follow-up":            {"Consultation", "Examination Table"},
	"Emergency":            {"Trauma", "Defibrillator, Crash Cart"},
	"Vaccination":          {"Treatment", "Vaccine Refrigerator"},
	"Blood Test":           {"Laboratory", "Phlebotomy Chair, Centrifuge"},
	"X-Ray":                {"Radiology", "X-Ray Machine"},
	"Physiotherapy":        {"Rehabilitation", "Treatment Table, Exercise Equipment"},
	"Prescription Renewal": {"Consultation", "Computer Workstation"},
}

// Reasons lists the accepted reason_for values in alphabetical order.
func Reasons() []string {
	out := make([]string, 0, len(reasonRooms))
	for r := range reasonRooms {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// RoomAllocator picks a room for a reason. Room numbers are random and may
// repeat across appointments.
type RoomAllocator struct {
	intN func(n int) int
}

func NewRoomAllocator() *RoomAllocator {
	return &RoomAllocator{intN: rand.IntN}
}

func (a *RoomAllocator) Assign(reason string) (models.Room, error) {
	kind, ok := reasonRooms[reason]
	if !ok {
		return models.Room{}, fmt.Errorf("%w: %q", ErrUnknownReason, reason)
	}
	number := 1 + a.intN(20)
	letter := rune('A' + a.intN(4))
	return models.Room{
		Name:      fmt.Sprintf("%s Room %d%c", kind.prefix, number, letter),
		Equipment: kind.equipment,
	}, nil
}
