package services

import (
	"errors"

	"github.com/harentsoaR/clinic-api/internal/repository"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

var (
	ErrNotFound    = repository.ErrNotFound
	ErrInvalidDate = utils.ErrInvalidDate
	ErrInvalidTime = utils.ErrInvalidTime

	ErrInvalidSlot    = errors.New("invalid time slot, expected \"HH:MM - HH:MM\"")
	ErrSlotOffGrid    = errors.New("time slot is outside the doctor's availability")
	ErrUnknownReason  = errors.New("unknown appointment reason")
	ErrInvalidUrgency = errors.New("urgency must be Low, Medium or High")
	ErrEmptyPatch     = errors.New("no fields to update")
	ErrMissingTarget  = errors.New("appointment_id or original_date is required")
	ErrInvalidWindow  = errors.New("availability start must be before end")

	ErrMissingRecordTarget = errors.New("record_id or record_date is required")
)
