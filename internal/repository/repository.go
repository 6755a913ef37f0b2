// Package repository persists patients and medical staff. MongoStore is the
// production store; MemoryStore backs local runs and tests with the same
// first-match update semantics.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	PatientCollection = "patient"
	StaffCollection   = "medical_staff"
)

var ErrNotFound = errors.New("not found")

// IsUnavailable reports whether err means the store could not be reached.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected)
}
