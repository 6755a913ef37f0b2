package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

type SeedStore interface {
	InsertPatients(ctx context.Context, patients []models.Patient) (int, error)
	InsertDoctors(ctx context.Context, doctors []models.Doctor) (int, error)
}

// PrepareSeed fills in what generated fixtures leave out: appointment and
// record ids, empty lists instead of nulls, dashed dates, and the Doctor role.
func PrepareSeed(patients []models.Patient, doctors []models.Doctor) {
	for i := range patients {
		p := &patients[i]
		if p.Appointments == nil {
			p.Appointments = []models.Appointment{}
		}
		if p.MedicalRecords == nil {
			p.MedicalRecords = []models.MedicalRecord{}
		}
		for j := range p.Appointments {
			a := &p.Appointments[j]
			if a.ID == "" {
				a.ID = uuid.NewString()
			}
			if d, err := utils.NormalizeDate(a.Date); err == nil {
				a.Date = d
			}
		}
		for j := range p.MedicalRecords {
			r := &p.MedicalRecords[j]
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			if r.Prescriptions == nil {
				r.Prescriptions = []models.Prescription{}
			}
		}
	}
	for i := range doctors {
		if doctors[i].Role == "" {
			doctors[i].Role = models.RoleDoctor
		}
	}
}

// Seed prepares and inserts the fixtures, doctors first.
func Seed(ctx context.Context, store SeedStore, patients []models.Patient, doctors []models.Doctor) (nPatients, nDoctors int, err error) {
	PrepareSeed(patients, doctors)
	if nDoctors, err = store.InsertDoctors(ctx, doctors); err != nil {
		return 0, nDoctors, fmt.Errorf("seed doctors: %w", err)
	}
	if nPatients, err = store.InsertPatients(ctx, patients); err != nil {
		return nPatients, nDoctors, fmt.Errorf("seed patients: %w", err)
	}
	return nPatients, nDoctors, nil
}

// DecodePatients parses a JSON array of patient documents in their stored
// layout ("_id", snake_case fields), as written by the fixture generator.
func DecodePatients(data []byte) ([]models.Patient, error) {
	return decodeDocuments[models.Patient](data)
}

// DecodeDoctors is DecodePatients for medical_staff documents.
func DecodeDoctors(data []byte) ([]models.Doctor, error) {
	return decodeDocuments[models.Doctor](data)
}

func decodeDocuments[T any](data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture file: %w", err)
	}
	out := make([]T, 0, len(raw))
	for i, doc := range raw {
		var v T
		if err := bson.UnmarshalExtJSON(doc, false, &v); err != nil {
			return nil, fmt.Errorf("fixture %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
