package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinic-api/internal/models"
)

type MongoStore struct {
	db       *mongo.Database
	patients *mongo.Collection
	staff    *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:       db,
		patients: db.Collection(PatientCollection),
		staff:    db.Collection(StaffCollection),
	}
}

// Ping sends a ping command to the admin database.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// --- Patients ---

func (s *MongoStore) FindPatient(ctx context.Context, id int64) (*models.Patient, error) {
	var p models.Patient
	if err := s.patients.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find patient %d: %w", id, err)
	}
	return &p, nil
}

func (s *MongoStore) ListPatients(ctx context.Context, search models.PatientSearch) ([]models.Patient, error) {
	filter := bson.M{}
	if !search.IsEmpty() {
		or := bson.A{}
		for _, cond := range []bson.E{
			{Key: "first_name", Value: search.FirstName},
			{Key: "last_name", Value: search.LastName},
			{Key: "contact_number", Value: search.ContactNumber},
			{Key: "email", Value: search.Email},
		} {
			if cond.Value != "" {
				or = append(or, bson.D{cond})
			}
		}
		filter["$or"] = or
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.patients.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer cursor.Close(ctx)

	patients := make([]models.Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return patients, nil
}

func (s *MongoStore) LargestPatientID(ctx context.Context) (int64, error) {
	return largestID(ctx, s.patients)
}

func (s *MongoStore) InsertPatient(ctx context.Context, p *models.Patient) error {
	if _, err := s.patients.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertPatients(ctx context.Context, patients []models.Patient) (int, error) {
	if len(patients) == 0 {
		return 0, nil
	}
	docs := make([]any, len(patients))
	for i := range patients {
		docs[i] = patients[i]
	}
	res, err := s.patients.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert patients: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (s *MongoStore) DeletePatient(ctx context.Context, id int64) (int64, error) {
	res, err := s.patients.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete patient %d: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) UpdatePatientDetails(ctx context.Context, id int64, patch models.PatientDetailsPatch) (models.MutationResult, error) {
	return s.updatePatient(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(patch.SetFields())})
}

func (s *MongoStore) UpdateEmergencyContact(ctx context.Context, id int64, c models.EmergencyContact) (models.MutationResult, error) {
	return s.updatePatient(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"emergency_contact.name":         c.Name,
		"emergency_contact.surname":      c.Surname,
		"emergency_contact.email":        c.Email,
		"emergency_contact.phone_number": c.PhoneNumber,
		"emergency_contact.relationship": c.Relationship,
	}})
}

// --- Appointments ---

func (s *MongoStore) PushAppointment(ctx context.Context, patientID int64, a models.Appointment) (models.MutationResult, error) {
	return s.updatePatient(ctx, bson.M{"_id": patientID}, bson.M{"$push": bson.M{"appointments": a}})
}

// UpdateAppointment sets the patched fields on the first appointment element
// selected by ref.
func (s *MongoStore) UpdateAppointment(ctx context.Context, patientID int64, ref models.AppointmentRef, patch models.AppointmentPatch) (models.MutationResult, error) {
	match := bson.M{"date": ref.OriginalDate}
	if ref.ID != "" {
		match = bson.M{"appointment_id": ref.ID}
	}
	filter := bson.M{"_id": patientID, "appointments": bson.M{"$elemMatch": match}}
	return s.updatePatient(ctx, filter, bson.M{"$set": bson.M(patch.SetFields("appointments.$."))})
}

func appointmentRangePipeline(doctorID int64, startDate, endDate string, project bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: bson.M{"path": "$appointments"}}},
		{{Key: "$match", Value: bson.M{
			"appointments.doctor_id": doctorID,
			"appointments.date":      bson.M{"$gte": startDate, "$lte": endDate},
		}}},
		{{Key: "$project", Value: project}},
	}
}

// BookedSlots returns the time_slot of every appointment held with the doctor
// between startDate and endDate inclusive.
func (s *MongoStore) BookedSlots(ctx context.Context, doctorID int64, startDate, endDate string) ([]string, error) {
	pipeline := appointmentRangePipeline(doctorID, startDate, endDate, bson.M{
		"_id":       0,
		"time_slot": "$appointments.time_slot",
	})
	cursor, err := s.patients.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TimeSlot string `bson:"time_slot"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode booked slots: %w", err)
	}
	slots := make([]string, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, r.TimeSlot)
	}
	return slots, nil
}

func (s *MongoStore) DoctorAppointments(ctx context.Context, doctorID int64, startDate, endDate string) ([]models.DoctorAppointment, error) {
	pipeline := appointmentRangePipeline(doctorID, startDate, endDate, bson.M{
		"_id":            "$_id",
		"first_name":     "$first_name",
		"last_name":      "$last_name",
		"appointment":    "$appointments",
		"medical_record": "$medical_records",
	})
	cursor, err := s.patients.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate doctor appointments: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.DoctorAppointment, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode doctor appointments: %w", err)
	}
	return out, nil
}

// --- Medical records ---

func (s *MongoStore) PushMedicalRecord(ctx context.Context, patientID int64, r models.MedicalRecord) (models.MutationResult, error) {
	return s.updatePatient(ctx, bson.M{"_id": patientID}, bson.M{"$push": bson.M{"medical_records": r}})
}

func (s *MongoStore) UpdateMedicalRecord(ctx context.Context, patientID int64, ref models.MedicalRecordRef, patch models.MedicalRecordPatch) (models.MutationResult, error) {
	match := bson.M{"record_date": ref.RecordDate, "diagnosis": ref.Diagnosis}
	if ref.ID != "" {
		match = bson.M{"record_id": ref.ID}
	}
	filter := bson.M{"_id": patientID, "medical_records": bson.M{"$elemMatch": match}}
	return s.updatePatient(ctx, filter, bson.M{"$set": bson.M(patch.SetFields("medical_records.$."))})
}

func (s *MongoStore) updatePatient(ctx context.Context, filter, update bson.M) (models.MutationResult, error) {
	res, err := s.patients.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("update patient: %w", err)
	}
	return models.MutationResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// --- Medical staff ---

func (s *MongoStore) FindDoctor(ctx context.Context, id int64) (*models.Doctor, error) {
	var d models.Doctor
	if err := s.staff.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find doctor %d: %w", id, err)
	}
	return &d, nil
}

func (s *MongoStore) ListDoctors(ctx context.Context, search models.DoctorSearch) ([]models.Doctor, error) {
	filter := bson.M{"role": models.RoleDoctor}
	if search.Specialisation != "" {
		filter["specialisation"] = primitive.Regex{Pattern: regexp.QuoteMeta(search.Specialisation), Options: "i"}
	}
	if search.Start != "" {
		filter["availability_start_time"] = bson.M{"$lte": search.Start}
	}
	if search.End != "" {
		filter["availability_end_time"] = bson.M{"$gte": search.End}
	}

	cursor, err := s.staff.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}
	return doctors, nil
}

func (s *MongoStore) LargestDoctorID(ctx context.Context) (int64, error) {
	return largestID(ctx, s.staff)
}

func (s *MongoStore) InsertDoctor(ctx context.Context, d *models.Doctor) error {
	if _, err := s.staff.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertDoctors(ctx context.Context, doctors []models.Doctor) (int, error) {
	if len(doctors) == 0 {
		return 0, nil
	}
	docs := make([]any, len(doctors))
	for i := range doctors {
		docs[i] = doctors[i]
	}
	res, err := s.staff.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert doctors: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func largestID(ctx context.Context, coll *mongo.Collection) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.M{"_id": 1})
	var row struct {
		ID int64 `bson:"_id"`
	}
	if err := coll.FindOne(ctx, bson.M{}, opts).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("largest id in %s: %w", coll.Name(), err)
	}
	return row.ID, nil
}
