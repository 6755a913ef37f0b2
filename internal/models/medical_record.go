package models

type Prescription struct {
	Medication   string `bson:"medication" json:"medication"`
	Dosage       string `bson:"dosage" json:"dosage"`
	Duration     string `bson:"duration" json:"duration"`
	Instructions string `bson:"instructions" json:"instructions"`
}

type MedicalRecord struct {
	ID            string         `bson:"record_id,omitempty" json:"record_id,omitempty"`
	DoctorID      int64          `bson:"doctor_id" json:"doctor_id"`
	RecordDate    string         `bson:"record_date" json:"record_date"`
	Diagnosis     string         `bson:"diagnosis" json:"diagnosis"`
	Treatment     string         `bson:"treatment" json:"treatment"`
	Prescriptions []Prescription `bson:"prescriptions" json:"prescriptions"`
	Notes         string         `bson:"notes" json:"notes"`
}

// MedicalRecordRef targets one record: by ID, or else by the first record with
// the given date and original diagnosis.
type MedicalRecordRef struct {
	ID         string `json:"record_id,omitempty"`
	RecordDate string `json:"record_date,omitempty"`
	Diagnosis  string `json:"diagnosis,omitempty"`
}

type MedicalRecordPatch struct {
	Diagnosis *string `json:"diagnosis,omitempty"`
	Treatment *string `json:"treatment,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (p MedicalRecordPatch) IsEmpty() bool {
	return p.Diagnosis == nil && p.Treatment == nil && p.Notes == nil
}

func (p MedicalRecordPatch) SetFields(prefix string) map[string]any {
	fields := map[string]any{}
	setString(fields, prefix+"diagnosis", p.Diagnosis)
	setString(fields, prefix+"treatment", p.Treatment)
	setString(fields, prefix+"notes", p.Notes)
	return fields
}

func (p MedicalRecordPatch) ApplyTo(r *MedicalRecord) bool {
	changed := false
	changed = applyString(&r.Diagnosis, p.Diagnosis) || changed
	changed = applyString(&r.Treatment, p.Treatment) || changed
	changed = applyString(&r.Notes, p.Notes) || changed
	return changed
}

// Matches reports whether ref selects r.
func (ref MedicalRecordRef) Matches(r *MedicalRecord) bool {
	if ref.ID != "" {
		return r.ID == ref.ID
	}
	return r.RecordDate == ref.RecordDate && r.Diagnosis == ref.Diagnosis
}
