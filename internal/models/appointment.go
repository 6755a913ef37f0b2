package models

const (
	StatusPending     = "Pending"
	StatusConfirmed   = "Confirmed"
	StatusCancelled   = "Cancelled"
	StatusCompleted   = "Completed"
	StatusRescheduled = "Rescheduled"
)

type Room struct {
	Name      string `bson:"name" json:"name"`
	Equipment string `bson:"equipment" json:"equipment"`
}

// Appointment is embedded in Patient.Appointments. Documents created before
// appointment ids existed have an empty ID and can only be targeted by date.
type Appointment struct {
	ID        string `bson:"appointment_id,omitempty" json:"appointment_id,omitempty"`
	Date      string `bson:"date" json:"date"`
	TimeSlot  string `bson:"time_slot" json:"time_slot"`
	Room      Room   `bson:"room" json:"room"`
	Urgency   string `bson:"urgency" json:"urgency"`
	ReasonFor string `bson:"reason_for" json:"reason_for"`
	DoctorID  int64  `bson:"doctor_id" json:"doctor_id"`
	Status    string `bson:"status" json:"status"`
}

// AppointmentDraft is what a patient submits when booking.
type AppointmentDraft struct {
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Urgency   string `json:"urgency" binding:"required,oneof=Low Medium High"`
	ReasonFor string `json:"reason_for" binding:"required"`
}

// AppointmentRef identifies one embedded appointment. ID wins when set;
// otherwise the first appointment whose date equals OriginalDate is targeted.
// OriginalDate must be captured before the caller edits its local copy.
type AppointmentRef struct {
	ID           string `json:"appointment_id,omitempty"`
	OriginalDate string `json:"original_date,omitempty"`
}

// AppointmentPatch is a partial update; nil fields are left untouched.
type AppointmentPatch struct {
	Date      *string `json:"date,omitempty"`
	TimeSlot  *string `json:"time_slot,omitempty"`
	Room      *Room   `json:"room,omitempty"`
	Urgency   *string `json:"urgency,omitempty"`
	ReasonFor *string `json:"reason_for,omitempty"`
	DoctorID  *int64  `json:"doctor_id,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (p AppointmentPatch) IsEmpty() bool {
	return p.Date == nil && p.TimeSlot == nil && p.Room == nil && p.Urgency == nil &&
		p.ReasonFor == nil && p.DoctorID == nil && p.Status == nil
}

// SetFields returns the patched fields keyed by prefix+field name, e.g.
// "appointments.$.status" for prefix "appointments.$.".
func (p AppointmentPatch) SetFields(prefix string) map[string]any {
	fields := map[string]any{}
	setString(fields, prefix+"date", p.Date)
	setString(fields, prefix+"time_slot", p.TimeSlot)
	if p.Room != nil {
		fields[prefix+"room"] = *p.Room
	}
	setString(fields, prefix+"urgency", p.Urgency)
	setString(fields, prefix+"reason_for", p.ReasonFor)
	if p.DoctorID != nil {
		fields[prefix+"doctor_id"] = *p.DoctorID
	}
	setString(fields, prefix+"status", p.Status)
	return fields
}

// ApplyTo merges the patch into a and reports whether any value changed.
func (p AppointmentPatch) ApplyTo(a *Appointment) bool {
	changed := false
	changed = applyString(&a.Date, p.Date) || changed
	changed = applyString(&a.TimeSlot, p.TimeSlot) || changed
	if p.Room != nil && a.Room != *p.Room {
		a.Room = *p.Room
		changed = true
	}
	changed = applyString(&a.Urgency, p.Urgency) || changed
	changed = applyString(&a.ReasonFor, p.ReasonFor) || changed
	if p.DoctorID != nil && a.DoctorID != *p.DoctorID {
		a.DoctorID = *p.DoctorID
		changed = true
	}
	changed = applyString(&a.Status, p.Status) || changed
	return changed
}

// DoctorAppointment is the doctor-facing projection of one unwound appointment.
type DoctorAppointment struct {
	PatientID      int64           `bson:"_id" json:"patient_id"`
	FirstName      string          `bson:"first_name" json:"first_name"`
	LastName       string          `bson:"last_name" json:"last_name"`
	Appointment    Appointment     `bson:"appointment" json:"appointment"`
	MedicalRecords []MedicalRecord `bson:"medical_record" json:"medical_records"`
}

// Matches reports whether ref selects a.
func (ref AppointmentRef) Matches(a *Appointment) bool {
	if ref.ID != "" {
		return a.ID == ref.ID
	}
	return a.Date == ref.OriginalDate
}
