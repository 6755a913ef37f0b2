package models

type Address struct {
	Postcode    string `bson:"postcode" json:"postcode"`
	HouseNumber string `bson:"house_number" json:"house_number"`
	Address     string `bson:"address" json:"address"`
}

type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	Surname      string `bson:"surname" json:"surname"`
	Email        string `bson:"email" json:"email"`
	PhoneNumber  string `bson:"phone_number" json:"phone_number"`
	Relationship string `bson:"relationship" json:"relationship"`
}

// Patient is a patient document. Appointments and medical records are embedded
// and keep insertion order.
type Patient struct {
	ID               int64            `bson:"_id" json:"id"`
	UserID           int64            `bson:"user_id" json:"user_id"`
	FirstName        string           `bson:"first_name" json:"first_name"`
	LastName         string           `bson:"last_name" json:"last_name"`
	DateOfBirth      string           `bson:"date_of_birth" json:"date_of_birth"`
	ContactNumber    string           `bson:"contact_number" json:"contact_number"`
	Email            string           `bson:"email" json:"email"`
	Address          Address          `bson:"address" json:"address"`
	EmergencyContact EmergencyContact `bson:"emergency_contact" json:"emergency_contact"`
	Appointments     []Appointment    `bson:"appointments" json:"appointments"`
	MedicalRecords   []MedicalRecord  `bson:"medical_records" json:"medical_records"`
}

// PatientSearch is OR-combined; only non-empty fields take part.
type PatientSearch struct {
	FirstName     string `form:"first_name"`
	LastName      string `form:"last_name"`
	ContactNumber string `form:"contact_number"`
	Email         string `form:"email"`
}

func (s PatientSearch) IsEmpty() bool {
	return s.FirstName == "" && s.LastName == "" && s.ContactNumber == "" && s.Email == ""
}

// Matches reports whether any populated search field equals the patient's value.
func (s PatientSearch) Matches(p *Patient) bool {
	return (s.FirstName != "" && s.FirstName == p.FirstName) ||
		(s.LastName != "" && s.LastName == p.LastName) ||
		(s.ContactNumber != "" && s.ContactNumber == p.ContactNumber) ||
		(s.Email != "" && s.Email == p.Email)
}

type AddressPatch struct {
	Postcode    *string `json:"postcode,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// PatientDetailsPatch carries the personal-info fields a patient may edit.
type PatientDetailsPatch struct {
	DateOfBirth   *string       `json:"date_of_birth,omitempty"`
	ContactNumber *string       `json:"contact_number,omitempty"`
	Email         *string       `json:"email,omitempty"`
	Address       *AddressPatch `json:"address,omitempty"`
}

func (p PatientDetailsPatch) IsEmpty() bool {
	return len(p.SetFields()) == 0
}

// SetFields returns the dotted document paths written by the patch.
func (p PatientDetailsPatch) SetFields() map[string]any {
	fields := map[string]any{}
	setString(fields, "date_of_birth", p.DateOfBirth)
	setString(fields, "contact_number", p.ContactNumber)
	setString(fields, "email", p.Email)
	if p.Address != nil {
		setString(fields, "address.postcode", p.Address.Postcode)
		setString(fields, "address.house_number", p.Address.HouseNumber)
		setString(fields, "address.address", p.Address.Address)
	}
	return fields
}

// ApplyTo merges the patch into p and reports whether anything changed.
func (p PatientDetailsPatch) ApplyTo(pt *Patient) bool {
	changed := false
	changed = applyString(&pt.DateOfBirth, p.DateOfBirth) || changed
	changed = applyString(&pt.ContactNumber, p.ContactNumber) || changed
	changed = applyString(&pt.Email, p.Email) || changed
	if p.Address != nil {
		changed = applyString(&pt.Address.Postcode, p.Address.Postcode) || changed
		changed = applyString(&pt.Address.HouseNumber, p.Address.HouseNumber) || changed
		changed = applyString(&pt.Address.Address, p.Address.Address) || changed
	}
	return changed
}

func setString(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func applyString(dst *string, v *string) bool {
	if v == nil || *dst == *v {
		return false
	}
	*dst = *v
	return true
}
