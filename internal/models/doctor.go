package models

const RoleDoctor = "Doctor"

// Doctor is a medical_staff document.
type Doctor struct {
	ID                    int64  `bson:"_id" json:"id"`
	UserID                int64  `bson:"user_id" json:"user_id"`
	FirstName             string `bson:"first_name" json:"first_name"`
	SecondName            string `bson:"second_name" json:"second_name"`
	Specialisation        string `bson:"specialisation" json:"specialisation"`
	ContactNumber         string `bson:"contact_number" json:"contact_number"`
	Email                 string `bson:"email" json:"email"`
	AvailabilityStartTime string `bson:"availability_start_time" json:"availability_start_time"`
	AvailabilityEndTime   string `bson:"availability_end_time" json:"availability_end_time"`
	Role                  string `bson:"role" json:"role"`
}

// DoctorSearch filters the staff listing. Empty fields are ignored.
// A doctor matches the availability filter when its window covers [Start, End].
type DoctorSearch struct {
	Specialisation string
	Start          string
	End            string
}
