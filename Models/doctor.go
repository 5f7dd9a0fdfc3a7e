package Models

import (
	"errors"
	"html"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	FullName       string   `gorm:"size:150;not null" json:"full_name"`
	Email          string   `gorm:"size:120;not null;unique" json:"email"`
	Phone          string   `gorm:"size:20;not null" json:"phone"`
	Password       string   `gorm:"size:255;not null" json:"password"`
	LicenseNumber  string   `gorm:"size:100;not null" json:"license_number"`
	MedicalCouncil string   `gorm:"size:200" json:"medical_council"`
	Specialization string   `gorm:"size:100;not null" json:"specialization"`
	Qualifications string   `gorm:"not null" json:"qualifications"`
	ClinicName     string   `gorm:"size:200;not null" json:"clinic_name"`
	ExperienceYrs  int      `gorm:"not null" json:"experience_years"`
	ClinicAddress  string   `gorm:"not null" json:"clinic_address"`
	ClinicLat      *float64 `gorm:"default:null" json:"clinic_latitude"`
	ClinicLng      *float64 `gorm:"default:null" json:"clinic_longitude"`

	// IsApproved gates visibility to patients; set by the admin only.
	IsApproved  bool `gorm:"default:false" json:"is_approved"`
	IsAvailable bool `gorm:"default:true" json:"is_available"`

	Appointments  []Appointment  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"foreignKey:RecipientDoctorID;constraint:OnDelete:CASCADE" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

func GetDoctorByID(id uint) (Doctor, error) {
	var doctor Doctor
	if err := DB.First(&doctor, id).Error; err != nil {
		return doctor, errors.New("Doctor not found")
	}
	doctor.PrepareGive()
	return doctor, nil
}

func (doctor *Doctor) PrepareGive() {
	doctor.Password = ""
}

// ChangeAvailability flips the booking flag. Applying it twice restores
// the original value.
func (doctor *Doctor) ChangeAvailability() {
	doctor.IsAvailable = !doctor.IsAvailable
}

func (doctor *Doctor) SaveDoctor() (*Doctor, error) {

	if err := doctor.BeforeSave(); err != nil {
		return &Doctor{}, err
	}

	if err := DB.Create(&doctor).Error; err != nil {
		return &Doctor{}, err
	}

	return doctor, nil
}

func (doctor *Doctor) BeforeSave() error {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	doctor.Password = string(hashedPassword)

	doctor.Email = html.EscapeString(strings.TrimSpace(strings.ToLower(doctor.Email)))

	return nil
}

// LoginCheck resolves an email/password pair to an actor. Doctors are
// checked first, then users, matching the shared login form.
func LoginCheck(email string, password string) (Actor, error) {

	email = strings.TrimSpace(strings.ToLower(email))

	var doctor Doctor
	err := DB.Model(Doctor{}).Where("email = ?", email).Take(&doctor).Error
	if err == nil {
		if err := VerifyPassword(password, doctor.Password); err == nil {
			return Actor{Role: RoleDoctor, ID: doctor.ID}, nil
		}
	}

	var user User
	err = DB.Model(User{}).Where("email = ?", email).Take(&user).Error
	if err == nil {
		if err := VerifyPassword(password, user.Password); err == nil {
			return Actor{Role: RoleUser, ID: user.ID}, nil
		}
	}

	return Actor{}, errors.New("invalid email or password")
}
