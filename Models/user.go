package Models

import (
	"errors"
	"html"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `gorm:"size:150;not null" json:"full_name"`
	Email    string `gorm:"size:120;not null;unique" json:"email"`
	Password string `gorm:"size:255;not null" json:"password"`
	Age      int    `json:"age"`
	Gender   string `gorm:"size:20" json:"gender"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `json:"address"`

	Appointments  []Appointment   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification  `gorm:"foreignKey:RecipientUserID;constraint:OnDelete:CASCADE" json:"-"`
	Prescriptions []Prescription  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reminders     []Reminder      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PromptHistory []PromptHistory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// DeviceToken is an FCM registration token owned by one recipient,
// a user or a doctor but never both.
type DeviceToken struct {
	gorm.Model
	UserID   *uint  `gorm:"default:null" json:"user_id"`
	DoctorID *uint  `gorm:"default:null" json:"doctor_id"`
	Value    string `gorm:"unique" json:"value"`
}

func GetUserByID(uid uint) (User, error) {
	var user User
	if err := DB.First(&user, uid).Error; err != nil {
		return user, errors.New("User not found")
	}
	user.PrepareGive()
	return user, nil
}

func (user *User) PrepareGive() {
	user.Password = ""
}

func VerifyPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (user *User) SaveUser() (*User, error) {

	if err := user.BeforeSave(); err != nil {
		return &User{}, err
	}

	if err := DB.Create(&user).Error; err != nil {
		return &User{}, err
	}

	return user, nil
}

func (user *User) BeforeSave() error {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	user.Email = html.EscapeString(strings.TrimSpace(strings.ToLower(user.Email)))

	return nil
}

// GetFCMsForActor collects the device tokens registered for a recipient.
func GetFCMsForActor(actor Actor) ([]string, error) {
	var fcms []string
	query := DB.Model(&DeviceToken{}).Select("value")
	switch actor.Role {
	case RoleUser:
		query = query.Where("user_id = ?", actor.ID)
	case RoleDoctor:
		query = query.Where("doctor_id = ?", actor.ID)
	default:
		return nil, errors.New("No FCMs for role")
	}
	if err := query.Find(&fcms).Error; err != nil {
		return nil, err
	}
	return fcms, nil
}
