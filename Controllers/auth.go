package Controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/Utils/Token"
)

type RegisterUserInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func RegisterUser(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := Models.User{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		Age:      input.Age,
		Gender:   input.Gender,
		Phone:    input.Phone,
		Address:  input.Address,
	}

	if _, err := user.SaveUser(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email address already registered"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful! Please log in."})
}

type RegisterDoctorInput struct {
	FullName       string   `json:"full_name" binding:"required"`
	Email          string   `json:"email" binding:"required"`
	Phone          string   `json:"phone" binding:"required"`
	Password       string   `json:"password" binding:"required,min=8"`
	LicenseNumber  string   `json:"license_number" binding:"required"`
	MedicalCouncil string   `json:"medical_council"`
	Specialization string   `json:"specialization" binding:"required"`
	Qualifications string   `json:"qualifications" binding:"required"`
	ClinicName     string   `json:"clinic_name" binding:"required"`
	ExperienceYrs  int      `json:"experience_years" binding:"required"`
	ClinicAddress  string   `json:"clinic_address" binding:"required"`
	ClinicLat      *float64 `json:"clinic_latitude"`
	ClinicLng      *float64 `json:"clinic_longitude"`
}

// RegisterDoctor files a doctor application. The account stays invisible
// to patients until the admin approves it.
func RegisterDoctor(c *gin.Context) {
	var input RegisterDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := Models.Doctor{
		FullName:       input.FullName,
		Email:          input.Email,
		Phone:          input.Phone,
		Password:       input.Password,
		LicenseNumber:  input.LicenseNumber,
		MedicalCouncil: input.MedicalCouncil,
		Specialization: input.Specialization,
		Qualifications: input.Qualifications,
		ClinicName:     input.ClinicName,
		ExperienceYrs:  input.ExperienceYrs,
		ClinicAddress:  input.ClinicAddress,
		ClinicLat:      input.ClinicLat,
		ClinicLng:      input.ClinicLng,
		IsApproved:     false,
		IsAvailable:    true,
	}

	if _, err := doctor.SaveDoctor(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already registered"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application submitted. You will be notified once approved."})
}

// Login checks doctors first, then users, and issues a role-tagged token.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := Models.LoginCheck(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password. Please try again."})
		return
	}

	token, err := Token.GenerateToken(actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": actor.Role, "id": actor.ID})
}

// CurrentAccount returns the profile behind the token.
func CurrentAccount(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	switch actor.Role {
	case Models.RoleUser:
		user, err := Models.GetUserByID(actor.ID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": actor.Role, "account": user})
	case Models.RoleDoctor:
		doctor, err := Models.GetDoctorByID(actor.ID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": actor.Role, "account": doctor})
	default:
		c.JSON(http.StatusOK, gin.H{"role": actor.Role})
	}
}

// SaveFcmToken registers a device token for push notifications.
func SaveFcmToken(c *gin.Context) {
	var input struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)
	token := Models.DeviceToken{Value: input.Value}
	switch actor.Role {
	case Models.RoleUser:
		token.UserID = &actor.ID
	case Models.RoleDoctor:
		token.DoctorID = &actor.ID
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := Models.DB.Create(&token).Error; err != nil {
		// Token already registered, nothing to do.
		c.JSON(http.StatusOK, gin.H{"message": "Token already saved"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token saved"})
}
