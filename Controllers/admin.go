package Controllers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/Utils/Token"
)

// AdminLogin checks the env-configured admin credentials and issues an
// admin-role token.
func AdminLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Email != os.Getenv("ADMIN_EMAIL") || input.Password != os.Getenv("ADMIN_PASSWORD") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials."})
		return
	}

	token, err := Token.GenerateToken(Models.Actor{Role: Models.RoleAdmin, ID: 0})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "role": Models.RoleAdmin})
}

// FetchPendingDoctors lists doctor applications awaiting approval.
func FetchPendingDoctors(c *gin.Context) {
	var doctors []Models.Doctor
	if err := Models.DB.Where("is_approved = ?", false).Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for index := range doctors {
		doctors[index].PrepareGive()
	}
	c.JSON(http.StatusOK, doctors)
}

// ApproveDoctor makes the doctor visible to patients.
func ApproveDoctor(c *gin.Context) {
	var input struct {
		DoctorID uint `json:"doctor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var doctor Models.Doctor
	if err := Models.DB.First(&doctor, input.DoctorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	if err := Models.DB.Model(&doctor).Update("is_approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Dr. %s has been approved.", doctor.FullName)})
}

// RejectDoctor deletes a pending application.
func RejectDoctor(c *gin.Context) {
	var input struct {
		DoctorID uint `json:"doctor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var doctor Models.Doctor
	if err := Models.DB.First(&doctor, input.DoctorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	if doctor.IsApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reject an approved doctor"})
		return
	}

	name := doctor.FullName
	if err := Models.DB.Delete(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Application for Dr. %s was rejected and deleted.", name)})
}
