package Controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// FindDoctors lists approved doctors with the distinct specializations
// for the filter dropdown.
func FindDoctors(c *gin.Context) {
	var doctors []Models.Doctor
	if err := Models.DB.Where("is_approved = ?", true).Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[string]struct{})
	var specializations []string
	for index := range doctors {
		doctors[index].PrepareGive()
		if _, ok := seen[doctors[index].Specialization]; !ok {
			seen[doctors[index].Specialization] = struct{}{}
			specializations = append(specializations, doctors[index].Specialization)
		}
	}
	sort.Strings(specializations)

	c.JSON(http.StatusOK, gin.H{"doctors": doctors, "specializations": specializations})
}

// GetDoctorDetails returns one approved doctor's public profile.
func GetDoctorDetails(c *gin.Context) {
	var input struct {
		DoctorID uint `json:"doctor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var doctor Models.Doctor
	if err := Models.DB.First(&doctor, input.DoctorID).Error; err != nil || !doctor.IsApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found or not approved"})
		return
	}
	doctor.PrepareGive()

	c.JSON(http.StatusOK, doctor)
}

// ToggleAvailability flips the doctor's booking flag. Toggling twice
// restores the original value.
func ToggleAvailability(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var doctor Models.Doctor
	if err := Models.DB.First(&doctor, actor.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	doctor.ChangeAvailability()
	if err := Models.DB.Model(&doctor).Update("is_available", doctor.IsAvailable).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Availability updated successfully.",
		"is_available": doctor.IsAvailable,
	})
}
