package Controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Gemini"
	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// HandlePrompt forwards a symptom question, optionally with images, to
// the AI endpoint and records the exchange in the prompt history.
func HandlePrompt(c *gin.Context) {
	var input struct {
		Prompt string   `json:"prompt"`
		Images []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Prompt == "" && len(input.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A text prompt or an image is required."})
		return
	}

	response, err := Gemini.GenerateContent(input.Prompt, input.Images)
	if err != nil {
		log.Printf("Gemini request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while communicating with the AI model."})
		return
	}

	actor := Middleware.CurrentActor(c)
	history := Models.PromptHistory{
		PromptText:   input.Prompt,
		ResponseText: response,
	}
	switch actor.Role {
	case Models.RoleUser:
		history.UserID = &actor.ID
	case Models.RoleDoctor:
		history.DoctorID = &actor.ID
	}
	if err := Models.DB.Create(&history).Error; err != nil {
		log.Printf("Failed to save prompt history: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
