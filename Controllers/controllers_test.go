package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/Utils/Token"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("API_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	Models.Migrate(db)

	previous := Models.DB
	Models.DB = db
	t.Cleanup(func() {
		Models.DB = previous
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/register", RegisterUser)
	router.POST("/login", Login)

	authorized := router.Group("/", Middleware.JwtAuthMiddleware())
	authorized.POST("/BookAppointment", BookAppointment)
	authorized.POST("/UpdateAppointmentStatus", UpdateAppointmentStatus)
	authorized.POST("/CancelAppointment", CancelAppointment)
	authorized.POST("/ToggleAvailability", ToggleAvailability)
	authorized.GET("/FindDoctors", FindDoctors)
	authorized.GET("/FetchNotifications", FetchNotifications)
	authorized.POST("/MarkNotificationsRead", MarkNotificationsRead)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func tokenFor(t *testing.T, actor Models.Actor) string {
	t.Helper()
	token, err := Token.GenerateToken(actor)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func seedUser(t *testing.T, db *gorm.DB, email string) Models.User {
	t.Helper()
	user := Models.User{FullName: "Asha Rao", Email: email, Password: "longenough"}
	if _, err := user.SaveUser(); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedDoctor(t *testing.T, db *gorm.DB, email string, approved bool) Models.Doctor {
	t.Helper()
	doctor := Models.Doctor{
		FullName: "Meera Iyer", Email: email, Phone: "1", Password: "longenough",
		LicenseNumber: "L1", Specialization: "Cardiology", Qualifications: "MBBS",
		ClinicName: "Heart Clinic", ExperienceYrs: 10, ClinicAddress: "MG Road",
		IsApproved: approved, IsAvailable: true,
	}
	if _, err := doctor.SaveDoctor(); err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	return doctor
}

func TestRegisterAndLogin(t *testing.T) {
	openTestDB(t)
	router := newTestRouter()

	register := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
		"full_name": "Asha Rao",
		"email":     "Asha@Example.com",
		"password":  "supersecret",
	})
	if register.Code != http.StatusOK {
		t.Fatalf("register returned %d: %s", register.Code, register.Body.String())
	}

	t.Run("LoginNormalizesEmail", func(t *testing.T) {
		login := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
			"email":    "asha@example.com",
			"password": "supersecret",
		})
		if login.Code != http.StatusOK {
			t.Fatalf("login returned %d: %s", login.Code, login.Body.String())
		}
		var response struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		}
		if err := json.Unmarshal(login.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to decode login response: %v", err)
		}
		if response.Token == "" || response.Role != string(Models.RoleUser) {
			t.Errorf("unexpected login response: %+v", response)
		}
	})

	t.Run("WrongPasswordRejected", func(t *testing.T) {
		login := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
			"email":    "asha@example.com",
			"password": "wrongpassword",
		})
		if login.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", login.Code)
		}
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		duplicate := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
			"full_name": "Imposter",
			"email":     "asha@example.com",
			"password":  "supersecret",
		})
		if duplicate.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", duplicate.Code)
		}
	})
}
