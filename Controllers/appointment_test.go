package Controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Models"
)

func TestBookAppointment(t *testing.T) {
	t.Run("CreatesPendingRowAndDoctorNotification", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", true)
		token := tokenFor(t, Models.Actor{Role: Models.RoleUser, ID: user.ID})

		response := doJSON(t, router, http.MethodPost, "/BookAppointment", token, gin.H{
			"doctor_id": doctor.ID,
			"date":      "2026-09-10",
			"time":      "14:30",
		})
		if response.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", response.Code, response.Body.String())
		}

		var appointment Models.Appointment
		if err := db.First(&appointment).Error; err != nil {
			t.Fatalf("expected an appointment row: %v", err)
		}
		if appointment.Status != Models.AppointmentPending {
			t.Errorf("expected Pending status, got %s", appointment.Status)
		}
		if appointment.UserID != user.ID || appointment.DoctorID != doctor.ID {
			t.Errorf("appointment bound to wrong parties: %+v", appointment)
		}

		var count int64
		db.Model(&Models.Notification{}).
			Where("recipient_doctor_id = ? AND is_read = ?", doctor.ID, false).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one doctor notification, got %d", count)
		}
	})

	t.Run("UnavailableDoctorRejectedWithoutSideEffects", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", true)
		db.Model(&doctor).Update("is_available", false)
		token := tokenFor(t, Models.Actor{Role: Models.RoleUser, ID: user.ID})

		response := doJSON(t, router, http.MethodPost, "/BookAppointment", token, gin.H{
			"doctor_id": doctor.ID,
			"date":      "2026-09-10",
			"time":      "14:30",
		})
		if response.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", response.Code)
		}

		var count int64
		db.Model(&Models.Appointment{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no appointment rows, got %d", count)
		}
	})

	t.Run("UnapprovedDoctorIsInvisible", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", false)
		token := tokenFor(t, Models.Actor{Role: Models.RoleUser, ID: user.ID})

		response := doJSON(t, router, http.MethodPost, "/BookAppointment", token, gin.H{
			"doctor_id": doctor.ID,
			"date":      "2026-09-10",
			"time":      "14:30",
		})
		if response.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", response.Code)
		}
	})

	t.Run("BadDateFormatRejected", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", true)
		token := tokenFor(t, Models.Actor{Role: Models.RoleUser, ID: user.ID})

		response := doJSON(t, router, http.MethodPost, "/BookAppointment", token, gin.H{
			"doctor_id": doctor.ID,
			"date":      "10/09/2026",
			"time":      "2:30 PM",
		})
		if response.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", response.Code)
		}
	})

	t.Run("MissingTokenRejected", func(t *testing.T) {
		openTestDB(t)
		router := newTestRouter()

		response := doJSON(t, router, http.MethodPost, "/BookAppointment", "", gin.H{
			"doctor_id": 1,
			"date":      "2026-09-10",
			"time":      "14:30",
		})
		if response.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", response.Code)
		}
	})
}

func TestUpdateAppointmentStatus(t *testing.T) {
	t.Run("OwningDoctorConfirms", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", true)

		dateTime, _ := Models.ParseDateTime("2026-09-10", "14:30")
		appointment := Models.Appointment{
			UserID: user.ID, DoctorID: doctor.ID,
			DateTime: dateTime, Status: Models.AppointmentPending,
		}
		if err := db.Create(&appointment).Error; err != nil {
			t.Fatalf("failed to seed appointment: %v", err)
		}
		token := tokenFor(t, Models.Actor{Role: Models.RoleDoctor, ID: doctor.ID})

		response := doJSON(t, router, http.MethodPost, "/UpdateAppointmentStatus", token, gin.H{
			"appointment_id": appointment.ID,
			"action":         "confirm",
		})
		if response.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", response.Code, response.Body.String())
		}

		var reloaded Models.Appointment
		db.First(&reloaded, appointment.ID)
		if reloaded.Status != Models.AppointmentConfirmed {
			t.Errorf("expected Confirmed, got %s", reloaded.Status)
		}

		var count int64
		db.Model(&Models.Notification{}).
			Where("recipient_user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected one patient notification, got %d", count)
		}
	})

	t.Run("ForeignDoctorGets403AndNoStateChange", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", true)
		other := seedDoctor(t, db, "other@example.com", true)

		dateTime, _ := Models.ParseDateTime("2026-09-10", "14:30")
		appointment := Models.Appointment{
			UserID: user.ID, DoctorID: doctor.ID,
			DateTime: dateTime, Status: Models.AppointmentPending,
		}
		if err := db.Create(&appointment).Error; err != nil {
			t.Fatalf("failed to seed appointment: %v", err)
		}
		token := tokenFor(t, Models.Actor{Role: Models.RoleDoctor, ID: other.ID})

		response := doJSON(t, router, http.MethodPost, "/UpdateAppointmentStatus", token, gin.H{
			"appointment_id": appointment.ID,
			"action":         "confirm",
		})
		if response.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", response.Code)
		}

		var reloaded Models.Appointment
		db.First(&reloaded, appointment.ID)
		if reloaded.Status != Models.AppointmentPending {
			t.Errorf("expected status unchanged, got %s", reloaded.Status)
		}

		var count int64
		db.Model(&Models.Notification{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no notifications, got %d", count)
		}
	})

	t.Run("ConfirmedAppointmentCannotBeRejected", func(t *testing.T) {
		db := openTestDB(t)
		router := newTestRouter()
		user := seedUser(t, db, "patient@example.com")
		doctor := seedDoctor(t, db, "doctor@example.com", true)

		dateTime, _ := Models.ParseDateTime("2026-09-10", "14:30")
		appointment := Models.Appointment{
			UserID: user.ID, DoctorID: doctor.ID,
			DateTime: dateTime, Status: Models.AppointmentConfirmed,
		}
		if err := db.Create(&appointment).Error; err != nil {
			t.Fatalf("failed to seed appointment: %v", err)
		}
		token := tokenFor(t, Models.Actor{Role: Models.RoleDoctor, ID: doctor.ID})

		response := doJSON(t, router, http.MethodPost, "/UpdateAppointmentStatus", token, gin.H{
			"appointment_id": appointment.ID,
			"action":         "reject",
		})
		if response.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", response.Code)
		}
	})
}

func TestCancelAppointment(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter()
	user := seedUser(t, db, "patient@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	doctor := seedDoctor(t, db, "doctor@example.com", true)

	dateTime, _ := Models.ParseDateTime("2026-09-10", "14:30")
	appointment := Models.Appointment{
		UserID: user.ID, DoctorID: doctor.ID,
		DateTime: dateTime, Status: Models.AppointmentPending,
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}

	t.Run("StrangerCannotCancel", func(t *testing.T) {
		token := tokenFor(t, Models.Actor{Role: Models.RoleUser, ID: stranger.ID})
		response := doJSON(t, router, http.MethodPost, "/CancelAppointment", token, gin.H{
			"appointment_id": appointment.ID,
		})
		if response.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", response.Code)
		}
	})

	t.Run("OwnerCancelsAndDoctorIsNotified", func(t *testing.T) {
		token := tokenFor(t, Models.Actor{Role: Models.RoleUser, ID: user.ID})
		response := doJSON(t, router, http.MethodPost, "/CancelAppointment", token, gin.H{
			"appointment_id": appointment.ID,
		})
		if response.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", response.Code, response.Body.String())
		}

		var reloaded Models.Appointment
		db.First(&reloaded, appointment.ID)
		if reloaded.Status != Models.AppointmentCancelled {
			t.Errorf("expected Cancelled, got %s", reloaded.Status)
		}

		var count int64
		db.Model(&Models.Notification{}).
			Where("recipient_doctor_id = ?", doctor.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected one doctor notification, got %d", count)
		}
	})
}
