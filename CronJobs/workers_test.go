package CronJobs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zygisk-enc/caresync/Mailer"
	"github.com/zygisk-enc/caresync/Models"
)

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	Models.Migrate(db)
	return db
}

func stubMailer(t *testing.T) *[]sentMail {
	t.Helper()

	var sent []sentMail
	original := Mailer.Send
	Mailer.Send = func(to []string, subject, body string) error {
		sent = append(sent, sentMail{To: to, Subject: subject, Body: body})
		return nil
	}
	t.Cleanup(func() { Mailer.Send = original })
	return &sent
}

func seedParties(t *testing.T, db *gorm.DB) (Models.User, Models.Doctor) {
	t.Helper()

	user := Models.User{FullName: "Asha Rao", Email: "asha@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	doctor := Models.Doctor{
		FullName: "Meera Iyer", Email: "meera@example.com", Phone: "1", Password: "x",
		LicenseNumber: "L1", Specialization: "Cardiology", Qualifications: "MBBS",
		ClinicName: "Heart Clinic", ExperienceYrs: 10, ClinicAddress: "MG Road",
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	return user, doctor
}

func TestSendCallReminders(t *testing.T) {
	t.Run("CallInsideWindowEmailsBothPartiesAndLatches", func(t *testing.T) {
		db := openTestDB(t)
		sent := stubMailer(t)
		user, doctor := seedParties(t, db)

		call := Models.VideoCall{
			UserID: user.ID, DoctorID: doctor.ID,
			ScheduledTime: time.Now().Add(90 * time.Second),
			Status:        Models.CallApproved,
		}
		if err := db.Create(&call).Error; err != nil {
			t.Fatalf("failed to seed call: %v", err)
		}

		rs := NewReminderService(db)
		if err := rs.SendCallReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(*sent) != 2 {
			t.Fatalf("expected 2 emails, got %d", len(*sent))
		}
		if (*sent)[0].To[0] != user.Email {
			t.Errorf("expected first email to the patient, got %v", (*sent)[0].To)
		}
		if (*sent)[1].To[0] != doctor.Email {
			t.Errorf("expected second email to the doctor, got %v", (*sent)[1].To)
		}
		if !strings.Contains((*sent)[0].Body, doctor.FullName) {
			t.Errorf("patient email should name the doctor: %q", (*sent)[0].Body)
		}

		var reloaded Models.VideoCall
		if err := db.First(&reloaded, call.ID).Error; err != nil {
			t.Fatalf("failed to reload call: %v", err)
		}
		if !reloaded.ReminderSent {
			t.Error("expected reminder_sent latch to be set")
		}

		// A second sweep must not resend.
		if err := rs.SendCallReminders(); err != nil {
			t.Fatalf("unexpected error on second sweep: %v", err)
		}
		if len(*sent) != 2 {
			t.Errorf("expected no further emails, got %d total", len(*sent))
		}
	})

	t.Run("CallsOutsideWindowAreSkipped", func(t *testing.T) {
		db := openTestDB(t)
		sent := stubMailer(t)
		user, doctor := seedParties(t, db)

		for _, offset := range []time.Duration{30 * time.Second, 150 * time.Second, -time.Minute} {
			call := Models.VideoCall{
				UserID: user.ID, DoctorID: doctor.ID,
				ScheduledTime: time.Now().Add(offset),
				Status:        Models.CallApproved,
			}
			if err := db.Create(&call).Error; err != nil {
				t.Fatalf("failed to seed call: %v", err)
			}
		}

		rs := NewReminderService(db)
		if err := rs.SendCallReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(*sent) != 0 {
			t.Errorf("expected no emails for out-of-window calls, got %d", len(*sent))
		}
	})

	t.Run("PendingCallsAreNeverReminded", func(t *testing.T) {
		db := openTestDB(t)
		sent := stubMailer(t)
		user, doctor := seedParties(t, db)

		call := Models.VideoCall{
			UserID: user.ID, DoctorID: doctor.ID,
			ScheduledTime: time.Now().Add(90 * time.Second),
			Status:        Models.CallPending,
		}
		if err := db.Create(&call).Error; err != nil {
			t.Fatalf("failed to seed call: %v", err)
		}

		rs := NewReminderService(db)
		if err := rs.SendCallReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(*sent) != 0 {
			t.Errorf("expected no emails for a pending call, got %d", len(*sent))
		}
	})

	t.Run("FailedSendLeavesLatchUnsetForRetry", func(t *testing.T) {
		db := openTestDB(t)
		user, doctor := seedParties(t, db)

		original := Mailer.Send
		Mailer.Send = func(to []string, subject, body string) error {
			return errors.New("smtp down")
		}
		t.Cleanup(func() { Mailer.Send = original })

		call := Models.VideoCall{
			UserID: user.ID, DoctorID: doctor.ID,
			ScheduledTime: time.Now().Add(90 * time.Second),
			Status:        Models.CallApproved,
		}
		if err := db.Create(&call).Error; err != nil {
			t.Fatalf("failed to seed call: %v", err)
		}

		rs := NewReminderService(db)
		if err := rs.SendCallReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var reloaded Models.VideoCall
		if err := db.First(&reloaded, call.ID).Error; err != nil {
			t.Fatalf("failed to reload call: %v", err)
		}
		if reloaded.ReminderSent {
			t.Error("expected latch to stay unset after a failed send")
		}
	})
}

func TestSendMedicationReminders(t *testing.T) {
	t.Run("DueReminderWithMedicationSendsAndLatches", func(t *testing.T) {
		db := openTestDB(t)
		sent := stubMailer(t)
		user, _ := seedParties(t, db)

		med := Models.Medication{PrescriptionID: 1, Name: "Amoxicillin", Dosage: "500mg"}
		if err := db.Create(&med).Error; err != nil {
			t.Fatalf("failed to seed medication: %v", err)
		}
		reminder := Models.Reminder{
			UserID:           user.ID,
			MedicationID:     &med.ID,
			ReminderDateTime: time.Now().Add(-1 * time.Hour),
		}
		if err := db.Create(&reminder).Error; err != nil {
			t.Fatalf("failed to seed reminder: %v", err)
		}

		rs := NewReminderService(db)
		if err := rs.SendMedicationReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(*sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(*sent))
		}
		body := (*sent)[0].Body
		if !strings.Contains(body, "Amoxicillin") || !strings.Contains(body, "500mg") {
			t.Errorf("email body missing medication details: %q", body)
		}

		var reloaded Models.Reminder
		if err := db.First(&reloaded, reminder.ID).Error; err != nil {
			t.Fatalf("failed to reload reminder: %v", err)
		}
		if !reloaded.IsSent {
			t.Error("expected is_sent latch to be set")
		}

		if err := rs.SendMedicationReminders(); err != nil {
			t.Fatalf("unexpected error on second sweep: %v", err)
		}
		if len(*sent) != 1 {
			t.Errorf("expected no resend, got %d total", len(*sent))
		}
	})

	t.Run("CustomReminderUsesCustomMessage", func(t *testing.T) {
		db := openTestDB(t)
		sent := stubMailer(t)
		user, _ := seedParties(t, db)

		reminder := Models.Reminder{
			UserID:           user.ID,
			ReminderDateTime: time.Now().Add(-time.Minute),
			CustomMessage:    "Drink water before bed",
		}
		if err := db.Create(&reminder).Error; err != nil {
			t.Fatalf("failed to seed reminder: %v", err)
		}

		rs := NewReminderService(db)
		if err := rs.SendMedicationReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(*sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(*sent))
		}
		if !strings.Contains((*sent)[0].Body, "Drink water before bed") {
			t.Errorf("email body missing custom message: %q", (*sent)[0].Body)
		}
	})

	t.Run("FutureRemindersWait", func(t *testing.T) {
		db := openTestDB(t)
		sent := stubMailer(t)
		user, _ := seedParties(t, db)

		reminder := Models.Reminder{
			UserID:           user.ID,
			ReminderDateTime: time.Now().Add(time.Hour),
			CustomMessage:    "Not yet",
		}
		if err := db.Create(&reminder).Error; err != nil {
			t.Fatalf("failed to seed reminder: %v", err)
		}

		rs := NewReminderService(db)
		if err := rs.SendMedicationReminders(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(*sent) != 0 {
			t.Errorf("expected no emails before the due time, got %d", len(*sent))
		}
	})
}
