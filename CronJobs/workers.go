package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"

	"github.com/zygisk-enc/caresync/Mailer"
	"github.com/zygisk-enc/caresync/Models"
)

// ReminderService owns the periodic sweep for video-call and medication
// reminders. Delivery is at-least-once: the latch is flipped and saved
// right after a successful send, so a crash between send and save causes
// a duplicate on the next tick.
type ReminderService struct {
	DB *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		DB: db,
	}
}

// StartReminderCron schedules both sweeps at a 60 second interval.
func (rs *ReminderService) StartReminderCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Minutes().Do(func() {
		if err := rs.SendCallReminders(); err != nil {
			log.Printf("Error sending call reminders: %v", err)
		}
	})

	scheduler.Every(1).Minutes().Do(func() {
		if err := rs.SendMedicationReminders(); err != nil {
			log.Printf("Error sending medication reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Reminder cron jobs started")

	return scheduler
}

// SendCallReminders emails both parties of every approved call whose start
// falls in [now+1min, now+2min). The narrow band plus the 60s interval
// means a call is considered by at most two ticks before the latch lands.
func (rs *ReminderService) SendCallReminders() error {
	now := time.Now()

	windowStart := now.Add(1 * time.Minute)
	windowEnd := now.Add(2 * time.Minute)

	var calls []Models.VideoCall
	result := rs.DB.
		Where("status = ? AND reminder_sent = ? AND scheduled_time >= ? AND scheduled_time < ?",
			Models.CallApproved, false, windowStart, windowEnd).
		Find(&calls)
	if result.Error != nil {
		return fmt.Errorf("failed to query upcoming calls: %w", result.Error)
	}

	for _, call := range calls {
		var user Models.User
		if err := rs.DB.First(&user, call.UserID).Error; err != nil {
			log.Printf("Failed to find user for call ID %d: %v", call.ID, err)
			continue
		}
		var doctor Models.Doctor
		if err := rs.DB.First(&doctor, call.DoctorID).Error; err != nil {
			log.Printf("Failed to find doctor for call ID %d: %v", call.ID, err)
			continue
		}

		subject := "Reminder: Your Video Call is about to start!"
		userBody := fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder that your video call with Dr. %s is starting in one minute. The 'Join Call' button is now active.",
			user.FullName, doctor.FullName)
		doctorBody := fmt.Sprintf(
			"Hello Dr. %s,\n\nThis is a reminder that your video call with %s is starting in one minute. The 'Join Call' button is now active.",
			doctor.FullName, user.FullName)

		if err := Mailer.Send([]string{user.Email}, subject, userBody); err != nil {
			log.Printf("Failed to send call reminder to %s: %v", user.Email, err)
			continue
		}
		if err := Mailer.Send([]string{doctor.Email}, subject, doctorBody); err != nil {
			log.Printf("Failed to send call reminder to %s: %v", doctor.Email, err)
			continue
		}

		// Latch immediately so the next tick skips this call.
		if err := rs.DB.Model(&Models.VideoCall{}).Where("id = ?", call.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to latch reminder for call ID %d: %v", call.ID, err)
		}
	}

	return nil
}

// SendMedicationReminders emails every reminder that is due and unsent.
// Missed ticks catch up on the next run since the predicate is "due in
// the past".
func (rs *ReminderService) SendMedicationReminders() error {
	now := time.Now()

	var reminders []Models.Reminder
	result := rs.DB.
		Where("is_sent = ? AND reminder_datetime <= ?", false, now).
		Find(&reminders)
	if result.Error != nil {
		return fmt.Errorf("failed to query due reminders: %w", result.Error)
	}

	for _, reminder := range reminders {
		var user Models.User
		if err := rs.DB.First(&user, reminder.UserID).Error; err != nil {
			log.Printf("Failed to find user for reminder ID %d: %v", reminder.ID, err)
			continue
		}

		var body string
		if reminder.MedicationID != nil {
			var med Models.Medication
			if err := rs.DB.First(&med, *reminder.MedicationID).Error; err != nil {
				log.Printf("Failed to find medication for reminder ID %d: %v", reminder.ID, err)
				continue
			}
			dosage := med.Dosage
			if dosage == "" {
				dosage = "As prescribed"
			}
			body = fmt.Sprintf(
				"Hello %s,\n\nThis is your reminder to take your medication:\n\n- Medication: %s\n- Dosage: %s\n\n",
				user.FullName, med.Name, dosage)
			if reminder.CustomMessage != "" {
				body += fmt.Sprintf("Your personal note: '%s'\n", reminder.CustomMessage)
			}
		} else {
			body = fmt.Sprintf(
				"Hello %s,\n\nThis is your custom reminder from CareSync:\n\n'%s'\n",
				user.FullName, reminder.CustomMessage)
		}

		if err := Mailer.Send([]string{user.Email}, "Medication Reminder from CareSync", body); err != nil {
			log.Printf("Failed to send reminder to %s: %v", user.Email, err)
			continue
		}

		if err := rs.DB.Model(&Models.Reminder{}).Where("id = ?", reminder.ID).
			Update("is_sent", true).Error; err != nil {
			log.Printf("Failed to latch reminder ID %d: %v", reminder.ID, err)
		}
	}

	return nil
}
