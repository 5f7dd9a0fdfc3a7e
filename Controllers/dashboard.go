package Controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// FetchDashboardData aggregates the patient's KPI counts, the status
// breakdown for the chart, and recent prompt history.
func FetchDashboardData(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var totalAppointments, totalCalls, totalPrescriptions int64
	Models.DB.Model(&Models.Appointment{}).Where("user_id = ?", actor.ID).Count(&totalAppointments)
	Models.DB.Model(&Models.VideoCall{}).Where("user_id = ?", actor.ID).Count(&totalCalls)
	Models.DB.Model(&Models.Prescription{}).Where("user_id = ?", actor.ID).Count(&totalPrescriptions)

	chartData := map[string]int64{
		"Approved":             0,
		"Pending":              0,
		"Rejected/Cancelled":   0,
		"Prescriptions Issued": totalPrescriptions,
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var appointmentStatuses []statusCount
	Models.DB.Model(&Models.Appointment{}).
		Select("status, COUNT(status) AS count").
		Where("user_id = ?", actor.ID).Group("status").Scan(&appointmentStatuses)
	for _, row := range appointmentStatuses {
		switch row.Status {
		case Models.AppointmentConfirmed:
			chartData["Approved"] += row.Count
		case Models.AppointmentPending:
			chartData["Pending"] += row.Count
		case Models.AppointmentRejected, Models.AppointmentCancelled:
			chartData["Rejected/Cancelled"] += row.Count
		}
	}

	var callStatuses []statusCount
	Models.DB.Model(&Models.VideoCall{}).
		Select("status, COUNT(status) AS count").
		Where("user_id = ?", actor.ID).Group("status").Scan(&callStatuses)
	for _, row := range callStatuses {
		switch row.Status {
		case Models.CallApproved:
			chartData["Approved"] += row.Count
		case Models.CallPending:
			chartData["Pending"] += row.Count
		case Models.CallRejected:
			chartData["Rejected/Cancelled"] += row.Count
		}
	}

	var prompts []Models.PromptHistory
	Models.DB.Where("user_id = ?", actor.ID).
		Order("created_at DESC").Limit(10).Find(&prompts)

	c.JSON(http.StatusOK, gin.H{
		"kpis": gin.H{
			"totalAppointments":  totalAppointments,
			"totalVideoCalls":    totalCalls,
			"totalPrescriptions": totalPrescriptions,
		},
		"chartData":     chartData,
		"promptHistory": prompts,
	})
}
