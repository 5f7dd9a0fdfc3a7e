package Routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Chat"
	"github.com/zygisk-enc/caresync/Controllers"
	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/SSE"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.RegisterUser)
		public.POST("/register/doctor", Controllers.RegisterDoctor)
		public.POST("/admin/login", Controllers.AdminLogin)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	{
		// Account-related routes
		authorized.GET("/account", Controllers.CurrentAccount)
		authorized.POST("/SaveFcmToken", Controllers.SaveFcmToken)

		// Doctor directory routes
		authorized.GET("/FindDoctors", Controllers.FindDoctors)
		authorized.POST("/GetDoctorDetails", Controllers.GetDoctorDetails)

		// Notification-related routes
		authorized.GET("/FetchNotifications", Controllers.FetchNotifications)
		authorized.POST("/MarkNotificationsRead", Controllers.MarkNotificationsRead)

		// Blood bank routes
		authorized.GET("/FetchBloodBanks", Controllers.FetchBloodBanks)

		// AI assistant routes
		authorized.POST("/Prompt", Controllers.HandlePrompt)

		// Health history routes
		authorized.POST("/FetchPatientHistory", Controllers.FetchPatientHistory)

		// Chat-related routes
		authorized.POST("/OpenConversation", Controllers.OpenConversation)
		authorized.POST("/FetchChatHistory", Controllers.FetchChatHistory)

		// Call page authorization
		authorized.POST("/JoinCall", Controllers.JoinCall)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Patient-only routes
	patient := router.Group("/api/protected/user")
	patient.Use(Middleware.JwtAuthMiddleware())
	patient.Use(Middleware.RequireRole(Models.RoleUser))
	{
		patient.POST("/BookAppointment", Controllers.BookAppointment)
		patient.POST("/CancelAppointment", Controllers.CancelAppointment)
		patient.GET("/FetchAppointments", Controllers.FetchUserAppointments)

		patient.POST("/RequestCall", Controllers.RequestCall)
		patient.GET("/FetchCalls", Controllers.FetchUserCalls)

		patient.GET("/FetchPrescriptions", Controllers.FetchUserPrescriptions)
		patient.POST("/GetPrescription", Controllers.GetPrescription)

		patient.POST("/CreateReminders", Controllers.CreateReminders)
		patient.GET("/FetchReminders", Controllers.FetchReminders)
		patient.POST("/DeleteReminder", Controllers.DeleteReminder)

		patient.GET("/FetchDashboardData", Controllers.FetchDashboardData)
	}

	// Doctor-only routes
	doctor := router.Group("/api/protected/doctor")
	doctor.Use(Middleware.JwtAuthMiddleware())
	doctor.Use(Middleware.RequireRole(Models.RoleDoctor))
	{
		doctor.POST("/UpdateAppointmentStatus", Controllers.UpdateAppointmentStatus)
		doctor.GET("/FetchAppointments", Controllers.FetchDoctorAppointments)

		doctor.POST("/UpdateCallStatus", Controllers.UpdateCallStatus)
		doctor.GET("/FetchCalls", Controllers.FetchDoctorCalls)

		doctor.POST("/ToggleAvailability", Controllers.ToggleAvailability)

		doctor.GET("/FetchPendingPrescriptionCalls", Controllers.FetchPendingPrescriptionCalls)
		doctor.POST("/WritePrescription", Controllers.WritePrescription)
		doctor.GET("/FetchPrescriptions", Controllers.FetchDoctorPrescriptions)
		doctor.POST("/GetPrescription", Controllers.GetPrescription)

		doctor.GET("/FetchChats", Controllers.FetchDoctorChats)
	}

	// Admin-only routes
	admin := router.Group("/api/protected/admin")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.RequireRole(Models.RoleAdmin))
	{
		admin.GET("/FetchPendingDoctors", Controllers.FetchPendingDoctors)
		admin.POST("/ApproveDoctor", Controllers.ApproveDoctor)
		admin.POST("/RejectDoctor", Controllers.RejectDoctor)
		admin.POST("/ImportBloodBanks", Controllers.ImportBloodBanks)
	}

	// WebSocket relay for chat and call signaling
	router.GET("/ws", Chat.HandleWebSocket)
}
