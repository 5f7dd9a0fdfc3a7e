package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/CronJobs"
	"github.com/zygisk-enc/caresync/FirebaseMessaging"
	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/Routes"
)

func main() {
	Models.ConnectDataBase()
	FirebaseMessaging.Setup()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	Routes.ConfigRoutes(router)

	reminderService := CronJobs.NewReminderService(Models.DB)
	reminderService.StartReminderCron()

	if err := router.Run(":5000"); err != nil {
		log.Fatal(err)
	}
}
