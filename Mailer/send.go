package Mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	gomail "gopkg.in/gomail.v2"
)

// Send dispatches one message to its recipients synchronously. It is a
// package variable so the reminder sweep tests can stub the transport.
var Send = sendSMTP

func sendSMTP(to []string, subject, body string) error {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	server := os.Getenv("MAIL_SERVER")
	username := os.Getenv("MAIL_USERNAME")
	password := os.Getenv("MAIL_PASSWORD")
	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil {
		port = 587
	}

	message := gomail.NewMessage()
	message.SetHeader("From", username)
	message.SetHeader("To", to...)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(server, port, username, password)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send mail to %v: %w", to, err)
	}
	return nil
}
