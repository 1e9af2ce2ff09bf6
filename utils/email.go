package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

var loadEnvOnce sync.Once

// SendEmail delivers one HTML mail through the configured SMTP account.
// Booking reminders and OTP mails are best-effort; callers log and move on.
func SendEmail(to, subject, body string) error {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("glowbook: no .env file, using process environment")
		}
	})
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)
	return d.DialAndSend(m)
}
