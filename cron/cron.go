package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/glowbook/glowbook/db"
	"github.com/glowbook/glowbook/models"
	"github.com/glowbook/glowbook/redis"
	"github.com/glowbook/glowbook/services"
	"github.com/glowbook/glowbook/utils"
)

// StartCronJobs initializes and starts the scheduler for booking reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for bookings in the next hour
	_, err := c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders finds confirmed bookings starting in roughly an
// hour and reminds both parties. The window is a little wider than the
// one-minute tick so a slow sweep cannot skip a slot.
func sendBookingReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	// Bookings store the date at midnight and the slot separately, so the
	// day is filtered in SQL and the slot in Go.
	var bookings []models.Booking
	err := db.DB.
		Where("status = ? AND date BETWEEN ? AND ?", models.BookingConfirmed, dayFloor(startWindow), dayFloor(endWindow)).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	notifier := services.NewNotificationService(db.DB, redis.Client)
	ctx := context.Background()

	for _, booking := range bookings {
		startsAt := booking.StartsAt()
		if startsAt.Before(startWindow) || startsAt.After(endWindow) {
			continue
		}

		payload := map[string]interface{}{
			"booking_id": booking.ID,
			"time_slot":  booking.TimeSlot,
		}
		notifier.NotifyQuiet(ctx, booking.ClientID, models.NotifBookingReminder, payload)
		notifier.NotifyQuiet(ctx, booking.ProviderID, models.NotifBookingReminder, payload)

		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder email for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d", booking.ID)
	}
}

func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sendReminderEmail mails the client about the upcoming appointment.
func sendReminderEmail(booking *models.Booking) error {
	var client models.User
	if err := db.DB.First(&client, booking.ClientID).Error; err != nil {
		return err
	}

	subject := "Reminder: your appointment is in an hour"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>This is a reminder that your appointment is coming up at <b>%s</b>.</p>
		<p>See you soon!</p>
	`, client.Name, booking.TimeSlot)

	return utils.SendEmail(client.Email, subject, body)
}
