package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the user's notifications, newest first.
func ListNotifications(c *fiber.Ctx) error {
	list, err := notifier().List(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// MarkNotificationRead marks one notification read. Repeats are no-ops.
func MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification id",
		})
	}
	if err := notifier().MarkRead(c.Context(), currentUserID(c), uint(notificationID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Marked read",
	})
}

// MarkAllNotificationsRead marks the whole feed read.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := notifier().MarkAllRead(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "All marked read",
	})
}

// DeleteNotification removes one notification. Repeats are no-ops.
func DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification id",
		})
	}
	if err := notifier().Delete(c.Context(), currentUserID(c), uint(notificationID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Deleted",
	})
}

// DeleteAllNotifications clears the feed.
func DeleteAllNotifications(c *fiber.Ctx) error {
	if err := notifier().DeleteAll(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "All deleted",
	})
}

// StreamNotifications pushes the live feed over server-sent events. The
// subscription dies with the connection.
func StreamNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	// The subscription context hangs off the connection: fasthttp cancels
	// the request context when the client goes away, which tears down the
	// redis subscription even if no further message ever arrives.
	reqCtx := c.Context()
	ctx, cancel := context.WithCancel(reqCtx)
	feed, err := notifier().Subscribe(ctx, userID)
	if err != nil {
		cancel()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Live feed unavailable",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	reqCtx.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for {
			select {
			case <-reqCtx.Done():
				return
			case n, ok := <-feed:
				if !ok {
					return
				}
				data, err := json.Marshal(n)
				if err != nil {
					log.Printf("notification stream encode failed for user %d: %v", userID, err)
					continue
				}
				if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
