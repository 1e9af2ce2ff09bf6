package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
)

// NotificationService persists notification records and fans them out to a
// per-user redis channel for live feeds. Persistence failures here never
// roll back the state change that triggered them: callers treat Notify as
// best-effort and this service logs instead of propagating.
type NotificationService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewNotificationService builds a dispatcher. rdb may be nil, in which case
// notifications are persisted but no live feed is published.
func NewNotificationService(db *gorm.DB, rdb *redis.Client) *NotificationService {
	return &NotificationService{db: db, rdb: rdb}
}

func channelFor(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}

// Notify persists a notification with read=false and publishes it to the
// recipient's channel. The returned error is for callers that do want to
// know; engines call NotifyQuiet instead.
func (s *NotificationService) Notify(ctx context.Context, recipientID uint, ntype string, payload map[string]interface{}) (*models.Notification, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	n := models.Notification{
		RecipientID: recipientID,
		Type:        ntype,
		Data:        string(data),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}

	if s.rdb != nil {
		msg, err := json.Marshal(n)
		if err == nil {
			if err := s.rdb.Publish(ctx, channelFor(recipientID), msg).Err(); err != nil {
				// Publishing is best-effort; the record is already stored.
				log.Printf("notification publish failed for user %d: %v", recipientID, err)
			}
		}
	}
	return &n, nil
}

// NotifyQuiet is the fire-and-forget form used by the engines: a failed
// dispatch is logged and suppressed so it can never mask the success of
// the primary operation.
func (s *NotificationService) NotifyQuiet(ctx context.Context, recipientID uint, ntype string, payload map[string]interface{}) {
	if _, err := s.Notify(ctx, recipientID, ntype, payload); err != nil {
		log.Printf("notification dispatch failed (recipient %d, type %s): %v", recipientID, ntype, err)
	}
}

// Subscribe opens a live feed of the user's notifications. The returned
// channel closes when ctx is cancelled; no goroutine outlives the
// subscription.
func (s *NotificationService) Subscribe(ctx context.Context, userID uint) (<-chan models.Notification, error) {
	if s.rdb == nil {
		return nil, ErrBadRequest
	}

	sub := s.rdb.Subscribe(ctx, channelFor(userID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan models.Notification)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var n models.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					log.Printf("bad notification payload on %s: %v", channelFor(userID), err)
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// MarkRead marks one of the user's notifications read. Marking an already
// read or missing notification is a no-op, not an error.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Update("read", true).Error
}

// MarkAllRead marks every notification of the user read. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// Delete removes one of the user's notifications. Deleting an already
// deleted id is a no-op.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Delete(&models.Notification{}).Error
}

// DeleteAll removes every notification of the user. Idempotent.
func (s *NotificationService) DeleteAll(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Delete(&models.Notification{}).Error
}
