package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
	"github.com/glowbook/glowbook/utils"
)

// BookingService owns the booking lifecycle. All engines are stateless over
// the store and can be built per request.
type BookingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewBookingService(db *gorm.DB, notifier *NotificationService) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

// BookingItemInput is one service picked by the client, snapshotted into
// the booking.
type BookingItemInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type CreateBookingInput struct {
	ClientID   uint
	ProviderID uint // provider's user id
	Items      []BookingItemInput
	Date       time.Time
	TimeSlot   string // "HH:MM"
}

// Create books a slot with a verified, active provider. The new booking
// starts in pending and the provider is notified.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.ClientID == 0 || in.ProviderID == 0 || in.TimeSlot == "" || in.Date.IsZero() {
		return nil, ErrBadRequest
	}
	if len(in.Items) == 0 {
		return nil, ErrBadRequest
	}
	for _, it := range in.Items {
		if it.Name == "" || it.Price < 0 {
			return nil, ErrBadRequest
		}
	}

	var provider models.Provider
	if err := s.db.WithContext(ctx).Where("user_id = ?", in.ProviderID).First(&provider).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Only verified and active providers are visible to the booking engine.
	if !provider.Bookable() {
		return nil, ErrForbidden
	}

	var hours []models.WorkingHours
	if err := s.db.WithContext(ctx).Where("provider_id = ?", provider.ID).Find(&hours).Error; err != nil {
		return nil, err
	}
	open, err := utils.SlotWithinWorkingHours(hours, in.Date, in.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrOutsideWorkingHours
	}

	booking := models.Booking{
		ClientID:   in.ClientID,
		ProviderID: in.ProviderID,
		Date:       in.Date,
		TimeSlot:   in.TimeSlot,
		Status:     models.BookingPending,
	}
	for _, it := range in.Items {
		booking.Items = append(booking.Items, models.BookingItem{
			Name:     it.Name,
			Price:    it.Price,
			Duration: it.Duration,
		})
		booking.TotalPrice += it.Price
	}

	// Create inside a transaction so the slot-overlap check and the insert
	// see the same state. The advisory lock serializes concurrent creates
	// for the same slot; without it two read-committed transactions could
	// both pass the count and double-book.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slotKey := fmt.Sprintf("booking:%d:%s:%s", in.ProviderID, in.Date.Format("2006-01-02"), in.TimeSlot)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", slotKey).Error; err != nil {
			return err
		}

		var clash int64
		if err := tx.Model(&models.Booking{}).
			Where("provider_id = ? AND date = ? AND time_slot = ?", in.ProviderID, in.Date, in.TimeSlot).
			Where("status IN ?", []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return ErrSlotTaken
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyQuiet(ctx, in.ProviderID, models.NotifBookingCreated, map[string]interface{}{
		"booking_id": booking.ID,
		"client_id":  in.ClientID,
		"date":       in.Date.Format("2006-01-02"),
		"time_slot":  in.TimeSlot,
	})
	return &booking, nil
}

// Transition moves a booking along one edge of the state graph on behalf
// of actorID. Rights:
//   - the client may only cancel;
//   - the provider may confirm, complete, or cancel;
//   - staff may only force-cancel, with a mandatory reason.
//
// The write is compare-and-swap on (status, status_version): of two
// concurrent conflicting transitions exactly one wins, the loser gets
// ErrConflict.
func (s *BookingService) Transition(ctx context.Context, bookingID, actorID uint, newStatus models.BookingStatus, reason string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var actor models.User
	if err := s.db.WithContext(ctx).First(&actor, actorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// A missing edge is InvalidTransition no matter who asks; rights are
	// only consulted for edges that exist.
	if !models.CanTransitionBooking(booking.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	byAdmin := false
	switch {
	case actorID == booking.ClientID:
		if newStatus != models.BookingCancelled {
			return nil, ErrForbidden
		}
	case actorID == booking.ProviderID:
		// any edge the graph allows
	case actor.IsStaff():
		// Staff may only force a cancellation; confirming or completing
		// on a provider's behalf would also make the booking
		// review-eligible, a call that belongs to the parties alone.
		if newStatus != models.BookingCancelled {
			return nil, ErrForbidden
		}
		if reason == "" {
			return nil, ErrBadRequest
		}
		byAdmin = true
	default:
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{
		"status":         newStatus,
		"status_version": booking.StatusVersion + 1,
	}
	if newStatus == models.BookingCancelled {
		updates["cancel_reason"] = reason
	}

	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ? AND status_version = ?", booking.ID, booking.Status, booking.StatusVersion).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}

	booking.Status = newStatus
	booking.StatusVersion++
	if newStatus == models.BookingCancelled {
		booking.CancelReason = reason
	}

	s.fanOut(ctx, &booking, actorID, byAdmin)
	return &booking, nil
}

// fanOut notifies the counterparty of a transition; an admin-forced
// cancellation notifies both sides.
func (s *BookingService) fanOut(ctx context.Context, b *models.Booking, actorID uint, byAdmin bool) {
	var ntype string
	switch b.Status {
	case models.BookingConfirmed:
		ntype = models.NotifBookingConfirmed
	case models.BookingCompleted:
		ntype = models.NotifBookingCompleted
	case models.BookingCancelled:
		ntype = models.NotifBookingCancelled
	default:
		return
	}

	payload := map[string]interface{}{
		"booking_id": b.ID,
		"status":     b.Status,
	}
	if b.CancelReason != "" {
		payload["reason"] = b.CancelReason
	}

	switch {
	case byAdmin:
		s.notifier.NotifyQuiet(ctx, b.ClientID, ntype, payload)
		s.notifier.NotifyQuiet(ctx, b.ProviderID, ntype, payload)
	case actorID == b.ClientID:
		s.notifier.NotifyQuiet(ctx, b.ProviderID, ntype, payload)
	default:
		s.notifier.NotifyQuiet(ctx, b.ClientID, ntype, payload)
	}
}

func (s *BookingService) Get(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Items").First(&booking, bookingID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForClient splits a client's bookings into upcoming and past. "Past"
// is computed by date comparison only; an overdue pending or confirmed
// booking keeps its status until someone transitions it explicitly.
func (s *BookingService) ListForClient(ctx context.Context, clientID uint) (upcoming, past []models.Booking, err error) {
	var all []models.Booking
	err = s.db.WithContext(ctx).
		Preload("Items").
		Where("client_id = ?", clientID).
		Order("date DESC, time_slot DESC").
		Find(&all).Error
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	for _, b := range all {
		if b.Terminal() || b.IsPast(now) {
			past = append(past, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}
	return upcoming, past, nil
}

// ListForProvider is the provider-side calendar view.
func (s *BookingService) ListForProvider(ctx context.Context, providerUserID uint, statuses []models.BookingStatus) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).
		Preload("Items").
		Where("provider_id = ?", providerUserID).
		Order("date ASC, time_slot ASC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []models.Booking
	err := q.Find(&out).Error
	return out, err
}
