package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
)

// Reviews shorter than this read like noise; the floor is deliberate.
const minCommentLength = 10

// ReviewService gates review creation on booking state and enforces
// one review per booking.
type ReviewService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReviewService(db *gorm.DB, notifier *NotificationService) *ReviewService {
	return &ReviewService{db: db, notifier: notifier}
}

// eligible reports whether the booking itself (ignoring existing reviews)
// may carry a review: completed, or past its date without being cancelled.
func eligible(b *models.Booking, now time.Time) bool {
	if b.Status == models.BookingCompleted {
		return true
	}
	return b.Status != models.BookingCancelled && b.IsPast(now)
}

// CanReview reports whether a review may currently be attached to the
// booking.
func (s *ReviewService) CanReview(ctx context.Context, bookingID uint) (bool, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrNotFound
		}
		return false, err
	}
	if !eligible(&booking, time.Now()) {
		return false, nil
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Where("booking_id = ?", bookingID).Count(&existing).Error; err != nil {
		return false, err
	}
	return existing == 0, nil
}

// Submit attaches a review to a booking. The unique index on booking_id
// backs the one-review-per-booking invariant: when two submissions race,
// the database rejects the second and it surfaces as ErrAlreadyReviewed.
func (s *ReviewService) Submit(ctx context.Context, bookingID, clientID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(comment) < minCommentLength {
		return nil, ErrCommentTooShort
	}

	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if booking.ClientID != clientID {
		return nil, ErrForbidden
	}
	if !eligible(&booking, time.Now()) {
		return nil, ErrInvalidTransition
	}

	review := models.Review{
		BookingID:  bookingID,
		ClientID:   clientID,
		ProviderID: booking.ProviderID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	s.notifier.NotifyQuiet(ctx, booking.ProviderID, models.NotifReviewReceived, map[string]interface{}{
		"review_id":  review.ID,
		"booking_id": bookingID,
		"rating":     rating,
	})
	return &review, nil
}

// Respond lets the reviewed provider attach one public reply.
func (s *ReviewService) Respond(ctx context.Context, reviewID, providerUserID uint, response string) (*models.Review, error) {
	if response == "" {
		return nil, ErrBadRequest
	}
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.ProviderID != providerUserID {
		return nil, ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(&review).Update("provider_response", response).Error; err != nil {
		return nil, err
	}
	review.ProviderResponse = response
	return &review, nil
}

// ListForProvider returns a provider's reviews, newest first.
func (s *ReviewService) ListForProvider(ctx context.Context, providerUserID uint) ([]models.Review, error) {
	var out []models.Review
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerUserID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
