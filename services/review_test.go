package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
)

func newReviewFixture(t *testing.T) (*ReviewService, *gorm.DB, *models.User, *models.User) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewReviewService(db, NewNotificationService(db, nil))
	client := createUser(t, db, "client", models.RoleUser, models.AccountTypeClient)
	owner := createUser(t, db, "owner", models.RoleUser, models.AccountTypeProvider)
	createProvider(t, db, owner, models.TrustVerified)
	return svc, db, client, owner
}

func TestReviewSubmit(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()
	b := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	r, err := svc.Submit(ctx, b.ID, client.ID, 5, "Great cut, will be back.")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.ProviderID != owner.ID {
		t.Fatalf("review bound to wrong provider: %d", r.ProviderID)
	}

	reviews, err := svc.ListForProvider(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
}

func TestReviewCommentLength(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()
	b := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	// One rune short of the minimum.
	if _, err := svc.Submit(ctx, b.ID, client.ID, 4, "only nine"); !errors.Is(err, ErrCommentTooShort) {
		t.Fatalf("9 runes: expected ErrCommentTooShort, got %v", err)
	}
	// Exactly at the minimum.
	if _, err := svc.Submit(ctx, b.ID, client.ID, 4, "just right"); err != nil {
		t.Fatalf("10 runes: %v", err)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()
	b := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Submit(ctx, b.ID, client.ID, rating, "perfectly valid comment"); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestReviewOncePerBooking(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()
	b := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	if _, err := svc.Submit(ctx, b.ID, client.ID, 5, "first impressions count"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, b.ID, client.ID, 1, "changed my mind entirely"); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestReviewEligibility(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()

	// A confirmed booking whose slot has passed counts as served.
	served := insertBooking(t, db, client.ID, owner.ID, models.BookingConfirmed, pastDate())
	ok, err := svc.CanReview(ctx, served.ID)
	if err != nil || !ok {
		t.Fatalf("past confirmed: expected eligible, got %v %v", ok, err)
	}

	// Cancelled bookings never qualify, past or not.
	cancelled := insertBooking(t, db, client.ID, owner.ID, models.BookingCancelled, pastDate())
	ok, err = svc.CanReview(ctx, cancelled.ID)
	if err != nil || ok {
		t.Fatalf("cancelled: expected ineligible, got %v %v", ok, err)
	}
	if _, err := svc.Submit(ctx, cancelled.ID, client.ID, 3, "never actually happened"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled submit: expected ErrInvalidTransition, got %v", err)
	}

	// Upcoming bookings are too early.
	upcoming := insertBooking(t, db, client.ID, owner.ID, models.BookingConfirmed, futureDate())
	if _, err := svc.Submit(ctx, upcoming.ID, client.ID, 3, "jumping the gun here"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("upcoming submit: expected ErrInvalidTransition, got %v", err)
	}
}

func TestReviewOnlyBookingClient(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()
	stranger := createUser(t, db, "stranger", models.RoleUser, models.AccountTypeClient)
	b := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	if _, err := svc.Submit(ctx, b.ID, stranger.ID, 5, "was not even there"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReviewProviderResponse(t *testing.T) {
	svc, db, client, owner := newReviewFixture(t)
	ctx := context.Background()
	b := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	r, err := svc.Submit(ctx, b.ID, client.ID, 2, "chair was uncomfortable")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Only the reviewed provider may respond.
	other := createUser(t, db, "other", models.RoleUser, models.AccountTypeProvider)
	if _, err := svc.Respond(ctx, r.ID, other.ID, "sorry about that"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("wrong provider: expected ErrForbidden, got %v", err)
	}

	got, err := svc.Respond(ctx, r.ID, owner.ID, "new chairs arriving next month")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(got.ProviderResponse, "new chairs") {
		t.Fatalf("response not stored: %q", got.ProviderResponse)
	}
}
