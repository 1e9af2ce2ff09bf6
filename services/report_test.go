package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
)

func newReportFixture(t *testing.T) (*ReportService, *gorm.DB, *models.Review, *models.User) {
	t.Helper()
	db := setupTestDB(t)
	notifier := NewNotificationService(db, nil)
	svc := NewReportService(db, notifier)

	client := createUser(t, db, "client", models.RoleUser, models.AccountTypeClient)
	owner := createUser(t, db, "owner", models.RoleUser, models.AccountTypeProvider)
	createProvider(t, db, owner, models.TrustVerified)
	booking := insertBooking(t, db, client.ID, owner.ID, models.BookingCompleted, pastDate())

	reviews := NewReviewService(db, notifier)
	review, err := reviews.Submit(context.Background(), booking.ID, client.ID, 1, "worst experience of my life")
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}

	admin := createUser(t, db, "admin", models.RoleAdmin, models.AccountTypeClient)
	return svc, db, review, admin
}

func TestReportFile(t *testing.T) {
	svc, db, review, _ := newReportFixture(t)
	ctx := context.Background()
	reporter := createUser(t, db, "reporter", models.RoleUser, models.AccountTypeClient)

	if _, err := svc.Report(ctx, review.ID, reporter.ID, ""); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("empty reason: expected ErrBadRequest, got %v", err)
	}
	if _, err := svc.Report(ctx, 9999, reporter.ID, "made up"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing review: expected ErrNotFound, got %v", err)
	}

	r, err := svc.Report(ctx, review.ID, reporter.ID, "abusive language")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Status != models.ReportPending {
		t.Fatalf("expected pending, got %s", r.Status)
	}

	// The same reporter may file again; moderation deduplicates by eye.
	if _, err := svc.Report(ctx, review.ID, reporter.ID, "still abusive"); err != nil {
		t.Fatalf("duplicate report: %v", err)
	}

	queue, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 pending reports, got %d", len(queue))
	}
}

func TestReportDismissKeepsReview(t *testing.T) {
	svc, db, review, admin := newReportFixture(t)
	ctx := context.Background()
	reporter := createUser(t, db, "reporter", models.RoleUser, models.AccountTypeClient)

	r, err := svc.Report(ctx, review.ID, reporter.ID, "did not like the tone")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	resolved, err := svc.Resolve(ctx, r.ID, admin.ID, models.ReportDismissed, "review is within the rules")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != models.ReportDismissed || resolved.ResolvedBy != admin.ID {
		t.Fatalf("dismiss not recorded: %+v", resolved)
	}

	var reviews int64
	db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&reviews)
	if reviews != 1 {
		t.Fatalf("dismiss deleted the review")
	}
}

func TestReportActionTakenDeletesReview(t *testing.T) {
	svc, db, review, admin := newReportFixture(t)
	ctx := context.Background()
	reporter := createUser(t, db, "reporter", models.RoleUser, models.AccountTypeClient)

	r, err := svc.Report(ctx, review.ID, reporter.ID, "fabricated, client never showed")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if _, err := svc.Resolve(ctx, r.ID, admin.ID, models.ReportActionTaken, "confirmed with provider"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var reviews int64
	db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&reviews)
	if reviews != 0 {
		t.Fatalf("action_taken left the review in place")
	}

	// The review author hears about the removal.
	var notifs int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", review.ClientID, models.NotifReviewRemoved).
		Count(&notifs)
	if notifs != 1 {
		t.Fatalf("expected removal notification, got %d", notifs)
	}
}

func TestReportResolveIsTerminal(t *testing.T) {
	svc, db, review, admin := newReportFixture(t)
	ctx := context.Background()
	reporter := createUser(t, db, "reporter", models.RoleUser, models.AccountTypeClient)

	r, err := svc.Report(ctx, review.ID, reporter.ID, "spam")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, err := svc.Resolve(ctx, r.ID, admin.ID, models.ReportDismissed, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Neither outcome can be applied twice, and outcomes cannot be swapped.
	if _, err := svc.Resolve(ctx, r.ID, admin.ID, models.ReportActionTaken, "second thoughts"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("re-resolve: expected ErrInvalidTransition, got %v", err)
	}

	// Resolving with a non-terminal outcome is rejected outright.
	other, err := svc.Report(ctx, review.ID, reporter.ID, "spam again")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, err := svc.Resolve(ctx, other.ID, admin.ID, models.ReportPending, ""); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("pending outcome: expected ErrBadRequest, got %v", err)
	}
}

// Two copies of the same report resolved against the same review: the
// second action_taken tolerates the already-deleted review.
func TestReportActionTakenTwiceOverSameReview(t *testing.T) {
	svc, db, review, admin := newReportFixture(t)
	ctx := context.Background()
	reporter := createUser(t, db, "reporter", models.RoleUser, models.AccountTypeClient)

	first, err := svc.Report(ctx, review.ID, reporter.ID, "offensive")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	second, err := svc.Report(ctx, review.ID, reporter.ID, "offensive, again")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if _, err := svc.Resolve(ctx, first.ID, admin.ID, models.ReportActionTaken, ""); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	resolved, err := svc.Resolve(ctx, second.ID, admin.ID, models.ReportActionTaken, "review already gone")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if resolved.Status != models.ReportActionTaken {
		t.Fatalf("expected action_taken, got %s", resolved.Status)
	}
}
