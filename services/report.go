package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
)

// ReportService runs the moderation workflow over user reports against
// reviews. Duplicate reports from the same reporter are allowed.
type ReportService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReportService(db *gorm.DB, notifier *NotificationService) *ReportService {
	return &ReportService{db: db, notifier: notifier}
}

// Report files a complaint against a review.
func (s *ReportService) Report(ctx context.Context, reviewID, reporterID uint, reason string) (*models.Report, error) {
	if reason == "" {
		return nil, ErrBadRequest
	}
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	report := models.Report{
		ReviewID:   reviewID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.ReportPending,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Resolve closes a pending report. action_taken cascades a hard delete of
// the reported review and notifies its author; dismiss leaves the review
// untouched. Both outcomes are terminal.
func (s *ReportService) Resolve(ctx context.Context, reportID, adminID uint, outcome models.ReportStatus, adminNote string) (*models.Report, error) {
	if outcome != models.ReportDismissed && outcome != models.ReportActionTaken {
		return nil, ErrBadRequest
	}

	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if report.Status != models.ReportPending {
		return nil, ErrInvalidTransition
	}

	var removed *models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional write: if another admin resolved it first, lose
		// cleanly instead of resolving twice.
		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", report.ID, models.ReportPending).
			Updates(map[string]interface{}{
				"status":      outcome,
				"admin_note":  adminNote,
				"resolved_by": adminID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if outcome == models.ReportActionTaken {
			var review models.Review
			if err := tx.First(&review, report.ReviewID).Error; err != nil {
				// The review may already be gone from an earlier action;
				// the report still resolves.
				if err == gorm.ErrRecordNotFound {
					return nil
				}
				return err
			}
			removed = &review
			return tx.Unscoped().Delete(&review).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Status = outcome
	report.AdminNote = adminNote
	report.ResolvedBy = adminID

	if removed != nil {
		s.notifier.NotifyQuiet(ctx, removed.ClientID, models.NotifReviewRemoved, map[string]interface{}{
			"review_id": removed.ID,
			"report_id": report.ID,
		})
	}
	return &report, nil
}

// ListPending is the moderation queue, oldest first.
func (s *ReportService) ListPending(ctx context.Context) ([]models.Report, error) {
	var out []models.Report
	err := s.db.WithContext(ctx).
		Where("status = ?", models.ReportPending).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
