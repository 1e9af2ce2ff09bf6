package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
)

// ProviderService owns the provider trust-state workflow. Trust state is
// admin-owned; the provider's own on/off switch is SetActive.
type ProviderService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewProviderService(db *gorm.DB, notifier *NotificationService) *ProviderService {
	return &ProviderService{db: db, notifier: notifier}
}

func (s *ProviderService) get(ctx context.Context, providerID uint) (*models.Provider, error) {
	var p models.Provider
	if err := s.db.WithContext(ctx).First(&p, providerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// changeTrust performs a conditional write from the provider's loaded trust
// state; a lost race returns ErrConflict rather than clobbering an update
// another admin just made.
func (s *ProviderService) changeTrust(ctx context.Context, p *models.Provider, to models.TrustState, updates map[string]interface{}) error {
	if !models.CanChangeTrust(p.TrustState, to) {
		return ErrInvalidTransition
	}
	updates["trust_state"] = to

	res := s.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ? AND trust_state = ?", p.ID, p.TrustState).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	p.TrustState = to
	return nil
}

// Verify moves a pending provider to verified. The profile must be
// complete first: a business name, a location, and at least one catalog
// service.
func (s *ProviderService) Verify(ctx context.Context, providerID, adminID uint) (*models.Provider, error) {
	p, err := s.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if p.BusinessName == "" || p.City == "" {
		return nil, ErrIncompleteProfile
	}
	var services int64
	if err := s.db.WithContext(ctx).Model(&models.Service{}).Where("provider_id = ?", p.ID).Count(&services).Error; err != nil {
		return nil, err
	}
	if services == 0 {
		return nil, ErrIncompleteProfile
	}

	if err := s.changeTrust(ctx, p, models.TrustVerified, map[string]interface{}{
		"verified_by":      adminID,
		"rejection_reason": "",
	}); err != nil {
		return nil, err
	}

	s.notifier.NotifyQuiet(ctx, p.UserID, models.NotifProviderVerified, map[string]interface{}{
		"provider_id": p.ID,
	})
	return p, nil
}

// Reject turns down a pending application; the reason is mandatory and
// surfaced to the provider.
func (s *ProviderService) Reject(ctx context.Context, providerID, adminID uint, reason string) (*models.Provider, error) {
	if reason == "" {
		return nil, ErrBadRequest
	}
	p, err := s.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if err := s.changeTrust(ctx, p, models.TrustRejected, map[string]interface{}{
		"rejection_reason": reason,
	}); err != nil {
		return nil, err
	}
	p.RejectionReason = reason

	s.notifier.NotifyQuiet(ctx, p.UserID, models.NotifProviderRejected, map[string]interface{}{
		"provider_id": p.ID,
		"reason":      reason,
	})
	return p, nil
}

// Suspend takes a verified provider off the marketplace; reason mandatory.
func (s *ProviderService) Suspend(ctx context.Context, providerID, adminID uint, reason string) (*models.Provider, error) {
	if reason == "" {
		return nil, ErrBadRequest
	}
	p, err := s.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if err := s.changeTrust(ctx, p, models.TrustSuspended, map[string]interface{}{
		"suspension_reason": reason,
	}); err != nil {
		return nil, err
	}
	p.SuspensionReason = reason

	s.notifier.NotifyQuiet(ctx, p.UserID, models.NotifProviderSuspended, map[string]interface{}{
		"provider_id": p.ID,
		"reason":      reason,
	})
	return p, nil
}

// Activate reinstates a suspended provider.
func (s *ProviderService) Activate(ctx context.Context, providerID, adminID uint) (*models.Provider, error) {
	p, err := s.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if err := s.changeTrust(ctx, p, models.TrustVerified, map[string]interface{}{
		"suspension_reason": "",
	}); err != nil {
		return nil, err
	}
	p.SuspensionReason = ""

	s.notifier.NotifyQuiet(ctx, p.UserID, models.NotifProviderActivated, map[string]interface{}{
		"provider_id": p.ID,
	})
	return p, nil
}

// SetActive is the owner's visibility toggle; it never touches trust state
// and only means anything for a verified provider.
func (s *ProviderService) SetActive(ctx context.Context, providerID, ownerID uint, active bool) (*models.Provider, error) {
	p, err := s.get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if p.UserID != ownerID {
		return nil, ErrForbidden
	}
	if p.TrustState != models.TrustVerified {
		return nil, ErrInvalidTransition
	}

	if err := s.db.WithContext(ctx).Model(p).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	p.IsActive = active
	return p, nil
}

// Delete removes a provider profile for good. Only suspended or rejected
// providers can be deleted. Outstanding bookings are left alone.
func (s *ProviderService) Delete(ctx context.Context, providerID uint) error {
	p, err := s.get(ctx, providerID)
	if err != nil {
		return err
	}
	if p.TrustState != models.TrustSuspended && p.TrustState != models.TrustRejected {
		return ErrInvalidTransition
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("provider_id = ?", p.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("provider_id = ?", p.ID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(p).Error
	})
}

// ListBookable returns providers visible to clients.
func (s *ProviderService) ListBookable(ctx context.Context) ([]models.Provider, error) {
	var out []models.Provider
	err := s.db.WithContext(ctx).
		Where("trust_state = ? AND is_active = ?", models.TrustVerified, true).
		Order("business_name ASC").
		Find(&out).Error
	return out, err
}

// ListByTrustState is the admin console view of the verification queue.
func (s *ProviderService) ListByTrustState(ctx context.Context, state models.TrustState) ([]models.Provider, error) {
	var out []models.Provider
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("trust_state = ?", state).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
