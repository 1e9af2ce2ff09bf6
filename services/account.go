package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/glowbook/glowbook/models"
	"github.com/glowbook/glowbook/rbac"
)

// AccountService applies admin actions to accounts behind the permission
// matrix. The identity check (no self-action) lives here at the call
// boundary, not inside the matrix.
type AccountService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewAccountService(db *gorm.DB, notifier *NotificationService) *AccountService {
	return &AccountService{db: db, notifier: notifier}
}

func (s *AccountService) pair(ctx context.Context, actorID, targetID uint) (*models.User, *models.User, error) {
	if actorID == targetID {
		return nil, nil, ErrForbidden
	}
	var actor, target models.User
	if err := s.db.WithContext(ctx).First(&actor, actorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if err := s.db.WithContext(ctx).First(&target, targetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return &actor, &target, nil
}

// Block marks the target account blocked; reason is mandatory and shown to
// the target.
func (s *AccountService) Block(ctx context.Context, actorID, targetID uint, reason string) error {
	if reason == "" {
		return ErrBadRequest
	}
	actor, target, err := s.pair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !rbac.CanPerform(rbac.Role(actor.Role), rbac.Role(target.Role), rbac.ActionBlock) {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(target).Updates(map[string]interface{}{
		"is_blocked":   true,
		"block_reason": reason,
	}).Error; err != nil {
		return err
	}

	s.notifier.NotifyQuiet(ctx, target.ID, models.NotifAccountBlocked, map[string]interface{}{
		"reason": reason,
	})
	return nil
}

// Unblock clears a block. Gated by the same matrix action as Block.
func (s *AccountService) Unblock(ctx context.Context, actorID, targetID uint) error {
	actor, target, err := s.pair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !rbac.CanPerform(rbac.Role(actor.Role), rbac.Role(target.Role), rbac.ActionBlock) {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Model(target).Updates(map[string]interface{}{
		"is_blocked":   false,
		"block_reason": "",
	}).Error
}

// ChangeRole reassigns the target's administrative role. Granting
// superadmin is re-checked here against the actor's own role: the matrix
// allows changeRole on a user target, but the grant itself is the highest
// impact single action in the system and gets its own gate.
func (s *AccountService) ChangeRole(ctx context.Context, actorID, targetID uint, newRole string) error {
	if !models.ValidRole(newRole) {
		return ErrBadRequest
	}
	actor, target, err := s.pair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if newRole == models.RoleSuperAdmin && actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	if !rbac.CanGrantRole(rbac.Role(actor.Role), rbac.Role(target.Role), rbac.Role(newRole)) {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(target).Update("role", newRole).Error; err != nil {
		return err
	}

	s.notifier.NotifyQuiet(ctx, target.ID, models.NotifRoleChanged, map[string]interface{}{
		"role": newRole,
	})
	return nil
}

// Delete removes the target account for good.
func (s *AccountService) Delete(ctx context.Context, actorID, targetID uint) error {
	actor, target, err := s.pair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !rbac.CanPerform(rbac.Role(actor.Role), rbac.Role(target.Role), rbac.ActionDelete) {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Delete(target).Error
}

// ListUsers is the admin console account listing.
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).
		Omit("password", "otp").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
