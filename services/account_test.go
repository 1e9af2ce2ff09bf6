package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glowbook/glowbook/models"
)

func TestAccountBlock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewNotificationService(db, nil))
	admin := createUser(t, db, "admin", models.RoleAdmin, models.AccountTypeClient)
	user := createUser(t, db, "user", models.RoleUser, models.AccountTypeClient)
	ctx := context.Background()

	// Reason is mandatory.
	if err := svc.Block(ctx, admin.ID, user.ID, ""); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("empty reason: expected ErrBadRequest, got %v", err)
	}

	if err := svc.Block(ctx, admin.ID, user.ID, "spamming reviews"); err != nil {
		t.Fatalf("block: %v", err)
	}

	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.IsBlocked || got.BlockReason != "spamming reviews" {
		t.Fatalf("block not persisted: %+v", got)
	}

	var notifs int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", user.ID, models.NotifAccountBlocked).
		Count(&notifs)
	if notifs != 1 {
		t.Fatalf("expected block notification, got %d", notifs)
	}

	if err := svc.Unblock(ctx, admin.ID, user.ID); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.IsBlocked || got.BlockReason != "" {
		t.Fatalf("unblock not persisted: %+v", got)
	}
}

func TestAccountBlockDeniedByMatrix(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewNotificationService(db, nil))
	admin := createUser(t, db, "admin", models.RoleAdmin, models.AccountTypeClient)
	peer := createUser(t, db, "peer", models.RoleAdmin, models.AccountTypeClient)
	super := createUser(t, db, "super", models.RoleSuperAdmin, models.AccountTypeClient)
	superPeer := createUser(t, db, "super2", models.RoleSuperAdmin, models.AccountTypeClient)
	user := createUser(t, db, "user", models.RoleUser, models.AccountTypeClient)
	ctx := context.Background()

	// Admins cannot touch other admins.
	if err := svc.Block(ctx, admin.ID, peer.ID, "turf war"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin on admin: expected ErrForbidden, got %v", err)
	}
	// No one touches a superadmin, not even another superadmin.
	if err := svc.Block(ctx, super.ID, superPeer.ID, "coup"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("superadmin on superadmin: expected ErrForbidden, got %v", err)
	}
	// Ordinary users hold no admin actions at all.
	if err := svc.Block(ctx, user.ID, admin.ID, "revenge"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user on admin: expected ErrForbidden, got %v", err)
	}
}

func TestAccountNoSelfAction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewNotificationService(db, nil))
	super := createUser(t, db, "super", models.RoleSuperAdmin, models.AccountTypeClient)
	ctx := context.Background()

	if err := svc.Block(ctx, super.ID, super.ID, "oops"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("self block: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, super.ID, super.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("self delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.ChangeRole(ctx, super.ID, super.ID, models.RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("self demote: expected ErrForbidden, got %v", err)
	}
}

func TestAccountChangeRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewNotificationService(db, nil))
	super := createUser(t, db, "super", models.RoleSuperAdmin, models.AccountTypeClient)
	admin := createUser(t, db, "admin", models.RoleAdmin, models.AccountTypeClient)
	user := createUser(t, db, "user", models.RoleUser, models.AccountTypeClient)
	ctx := context.Background()

	if err := svc.ChangeRole(ctx, super.ID, user.ID, "emperor"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("unknown role: expected ErrBadRequest, got %v", err)
	}

	// An admin may promote a user to admin.
	if err := svc.ChangeRole(ctx, admin.ID, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("promote to admin: %v", err)
	}
	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Fatalf("role not persisted: %s", got.Role)
	}

	// Only a superadmin grants superadmin.
	other := createUser(t, db, "other", models.RoleUser, models.AccountTypeClient)
	if err := svc.ChangeRole(ctx, admin.ID, other.ID, models.RoleSuperAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin grants superadmin: expected ErrForbidden, got %v", err)
	}
	if err := svc.ChangeRole(ctx, super.ID, other.ID, models.RoleSuperAdmin); err != nil {
		t.Fatalf("superadmin grants superadmin: %v", err)
	}

	var notifs int64
	db.Model(&models.Notification{}).
		Where("type = ?", models.NotifRoleChanged).
		Count(&notifs)
	if notifs != 2 {
		t.Fatalf("expected 2 role-change notifications, got %d", notifs)
	}
}

func TestAccountDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewNotificationService(db, nil))
	super := createUser(t, db, "super", models.RoleSuperAdmin, models.AccountTypeClient)
	admin := createUser(t, db, "admin", models.RoleAdmin, models.AccountTypeClient)
	ctx := context.Background()

	// Admins cannot delete admins; superadmins can.
	peer := createUser(t, db, "peer", models.RoleAdmin, models.AccountTypeClient)
	if err := svc.Delete(ctx, admin.ID, peer.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin deletes admin: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, super.ID, peer.ID); err != nil {
		t.Fatalf("superadmin deletes admin: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("id = ?", peer.ID).Count(&count)
	if count != 0 {
		t.Fatalf("deleted user still present")
	}
}
