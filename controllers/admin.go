package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/models"
)

// --- provider verification queue ---

// ListProvidersByState returns the admin view of the trust queue,
// ?state=pending by default.
func ListProvidersByState(c *fiber.Ctx) error {
	state := models.TrustState(c.Query("state", string(models.TrustPending)))
	providers, err := providerService().ListByTrustState(c.Context(), state)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(providers)
}

// VerifyProvider approves a pending application.
func VerifyProvider(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}
	p, err := providerService().Verify(c.Context(), uint(providerID), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

type reasonInput struct {
	Reason string `json:"reason"`
}

// RejectProvider turns down a pending application with a reason.
func RejectProvider(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}
	input := new(reasonInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	p, err := providerService().Reject(c.Context(), uint(providerID), currentUserID(c), input.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// SuspendProvider takes a verified provider off the marketplace.
func SuspendProvider(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}
	input := new(reasonInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	p, err := providerService().Suspend(c.Context(), uint(providerID), currentUserID(c), input.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// ActivateProvider reinstates a suspended provider.
func ActivateProvider(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}
	p, err := providerService().Activate(c.Context(), uint(providerID), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// DeleteProvider removes a suspended or rejected provider profile.
func DeleteProvider(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}
	if err := providerService().Delete(c.Context(), uint(providerID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Provider deleted",
	})
}

// --- account administration ---

// ListUsers is the admin console account listing.
func ListUsers(c *fiber.Ctx) error {
	users, err := accountService().ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// BlockUser blocks the target account with a mandatory reason.
func BlockUser(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	input := new(reasonInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := accountService().Block(c.Context(), currentUserID(c), uint(targetID), input.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User blocked",
	})
}

// UnblockUser lifts a block.
func UnblockUser(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	if err := accountService().Unblock(c.Context(), currentUserID(c), uint(targetID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User unblocked",
	})
}

// ChangeUserRole reassigns the target's administrative role.
func ChangeUserRole(c *fiber.Ctx) error {
	type RoleInput struct {
		Role string `json:"role"`
	}

	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	input := new(RoleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := accountService().ChangeRole(c.Context(), currentUserID(c), uint(targetID), input.Role); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Role updated",
	})
}

// DeleteUser removes the target account.
func DeleteUser(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	if err := accountService().Delete(c.Context(), currentUserID(c), uint(targetID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// --- moderation queue ---

// ListPendingReports is the moderation queue, oldest first.
func ListPendingReports(c *fiber.Ctx) error {
	reports, err := reportService().ListPending(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reports)
}

// ResolveReport closes a pending report with dismissed or action_taken.
func ResolveReport(c *fiber.Ctx) error {
	type ResolveInput struct {
		Outcome   string `json:"outcome"`
		AdminNote string `json:"admin_note"`
	}

	reportID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report id",
		})
	}
	input := new(ResolveInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	report, err := reportService().Resolve(c.Context(), uint(reportID), currentUserID(c), models.ReportStatus(input.Outcome), input.AdminNote)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
