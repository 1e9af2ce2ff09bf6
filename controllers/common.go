package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/db"
	"github.com/glowbook/glowbook/redis"
	"github.com/glowbook/glowbook/services"
	"github.com/glowbook/glowbook/utils"
)

// Service accessors. Built per call on the package globals so the handlers
// stay plain functions the way the routes expect them.
func notifier() *services.NotificationService {
	return services.NewNotificationService(db.DB, redis.Client)
}

func bookingService() *services.BookingService {
	return services.NewBookingService(db.DB, notifier())
}

func providerService() *services.ProviderService {
	return services.NewProviderService(db.DB, notifier())
}

func reviewService() *services.ReviewService {
	return services.NewReviewService(db.DB, notifier())
}

func reportService() *services.ReportService {
	return services.NewReportService(db.DB, notifier())
}

func accountService() *services.AccountService {
	return services.NewAccountService(db.DB, notifier())
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// respondError translates engine sentinels into HTTP statuses. Anything
// unrecognized is a 500; the engines own their own logging.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrAlreadyReviewed):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrBadRequest),
		errors.Is(err, services.ErrIncompleteProfile),
		errors.Is(err, services.ErrOutsideWorkingHours),
		errors.Is(err, services.ErrCommentTooShort),
		errors.Is(err, services.ErrInvalidRating):
		status = fiber.StatusBadRequest
	default:
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(utils.ErrorResponse{
		Message: err.Error(),
	})
}
