package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// CanReviewBooking tells the client whether the review form should show.
func CanReviewBooking(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}
	ok, err := reviewService().CanReview(c.Context(), uint(bookingID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"can_review": ok,
	})
}

// SubmitReview attaches the client's review to a served booking.
func SubmitReview(c *fiber.Ctx) error {
	type ReviewInput struct {
		BookingID uint   `json:"booking_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	review, err := reviewService().Submit(c.Context(), input.BookingID, currentUserID(c), input.Rating, input.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// RespondToReview stores the provider's public reply.
func RespondToReview(c *fiber.Ctx) error {
	type RespondInput struct {
		Response string `json:"response"`
	}

	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}
	input := new(RespondInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	review, err := reviewService().Respond(c.Context(), uint(reviewID), currentUserID(c), input.Response)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// ListProviderReviews returns a provider's reviews, newest first. Public.
func ListProviderReviews(c *fiber.Ctx) error {
	providerUserID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}
	reviews, err := reviewService().ListForProvider(c.Context(), uint(providerUserID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// ReportReview files a complaint against a review.
func ReportReview(c *fiber.Ctx) error {
	type ReportInput struct {
		Reason string `json:"reason"`
	}

	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}
	input := new(ReportInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	report, err := reportService().Report(c.Context(), uint(reviewID), currentUserID(c), input.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
