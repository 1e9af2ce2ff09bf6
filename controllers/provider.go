package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/glowbook/glowbook/db"
	"github.com/glowbook/glowbook/models"
	"github.com/glowbook/glowbook/services"
)

// ownProfile loads the provider profile belonging to the authenticated
// user.
func ownProfile(c *fiber.Ctx) (*models.Provider, error) {
	var p models.Provider
	if err := db.DB.Where("user_id = ?", currentUserID(c)).First(&p).Error; err != nil {
		return nil, services.ErrNotFound
	}
	return &p, nil
}

// ListProviders is the public marketplace listing: verified and active
// providers only.
func ListProviders(c *fiber.Ctx) error {
	providers, err := providerService().ListBookable(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(providers)
}

// GetProvider returns one provider with catalog and hours.
func GetProvider(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}

	var p models.Provider
	if err := db.DB.First(&p, providerID).Error; err != nil {
		return respondError(c, services.ErrNotFound)
	}

	var catalog []models.Service
	db.DB.Where("provider_id = ?", p.ID).Find(&catalog)
	var hours []models.WorkingHours
	db.DB.Where("provider_id = ?", p.ID).Order("day_of_week ASC").Find(&hours)

	return c.JSON(fiber.Map{
		"provider":      p,
		"services":      catalog,
		"working_hours": hours,
	})
}

// GetMyProviderProfile returns the authenticated provider's own profile,
// whatever its trust state.
func GetMyProviderProfile(c *fiber.Ctx) error {
	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// UpdateProviderProfile edits the business profile fields. Trust state is
// not touchable from here.
func UpdateProviderProfile(c *fiber.Ctx) error {
	type ProfileInput struct {
		BusinessName string `json:"business_name"`
		About        string `json:"about"`
		Address      string `json:"address"`
		City         string `json:"city"`
	}

	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := db.DB.Model(p).Updates(map[string]interface{}{
		"business_name": input.BusinessName,
		"about":         input.About,
		"address":       input.Address,
		"city":          input.City,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}
	return c.JSON(p)
}

// SetProviderActive is the owner's marketplace visibility toggle.
func SetProviderActive(c *fiber.Ctx) error {
	type ActiveInput struct {
		Active bool `json:"active"`
	}

	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	input := new(ActiveInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	updated, err := providerService().SetActive(c.Context(), p.ID, currentUserID(c), input.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// CreateService adds a catalog entry to the provider's offering.
func CreateService(c *fiber.Ctx) error {
	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	svc := new(models.Service)
	if err := c.BodyParser(svc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if svc.Name == "" || svc.Price < 0 || svc.Duration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid service fields",
		})
	}
	svc.ID = 0
	svc.ProviderID = p.ID

	if err := db.DB.Create(svc).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

// UpdateService edits one of the provider's own catalog entries.
func UpdateService(c *fiber.Ctx) error {
	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}
	serviceID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service id",
		})
	}

	var svc models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", serviceID, p.ID).First(&svc).Error; err != nil {
		return respondError(c, services.ErrNotFound)
	}

	type ServiceInput struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Duration    int     `json:"duration"`
	}
	input := new(ServiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := db.DB.Model(&svc).Updates(map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"duration":    input.Duration,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}
	return c.JSON(svc)
}

// DeleteService removes a catalog entry. Existing bookings keep their own
// snapshots.
func DeleteService(c *fiber.Ctx) error {
	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}
	serviceID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service id",
		})
	}

	res := db.DB.Where("id = ? AND provider_id = ?", serviceID, p.ID).Delete(&models.Service{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	if res.RowsAffected == 0 {
		return respondError(c, services.ErrNotFound)
	}
	return c.JSON(fiber.Map{
		"message": "Service deleted",
	})
}

// SetWorkingHours replaces the provider's weekly schedule in one call.
func SetWorkingHours(c *fiber.Ctx) error {
	type DayInput struct {
		DayOfWeek models.DayOfWeek `json:"day_of_week"`
		StartTime string           `json:"start_time"`
		EndTime   string           `json:"end_time"`
		IsWorkDay bool             `json:"is_work_day"`
	}

	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var input []DayInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	for _, d := range input {
		if d.DayOfWeek < models.Sunday || d.DayOfWeek > models.Saturday {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid day of week",
			})
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("provider_id = ?", p.ID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		for _, d := range input {
			wh := models.WorkingHours{
				ProviderID: p.ID,
				DayOfWeek:  d.DayOfWeek,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				IsWorkDay:  d.IsWorkDay,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save working hours",
		})
	}

	var hours []models.WorkingHours
	db.DB.Where("provider_id = ?", p.ID).Order("day_of_week ASC").Find(&hours)
	return c.JSON(hours)
}

// GetWorkingHours returns the provider's own schedule.
func GetWorkingHours(c *fiber.Ctx) error {
	p, err := ownProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var hours []models.WorkingHours
	if err := db.DB.Where("provider_id = ?", p.ID).Order("day_of_week ASC").Find(&hours).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load working hours",
		})
	}
	return c.JSON(hours)
}
