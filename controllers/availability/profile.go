package availability

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/redis"
	"github.com/slotline/booking-app/utils"
)

// invalidateOwnerPage drops the cached public booking page for an owner, if
// they have one.
func invalidateOwnerPage(ownerID uint) {
	var profile models.FreelancerProfile
	if db.DB.Where("owner_id = ?", ownerID).First(&profile).RowsAffected > 0 {
		redis.InvalidatePublicPage(profile.Slug)
	}
}

// CreateProfile creates the caller's freelancer profile. One per owner; the
// slug must be globally unique.
func CreateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile := new(models.FreelancerProfile)
	if err := c.BodyParser(profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if profile.BusinessName == "" || profile.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "business_name and slug are required",
		})
	}

	var existing models.FreelancerProfile
	if db.DB.Where("owner_id = ?", userID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Profile already exists for this user",
		})
	}
	if db.DB.Where("slug = ?", profile.Slug).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Slug is already taken",
		})
	}

	profile.OwnerID = userID
	if err := db.DB.Create(profile).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create profile",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetProfile returns the caller's freelancer profile.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.FreelancerProfile
	if err := db.DB.Where("owner_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Profile not found",
		})
	}
	return c.JSON(profile)
}

// UpdateProfile updates the caller's freelancer profile. Slug uniqueness is
// re-checked only when the slug is actually changing, excluding the caller's
// own row from the collision check.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.FreelancerProfile
	if err := db.DB.Where("owner_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Profile not found",
		})
	}
	oldSlug := profile.Slug

	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	profile.OwnerID = userID

	if profile.Slug != oldSlug {
		var collision models.FreelancerProfile
		if db.DB.Where("slug = ? AND owner_id <> ?", profile.Slug, userID).
			First(&collision).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Slug is already taken",
			})
		}
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	redis.InvalidatePublicPage(oldSlug)
	redis.InvalidatePublicPage(profile.Slug)

	return c.JSON(profile)
}
