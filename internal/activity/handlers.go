package activity

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/activity", authMiddleware, func(c *fiber.Ctx) error {
		entries, err := svc.Recent(c.Context(), c.QueryInt("limit", defaultLimit))
		if err != nil {
			log.Printf("activity query failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "could not load activity")
		}
		return c.JSON(entries)
	})
}
