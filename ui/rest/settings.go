package rest

import (
	"github.com/AzielCF/az-presence/core/settings"
	"github.com/AzielCF/az-presence/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Settings struct {
	Service *settings.Service
}

func InitRestSettings(app fiber.Router, service *settings.Service) Settings {
	handler := Settings{Service: service}

	app.Get("/presence/settings", handler.GetSettings)
	app.Put("/presence/settings", handler.UpdateSettings)

	return handler
}

func (h *Settings) GetSettings(c *fiber.Ctx) error {
	ds, err := h.Service.GetDynamicSettings(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Settings retrieved",
		Results: ds,
	})
}

// UpdateSettings applies only the fields present in the payload. Changes take
// effect on the next sweep cycle without a restart.
func (h *Settings) UpdateSettings(c *fiber.Ctx) error {
	var request settings.DynamicSettings
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	ctx := c.UserContext()
	if request.PresenceStaleTimeoutMs != nil {
		utils.PanicIfNeeded(h.Service.SetPresenceStaleTimeout(ctx, *request.PresenceStaleTimeoutMs))
	}
	if request.PresenceMaxAgeMultiplier != nil {
		utils.PanicIfNeeded(h.Service.SetPresenceMaxAgeMultiplier(ctx, *request.PresenceMaxAgeMultiplier))
	}
	if request.PresenceGCIntervalMins != nil {
		utils.PanicIfNeeded(h.Service.SetPresenceGCInterval(ctx, *request.PresenceGCIntervalMins))
	}
	if request.PresenceGCMaxAgeMultiplier != nil {
		utils.PanicIfNeeded(h.Service.SetPresenceGCMaxAgeMultiplier(ctx, *request.PresenceGCMaxAgeMultiplier))
	}
	if request.TypingTTLMs != nil {
		utils.PanicIfNeeded(h.Service.SetTypingTTL(ctx, *request.TypingTTLMs))
	}

	ds, err := h.Service.GetDynamicSettings(ctx)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Settings updated",
		Results: ds,
	})
}
