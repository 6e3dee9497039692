package rest

import (
	domainPresence "github.com/AzielCF/az-presence/domains/presence"
	"github.com/AzielCF/az-presence/pkg/utils"
	"github.com/AzielCF/az-presence/validations"
	"github.com/gofiber/fiber/v2"
)

type Presence struct {
	Service domainPresence.IPresenceUsecase
}

func InitRestPresence(app fiber.Router, service domainPresence.IPresenceUsecase) Presence {
	rest := Presence{Service: service}

	app.Post("/presence/heartbeat", rest.Heartbeat)
	app.Post("/presence/leave", rest.Leave)
	app.Get("/presence/rooms/:room/active", rest.ListActive)
	app.Post("/presence/status", rest.SetStatus)
	app.Get("/presence/users/:user/status", rest.GetStatus)
	app.Get("/presence/rooms/:room/users/:user", rest.DerivePresence)
	return rest
}

func (controller *Presence) Heartbeat(c *fiber.Ctx) error {
	var request domainPresence.HeartbeatRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateHeartbeat(c.UserContext(), request))

	err = controller.Service.Beat(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Heartbeat recorded",
	})
}

func (controller *Presence) Leave(c *fiber.Ctx) error {
	var request domainPresence.LeaveRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateLeave(c.UserContext(), request))

	err = controller.Service.Leave(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Session removed",
	})
}

func (controller *Presence) ListActive(c *fiber.Ctx) error {
	room := c.Params("room")
	maxAgeMultiplier := c.QueryInt("max_age_multiplier", 0)

	sessions, err := controller.Service.ListActive(c.UserContext(), room, maxAgeMultiplier)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Active sessions retrieved",
		Results: sessions,
	})
}

func (controller *Presence) SetStatus(c *fiber.Ctx) error {
	var request domainPresence.SetStatusRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateSetStatus(c.UserContext(), request))

	override, err := controller.Service.SetStatus(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Status updated",
		Results: override,
	})
}

func (controller *Presence) GetStatus(c *fiber.Ctx) error {
	user := c.Params("user")

	override, err := controller.Service.GetStatus(c.UserContext(), user)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Status retrieved",
		Results: override,
	})
}

func (controller *Presence) DerivePresence(c *fiber.Ctx) error {
	room := c.Params("room")
	user := c.Params("user")

	presence, err := controller.Service.DerivePresence(c.UserContext(), user, room)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Presence derived",
		Results: presence,
	})
}
