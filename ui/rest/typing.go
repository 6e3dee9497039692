package rest

import (
	"time"

	domainTyping "github.com/AzielCF/az-presence/domains/typing"
	"github.com/AzielCF/az-presence/pkg/utils"
	"github.com/AzielCF/az-presence/validations"
	"github.com/gofiber/fiber/v2"
)

type Typing struct {
	Service domainTyping.ITypingUsecase
}

func InitRestTyping(app fiber.Router, service domainTyping.ITypingUsecase) Typing {
	rest := Typing{Service: service}

	app.Post("/typing/mark", rest.Mark)
	app.Post("/typing/clear", rest.Clear)
	app.Get("/typing/:channel", rest.List)
	return rest
}

func (controller *Typing) Mark(c *fiber.Ctx) error {
	var request domainTyping.MarkRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateMarkTyping(c.UserContext(), request))

	err = controller.Service.Mark(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Typing marked",
	})
}

func (controller *Typing) Clear(c *fiber.Ctx) error {
	var request domainTyping.ClearRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateClearTyping(c.UserContext(), request))

	err = controller.Service.Clear(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Typing cleared",
	})
}

func (controller *Typing) List(c *fiber.Ctx) error {
	channel := c.Params("channel")
	ttl := time.Duration(c.QueryInt("ttl_ms", 0)) * time.Millisecond

	members, err := controller.Service.List(c.UserContext(), channel, ttl)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Typing members retrieved",
		Results: members,
	})
}
