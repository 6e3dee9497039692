package rest

import (
	domainUnread "github.com/AzielCF/az-presence/domains/unread"
	"github.com/AzielCF/az-presence/pkg/utils"
	"github.com/AzielCF/az-presence/validations"
	"github.com/gofiber/fiber/v2"
)

type Unread struct {
	Service domainUnread.IUnreadUsecase
}

func InitRestUnread(app fiber.Router, service domainUnread.IUnreadUsecase) Unread {
	rest := Unread{Service: service}

	app.Post("/unread/message-inserted", rest.MessageInserted)
	app.Post("/unread/mark-read", rest.MarkRead)
	app.Get("/unread/:channel/:member", rest.Get)
	return rest
}

func (controller *Unread) MessageInserted(c *fiber.Ctx) error {
	var request domainUnread.MessageInsertedRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateMessageInserted(c.UserContext(), request))

	err = controller.Service.OnMessageInserted(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Unread counters bumped",
	})
}

func (controller *Unread) MarkRead(c *fiber.Ctx) error {
	var request domainUnread.MarkReadRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateMarkRead(c.UserContext(), request))

	err = controller.Service.MarkRead(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Channel marked as read",
	})
}

func (controller *Unread) Get(c *fiber.Ctx) error {
	channel := c.Params("channel")
	member := c.Params("member")

	counter, err := controller.Service.Get(c.UserContext(), channel, member)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Unread counter retrieved",
		Results: counter,
	})
}
