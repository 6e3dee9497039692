package rest

import (
	domainHealth "github.com/AzielCF/az-presence/domains/health"
	"github.com/AzielCF/az-presence/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Health struct {
	Service domainHealth.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service domainHealth.IHealthUsecase) Health {
	handler := Health{Service: service}

	app.Get("/health", handler.GetStatus)

	return handler
}

func (h *Health) GetStatus(c *fiber.Ctx) error {
	report, err := h.Service.Check(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(utils.ResponseData{
			Status:  500,
			Code:    "INTERNAL_SERVER_ERROR",
			Message: err.Error(),
		})
	}

	status := 200
	if report.Database == domainHealth.StatusError {
		status = 503
	}

	return c.Status(status).JSON(utils.ResponseData{
		Status:  status,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: report,
	})
}
