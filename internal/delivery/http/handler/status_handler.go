package handler

import (
	"jobtracker/internal/delivery/http/dto"
	"jobtracker/internal/pkg/response"
	"jobtracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatusHandler struct {
	uc usecase.StatusUsecase
}

func NewStatusHandler(uc usecase.StatusUsecase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

func (h *StatusHandler) HandleStatus(c fiber.Ctx) error {
	status, err := h.uc.Status(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewStatusResponse(status))
}
