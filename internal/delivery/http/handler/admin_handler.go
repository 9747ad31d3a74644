package handler

import (
	"jobtracker/internal/pkg/response"
	"jobtracker/internal/repository"
	"jobtracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.StatusUsecase
}

func NewAdminHandler(uc usecase.StatusUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// HandleRefresh starts a background refresh of the requested source
// ("all" when omitted) and answers 202 immediately.
func (h *AdminHandler) HandleRefresh(c fiber.Ctx) error {
	source := c.Query("source", "all")

	if err := h.uc.StartRefresh(source, repository.TriggerAPI); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusAccepted, "refresh started", fiber.Map{
		"source": source,
	})
}

// HandleCheck probes both sources for new reference periods without
// touching the index.
func (h *AdminHandler) HandleCheck(c fiber.Ctx) error {
	statuses, err := h.uc.Check(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", statuses)
}
