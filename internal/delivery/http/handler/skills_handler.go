package handler

import (
	"jobtracker/internal/delivery/http/middleware"
	"jobtracker/internal/index"
	"jobtracker/internal/pkg/response"
	"jobtracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillsHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillsHandler(uc usecase.SkillUsecase) *SkillsHandler {
	return &SkillsHandler{uc: uc}
}

func (h *SkillsHandler) HandleSearch(c fiber.Ctx) error {
	q := index.SkillQuery{
		Query:     c.Query("q"),
		SkillType: c.Query("type"),
		Category:  c.Query("category"),
	}

	var err error
	if q.Page, err = parseQueryIntStrict(c, "page", 0); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if q.PerPage, err = parseQueryIntStrict(c, "per_page", 0); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	page, err := h.uc.Search(c.Context(), q)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", page)
}

func (h *SkillsHandler) HandleGet(c fiber.Ctx) error {
	agg, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", agg)
}
