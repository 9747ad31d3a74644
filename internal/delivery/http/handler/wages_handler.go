package handler

import (
	"jobtracker/internal/delivery/http/middleware"
	"jobtracker/internal/index"
	"jobtracker/internal/pkg/response"
	"jobtracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type WagesHandler struct {
	uc usecase.WageUsecase
}

func NewWagesHandler(uc usecase.WageUsecase) *WagesHandler {
	return &WagesHandler{uc: uc}
}

func (h *WagesHandler) HandleSearch(c fiber.Ctx) error {
	q := index.WageQuery{
		Query:     c.Query("q"),
		SOCCode:   c.Query("soc"),
		AreaType:  c.Query("area_type"),
		StateCode: c.Query("state"),
		SortBy:    c.Query("sort_by"),
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

func (h *WagesHandler) HandleSummary(c fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context(), c.Params("soc"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", summary)
}
