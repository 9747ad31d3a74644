package handler

import (
	"errors"
	"strconv"
	"strings"

	"jobtracker/internal/delivery/http/middleware"
	"jobtracker/internal/index"
	"jobtracker/internal/pkg/response"
	"jobtracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OccupationsHandler struct {
	uc usecase.OccupationUsecase
}

func NewOccupationsHandler(uc usecase.OccupationUsecase) *OccupationsHandler {
	return &OccupationsHandler{uc: uc}
}

func (h *OccupationsHandler) HandleSearch(c fiber.Ctx) error {
	q := index.OccupationQuery{
		Query:          c.Query("q"),
		EducationLevel: c.Query("education"),
		Technology:     c.Query("technology"),
		SkillName:      c.Query("skill"),
		SortBy:         c.Query("sort_by"),
	}

	var err error
	if q.Page, err = parseQueryIntStrict(c, "page", 0); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if q.PerPage, err = parseQueryIntStrict(c, "per_page", 0); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if q.JobZone, err = parseQueryIntPtr(c, "job_zone"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if q.BrightOutlook, err = parseQueryBoolPtr(c, "bright_outlook"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if q.MinMedianWage, err = parseQueryFloatPtr(c, "min_wage"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if q.MaxMedianWage, err = parseQueryFloatPtr(c, "max_wage"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	page, err := h.uc.Search(c.Context(), q)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", page)
}

func (h *OccupationsHandler) HandleGet(c fiber.Ctx) error {
	doc, err := h.uc.GetBySOC(c.Context(), c.Params("soc"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", doc)
}

func (h *OccupationsHandler) HandleSkills(c fiber.Ctx) error {
	filter := usecase.SkillProfileFilter{Type: c.Query("type")}
	min, err := parseQueryFloatPtr(c, "min_importance")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if min != nil {
		filter.MinImportance = *min
	}

	profile, err := h.uc.SkillProfile(c.Context(), c.Params("soc"), filter)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", profile)
}

func (h *OccupationsHandler) HandleTechnologies(c fiber.Ctx) error {
	profile, err := h.uc.Technologies(c.Context(), c.Params("soc"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", profile)
}

// HandleCompare compares two to five occupations passed as a
// comma-separated codes query parameter.
func (h *OccupationsHandler) HandleCompare(c fiber.Ctx) error {
	codes := splitCSV(c.Query("codes"))
	if len(codes) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, errors.New("codes query parameter required"))
	}

	cmp, err := h.uc.Compare(c.Context(), codes)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", cmp)
}

func (h *OccupationsHandler) HandleSkillGap(c fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, errors.New("from and to query parameters required"))
	}

	gap, err := h.uc.SkillGap(c.Context(), from, to)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", gap)
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageConflict, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func parseQueryIntPtr(c fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseQueryFloatPtr(c fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseQueryBoolPtr(c fiber.Ctx, key string) (*bool, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
