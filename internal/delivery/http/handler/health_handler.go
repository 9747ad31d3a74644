package handler

import (
	"jobtracker/internal/database"
	"jobtracker/internal/pkg/response"
	"jobtracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	idx usecase.StatusIndex
	db  database.DB
}

func NewHealthHandler(idx usecase.StatusIndex, db database.DB) *HealthHandler {
	return &HealthHandler{idx: idx, db: db}
}

type healthData struct {
	Status   string `json:"status"`
	Index    bool   `json:"index"`
	Database bool   `json:"database"`
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	data := healthData{Status: "ok"}

	if h.idx != nil {
		data.Index = h.idx.Health(c.Context())
	}
	if h.db != nil {
		data.Database = h.db.Ping(c.Context()) == nil
	}

	status := fiber.StatusOK
	if !data.Index {
		data.Status = "degraded"
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, data.Status, data)
}
