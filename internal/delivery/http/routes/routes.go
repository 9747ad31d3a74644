package routes

import (
	"jobtracker/internal/delivery/http/handler"
	"jobtracker/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP handler and wires them onto the app.
type Registry struct {
	Health      *handler.HealthHandler
	Status      *handler.StatusHandler
	Admin       *handler.AdminHandler
	Occupations *handler.OccupationsHandler
	Wages       *handler.WagesHandler
	Skills      *handler.SkillsHandler
	Pipeline    *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		app.Get("/health", r.Health.HandleHealth)
	}
	if r.Status != nil {
		app.Get("/status", r.Status.HandleStatus)
	}
	if r.Pipeline != nil {
		app.Get("/ws/pipeline", r.Pipeline.HandlePipelineWS)
	}

	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))

	if r.Admin != nil {
		admin := app.Group("/admin")
		admin.Post("/refresh", r.Admin.HandleRefresh)
		admin.Post("/check", r.Admin.HandleCheck)
	}
}

func (r *Registry) registerV1(v1 fiber.Router) {
	if r.Occupations != nil {
		occ := v1.Group("/occupations")
		occ.Get("/", r.Occupations.HandleSearch)
		occ.Get("/compare", r.Occupations.HandleCompare)
		occ.Get("/skill-gap", r.Occupations.HandleSkillGap)
		occ.Get("/:soc", r.Occupations.HandleGet)
		occ.Get("/:soc/skills", r.Occupations.HandleSkills)
		occ.Get("/:soc/technologies", r.Occupations.HandleTechnologies)
	}

	if r.Wages != nil {
		wages := v1.Group("/wages")
		wages.Get("/", r.Wages.HandleSearch)
		wages.Get("/:soc/summary", r.Wages.HandleSummary)
	}

	if r.Skills != nil {
		skills := v1.Group("/skills")
		skills.Get("/", r.Skills.HandleSearch)
		skills.Get("/:id", r.Skills.HandleGet)
	}
}
