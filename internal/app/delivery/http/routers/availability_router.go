package routers

import (
	"availability-service/internal/app/delivery/http/controllers"
	"availability-service/internal/app/delivery/http/middlewares"
	"availability-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.AvailabilityController) {
	router.Use(m.Authenticate)
	router.Use(m.RequireRole(constvars.RolePractitioner))

	router.Get("/template", c.GetSlotTemplate)
	router.Get("/schedule", c.GetWeekSchedule)
	router.With(m.LimitMutations).Post("/schedule/toggle", c.ToggleSlot)
	router.With(m.LimitMutations).Post("/schedule/refresh", c.RefreshSlots)
	router.Post("/schedule/export", c.ExportWeekSchedule)
	router.Get("/audits", c.ListAudits)
}
