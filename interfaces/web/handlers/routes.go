package handlers

import "github.com/go-chi/chi/v5"

// RegisterAPIRoutes mounts the page and site endpoints under /api.
func RegisterAPIRoutes(r chi.Router, pages *PageHandlers, site *SiteHandlers) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/pages", func(r chi.Router) {
			r.Get("/", pages.GetPage)
			r.Post("/", pages.CreatePage)
			r.Delete("/", pages.DeletePage)
			r.Post("/preview", pages.PreviewLayout)
			r.Patch("/properties", pages.UpdateProperties)
			r.Get("/journal", pages.ListJournal)
		})

		r.Get("/regional-settings", site.RegionalSettings)
		r.Get("/timezones", site.TimeZones)
		r.Get("/webparts", site.WebParts)

		r.Route("/social", func(r chi.Router) {
			r.Post("/follow", site.Follow)
			r.Post("/unfollow", site.Unfollow)
			r.Post("/is-followed", site.IsFollowed)
		})
	})
}
