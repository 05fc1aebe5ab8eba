package handlers

import (
	"net/http"

	"sppages/application"
	"sppages/domain/sharepoint"
	"sppages/logging"
)

// SiteHandlers handles regional settings and social following endpoints.
type SiteHandlers struct {
	siteService application.SiteService
	logger      *logging.Logger
}

// NewSiteHandlers creates a new site handlers instance.
func NewSiteHandlers(siteService application.SiteService) *SiteHandlers {
	return &SiteHandlers{
		siteService: siteService,
		logger:      logging.Default().WithComponent("site_handler"),
	}
}

// RegionalSettings returns the regional settings of the web
func (h *SiteHandlers) RegionalSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.siteService.RegionalSettings(r.Context())
	if err != nil {
		writeError(w, h.logger.WithContext(r.Context()), err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// TimeZones returns every time zone known to the farm
func (h *SiteHandlers) TimeZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.siteService.TimeZones(r.Context())
	if err != nil {
		writeError(w, h.logger.WithContext(r.Context()), err)
		return
	}
	if zones == nil {
		zones = []sharepoint.TimeZone{}
	}
	writeJSON(w, http.StatusOK, zones)
}

// WebParts returns the web parts that can be placed on a layout
func (h *SiteHandlers) WebParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.siteService.WebParts(r.Context())
	if err != nil {
		writeError(w, h.logger.WithContext(r.Context()), err)
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

// Follow starts following the actor in the body
func (h *SiteHandlers) Follow(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	var actor sharepoint.SocialActorInfo
	if err := decodeJSON(w, r, &actor); err != nil {
		writeError(w, logger, err)
		return
	}
	result, err := h.siteService.Follow(r.Context(), actor)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"result": result.String(),
		"code":   int(result),
	})
}

// Unfollow stops following the actor in the body
func (h *SiteHandlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	var actor sharepoint.SocialActorInfo
	if err := decodeJSON(w, r, &actor); err != nil {
		writeError(w, logger, err)
		return
	}
	if err := h.siteService.StopFollowing(r.Context(), actor); err != nil {
		writeError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IsFollowed reports whether the current user follows the actor in the body
func (h *SiteHandlers) IsFollowed(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	var actor sharepoint.SocialActorInfo
	if err := decodeJSON(w, r, &actor); err != nil {
		writeError(w, logger, err)
		return
	}
	followed, err := h.siteService.IsFollowed(r.Context(), actor)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"followed": followed})
}
