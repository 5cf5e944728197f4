package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/easycod/platform/internal/auth"
	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/repository"
)

// SettingsAPI is the slice of SettingsService the admin endpoints use.
type SettingsAPI interface {
	Settings(ctx context.Context, shop string) (*domain.PixelSettings, error)
	SaveSettings(ctx context.Context, shop string, settings *domain.PixelSettings) error
	Form(ctx context.Context, shop string) (*domain.FormConfig, error)
	SaveForm(ctx context.Context, shop string, config *domain.FormConfig) error
	Submissions(ctx context.Context, shop string, cursor *string, limit int) ([]domain.Submission, error)
	EventReport(ctx context.Context, shop string, days int) ([]domain.PixelEventStat, error)
}

// AdminHandler serves the embedded dashboard API. The shop identity comes
// from the verified session token, never from the request.
type AdminHandler struct {
	settings SettingsAPI
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(settings SettingsAPI) *AdminHandler {
	return &AdminHandler{settings: settings}
}

// GetSettings handles GET /admin/settings.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	shop := auth.ShopFromContext(r.Context())

	settings, err := h.settings.Settings(r.Context(), shop)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, settings)
}

// PutSettings handles PUT /admin/settings.
func (h *AdminHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	shop := auth.ShopFromContext(r.Context())

	var settings domain.PixelSettings
	if err := DecodeJSON(r, &settings); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.settings.SaveSettings(r.Context(), shop, &settings); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, settings)
}

// GetForm handles GET /admin/form.
func (h *AdminHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	shop := auth.ShopFromContext(r.Context())

	config, err := h.settings.Form(r.Context(), shop)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, config)
}

// PutForm handles PUT /admin/form.
func (h *AdminHandler) PutForm(w http.ResponseWriter, r *http.Request) {
	shop := auth.ShopFromContext(r.Context())

	var config domain.FormConfig
	if err := DecodeJSON(r, &config); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.settings.SaveForm(r.Context(), shop, &config); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, config)
}

// submissionListResponse wraps a page of submissions with cursor.
type submissionListResponse struct {
	Submissions []domain.Submission `json:"submissions"`
	NextCursor  *string             `json:"next_cursor,omitempty"`
}

// ListSubmissions handles GET /admin/submissions with cursor-based pagination.
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	shop := auth.ShopFromContext(r.Context())

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= repository.MaxSubmissionPage {
			limit = n
		}
	}
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	subs, err := h.settings.Submissions(r.Context(), shop, cursor, limit+1)
	if err != nil {
		RespondError(w, err)
		return
	}

	resp := submissionListResponse{Submissions: subs}
	if len(subs) > limit {
		resp.Submissions = subs[:limit]
		next := subs[limit-1].ID.String()
		resp.NextCursor = &next
	}
	if resp.Submissions == nil {
		resp.Submissions = []domain.Submission{}
	}
	RespondJSON(w, http.StatusOK, resp)
}

// GetEventReport handles GET /admin/reports/events.
func (h *AdminHandler) GetEventReport(w http.ResponseWriter, r *http.Request) {
	shop := auth.ShopFromContext(r.Context())

	days := 30
	if s := r.URL.Query().Get("days"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 90 {
			days = n
		}
	}

	stats, err := h.settings.EventReport(r.Context(), shop, days)
	if err != nil {
		RespondError(w, err)
		return
	}
	if stats == nil {
		stats = []domain.PixelEventStat{}
	}
	RespondJSON(w, http.StatusOK, map[string]any{"events": stats})
}
