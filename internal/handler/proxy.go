package handler

import (
	"context"
	"net/http"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/guard"
	"github.com/easycod/platform/internal/service"
	"github.com/go-chi/chi/v5"
)

// TrackingAPI is the slice of TrackingService the proxy endpoints use.
type TrackingAPI interface {
	IssueSession(ctx context.Context) string
	FieldEdited(ctx context.Context, shop, sessionID, fieldName, fieldType string)
	CartSnapshot(ctx context.Context, shop, sessionID string, snap domain.CartSnapshot)
}

// FormAPI is the slice of FormService the proxy endpoints use.
type FormAPI interface {
	Config(ctx context.Context, shop string) (*domain.FormConfig, error)
	Wilayas(ctx context.Context) ([]domain.Wilaya, error)
	Communes(ctx context.Context, wilayaCode string) ([]domain.Commune, error)
	Submit(ctx context.Context, in service.SubmitInput) (*domain.SubmissionResult, error)
}

// ProxyHandler serves the storefront app-proxy endpoints: session issue,
// form config, the location cascade, the two tracking triggers, and order
// submission. The shop identity comes from the proxy query string.
type ProxyHandler struct {
	tracking  TrackingAPI
	forms     FormAPI
	ratelimit *guard.RateLimiter
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(tracking TrackingAPI, forms FormAPI, ratelimit *guard.RateLimiter) *ProxyHandler {
	return &ProxyHandler{tracking: tracking, forms: forms, ratelimit: ratelimit}
}

// shopParam extracts the shop domain forwarded on every proxy request.
func shopParam(r *http.Request) (string, error) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		return "", domain.ErrValidation("missing shop parameter")
	}
	return shop, nil
}

// IssueSession handles POST /proxy/session.
func (h *ProxyHandler) IssueSession(w http.ResponseWriter, r *http.Request) {
	if _, err := shopParam(r); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{
		"sessionId": h.tracking.IssueSession(r.Context()),
	})
}

// GetForm handles GET /proxy/form.
func (h *ProxyHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	shop, err := shopParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	config, err := h.forms.Config(r.Context(), shop)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, config)
}

// ListWilayas handles GET /proxy/locations.
func (h *ProxyHandler) ListWilayas(w http.ResponseWriter, r *http.Request) {
	wilayas, err := h.forms.Wilayas(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"wilayas": wilayas})
}

// ListCommunes handles GET /proxy/locations/{wilaya}/communes.
func (h *ProxyHandler) ListCommunes(w http.ResponseWriter, r *http.Request) {
	communes, err := h.forms.Communes(r.Context(), chi.URLParam(r, "wilaya"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"communes": communes})
}

// fieldEventRequest is the body of POST /proxy/track/field.
type fieldEventRequest struct {
	SessionID string `json:"sessionId"`
	FieldName string `json:"fieldName"`
	FieldType string `json:"fieldType"`
}

// TrackField handles POST /proxy/track/field.
func (h *ProxyHandler) TrackField(w http.ResponseWriter, r *http.Request) {
	shop, err := shopParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req fieldEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.SessionID == "" {
		RespondError(w, domain.ErrValidation("sessionId is required"))
		return
	}

	if res := h.ratelimit.Check(r.Context(), req.SessionID); !res.Allowed {
		RespondError(w, domain.ErrRateLimited(res.Reason))
		return
	}

	h.tracking.FieldEdited(r.Context(), shop, req.SessionID, req.FieldName, req.FieldType)
	RespondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// cartEventRequest is the body of POST /proxy/track/cart.
type cartEventRequest struct {
	SessionID string              `json:"sessionId"`
	Cart      domain.CartSnapshot `json:"cart"`
}

// TrackCart handles POST /proxy/track/cart.
func (h *ProxyHandler) TrackCart(w http.ResponseWriter, r *http.Request) {
	shop, err := shopParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req cartEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.SessionID == "" {
		RespondError(w, domain.ErrValidation("sessionId is required"))
		return
	}

	if res := h.ratelimit.Check(r.Context(), req.SessionID); !res.Allowed {
		RespondError(w, domain.ErrRateLimited(res.Reason))
		return
	}

	h.tracking.CartSnapshot(r.Context(), shop, req.SessionID, req.Cart)
	RespondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// submitRequest is the body of POST /proxy/submit.
type submitRequest struct {
	SessionID string              `json:"sessionId"`
	Values    map[string]string   `json:"values"`
	Cart      domain.CartSnapshot `json:"cart"`
}

// Submit handles POST /proxy/submit.
func (h *ProxyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	shop, err := shopParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req submitRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.forms.Submit(r.Context(), service.SubmitInput{
		Shop:           shop,
		SessionID:      req.SessionID,
		IdempotencyKey: r.Header.Get("X-Idempotency-Key"),
		Values:         req.Values,
		Cart:           req.Cart,
	})
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
