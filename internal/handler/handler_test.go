package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/guard"
	"github.com/easycod/platform/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTracking records trigger invocations.
type fakeTracking struct {
	sessionID  string
	fieldCalls []string
	cartCalls  []domain.CartSnapshot
}

func (f *fakeTracking) IssueSession(context.Context) string { return f.sessionID }

func (f *fakeTracking) FieldEdited(_ context.Context, _, _, fieldName, _ string) {
	f.fieldCalls = append(f.fieldCalls, fieldName)
}

func (f *fakeTracking) CartSnapshot(_ context.Context, _, _ string, snap domain.CartSnapshot) {
	f.cartCalls = append(f.cartCalls, snap)
}

// fakeForms serves canned form responses.
type fakeForms struct {
	config    *domain.FormConfig
	configErr error
	result    *domain.SubmissionResult
	submitErr error
	lastInput service.SubmitInput
}

func (f *fakeForms) Config(context.Context, string) (*domain.FormConfig, error) {
	return f.config, f.configErr
}

func (f *fakeForms) Wilayas(context.Context) ([]domain.Wilaya, error) {
	return []domain.Wilaya{{Code: "16", Name: "Alger", ShippingFeeCents: 40000}}, nil
}

func (f *fakeForms) Communes(_ context.Context, code string) ([]domain.Commune, error) {
	return []domain.Commune{{WilayaCode: code, Name: "Alger Centre"}}, nil
}

func (f *fakeForms) Submit(_ context.Context, in service.SubmitInput) (*domain.SubmissionResult, error) {
	f.lastInput = in
	return f.result, f.submitErr
}

func newProxyHandler(tracking *fakeTracking, forms *fakeForms) *ProxyHandler {
	return NewProxyHandler(tracking, forms, guard.NewRateLimiter(100, time.Minute))
}

func TestIssueSession(t *testing.T) {
	h := newProxyHandler(&fakeTracking{sessionID: "sess-1"}, &fakeForms{})

	req := httptest.NewRequest("POST", "/proxy/session?shop=demo.myshopify.com", nil)
	rec := httptest.NewRecorder()
	h.IssueSession(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp["sessionId"])
}

func TestIssueSessionRequiresShop(t *testing.T) {
	h := newProxyHandler(&fakeTracking{}, &fakeForms{})

	req := httptest.NewRequest("POST", "/proxy/session", nil)
	rec := httptest.NewRecorder()
	h.IssueSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetForm(t *testing.T) {
	h := newProxyHandler(&fakeTracking{}, &fakeForms{config: domain.DefaultFormConfig()})

	req := httptest.NewRequest("GET", "/proxy/form?shop=demo.myshopify.com", nil)
	rec := httptest.NewRecorder()
	h.GetForm(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var config domain.FormConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &config))
	assert.True(t, config.Active)
	assert.NotEmpty(t, config.Fields)
}

func TestGetFormInactive(t *testing.T) {
	h := newProxyHandler(&fakeTracking{}, &fakeForms{configErr: domain.ErrFormInactive()})

	req := httptest.NewRequest("GET", "/proxy/form?shop=demo.myshopify.com", nil)
	rec := httptest.NewRecorder()
	h.GetForm(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORM_INACTIVE")
}

func TestTrackField(t *testing.T) {
	tracking := &fakeTracking{}
	h := newProxyHandler(tracking, &fakeForms{})

	body := `{"sessionId":"s1","fieldName":"phone","fieldType":"tel"}`
	req := httptest.NewRequest("POST", "/proxy/track/field?shop=demo.myshopify.com", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.TrackField(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"phone"}, tracking.fieldCalls)
}

func TestTrackFieldRequiresSession(t *testing.T) {
	tracking := &fakeTracking{}
	h := newProxyHandler(tracking, &fakeForms{})

	body := `{"fieldName":"phone","fieldType":"tel"}`
	req := httptest.NewRequest("POST", "/proxy/track/field?shop=demo.myshopify.com", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.TrackField(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, tracking.fieldCalls)
}

func TestTrackFieldRateLimited(t *testing.T) {
	tracking := &fakeTracking{}
	h := NewProxyHandler(tracking, &fakeForms{}, guard.NewRateLimiter(1, time.Minute))

	for i := 0; i < 2; i++ {
		body := `{"sessionId":"s1","fieldName":"phone","fieldType":"tel"}`
		req := httptest.NewRequest("POST", "/proxy/track/field?shop=demo.myshopify.com", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.TrackField(rec, req)

		if i == 0 {
			assert.Equal(t, http.StatusAccepted, rec.Code)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
	assert.Len(t, tracking.fieldCalls, 1)
}

func TestTrackCart(t *testing.T) {
	tracking := &fakeTracking{}
	h := newProxyHandler(tracking, &fakeForms{})

	body := `{"sessionId":"s1","cart":{"items":[{"id":"sku-1","quantity":2,"price_cents":500}],"total_cents":1000,"currency":"DZD"}}`
	req := httptest.NewRequest("POST", "/proxy/track/cart?shop=demo.myshopify.com", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.TrackCart(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, tracking.cartCalls, 1)
	assert.Equal(t, int64(1000), tracking.cartCalls[0].TotalCents)
}

func TestSubmit(t *testing.T) {
	forms := &fakeForms{result: &domain.SubmissionResult{
		Success: true,
		OrderID: "1001",
		PurchaseData: domain.PurchaseData{
			Currency: "DZD",
			Value:    42.50,
		},
	}}
	h := newProxyHandler(&fakeTracking{}, forms)

	body := `{"sessionId":"s1","values":{"phone":"0550123456"},"cart":{"total_cents":4250,"currency":"DZD"}}`
	req := httptest.NewRequest("POST", "/proxy/submit?shop=demo.myshopify.com", strings.NewReader(body))
	req.Header.Set("X-Idempotency-Key", "idem-1")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SubmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "1001", result.OrderID)
	assert.Equal(t, 42.50, result.PurchaseData.Value)

	assert.Equal(t, "demo.myshopify.com", forms.lastInput.Shop)
	assert.Equal(t, "idem-1", forms.lastInput.IdempotencyKey)
	assert.Equal(t, "s1", forms.lastInput.SessionID)
}

func TestSubmitDuplicate(t *testing.T) {
	forms := &fakeForms{submitErr: domain.ErrDuplicateSubmission("1001")}
	h := newProxyHandler(&fakeTracking{}, forms)

	body := `{"sessionId":"s1","values":{},"cart":{}}`
	req := httptest.NewRequest("POST", "/proxy/submit?shop=demo.myshopify.com", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_SUBMISSION")
}

// fakeSettings serves canned admin responses.
type fakeSettings struct {
	settings      *domain.PixelSettings
	savedSet      *domain.PixelSettings
	saveErr       error
	form          *domain.FormConfig
	savedForm     *domain.FormConfig
	subs          []domain.Submission
	stats         []domain.PixelEventStat
	lastShop      string
	lastDaysSeen  int
	lastLimitSeen int
}

func (f *fakeSettings) Settings(_ context.Context, shop string) (*domain.PixelSettings, error) {
	f.lastShop = shop
	return f.settings, nil
}

func (f *fakeSettings) SaveSettings(_ context.Context, shop string, s *domain.PixelSettings) error {
	f.lastShop = shop
	f.savedSet = s
	return f.saveErr
}

func (f *fakeSettings) Form(_ context.Context, shop string) (*domain.FormConfig, error) {
	f.lastShop = shop
	return f.form, nil
}

func (f *fakeSettings) SaveForm(_ context.Context, shop string, c *domain.FormConfig) error {
	f.lastShop = shop
	f.savedForm = c
	return nil
}

func (f *fakeSettings) Submissions(_ context.Context, shop string, _ *string, limit int) ([]domain.Submission, error) {
	f.lastShop = shop
	f.lastLimitSeen = limit
	if limit < len(f.subs) {
		return f.subs[:limit], nil
	}
	return f.subs, nil
}

func (f *fakeSettings) EventReport(_ context.Context, shop string, days int) ([]domain.PixelEventStat, error) {
	f.lastShop = shop
	f.lastDaysSeen = days
	return f.stats, nil
}

func TestGetSettings(t *testing.T) {
	fake := &fakeSettings{settings: &domain.PixelSettings{FacebookPixelID: "fb-1"}}
	h := NewAdminHandler(fake)

	req := httptest.NewRequest("GET", "/admin/settings", nil)
	rec := httptest.NewRecorder()
	h.GetSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var settings domain.PixelSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "fb-1", settings.FacebookPixelID)
}

func TestPutSettings(t *testing.T) {
	fake := &fakeSettings{}
	h := NewAdminHandler(fake)

	body := `{"facebookPixelId":"fb-2","fbPurchaseEvent":"Custom","sendFbAddToCart":true}`
	req := httptest.NewRequest("PUT", "/admin/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.PutSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.savedSet)
	assert.Equal(t, "fb-2", fake.savedSet.FacebookPixelID)
	assert.Equal(t, domain.FbPurchaseCustom, fake.savedSet.FbPurchaseEvent)
	assert.True(t, fake.savedSet.SendFbAddToCart)
}

func TestPutSettingsValidationError(t *testing.T) {
	fake := &fakeSettings{saveErr: domain.ErrValidation("fbPurchaseEvent must be valid")}
	h := NewAdminHandler(fake)

	req := httptest.NewRequest("PUT", "/admin/settings", strings.NewReader(`{"fbPurchaseEvent":"Weird"}`))
	rec := httptest.NewRecorder()
	h.PutSettings(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSubmissionsPagination(t *testing.T) {
	subs := make([]domain.Submission, 3)
	for i := range subs {
		subs[i] = domain.Submission{ShopDomain: "demo.myshopify.com"}
	}
	fake := &fakeSettings{subs: subs}
	h := NewAdminHandler(fake)

	req := httptest.NewRequest("GET", "/admin/submissions?limit=2", nil)
	rec := httptest.NewRecorder()
	h.ListSubmissions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Submissions []domain.Submission `json:"submissions"`
		NextCursor  *string             `json:"next_cursor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Submissions, 2)
	assert.NotNil(t, resp.NextCursor)
}

func TestListSubmissionsFullPage(t *testing.T) {
	subs := make([]domain.Submission, 150)
	for i := range subs {
		subs[i] = domain.Submission{ID: uuid.New(), ShopDomain: "demo.myshopify.com"}
	}
	fake := &fakeSettings{subs: subs}
	h := NewAdminHandler(fake)

	req := httptest.NewRequest("GET", "/admin/submissions?limit=100", nil)
	rec := httptest.NewRecorder()
	h.ListSubmissions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 101, fake.lastLimitSeen)

	var resp struct {
		Submissions []domain.Submission `json:"submissions"`
		NextCursor  *string             `json:"next_cursor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Submissions, 100)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, subs[99].ID.String(), *resp.NextCursor)
}

func TestGetEventReportDaysClamped(t *testing.T) {
	fake := &fakeSettings{}
	h := NewAdminHandler(fake)

	req := httptest.NewRequest("GET", "/admin/reports/events?days=500", nil)
	rec := httptest.NewRecorder()
	h.GetEventReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, fake.lastDaysSeen)
}
