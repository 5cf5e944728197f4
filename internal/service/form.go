package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/guard"
	"github.com/easycod/platform/internal/infra"
	"github.com/easycod/platform/internal/provider"
	"github.com/easycod/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderCreator places a COD order on the shop. Satisfied by the Shopify
// Admin API client; faked in tests.
type OrderCreator interface {
	CreateOrder(ctx context.Context, shop string, in provider.OrderInput) (*provider.OrderResult, error)
}

// FormService serves the storefront form config and handles order
// submissions.
type FormService struct {
	pool        *pgxpool.Pool
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	outbox      repository.OutboxRepository
	locations   repository.LocationRepository
	idem        *guard.IdempotencyGuard
	orders      OrderCreator
	tracking    *TrackingService
	logger      *slog.Logger
}

// NewFormService creates a FormService.
func NewFormService(
	pool *pgxpool.Pool,
	forms repository.FormRepository,
	submissions repository.SubmissionRepository,
	outbox repository.OutboxRepository,
	locations repository.LocationRepository,
	idem *guard.IdempotencyGuard,
	orders OrderCreator,
	tracking *TrackingService,
	logger *slog.Logger,
) *FormService {
	return &FormService{
		pool:        pool,
		forms:       forms,
		submissions: submissions,
		outbox:      outbox,
		locations:   locations,
		idem:        idem,
		orders:      orders,
		tracking:    tracking,
		logger:      logger,
	}
}

// Config returns the shop's form config for the storefront renderer. Shops
// that never saved one get the default; an inactive form is a not-found for
// the storefront.
func (s *FormService) Config(ctx context.Context, shop string) (*domain.FormConfig, error) {
	config, err := s.forms.FindByShop(ctx, s.pool, shop)
	if err != nil {
		return nil, domain.ErrInternal("load form config", err)
	}
	if config == nil {
		config = domain.DefaultFormConfig()
	}
	if !config.Active {
		return nil, domain.ErrFormInactive()
	}
	return config, nil
}

// Wilayas returns the top level of the location cascade.
func (s *FormService) Wilayas(ctx context.Context) ([]domain.Wilaya, error) {
	wilayas, err := s.locations.ListWilayas(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("load wilayas", err)
	}
	return wilayas, nil
}

// Communes returns the second level of the cascade for one wilaya.
func (s *FormService) Communes(ctx context.Context, wilayaCode string) ([]domain.Commune, error) {
	communes, err := s.locations.ListCommunes(ctx, s.pool, wilayaCode)
	if err != nil {
		return nil, domain.ErrInternal("load communes", err)
	}
	return communes, nil
}

// SubmitInput is one checkout form submission from the storefront.
type SubmitInput struct {
	Shop           string
	SessionID      string
	IdempotencyKey string
	Values         map[string]string
	Cart           domain.CartSnapshot
}

// Submit validates a submission, creates the COD order, persists the
// submission with its audit event, and fires the Purchase trigger. The
// returned result is what the storefront renders; its order data is the
// authoritative source for purchase tracking.
func (s *FormService) Submit(ctx context.Context, in SubmitInput) (*domain.SubmissionResult, error) {
	config, err := s.Config(ctx, in.Shop)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateValues(in.Values); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if res := s.idem.Check(ctx, in.IdempotencyKey); !res.Allowed {
		existing, _ := s.idem.Result(in.IdempotencyKey)
		return nil, domain.ErrDuplicateSubmission(existing)
	}

	shippingCents, err := s.shippingFee(ctx, in.Values["wilaya"])
	if err != nil {
		s.idem.Remove(in.IdempotencyKey)
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, in.Shop, buildOrderInput(in, shippingCents))
	if err != nil {
		// Release the key so the shopper can retry.
		s.idem.Remove(in.IdempotencyKey)
		s.logger.Error("order creation failed", "shop", in.Shop, "error", err)
		return nil, domain.ErrOrderFailed(err)
	}

	orderID := strconv.FormatInt(order.ID, 10)
	s.idem.Record(in.IdempotencyKey, orderID)

	sub, err := s.persistSubmission(ctx, in, orderID, order)
	if err != nil {
		// The order exists on Shopify; losing the local record is an audit
		// gap, not a shopper-facing failure.
		s.logger.Error("submission persist failed", "shop", in.Shop, "order_id", orderID, "error", err)
	} else {
		s.logger.Info("order submitted",
			"shop", in.Shop, "order_id", orderID, "submission_id", sub.ID, "total", order.TotalPrice)
	}

	result := &domain.SubmissionResult{
		Success: true,
		OrderID: orderID,
		PurchaseData: domain.PurchaseData{
			Currency: order.Currency,
			Value:    order.TotalPrice,
		},
		RedirectURL: order.StatusURL,
	}

	s.tracking.SubmissionCompleted(ctx, in.Shop, in.SessionID, *result, in.Cart)

	return result, nil
}

// shippingFee resolves the COD delivery fee from the selected wilaya. An
// empty or unknown wilaya costs nothing rather than blocking the order.
func (s *FormService) shippingFee(ctx context.Context, wilayaCode string) (int64, error) {
	if wilayaCode == "" {
		return 0, nil
	}
	wilaya, err := s.locations.FindWilaya(ctx, s.pool, wilayaCode)
	if err != nil {
		return 0, domain.ErrInternal("load wilaya", err)
	}
	if wilaya == nil {
		return 0, nil
	}
	return wilaya.ShippingFeeCents, nil
}

// newSubmissionRecord maps a placed order back to the stored submission.
// Order totals arrive as decimal amounts and are rounded to cents here.
func newSubmissionRecord(in SubmitInput, orderID string, order *provider.OrderResult) (*domain.Submission, error) {
	values, err := json.Marshal(in.Values)
	if err != nil {
		return nil, err
	}
	return &domain.Submission{
		ID:         uuid.New(),
		ShopDomain: in.Shop,
		SessionID:  in.SessionID,
		OrderID:    orderID,
		Status:     domain.SubmissionConfirmed,
		Values:     values,
		TotalCents: infra.DecimalToCents(order.TotalPrice),
		Currency:   order.Currency,
	}, nil
}

func (s *FormService) persistSubmission(ctx context.Context, in SubmitInput, orderID string, order *provider.OrderResult) (*domain.Submission, error) {
	sub, err := newSubmissionRecord(in, orderID, order)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.submissions.Insert(ctx, tx, sub); err != nil {
		return nil, err
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewOrderSubmittedEvent(in.Shop, sub)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sub, nil
}

// buildOrderInput maps form values and cart lines to the order-creation
// request.
func buildOrderInput(in SubmitInput, shippingCents int64) provider.OrderInput {
	lines := make([]provider.OrderLineItem, 0, len(in.Cart.Items))
	for _, it := range in.Cart.Items {
		line := provider.OrderLineItem{Quantity: it.Quantity}
		if variantID, err := strconv.ParseInt(it.ID, 10, 64); err == nil {
			line.VariantID = variantID
		} else {
			line.Title = it.Name
			line.PriceCents = it.PriceCents
		}
		lines = append(lines, line)
	}

	first, last := splitName(in.Values["full_name"])
	return provider.OrderInput{
		LineItems: lines,
		Customer: provider.OrderCustomer{
			FirstName: first,
			LastName:  last,
			Email:     in.Values["email"],
			Phone:     in.Values["phone"],
		},
		ShippingAddress: provider.OrderAddress{
			Address1: in.Values["address"],
			City:     in.Values["commune"],
			Province: in.Values["wilaya"],
			Phone:    in.Values["phone"],
		},
		ShippingCents: shippingCents,
		Currency:      in.Cart.Currency,
		Note:          "Cash on delivery order",
	}
}

func splitName(full string) (first, last string) {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
