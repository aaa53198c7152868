package cart

import (
	"context"
	"fmt"
	"time"

	"cartpay/internal/apperr"
	domcart "cartpay/internal/domain/cart"
	"cartpay/internal/observability"
	"cartpay/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	cartService      = "cart-service"
	useCaseAddItem   = "cart.add_item"
	useCaseGetCart   = "cart.get_cart"
	useCaseEmptyCart = "cart.empty_cart"
	spanPrefix       = "UC."
)

// Service exposes the cart operations. It owns no state; every call
// delegates to the store, so instances are safe for concurrent use.
type Service struct {
	store    domcart.Store
	tracer   observability.Tracer
	log      observability.Logger
	requests observability.Counter
	duration observability.Histogram
}

func NewService(store domcart.Store, tel observability.Observability) *Service {
	baseLog := observability.NopLogger()
	tracer := observability.NopTracer()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger().With(observability.F("service", cartService))
		tracer = tel.Tracer()
		metrics = tel.Metrics()
	}
	return &Service{
		store:    store,
		tracer:   tracer,
		log:      baseLog,
		requests: metrics.Counter(observability.MUsecaseRequests),
		duration: metrics.Histogram(observability.MUsecaseDuration),
	}
}

// AddItem appends item to the customer's cart. The append carries no dedup
// key: a caller that retries after a timeout may append the same item twice.
// Retries are therefore the caller's decision, never done here.
func (s *Service) AddItem(ctx context.Context, customerID string, item domcart.Item) (err error) {
	ctx, finish := s.begin(ctx, useCaseAddItem, "AddItem",
		attribute.String("cart.customer_id", customerID),
		attribute.String("cart.product_id", item.ProductID),
	)
	defer func() { finish(err) }()

	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseAddItem),
		observability.F("customer_id", customerID),
	)

	if customerID == "" {
		return apperr.Wrap(apperr.InvalidArgument, domcart.ErrCustomerIDRequired)
	}
	if item.Quantity < 0 {
		return apperr.Wrap(apperr.InvalidArgument, domcart.ErrInvalidQuantity)
	}

	if storeErr := s.store.AddItem(ctx, customerID, item); storeErr != nil {
		logger.Error("cart_append_failed",
			observability.F("product_id", item.ProductID),
			observability.F("error", storeErr.Error()),
		)
		return apperr.Wrap(apperr.Unavailable, fmt.Errorf("cart: add item: %w", storeErr))
	}

	logger.Info("cart_item_added",
		observability.F("product_id", item.ProductID),
		observability.F("quantity", item.Quantity),
	)
	return nil
}

// GetCart returns the customer's cart. Unknown customers get an empty cart,
// not an error; the read reflects every append and clear accepted before it.
func (s *Service) GetCart(ctx context.Context, customerID string) (_ domcart.Cart, err error) {
	ctx, finish := s.begin(ctx, useCaseGetCart, "GetCart",
		attribute.String("cart.customer_id", customerID),
	)
	defer func() { finish(err) }()

	if customerID == "" {
		return domcart.Cart{}, apperr.Wrap(apperr.InvalidArgument, domcart.ErrCustomerIDRequired)
	}

	c, storeErr := s.store.GetCart(ctx, customerID)
	if storeErr != nil {
		logctx.FromOr(ctx, s.log).Error("cart_read_failed",
			observability.F("use_case", useCaseGetCart),
			observability.F("customer_id", customerID),
			observability.F("error", storeErr.Error()),
		)
		return domcart.Cart{}, apperr.Wrap(apperr.Unavailable, fmt.Errorf("cart: get cart: %w", storeErr))
	}

	c.CustomerID = customerID
	if c.Items == nil {
		c.Items = []domcart.Item{}
	}
	return c, nil
}

// EmptyCart clears the customer's cart. Clearing a cart that was never
// touched succeeds; a later GetCart sees an empty cart, not an absence.
func (s *Service) EmptyCart(ctx context.Context, customerID string) (err error) {
	ctx, finish := s.begin(ctx, useCaseEmptyCart, "EmptyCart",
		attribute.String("cart.customer_id", customerID),
	)
	defer func() { finish(err) }()

	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseEmptyCart),
		observability.F("customer_id", customerID),
	)

	if customerID == "" {
		return apperr.Wrap(apperr.InvalidArgument, domcart.ErrCustomerIDRequired)
	}

	if storeErr := s.store.EmptyCart(ctx, customerID); storeErr != nil {
		logger.Error("cart_clear_failed", observability.F("error", storeErr.Error()))
		return apperr.Wrap(apperr.Unavailable, fmt.Errorf("cart: empty cart: %w", storeErr))
	}

	logger.Info("cart_emptied")
	return nil
}

// begin opens the use-case span and returns a finish func recording
// outcome, status, and latency.
func (s *Service) begin(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	attrs = append(attrs, attribute.String("use_case", useCase))
	ctx, span := s.tracer.Start(ctx, spanPrefix+spanName, attrs...)
	start := time.Now()

	return ctx, func(err error) {
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, apperr.KindOf(err).String())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()

		s.requests.Add(1,
			observability.L("use_case", useCase),
			observability.L("outcome", outcome),
		)
		s.duration.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCase),
		)
	}
}
