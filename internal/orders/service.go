package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/payments"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// Service exposes the checkout and reconciliation operations on top of the
// order ledger.
type Service interface {
	StartCheckout(ctx context.Context, input StartCheckoutInput) (string, error)
	Confirm(ctx context.Context, checkoutSessionID string) (*models.Order, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*ListResult, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

// StartCheckoutInput carries the authenticated buyer and the product they
// want to purchase. Origin is the caller's origin used to build redirect
// URLs; when empty the configured default applies.
type StartCheckoutInput struct {
	UserID    uuid.UUID
	Email     string
	ProductID *uuid.UUID
	Origin    string
}

type service struct {
	repo     Repository
	catalog  catalog.Repository
	provider payments.CheckoutClient
	cfg      config.CheckoutConfig
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
}

// NewService builds the orders service with its required collaborators.
func NewService(repo Repository, catalogRepo catalog.Repository, provider payments.CheckoutClient, cfg config.CheckoutConfig, checkoutMetrics *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if provider == nil {
		return nil, fmt.Errorf("payment provider client required")
	}
	return &service{
		repo:     repo,
		catalog:  catalogRepo,
		provider: provider,
		cfg:      cfg,
		metrics:  checkoutMetrics,
		logg:     logg,
	}, nil
}

func (s *service) StartCheckout(ctx context.Context, input StartCheckoutInput) (string, error) {
	if input.UserID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == nil || *input.ProductID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product required")
	}

	product, err := s.catalog.FindByID(ctx, *input.ProductID)
	if err != nil {
		return "", err
	}

	origin := strings.TrimRight(strings.TrimSpace(input.Origin), "/")
	if origin == "" {
		origin = strings.TrimRight(s.cfg.DefaultOrigin, "/")
	}

	// The session id placeholder is expanded by the provider on redirect.
	session, err := s.provider.CreateSession(ctx, payments.CreateSessionParams{
		CustomerEmail: input.Email,
		Currency:      s.cfg.Currency,
		SuccessURL:    origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin,
		LineItem: payments.LineItem{
			Name:       product.Name,
			UnitAmount: money.ToMinorUnits(product.Price),
			Quantity:   1,
		},
	})
	if err != nil {
		s.metrics.IncProviderFailures()
		return "", pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "create checkout session")
	}

	// The ledger write happens strictly after the provider call so a failed
	// session never leaves a dangling order.
	order := &models.Order{
		UserID:            input.UserID,
		ProductID:         product.ID,
		Total:             product.Price,
		Currency:          enums.CurrencyFromCode(s.cfg.Currency),
		CheckoutSessionID: session.ID,
		Status:            enums.OrderStatusUnpaid,
	}
	if _, err := s.repo.Create(ctx, order); err != nil {
		return "", err
	}

	s.metrics.IncSessionsOpened()
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_id":         order.ID.String(),
			"checkout_session": session.ID,
		})
		s.logg.Info(ctx, "checkout session opened")
	}

	return session.ID, nil
}

func (s *service) Confirm(ctx context.Context, checkoutSessionID string) (*models.Order, error) {
	sessionID := strings.TrimSpace(checkoutSessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout_session required")
	}

	if _, err := s.repo.FindByCheckoutSession(ctx, sessionID); err != nil {
		return nil, err
	}

	status, err := s.provider.GetSessionStatus(ctx, sessionID)
	if err != nil {
		s.metrics.IncProviderFailures()
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "retrieve checkout session")
	}
	if !status.IsPaid() {
		s.metrics.IncConfirmIncomplete()
		return nil, pkgerrors.New(pkgerrors.CodePaymentNotCompleted, "payment was not successful, retry or contact support").
			WithDetails(map[string]any{"payment_status": string(status)})
	}

	// Single-statement compare-and-set: under concurrent confirms exactly one
	// caller flips the row, everyone else sees zero rows affected and treats
	// the order as already settled.
	affected, err := s.repo.MarkPaid(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindByCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if affected > 0 {
		s.metrics.IncConfirmSettled()
		if s.logg != nil {
			ctx = s.logg.WithFields(ctx, map[string]any{
				"order_id":         order.ID.String(),
				"checkout_session": sessionID,
			})
			s.logg.Info(ctx, "order reconciled as paid")
		}
	} else {
		s.metrics.IncConfirmDuplicate()
	}

	return order, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*ListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.repo.ListForUser(ctx, userID, filter)
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.repo.FindByIDForUser(ctx, userID, orderID)
}
