package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	internalorders "github.com/angelmondragon/storefront-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// CreateOrder opens a checkout session for the requested product and records
// the pending order. The response carries the session id the client redirects
// with.
func CreateOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.Product.ID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		sessionID, err := svc.StartCheckout(r.Context(), internalorders.StartCheckoutInput{
			UserID:    userID,
			Email:     middleware.UserEmailFromContext(r.Context()),
			ProductID: &productID,
			Origin:    r.Header.Get("Origin"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createOrderResponse{ID: sessionID})
	}
}

// ConfirmOrder reconciles an order against the payment provider's session
// status. Repeated confirms of a settled order succeed without changing it.
func ConfirmOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload confirmOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Confirm(r.Context(), payload.CheckoutSession)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, internalorders.NewOrderDTO(*order))
	}
}

// ListOrders returns the caller's orders newest first with cursor pagination.
func ListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := internalorders.ListFilter{
			Query: strings.TrimSpace(r.URL.Query().Get("q")),
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		result, err := svc.List(r.Context(), userID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listOrdersResponse{
			Orders:     internalorders.NewOrderDTOs(result.Orders),
			NextCursor: result.NextCursor,
		})
	}
}

// OrderDetail returns a single order owned by the caller.
func OrderDetail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawOrderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if rawOrderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}
		orderID, err := uuid.Parse(rawOrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, internalorders.NewOrderDTO(*order))
	}
}

type createOrderRequest struct {
	Product productRef `json:"product" validate:"required"`
}

type productRef struct {
	ID string `json:"id" validate:"required,uuid4"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type confirmOrderRequest struct {
	CheckoutSession string `json:"checkout_session" validate:"required"`
}

type listOrdersResponse struct {
	Orders     []internalorders.OrderDTO `json:"orders"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

func authedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return parsed, nil
}
