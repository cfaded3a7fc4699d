package orders

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/campusmart/storefront/api/middleware"
	"github.com/campusmart/storefront/api/responses"
	"github.com/campusmart/storefront/api/validators"
	internalorders "github.com/campusmart/storefront/internal/orders"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
)

// cartClearer empties the caller's cart once the order exists.
type cartClearer interface {
	Clear(ctx context.Context, cartID string) error
}

// Create places an order from the submitted lines. The cart named by the
// X-Cart-Token header, when present, is cleared after the order commits.
func Create(svc internalorders.Service, carts cartClearer, cartIDs func(token string) (string, bool), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		key := strings.TrimSpace(r.Header.Get(middleware.IdempotencyKeyHeader))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			if errors.Is(err, io.EOF) {
				err = pkgerrors.New(pkgerrors.CodeValidation, "no items in cart")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), actorFrom(r), body.toInput(key))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if carts != nil && cartIDs != nil {
			if cartID, ok := cartIDs(r.Header.Get(middleware.CartTokenHeader)); ok {
				if clearErr := carts.Clear(r.Context(), cartID); clearErr != nil && logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", clearErr.Error()), "clear cart after order failed")
				}
			}
		}

		status := http.StatusCreated
		if result.Replayed {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

// List returns the caller's orders, newest first.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ListMine(r.Context(), actorFrom(r), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// Detail returns one order to its owner or an admin.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), actorFrom(r), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ClaimPayment records or revokes the owner's "I have paid" claim. An empty
// body claims.
func ClaimPayment(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claimed := true
		if r.ContentLength != 0 {
			var body paymentClaimRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil && !errors.Is(err, io.EOF) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if body.Claimed != nil {
				claimed = *body.Claimed
			}
		}

		order, err := svc.ClaimPayment(r.Context(), actorFrom(r), orderID, claimed)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func actorFrom(r *http.Request) internalorders.Actor {
	identity := middleware.IdentityFromContext(r.Context())
	return internalorders.Actor{UserID: identity.UserID, Role: identity.Role}
}
