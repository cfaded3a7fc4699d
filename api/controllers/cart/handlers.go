package cart

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusmart/storefront/api/middleware"
	"github.com/campusmart/storefront/api/responses"
	"github.com/campusmart/storefront/api/validators"
	cartsvc "github.com/campusmart/storefront/internal/cart"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
)

// Fetch returns the cart bound to the caller's cart token.
func Fetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCart(svc, logg, func(r *http.Request, cartID string) (*cartsvc.View, error) {
		return svc.Get(r.Context(), cartID)
	})
}

// AddItem adds a product line, clamped to the available stock.
func AddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCart(svc, logg, func(r *http.Request, cartID string) (*cartsvc.View, error) {
		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.AddItem(r.Context(), cartID, cartsvc.AddItemInput{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
		})
	})
}

func Increase(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCartItem(svc, logg, func(ctx context.Context, cartID string, productID uuid.UUID) (*cartsvc.View, error) {
		return svc.Increase(ctx, cartID, productID)
	})
}

func Decrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCartItem(svc, logg, func(ctx context.Context, cartID string, productID uuid.UUID) (*cartsvc.View, error) {
		return svc.Decrease(ctx, cartID, productID)
	})
}

func Remove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCartItem(svc, logg, func(ctx context.Context, cartID string, productID uuid.UUID) (*cartsvc.View, error) {
		return svc.Remove(ctx, cartID, productID)
	})
}

// Clear empties the cart and drops its checkout reference.
func Clear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCart(svc, logg, func(r *http.Request, cartID string) (*cartsvc.View, error) {
		if err := svc.Clear(r.Context(), cartID); err != nil {
			return nil, err
		}
		return svc.Get(r.Context(), cartID)
	})
}

func SetCheckoutReference(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCart(svc, logg, func(r *http.Request, cartID string) (*cartsvc.View, error) {
		var body checkoutReferenceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.SetCheckoutReference(r.Context(), cartID, body.OrderID)
	})
}

func ClearCheckoutReference(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withCart(svc, logg, func(r *http.Request, cartID string) (*cartsvc.View, error) {
		return svc.ClearCheckoutReference(r.Context(), cartID)
	})
}

type cartHandler func(r *http.Request, cartID string) (*cartsvc.View, error)

type itemOperation func(ctx context.Context, cartID string, productID uuid.UUID) (*cartsvc.View, error)

func withCart(svc cartsvc.Service, logg *logger.Logger, fn cartHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		cartID := middleware.CartIDFromContext(r.Context())
		if cartID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token required"))
			return
		}

		view, err := fn(r, cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func withCartItem(svc cartsvc.Service, logg *logger.Logger, op itemOperation) http.HandlerFunc {
	return withCart(svc, logg, func(r *http.Request, cartID string) (*cartsvc.View, error) {
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			return nil, err
		}
		return op(r.Context(), cartID, productID)
	})
}
