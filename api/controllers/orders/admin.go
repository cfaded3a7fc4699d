package orders

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusmart/storefront/api/responses"
	"github.com/campusmart/storefront/api/validators"
	internalorders "github.com/campusmart/storefront/internal/orders"
	"github.com/campusmart/storefront/pkg/enums"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
)

// AdminList pages every order with optional deliveryStatus and
// paymentConfirmed filters.
func AdminList(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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
		filters, err := adminFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.AdminList(r.Context(), actorFrom(r), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminUpdate moves an order to the requested delivery status.
func AdminUpdate(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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
		var body updateDeliveryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseDeliveryStatus(body.DeliveryStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deliveryStatus"))
			return
		}
		order, err := svc.UpdateDeliveryStatus(r.Context(), actorFrom(r), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ConfirmPayment(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc, logg, func(ctx context.Context, actor internalorders.Actor, id uuid.UUID) (*internalorders.OrderDTO, error) {
		return svc.ConfirmPayment(ctx, actor, id)
	})
}

func Dispatch(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc, logg, func(ctx context.Context, actor internalorders.Actor, id uuid.UUID) (*internalorders.OrderDTO, error) {
		return svc.Dispatch(ctx, actor, id)
	})
}

func Deliver(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc, logg, func(ctx context.Context, actor internalorders.Actor, id uuid.UUID) (*internalorders.OrderDTO, error) {
		return svc.Deliver(ctx, actor, id)
	})
}

func BatchDispatch(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return batch(svc, logg, func(ctx context.Context, actor internalorders.Actor, ids []uuid.UUID) (*internalorders.BatchResult, error) {
		return svc.BatchDispatch(ctx, actor, ids)
	})
}

func BatchDeliver(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return batch(svc, logg, func(ctx context.Context, actor internalorders.Actor, ids []uuid.UUID) (*internalorders.BatchResult, error) {
		return svc.BatchDeliver(ctx, actor, ids)
	})
}

// Delete removes an unpaid order.
func Delete(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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
		if err := svc.Delete(r.Context(), actorFrom(r), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type transitionFunc func(ctx context.Context, actor internalorders.Actor, id uuid.UUID) (*internalorders.OrderDTO, error)

type batchFunc func(ctx context.Context, actor internalorders.Actor, ids []uuid.UUID) (*internalorders.BatchResult, error)

func transition(svc internalorders.Service, logg *logger.Logger, fn transitionFunc) http.HandlerFunc {
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
		order, err := fn(r.Context(), actorFrom(r), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func batch(svc internalorders.Service, logg *logger.Logger, fn batchFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		var body batchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := fn(r.Context(), actorFrom(r), body.OrderIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func adminFilters(r *http.Request) (internalorders.ListFilters, error) {
	var filters internalorders.ListFilters
	if raw := validators.SanitizeString(r.URL.Query().Get("deliveryStatus"), 32); raw != "" {
		status, err := enums.ParseDeliveryStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deliveryStatus")
		}
		filters.DeliveryStatus = &status
	}
	confirmed, err := validators.ParseQueryBool(r, "paymentConfirmed")
	if err != nil {
		return filters, err
	}
	filters.PaymentConfirmed = confirmed
	return filters, nil
}
