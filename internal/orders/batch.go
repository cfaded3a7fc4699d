package orders

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/campusmart/storefront/pkg/enums"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
)

const (
	batchConcurrency = 8
	maxBatchSize     = 200
)

func (s *service) BatchDispatch(ctx context.Context, actor Actor, orderIDs []uuid.UUID) (*BatchResult, error) {
	return s.batchDelivery(ctx, actor, orderIDs, enums.DeliveryStatusDispatched)
}

func (s *service) BatchDeliver(ctx context.Context, actor Actor, orderIDs []uuid.UUID) (*BatchResult, error) {
	return s.batchDelivery(ctx, actor, orderIDs, enums.DeliveryStatusDelivered)
}

// batchDelivery applies one delivery transition to every order
// independently. Items run on a bounded group that never cancels siblings,
// and items already started finish even if the caller goes away.
func (s *service) batchDelivery(ctx context.Context, actor Actor, orderIDs []uuid.UUID, status enums.DeliveryStatus) (*BatchResult, error) {
	if err := authorize(actor, enums.CapabilityManageDelivery); err != nil {
		return nil, err
	}
	ids := dedupe(orderIDs)
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderIds must not be empty")
	}
	if len(ids) > maxBatchSize {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many orderIds").
			WithDetails(map[string]any{"limit": maxBatchSize})
	}

	workCtx := context.WithoutCancel(ctx)
	var (
		mu       sync.Mutex
		combined error
		result   = &BatchResult{Requested: len(ids), Failures: []BatchFailure{}}
	)

	var group errgroup.Group
	group.SetLimit(batchConcurrency)
	for _, id := range ids {
		group.Go(func() error {
			_, err := s.advanceDelivery(workCtx, actor, id, status)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				combined = multierr.Append(combined, err)
				result.Failures = append(result.Failures, batchFailure(id, err))
				return nil
			}
			result.Succeeded++
			return nil
		})
	}
	_ = group.Wait()

	result.Failed = len(result.Failures)
	operation := "batch_" + string(status)
	s.metrics.RecordOperation(operation, result.Failed == 0)
	s.metrics.AddBatchFailures(operation, result.Failed)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"operation": operation,
		"requested": result.Requested,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	})
	if combined != nil {
		s.logg.Warn(s.logg.WithField(logCtx, "errors", multierr.Errors(combined)), "batch delivery finished with failures")
	} else {
		s.logg.Info(logCtx, "batch delivery finished")
	}
	return result, nil
}

func batchFailure(orderID uuid.UUID, err error) BatchFailure {
	failure := BatchFailure{OrderID: orderID, Code: string(pkgerrors.CodeInternal), Message: "internal error"}
	if typed := pkgerrors.As(err); typed != nil {
		failure.Code = string(typed.Code())
		failure.Message = typed.Message()
		if pkgerrors.MetadataFor(typed.Code()).Retryable {
			failure.Message = pkgerrors.MetadataFor(typed.Code()).PublicMessage
		}
	}
	return failure
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
