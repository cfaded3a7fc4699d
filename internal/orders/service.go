package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/internal/notifications"
	"github.com/campusmart/storefront/pkg/db"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/metrics"
	"github.com/campusmart/storefront/pkg/outbox"
	"github.com/campusmart/storefront/pkg/outbox/payloads"
	"github.com/campusmart/storefront/pkg/pagination"
	"github.com/campusmart/storefront/pkg/types"
)

const maxIdempotencyKeyLength = 255

// Service owns the order state machine: creation with stock bookkeeping,
// the customer payment claim, and the admin payment and delivery axes.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateOrderInput) (*CreateOrderResult, error)
	ClaimPayment(ctx context.Context, actor Actor, orderID uuid.UUID, claimed bool) (*OrderDTO, error)
	ConfirmPayment(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	Dispatch(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	Deliver(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	UpdateDeliveryStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status enums.DeliveryStatus) (*OrderDTO, error)
	BatchDispatch(ctx context.Context, actor Actor, orderIDs []uuid.UUID) (*BatchResult, error)
	BatchDeliver(ctx context.Context, actor Actor, orderIDs []uuid.UUID) (*BatchResult, error)
	Delete(ctx context.Context, actor Actor, orderID uuid.UUID) error
	Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	ListMine(ctx context.Context, actor Actor, params pagination.Params) (*types.Page[OrderDTO], error)
	AdminList(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*types.Page[OrderDTO], error)
}

// ServiceParams collects the order service collaborators.
type ServiceParams struct {
	Repository    Repository
	Tx            txRunner
	Inventory     Inventory
	Outbox        outboxPublisher
	Notifications notifier
	Logger        *logger.Logger
	Metrics       *metrics.OrderMetrics
	Currency      string
}

type service struct {
	repo      Repository
	tx        txRunner
	inventory Inventory
	outbox    outboxPublisher
	notifier  notifier
	logg      *logger.Logger
	metrics   *metrics.OrderMetrics
	currency  string
}

// NewService builds the order lifecycle service. Notifications and Metrics
// are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	currency := strings.ToUpper(strings.TrimSpace(params.Currency))
	if currency == "" {
		currency = "NGN"
	}
	return &service{
		repo:      params.Repository,
		tx:        params.Tx,
		inventory: params.Inventory,
		outbox:    params.Outbox,
		notifier:  params.Notifications,
		logg:      params.Logger,
		metrics:   params.Metrics,
		currency:  currency,
	}, nil
}

// stockRequest is the aggregated quantity of one product across every
// submitted line.
type stockRequest struct {
	productID uuid.UUID
	quantity  int
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateOrderInput) (result *CreateOrderResult, err error) {
	defer func() { s.metrics.RecordOperation("create", err == nil) }()

	if !actor.authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items in cart")
	}
	requests, err := aggregateItems(input.Items)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key too long")
	}
	if input.Address != nil {
		input.Address.Normalize()
	}

	if key != "" {
		existing, err := s.findReplay(ctx, actor.UserID, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	userID := actor.UserID
	order := &models.Order{
		ID:             uuid.New(),
		UserID:         &userID,
		Currency:       s.currency,
		DeliveryStatus: enums.DeliveryStatusPending,
		Address:        input.Address,
	}
	if key != "" {
		order.IdempotencyKey = &key
	}

	var depleted []models.Product
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalog, err := s.loadCatalog(ctx, tx, requests)
		if err != nil {
			return err
		}

		order.Products = snapshotLines(input.Items, catalog)
		order.Amount = order.Products.Amount()
		if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}

		for _, req := range requests {
			ok, err := s.inventory.DecrementStock(ctx, tx, req.productID, req.quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			product := catalog[req.productID]
			if !ok {
				return s.raceLostStock(ctx, tx, product, req.quantity)
			}
			if product.Available()-req.quantity <= 0 {
				depleted = append(depleted, product)
			}
		}

		if err := s.outbox.Emit(ctx, tx, s.orderCreatedEvent(actor, order, requests)); err != nil {
			return err
		}
		for _, product := range depleted {
			event := outbox.DomainEvent{
				EventType:     enums.EventProductStockDepleted,
				AggregateType: enums.AggregateProduct,
				AggregateID:   product.ID,
				Actor:         actorRef(actor),
				Data:          payloads.StockDepletedEvent{ProductID: product.ID, Name: product.Name},
			}
			if err := s.outbox.Emit(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if key != "" && db.IsUniqueViolation(err, "") {
			if existing, findErr := s.findReplay(ctx, actor.UserID, key); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		if pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
			s.metrics.IncStockRejection()
		}
		return nil, s.storeError(err, "create order")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"user_id":  actor.UserID.String(),
		"amount":   order.Amount,
	})
	s.logg.Info(logCtx, "order created")
	return &CreateOrderResult{OrderID: order.ID}, nil
}

func (s *service) findReplay(ctx context.Context, userID uuid.UUID, key string) (*CreateOrderResult, error) {
	existing, err := s.repo.FindByIdempotencyKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup idempotency key")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, existing.ID.String()), "order create replayed")
	return &CreateOrderResult{OrderID: existing.ID, Replayed: true}, nil
}

// loadCatalog is the pre-pass: every product must exist and hold enough
// stock before anything is written.
func (s *service) loadCatalog(ctx context.Context, tx *gorm.DB, requests []stockRequest) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.productID)
	}
	catalog, err := s.inventory.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	for _, req := range requests {
		product, ok := catalog[req.productID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"productId": req.productID})
		}
		if available := product.Available(); available < req.quantity {
			return nil, insufficientStock(product, available, req.quantity)
		}
	}
	return catalog, nil
}

// raceLostStock reports a conditional decrement that matched no row,
// re-reading the product so the error names the stock that is left.
func (s *service) raceLostStock(ctx context.Context, tx *gorm.DB, product models.Product, requested int) error {
	available := 0
	if fresh, err := s.inventory.FindByIDs(ctx, tx, []uuid.UUID{product.ID}); err == nil {
		if current, ok := fresh[product.ID]; ok {
			available = current.Available()
		}
	}
	s.logg.Warn(s.logg.WithField(ctx, "product_id", product.ID.String()), "stock changed during checkout")
	return insufficientStock(product, available, requested)
}

func (s *service) orderCreatedEvent(actor Actor, order *models.Order, requests []stockRequest) outbox.DomainEvent {
	items := make([]payloads.OrderItem, 0, len(requests))
	for _, req := range requests {
		items = append(items, payloads.OrderItem{ProductID: req.productID, Quantity: req.quantity})
	}
	return outbox.DomainEvent{
		EventType:     enums.EventOrderCreated,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         actorRef(actor),
		Data: payloads.OrderCreatedEvent{
			OrderID:  order.ID,
			UserID:   order.UserID,
			Amount:   order.Amount,
			Currency: order.Currency,
			Items:    items,
		},
	}
}

func (s *service) ClaimPayment(ctx context.Context, actor Actor, orderID uuid.UUID, claimed bool) (dto *OrderDTO, err error) {
	operation := "claim_payment"
	if !claimed {
		operation = "revoke_payment_claim"
	}
	defer func() { s.metrics.RecordOperation(operation, err == nil) }()

	if !actor.authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	changed := false
	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		order = found
		if !order.OwnedBy(actor.UserID) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
		}
		if order.PaymentClaimed == claimed {
			return nil
		}
		if !claimed && order.PaymentConfirmed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment already confirmed")
		}
		if err := s.update(ctx, repo, order.ID, map[string]any{"payment_claimed": claimed}); err != nil {
			return err
		}
		order.PaymentClaimed = claimed
		changed = true

		eventType := enums.EventPaymentClaimed
		if !claimed {
			eventType = enums.EventPaymentClaimRevoked
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         actorRef(actor),
			Data:          payloads.PaymentClaimEvent{OrderID: order.ID, UserID: actor.UserID, Claimed: claimed},
		})
	})
	if err != nil {
		return nil, s.storeError(err, "update payment claim")
	}

	if changed {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Info(s.logg.WithField(logCtx, "payment_claimed", claimed), "payment claim updated")
		s.notifyClaim(logCtx, order.ID, claimed)
	}
	result := toDTO(*order)
	return &result, nil
}

// notifyClaim tells the admin inbox about a claim change. Failures never
// affect the claim itself.
func (s *service) notifyClaim(ctx context.Context, orderID uuid.UUID, claimed bool) {
	if s.notifier == nil {
		return
	}
	input := notifications.EmitInput{
		Title:   "Payment claimed",
		Body:    fmt.Sprintf("Order %s marked as paid by customer.", orderID),
		OrderID: &orderID,
	}
	if !claimed {
		input.Title = "Payment claim revoked"
		input.Body = fmt.Sprintf("Customer revoked payment claim for order %s.", orderID)
	}
	if err := s.notifier.Emit(ctx, input); err != nil {
		s.logg.Error(ctx, "payment claim notification failed", err)
	}
}

// ConfirmPayment settles a claimed payment. Confirmed orders stay claimed,
// since revoking a confirmed claim is rejected.
func (s *service) ConfirmPayment(ctx context.Context, actor Actor, orderID uuid.UUID) (dto *OrderDTO, err error) {
	defer func() { s.metrics.RecordOperation("confirm_payment", err == nil) }()

	if err := authorize(actor, enums.CapabilityConfirmPayment); err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		order = found
		if order.PaymentConfirmed {
			return nil
		}
		if !order.PaymentClaimed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment has not been claimed")
		}
		if err := s.update(ctx, repo, order.ID, map[string]any{"payment_confirmed": true}); err != nil {
			return err
		}
		order.PaymentConfirmed = true
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPaymentConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         actorRef(actor),
			Data:          payloads.PaymentConfirmedEvent{OrderID: order.ID},
		})
	})
	if err != nil {
		return nil, s.storeError(err, "confirm payment")
	}

	s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "payment confirmed")
	result := toDTO(*order)
	return &result, nil
}

func (s *service) Dispatch(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error) {
	return s.UpdateDeliveryStatus(ctx, actor, orderID, enums.DeliveryStatusDispatched)
}

func (s *service) Deliver(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error) {
	return s.UpdateDeliveryStatus(ctx, actor, orderID, enums.DeliveryStatusDelivered)
}

// UpdateDeliveryStatus moves delivery forward. Re-applying the current
// status succeeds without writing; moving backward is a state conflict.
func (s *service) UpdateDeliveryStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status enums.DeliveryStatus) (dto *OrderDTO, err error) {
	defer func() { s.metrics.RecordOperation("delivery_"+string(status), err == nil) }()

	if err := authorize(actor, enums.CapabilityManageDelivery); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery status")
	}
	order, err := s.advanceDelivery(ctx, actor, orderID, status)
	if err != nil {
		return nil, err
	}
	result := toDTO(*order)
	return &result, nil
}

func (s *service) advanceDelivery(ctx context.Context, actor Actor, orderID uuid.UUID, status enums.DeliveryStatus) (*models.Order, error) {
	var (
		order *models.Order
		from  enums.DeliveryStatus
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		order = found
		from = order.DeliveryStatus
		if from == status {
			return nil
		}
		if !from.CanAdvanceTo(status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "delivery status cannot move backward").
				WithDetails(map[string]any{"from": from, "to": status})
		}
		if err := s.update(ctx, repo, order.ID, map[string]any{"delivery_status": status}); err != nil {
			return err
		}
		order.DeliveryStatus = status

		eventType, ok := enums.DeliveryEvent(status)
		if !ok {
			return nil
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         actorRef(actor),
			Data:          payloads.DeliveryStatusChangedEvent{OrderID: order.ID, From: from, To: status},
		})
	})
	if err != nil {
		return nil, s.storeError(err, "update delivery status")
	}

	if from != status {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"from":     string(from),
			"to":       string(status),
		})
		s.logg.Info(logCtx, "delivery status updated")
	}
	return order, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, orderID uuid.UUID) (err error) {
	defer func() { s.metrics.RecordOperation("delete", err == nil) }()

	if err := authorize(actor, enums.CapabilityDeleteOrder); err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.PaymentClaimed || order.PaymentConfirmed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "orders with a claimed or confirmed payment cannot be deleted")
		}
		deleted, err := repo.Delete(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderDeleted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         actorRef(actor),
			Data:          payloads.OrderDeletedEvent{OrderID: order.ID},
		})
	})
	if err != nil {
		return s.storeError(err, "delete order")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, orderID.String()), "order deleted")
	return nil
}

func (s *service) Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error) {
	if !actor.authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	order, err := s.findOrder(ctx, s.repo, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(actor.UserID) && !actor.Role.Allows(enums.CapabilityViewAllOrders) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}
	result := toDTO(*order)
	return &result, nil
}

func (s *service) ListMine(ctx context.Context, actor Actor, params pagination.Params) (*types.Page[OrderDTO], error) {
	if !actor.authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID := actor.UserID
	return s.list(ctx, params, ListFilters{UserID: &userID})
}

func (s *service) AdminList(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*types.Page[OrderDTO], error) {
	if err := authorize(actor, enums.CapabilityViewAllOrders); err != nil {
		return nil, err
	}
	if filters.DeliveryStatus != nil && !filters.DeliveryStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery status")
	}
	return s.list(ctx, params, filters)
}

func (s *service) list(ctx context.Context, params pagination.Params, filters ListFilters) (*types.Page[OrderDTO], error) {
	rows, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	items := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return &types.Page[OrderDTO]{Items: items, Cursor: next}, nil
}

func (s *service) findOrder(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) update(ctx context.Context, repo Repository, orderID uuid.UUID, updates map[string]any) error {
	updated, err := repo.UpdateFields(ctx, orderID, updates)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

// storeError passes typed errors through and wraps anything raw as a
// dependency failure.
func (s *service) storeError(err error, msg string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

func authorize(actor Actor, capability enums.Capability) error {
	if !actor.authenticated() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !actor.Role.Allows(capability) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return nil
}

func aggregateItems(items []CreateOrderItem) ([]stockRequest, error) {
	index := make(map[uuid.UUID]int, len(items))
	requests := make([]stockRequest, 0, len(items))
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required").
				WithDetails(map[string]any{"line": i})
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"line": i, "productId": item.ProductID})
		}
		if pos, ok := index[item.ProductID]; ok {
			requests[pos].quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(requests)
		requests = append(requests, stockRequest{productID: item.ProductID, quantity: item.Quantity})
	}
	return requests, nil
}

// snapshotLines copies the catalog data of every submitted line onto the
// order, one snapshot line per submitted line.
func snapshotLines(items []CreateOrderItem, catalog map[uuid.UUID]models.Product) types.OrderLines {
	lines := make(types.OrderLines, 0, len(items))
	for _, item := range items {
		product := catalog[item.ProductID]
		lines = append(lines, types.OrderLine{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Category:    product.Category,
			Brand:       product.Brand,
			SelectedImg: product.PrimaryImage(),
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
	}
	return lines
}

func insufficientStock(product models.Product, available, requested int) *pkgerrors.Error {
	if available < 0 {
		available = 0
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for %s: %d available", product.Name, available)).
		WithDetails(map[string]any{
			"productId":   product.ID,
			"productName": product.Name,
			"available":   available,
			"requested":   requested,
		})
}

func actorRef(actor Actor) *outbox.ActorRef {
	if !actor.authenticated() {
		return nil
	}
	return &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role}
}
