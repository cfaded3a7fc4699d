package orders

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/internal/notifications"
	"github.com/campusmart/storefront/internal/products"
	"github.com/campusmart/storefront/pkg/db"
	"github.com/campusmart/storefront/pkg/db/dbtest"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/metrics"
	"github.com/campusmart/storefront/pkg/outbox"
	"github.com/campusmart/storefront/pkg/pagination"
	"github.com/campusmart/storefront/pkg/types"
)

type recordingNotifier struct {
	mu     sync.Mutex
	inputs []notifications.EmitInput
	emitFn func(ctx context.Context, input notifications.EmitInput) error
}

func (r *recordingNotifier) Emit(ctx context.Context, input notifications.EmitInput) error {
	r.mu.Lock()
	r.inputs = append(r.inputs, input)
	r.mu.Unlock()
	if r.emitFn != nil {
		return r.emitFn(ctx, input)
	}
	return nil
}

type stubInventory struct {
	Inventory
	decrementFn func(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error)
}

func (s stubInventory) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error) {
	if s.decrementFn != nil {
		return s.decrementFn(ctx, tx, productID, qty)
	}
	return s.Inventory.DecrementStock(ctx, tx, productID, qty)
}

type harness struct {
	client   *db.Client
	svc      Service
	products *products.Repository
	notifier *recordingNotifier
	customer Actor
	admin    Actor
}

func newHarness(t *testing.T, wrap func(Inventory) Inventory) *harness {
	t.Helper()
	client := dbtest.NewSQLite(t, "orders")
	sqlDB, err := client.SQL()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
	productRepo := products.NewRepository(client.DB())
	inventory := NewCatalogInventory(productRepo)
	if wrap != nil {
		inventory = wrap(inventory)
	}
	notifier := &recordingNotifier{}

	svc, err := NewService(ServiceParams{
		Repository:    NewRepository(client.DB()),
		Tx:            client,
		Inventory:     inventory,
		Outbox:        outbox.NewService(outbox.NewRepository(client.DB()), logg),
		Notifications: notifier,
		Logger:        logg,
		Metrics:       metrics.NewOrderMetrics(prometheus.NewRegistry()),
		Currency:      "ngn",
	})
	require.NoError(t, err)

	return &harness{
		client:   client,
		svc:      svc,
		products: productRepo,
		notifier: notifier,
		customer: Actor{UserID: uuid.New(), Role: enums.RoleCustomer},
		admin:    Actor{UserID: uuid.New(), Role: enums.RoleAdmin},
	}
}

func (h *harness) seedProduct(t *testing.T, name string, price int64, remaining *int, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:           name,
		Price:          decimal.NewFromInt(price),
		Stock:          stock,
		RemainingStock: remaining,
		InStock:        true,
	}
	require.NoError(t, h.products.Create(context.Background(), &product))
	return product
}

func (h *harness) reload(t *testing.T, id uuid.UUID) *models.Product {
	t.Helper()
	product, err := h.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return product
}

func (h *harness) countRows(t *testing.T, table, where string, args ...any) int64 {
	t.Helper()
	var count int64
	query := h.client.DB().Table(table)
	if where != "" {
		query = query.Where(where, args...)
	}
	require.NoError(t, query.Count(&count).Error)
	return count
}

func (h *harness) placeOrder(t *testing.T, actor Actor, items ...CreateOrderItem) uuid.UUID {
	t.Helper()
	result, err := h.svc.Create(context.Background(), actor, CreateOrderInput{Items: items})
	require.NoError(t, err)
	return result.OrderID
}

func intPtr(v int) *int { return &v }

func TestCreateOrderTakesLastUnits(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Indomie", 500, intPtr(3), 10)

	result, err := h.svc.Create(ctx, h.customer, CreateOrderInput{
		Items:   []CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
		Address: &types.DeliveryAddress{FullName: " Ada ", Phone: "0801", Hostel: "Moremi"},
	})
	require.NoError(t, err)
	assert.False(t, result.Replayed)

	order, err := h.svc.Get(ctx, h.customer, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), order.Amount)
	assert.Equal(t, "NGN", order.Currency)
	assert.Equal(t, enums.DeliveryStatusPending, order.DeliveryStatus)
	assert.False(t, order.PaymentClaimed)
	assert.False(t, order.PaymentConfirmed)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "Indomie", order.Products[0].Name)
	require.NotNil(t, order.Address)
	assert.Equal(t, "Ada", order.Address.FullName)

	reloaded := h.reload(t, product.ID)
	require.NotNil(t, reloaded.RemainingStock)
	assert.Equal(t, 0, *reloaded.RemainingStock)
	assert.False(t, reloaded.InStock)

	assert.Equal(t, int64(1), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventOrderCreated)))
	assert.Equal(t, int64(1), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventProductStockDepleted)))
}

func TestCreateOrderFallsBackToStockCounter(t *testing.T) {
	h := newHarness(t, nil)
	product := h.seedProduct(t, "Bread", 800, nil, 4)

	h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	reloaded := h.reload(t, product.ID)
	require.NotNil(t, reloaded.RemainingStock)
	assert.Equal(t, 3, *reloaded.RemainingStock)
	assert.True(t, reloaded.InStock)
	assert.Equal(t, int64(0), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventProductStockDepleted)))
}

func TestCreateOrderInsufficientStockRejectsWholeOrder(t *testing.T) {
	h := newHarness(t, nil)
	first := h.seedProduct(t, "Rice", 5000, intPtr(5), 5)
	second := h.seedProduct(t, "Beans", 3000, intPtr(1), 1)

	_, err := h.svc.Create(context.Background(), h.customer, CreateOrderInput{Items: []CreateOrderItem{
		{ProductID: first.ID, Quantity: 2},
		{ProductID: second.ID, Quantity: 3},
	}})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, second.ID, details["productId"])
	assert.Equal(t, "Beans", details["productName"])
	assert.Equal(t, 1, details["available"])

	assert.Equal(t, int64(0), h.countRows(t, "orders", ""))
	assert.Equal(t, int64(0), h.countRows(t, "outbox_events", ""))
	assert.Equal(t, 5, *h.reload(t, first.ID).RemainingStock)
	assert.Equal(t, 1, *h.reload(t, second.ID).RemainingStock)
}

func TestCreateOrderAggregatesDuplicateLines(t *testing.T) {
	h := newHarness(t, nil)
	product := h.seedProduct(t, "Milk", 300, intPtr(3), 3)

	_, err := h.svc.Create(context.Background(), h.customer, CreateOrderInput{Items: []CreateOrderItem{
		{ProductID: product.ID, Quantity: 2},
		{ProductID: product.ID, Quantity: 2},
	}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock))
	assert.Equal(t, 3, *h.reload(t, product.ID).RemainingStock)
}

func TestCreateOrderLostDecrementRollsBack(t *testing.T) {
	h := newHarness(t, func(inner Inventory) Inventory {
		return stubInventory{Inventory: inner, decrementFn: func(context.Context, *gorm.DB, uuid.UUID, int) (bool, error) {
			return false, nil
		}}
	})
	product := h.seedProduct(t, "Eggs", 1200, intPtr(2), 2)

	_, err := h.svc.Create(context.Background(), h.customer, CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock))
	assert.Equal(t, int64(0), h.countRows(t, "orders", ""))
	assert.Equal(t, int64(0), h.countRows(t, "outbox_events", ""))
}

func TestCreateOrderIdempotencyKeyReplays(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Soap", 250, intPtr(10), 10)
	input := CreateOrderInput{
		Items:          []CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
		IdempotencyKey: "checkout-1",
	}

	first, err := h.svc.Create(ctx, h.customer, input)
	require.NoError(t, err)
	second, err := h.svc.Create(ctx, h.customer, input)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.True(t, second.Replayed)
	assert.Equal(t, int64(1), h.countRows(t, "orders", ""))
	assert.Equal(t, 8, *h.reload(t, product.ID).RemainingStock)

	other := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	third, err := h.svc.Create(ctx, other, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderID, third.OrderID)
}

func TestCreateOrderValidation(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Pen", 100, intPtr(5), 5)

	_, err := h.svc.Create(ctx, Actor{}, CreateOrderInput{Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 1}}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = h.svc.Create(ctx, h.customer, CreateOrderInput{})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, "no items in cart", pkgerrors.As(err).Message())

	_, err = h.svc.Create(ctx, h.customer, CreateOrderInput{Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 0}}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = h.svc.Create(ctx, h.customer, CreateOrderInput{Items: []CreateOrderItem{{ProductID: uuid.New(), Quantity: 1}}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, int64(0), h.countRows(t, "orders", ""))
}

func TestOrderLifecycleScenario(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Garri", 700, intPtr(5), 5)
	orderID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	claimed, err := h.svc.ClaimPayment(ctx, h.customer, orderID, true)
	require.NoError(t, err)
	assert.True(t, claimed.PaymentClaimed)
	require.Len(t, h.notifier.inputs, 1)
	assert.Equal(t, "Payment claimed", h.notifier.inputs[0].Title)
	assert.Equal(t, "Order "+orderID.String()+" marked as paid by customer.", h.notifier.inputs[0].Body)
	require.NotNil(t, h.notifier.inputs[0].OrderID)
	assert.Equal(t, orderID, *h.notifier.inputs[0].OrderID)

	for i := 0; i < 2; i++ {
		confirmed, err := h.svc.ConfirmPayment(ctx, h.admin, orderID)
		require.NoError(t, err)
		assert.True(t, confirmed.PaymentConfirmed)
		assert.True(t, confirmed.PaymentClaimed)
	}
	assert.Equal(t, int64(1), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventPaymentConfirmed)))

	dispatched, err := h.svc.Dispatch(ctx, h.admin, orderID)
	require.NoError(t, err)
	assert.Equal(t, enums.DeliveryStatusDispatched, dispatched.DeliveryStatus)

	delivered, err := h.svc.Deliver(ctx, h.admin, orderID)
	require.NoError(t, err)
	assert.Equal(t, enums.DeliveryStatusDelivered, delivered.DeliveryStatus)

	_, err = h.svc.Deliver(ctx, h.admin, orderID)
	require.NoError(t, err)
	_, err = h.svc.Dispatch(ctx, h.admin, orderID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	_, err = h.svc.ClaimPayment(ctx, h.customer, orderID, false)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	for i := 0; i < 2; i++ {
		order, err := h.svc.Get(ctx, h.customer, orderID)
		require.NoError(t, err)
		assert.True(t, order.PaymentClaimed)
		assert.True(t, order.PaymentConfirmed)
		assert.Equal(t, enums.DeliveryStatusDelivered, order.DeliveryStatus)
	}
	assert.Equal(t, int64(1), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventOrderDelivered)))
}

func TestClaimPaymentOwnership(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Cup", 150, intPtr(5), 5)
	orderID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	stranger := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	_, err := h.svc.ClaimPayment(ctx, stranger, uuid.New(), true)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = h.svc.ClaimPayment(ctx, stranger, orderID, true)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = h.svc.ClaimPayment(ctx, Actor{}, orderID, true)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = h.svc.Get(ctx, stranger, orderID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	order, err := h.svc.Get(ctx, h.admin, orderID)
	require.NoError(t, err)
	assert.False(t, order.PaymentClaimed)
	assert.Empty(t, h.notifier.inputs)
}

func TestClaimToggleAndNotificationFailureIsSwallowed(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.notifier.emitFn = func(context.Context, notifications.EmitInput) error { return errors.New("inbox down") }
	product := h.seedProduct(t, "Tea", 90, intPtr(5), 5)
	orderID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	order, err := h.svc.ClaimPayment(ctx, h.customer, orderID, true)
	require.NoError(t, err)
	assert.True(t, order.PaymentClaimed)

	order, err = h.svc.ClaimPayment(ctx, h.customer, orderID, false)
	require.NoError(t, err)
	assert.False(t, order.PaymentClaimed)

	_, err = h.svc.ClaimPayment(ctx, h.customer, orderID, false)
	require.NoError(t, err)

	require.Len(t, h.notifier.inputs, 2)
	assert.Equal(t, "Payment claim revoked", h.notifier.inputs[1].Title)
	assert.Equal(t, "Customer revoked payment claim for order "+orderID.String()+".", h.notifier.inputs[1].Body)
	assert.Equal(t, int64(1), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventPaymentClaimRevoked)))
}

func TestAdminOperationsRequireCapability(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Sugar", 400, intPtr(5), 5)
	orderID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	_, err := h.svc.ConfirmPayment(ctx, h.customer, orderID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	_, err = h.svc.Dispatch(ctx, h.customer, orderID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	assert.True(t, pkgerrors.IsCode(h.svc.Delete(ctx, h.customer, orderID), pkgerrors.CodeForbidden))
	_, err = h.svc.BatchDispatch(ctx, h.customer, []uuid.UUID{orderID})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	_, err = h.svc.AdminList(ctx, h.customer, pagination.Params{}, ListFilters{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	_, err = h.svc.ConfirmPayment(ctx, Actor{}, orderID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = h.svc.ConfirmPayment(ctx, h.admin, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	order, err := h.svc.Get(ctx, h.customer, orderID)
	require.NoError(t, err)
	assert.False(t, order.PaymentConfirmed)
	assert.Equal(t, enums.DeliveryStatusPending, order.DeliveryStatus)
}

func TestUpdateDeliveryStatusSkipsForward(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Salt", 50, intPtr(5), 5)
	orderID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	order, err := h.svc.UpdateDeliveryStatus(ctx, h.admin, orderID, enums.DeliveryStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.DeliveryStatusDelivered, order.DeliveryStatus)

	_, err = h.svc.UpdateDeliveryStatus(ctx, h.admin, orderID, enums.DeliveryStatusPending)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	_, err = h.svc.UpdateDeliveryStatus(ctx, h.admin, orderID, enums.DeliveryStatus("lost"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteOrder(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Oil", 2500, intPtr(5), 5)
	claimedID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})
	pendingID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	_, err := h.svc.ClaimPayment(ctx, h.customer, claimedID, true)
	require.NoError(t, err)
	assert.True(t, pkgerrors.IsCode(h.svc.Delete(ctx, h.admin, claimedID), pkgerrors.CodeStateConflict))

	require.NoError(t, h.svc.Delete(ctx, h.admin, pendingID))
	_, err = h.svc.Get(ctx, h.admin, pendingID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.IsCode(h.svc.Delete(ctx, h.admin, pendingID), pkgerrors.CodeNotFound))
	assert.Equal(t, int64(1), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventOrderDeleted)))
	assert.Equal(t, 3, *h.reload(t, product.ID).RemainingStock)
}

func TestBatchDispatchReportsPartialFailures(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Juice", 600, intPtr(10), 10)

	ids := make([]uuid.UUID, 0, 4)
	for i := 0; i < 3; i++ {
		ids = append(ids, h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1}))
	}
	delivered := ids[2]
	_, err := h.svc.Deliver(ctx, h.admin, delivered)
	require.NoError(t, err)
	missing := uuid.New()
	ids = append(ids, missing, ids[0])

	result, err := h.svc.BatchDispatch(ctx, h.admin, ids)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Requested)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, result.Failed)

	codes := map[uuid.UUID]string{}
	for _, failure := range result.Failures {
		codes[failure.OrderID] = failure.Code
	}
	assert.Equal(t, string(pkgerrors.CodeNotFound), codes[missing])
	assert.Equal(t, string(pkgerrors.CodeStateConflict), codes[delivered])

	for _, id := range ids[:2] {
		order, err := h.svc.Get(ctx, h.admin, id)
		require.NoError(t, err)
		assert.Equal(t, enums.DeliveryStatusDispatched, order.DeliveryStatus)
	}

	_, err = h.svc.BatchDeliver(ctx, h.admin, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestConfirmPaymentRequiresClaim(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Milo", 900, intPtr(5), 5)
	orderID := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})

	_, err := h.svc.ConfirmPayment(ctx, h.admin, orderID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	order, err := h.svc.Get(ctx, h.admin, orderID)
	require.NoError(t, err)
	assert.False(t, order.PaymentConfirmed)
	assert.Equal(t, int64(0), h.countRows(t, "outbox_events", "event_type = ?", string(enums.EventPaymentConfirmed)))

	_, err = h.svc.ClaimPayment(ctx, h.customer, orderID, true)
	require.NoError(t, err)
	confirmed, err := h.svc.ConfirmPayment(ctx, h.admin, orderID)
	require.NoError(t, err)
	assert.True(t, confirmed.PaymentClaimed)
	assert.True(t, confirmed.PaymentConfirmed)
}

func TestBatchDeliverFinishesAfterCallerCancels(t *testing.T) {
	h := newHarness(t, nil)
	product := h.seedProduct(t, "Water", 150, intPtr(10), 10)
	ids := []uuid.UUID{
		h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1}),
		h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := h.svc.BatchDeliver(ctx, h.admin, ids)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Zero(t, result.Failed)

	for _, id := range ids {
		order, err := h.svc.Get(context.Background(), h.admin, id)
		require.NoError(t, err)
		assert.Equal(t, enums.DeliveryStatusDelivered, order.DeliveryStatus)
	}
}

func TestListOrders(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	product := h.seedProduct(t, "Biscuit", 200, intPtr(20), 20)
	other := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}

	mine := h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})
	h.placeOrder(t, h.customer, CreateOrderItem{ProductID: product.ID, Quantity: 1})
	h.placeOrder(t, other, CreateOrderItem{ProductID: product.ID, Quantity: 1})
	_, err := h.svc.ClaimPayment(ctx, h.customer, mine, true)
	require.NoError(t, err)
	_, err = h.svc.ConfirmPayment(ctx, h.admin, mine)
	require.NoError(t, err)

	page, err := h.svc.ListMine(ctx, h.customer, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	for _, item := range page.Items {
		require.NotNil(t, item.UserID)
		assert.Equal(t, h.customer.UserID, *item.UserID)
	}

	all, err := h.svc.AdminList(ctx, h.admin, pagination.Params{}, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	confirmed := true
	filtered, err := h.svc.AdminList(ctx, h.admin, pagination.Params{}, ListFilters{PaymentConfirmed: &confirmed})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, mine, filtered.Items[0].ID)

	pending := enums.DeliveryStatusPending
	byStatus, err := h.svc.AdminList(ctx, h.admin, pagination.Params{}, ListFilters{DeliveryStatus: &pending})
	require.NoError(t, err)
	assert.Len(t, byStatus.Items, 3)

	limited, err := h.svc.AdminList(ctx, h.admin, pagination.Params{Limit: 2}, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, limited.Items, 2)
	assert.NotEmpty(t, limited.Cursor)

	_, err = h.svc.ListMine(ctx, h.customer, pagination.Params{Cursor: "%%%"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = h.svc.ListMine(ctx, Actor{}, pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
