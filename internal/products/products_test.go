package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmart/storefront/pkg/db/dbtest"
	"github.com/campusmart/storefront/pkg/db/models"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.NewSQLite(t, "products")
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc, repo
}

func seedProduct(t *testing.T, repo *Repository, stock int, remaining *int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:           "Indomie Carton",
		Category:       "Food",
		Price:          decimal.NewFromInt(1500),
		Surcharge:      decimal.NewFromInt(50),
		Stock:          stock,
		RemainingStock: remaining,
		InStock:        stock > 0,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func intPtr(v int) *int { return &v }

func TestCreateSetsRemainingStock(t *testing.T) {
	svc, _ := newTestService(t)
	listPrice := decimal.NewFromInt(2000)

	dto, err := svc.Create(context.Background(), CreateProductInput{
		Name:      "  Rice 5kg ",
		Category:  "Food",
		Images:    []string{"https://storage.googleapis.com/b/products/1-rice.png", " "},
		Price:     decimal.NewFromInt(1800),
		ListPrice: &listPrice,
		Stock:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", dto.Name)
	assert.Equal(t, 4, dto.RemainingStock)
	assert.True(t, dto.InStock)
	assert.Len(t, dto.Images, 1)
	require.NotNil(t, dto.ListPrice)
	assert.True(t, dto.ListPrice.Equal(listPrice))

	empty, err := svc.Create(context.Background(), CreateProductInput{Name: "Soap", Price: decimal.NewFromInt(300)})
	require.NoError(t, err)
	assert.False(t, empty.InStock)
}

func TestCreateWithoutStockStaysOutOfStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{Name: "Soap", Category: "Toiletries", Price: decimal.NewFromInt(300)})
	require.NoError(t, err)
	assert.False(t, created.InStock)

	reloaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.InStock)
	assert.Equal(t, 0, reloaded.RemainingStock)

	page, err := svc.List(ctx, pagination.Params{}, ListFilters{InStockOnly: true})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCreateValidates(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateProductInput{Name: " "})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(context.Background(), CreateProductInput{Name: "x", Stock: -1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDecrementStockIsConditional(t *testing.T) {
	_, repo := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 5, nil)

	ok, err := repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.RemainingStock)
	assert.Equal(t, 2, *reloaded.RemainingStock)
	assert.True(t, reloaded.InStock)

	ok, err = repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Available())
	assert.False(t, reloaded.InStock)
}

func TestDecrementStockPrefersRemaining(t *testing.T) {
	_, repo := newTestService(t)
	product := seedProduct(t, repo, 10, intPtr(1))

	ok, err := repo.DecrementStock(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestockAndToggle(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 1, intPtr(0))

	dto, err := svc.Restock(ctx, product.ID, RestockInput{Stock: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, dto.Stock)
	assert.Equal(t, 12, dto.RemainingStock)
	assert.True(t, dto.InStock)

	dto, err = svc.SetInStock(ctx, product.ID, false)
	require.NoError(t, err)
	assert.False(t, dto.InStock)

	_, err = svc.Restock(ctx, uuid.New(), RestockInput{Stock: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = svc.SetInStock(ctx, uuid.New(), true)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(t)
	product := seedProduct(t, repo, 1, nil)

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	err := svc.Delete(context.Background(), product.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListPaginatesAndFilters(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		p := seedProduct(t, repo, 2, nil)
		require.NoError(t, repo.db.Model(&models.Product{}).Where("id = ?", p.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	other := &models.Product{Name: "Biro", Category: "Stationery", Price: decimal.NewFromInt(100), Stock: 1, InStock: true}
	require.NoError(t, repo.Create(ctx, other))

	page, err := svc.List(ctx, pagination.Params{Limit: 2}, ListFilters{Category: "food"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotEmpty(t, page.Cursor)
	assert.True(t, page.Items[0].CreatedAt.After(page.Items[1].CreatedAt))

	next, err := svc.List(ctx, pagination.Params{Limit: 2, Cursor: page.Cursor}, ListFilters{Category: "food"})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Empty(t, next.Cursor)

	_, err = svc.List(ctx, pagination.Params{Cursor: "%%%"}, ListFilters{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestFindByIDs(t *testing.T) {
	_, repo := newTestService(t)
	a := seedProduct(t, repo, 1, nil)
	found, err := repo.FindByIDs(context.Background(), []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, a.ID)
}
