// internal/services/order_service_test.go
package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/models"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, NewStockService(), NewAuditService(db))
}

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	productA := createTestProduct(t, db, "Lait demi-écrémé", "2.000", 5)

	paid := dec(t, "10")
	order, receipt, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items:      []OrderLineRequest{{ProductID: productA.ID, Quantity: 3}},
		PaidAmount: &paid,
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(dec(t, "6.000")), "total = %s", order.Total)
	assert.True(t, order.ChangeAmount.Equal(dec(t, "4.000")), "change = %s", order.ChangeAmount)
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	assert.Equal(t, 2, productStock(t, db, productA.ID))

	require.NotNil(t, receipt)
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, "Lait demi-écrémé", receipt.Lines[0].Name)
	assert.Equal(t, 3, receipt.Lines[0].Quantity)
	assert.True(t, receipt.Change.Equal(dec(t, "4.000")))
}

func TestCreateOrderDefaultsPaidToTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Eau minérale", "0.750", 10)

	order, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.True(t, order.PaidAmount.Equal(order.Total))
	assert.True(t, order.ChangeAmount.IsZero())
}

func TestCreateOrderEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	_, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	_, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: 999, Quantity: 1}},
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(999), notFound.ProductID)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Chocolat", "1.500", 2)

	_, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 3}},
	})

	var stockErr *StockInsufficientError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// Nothing was clamped or partially applied
	assert.Equal(t, 2, productStock(t, db, product.ID))
}

func TestCreateOrderMultiLineAtomicity(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	productA := createTestProduct(t, db, "Pain", "0.300", 20)
	productB := createTestProduct(t, db, "Fromage", "4.500", 1)

	// Second line fails: the first line's decrement must roll back too
	_, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{
			{ProductID: productA.ID, Quantity: 5},
			{ProductID: productB.ID, Quantity: 2},
		},
	})

	var stockErr *StockInsufficientError
	require.ErrorAs(t, err, &stockErr)

	assert.Equal(t, 20, productStock(t, db, productA.ID))
	assert.Equal(t, 1, productStock(t, db, productB.ID))

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestCreateOrderTotalConservation(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	productA := createTestProduct(t, db, "Thon", "3.250", 10)
	productB := createTestProduct(t, db, "Harissa", "1.100", 10)

	order, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{
			{ProductID: productA.ID, Quantity: 2},
			{ProductID: productB.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, item := range order.Items {
		assert.True(t, item.Total.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
		sum = sum.Add(item.Total)
	}
	assert.True(t, order.Total.Equal(sum), "order total %s != item sum %s", order.Total, sum)
}

func TestCreateOrderConcurrentLastUnit(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Dernière pièce", "9.000", 1)

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
				Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, stockFailures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *StockInsufficientError
		require.ErrorAs(t, err, &stockErr)
		stockFailures++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 0, productStock(t, db, product.ID))
}

func TestOrderItemSnapshotSurvivesProductEdits(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Café moulu", "8.000", 10)

	order, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Rename and reprice the product after the sale
	require.NoError(t, db.Model(product).Updates(map[string]interface{}{
		"name":  "Café moulu 250g",
		"price": dec(t, "9.500"),
	}).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, "Café moulu", item.Name)
	assert.True(t, item.UnitPrice.Equal(dec(t, "8.000")))
}

func TestGetOrderItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Yaourt", "0.500", 10)

	order, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	items, err := svc.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Yaourt", items[0].Name)
	assert.Equal(t, "grocery", items[0].Category)

	_, err = svc.GetOrderItems(9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderItemsAfterProductSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Ancien produit", "1.000", 5)

	order, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, db.Delete(product).Error)

	// History stays readable after the product leaves the catalog
	items, err := svc.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ancien produit", items[0].Name)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	product := createTestProduct(t, db, "Sucre", "1.900", 100)

	for i := 0; i < 3; i++ {
		_, _, err := svc.CreateOrder(testActor(), &CreateOrderRequest{
			Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders()
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.GreaterOrEqual(t, orders[0].ID, orders[1].ID)
}
