package order

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	inventoryapp "github.com/farhanmaulid/commerce-inventory/application/inventory"
	"github.com/farhanmaulid/commerce-inventory/cmd/config"
	"github.com/farhanmaulid/commerce-inventory/constant"
	"github.com/farhanmaulid/commerce-inventory/model"
	orderrepo "github.com/farhanmaulid/commerce-inventory/repository/order"
	productrepo "github.com/farhanmaulid/commerce-inventory/repository/product"
	txrepo "github.com/farhanmaulid/commerce-inventory/repository/tx"
	"github.com/farhanmaulid/commerce-inventory/thirdparty/rabbitmq"
	cerr "github.com/farhanmaulid/commerce-inventory/utils/errors"
	"github.com/farhanmaulid/commerce-inventory/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.Order, error)
	ListOrders(ctx context.Context, query *model.OrderQuery) (*model.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID uint64, status constant.OrderStatus) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID uint64, paymentStatus constant.PaymentStatus) (*model.Order, error)
	UpdateTracking(ctx context.Context, orderID uint64, trackingNumber string) (*model.Order, error)
	ExpireOrder(ctx context.Context, orderID uint64) error
}

type orderAppImpl struct {
	config       *config.Config
	txRepo       txrepo.TxRepository
	orderRepo    orderrepo.OrderRepository
	productRepo  productrepo.ProductRepository
	inventoryApp inventoryapp.InventoryApp
	publisher    *rabbitmq.Publisher
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, inventoryApp inventoryapp.InventoryApp, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{
		config:       config,
		txRepo:       txRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		inventoryApp: inventoryApp,
		publisher:    publisher,
	}
}

const orderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return "ORD-" + timestamp + "-" + string(suffix)
}

// CreateOrder validates availability across all items, reserves stock per
// item with compensating releases on partial failure, then persists the
// order as PENDING and schedules its reservation expiry.
func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	// availability pre-check across all items before any reservation
	productIDs := make([]uint64, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		logger.Error("[CreateOrder] get products", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	productMap := make(map[uint64]model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}
	for _, item := range req.Items {
		product, found := productMap[item.ProductID]
		if !found {
			return nil, cerr.SetCustomError(constant.ErrProductNotFound)
		}
		if !product.IsActive {
			logger.Info("[CreateOrder] inactive product", zap.Uint64("product_id", item.ProductID), zap.String("name", product.Name))
			return nil, cerr.SetCustomError(constant.ErrProductInactive)
		}
		if product.Available() < item.Quantity {
			logger.Info("[CreateOrder] insufficient stock",
				zap.Uint64("product_id", item.ProductID),
				zap.Int64("need", item.Quantity),
				zap.Int64("available", product.Available()))
			return nil, cerr.SetCustomError(constant.ErrInsufficientStock)
		}
	}

	// reserve per item; release everything already held on any failure
	reserved := make([]model.OrderItemRequest, 0, len(req.Items))
	releaseReserved := func() {
		for _, done := range reserved {
			if err := s.inventoryApp.ReleaseReservation(ctx, done.ProductID, done.Quantity); err != nil {
				logger.Error("[CreateOrder] compensating release failed",
					zap.Uint64("product_id", done.ProductID),
					zap.String("error", err.Error()))
			}
		}
	}
	for _, item := range req.Items {
		if err := s.inventoryApp.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			releaseReserved()
			var ce cerr.CustomError
			if errors.As(err, &ce) {
				return nil, ce
			}
			logger.Error("[CreateOrder] reserve stock", zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		reserved = append(reserved, item)
	}

	// snapshot product fields and compute totals
	items := make([]model.OrderItem, 0, len(req.Items))
	var subtotal float64
	for _, item := range req.Items {
		product := productMap[item.ProductID]
		lineTotal := item.Price * float64(item.Quantity)
		items = append(items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			SKU:         product.SKU,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       lineTotal,
		})
		subtotal += lineTotal
	}

	now := time.Now()
	expiresAt := now.Add(s.config.Order.ReservationTTL)
	insertItem := &model.InsertOrderTxItem{
		OrderNumber:   generateOrderNumber(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        constant.OrderStatusPending,
		PaymentStatus: constant.PaymentStatusPending,
		Subtotal:      subtotal,
		ShippingCost:  req.ShippingCost,
		Total:         subtotal + req.ShippingCost,
		Notes:         req.Notes,
		ExpiresAt:     expiresAt,
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateOrder] begin tx", zap.String("error", err.Error()))
		releaseReserved()
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, insertItem)
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		releaseReserved()
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, items); err != nil {
		logger.Error("[CreateOrder] insert items", zap.String("error", err.Error()))
		releaseReserved()
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateOrder] commit tx", zap.String("error", err.Error()))
		releaseReserved()
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if s.publisher != nil {
		msg := rabbitmq.OrderExpirationMessage{
			OrderID:   orderID,
			ExpiresAt: expiresAt,
		}
		if err := s.publisher.PublishOrderExpiration(msg); err != nil {
			logger.Error("[CreateOrder] publish order expiration", zap.String("error", err.Error()))
		}
	}

	for i := range items {
		items[i].OrderID = orderID
	}
	return &model.Order{
		ID:            orderID,
		OrderNumber:   insertItem.OrderNumber,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        constant.OrderStatusPending,
		PaymentStatus: constant.PaymentStatusPending,
		Subtotal:      subtotal,
		ShippingCost:  req.ShippingCost,
		Total:         subtotal + req.ShippingCost,
		ExpiresAt:     expiresAt,
		Items:         items,
	}, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID uint64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.SetCustomError(constant.ErrOrderNotFound)
		}
		logger.Error("[GetOrder] get order", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get items", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	order.Items = items
	return order, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, query *model.OrderQuery) (*model.OrderListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Status != "" && !query.Status.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	if query.PaymentStatus != "" && !query.PaymentStatus.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	orders, total, err := s.orderRepo.List(ctx, query)
	if err != nil {
		logger.Error("[ListOrders] list orders", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	totalPages := total / int64(query.Limit)
	if total%int64(query.Limit) != 0 {
		totalPages++
	}

	return &model.OrderListResponse{
		Data:       orders,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateOrderStatus validates the transition against the state machine
// table, applies the reservation side effect per line item, then persists
// the new status. shipped_at/delivered_at are stamped exactly once, on the
// first transition into SHIPPED/DELIVERED.
func (s *orderAppImpl) UpdateOrderStatus(ctx context.Context, orderID uint64, status constant.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.SetCustomError(constant.ErrOrderNotFound)
		}
		logger.Error("[UpdateOrderStatus] get order", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if !transitionAllowed(order.Status, status) {
		logger.Info("[UpdateOrderStatus] transition rejected",
			zap.Uint64("order_id", orderID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)))
		return nil, cerr.SetCustomError(constant.ErrInvalidTransition)
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		logger.Error("[UpdateOrderStatus] get items", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.applyReservationAction(ctx, order, items, status); err != nil {
		return nil, err
	}

	var shippedAt, deliveredAt *time.Time
	now := time.Now()
	if status == constant.OrderStatusShipped && !order.ShippedAt.Valid {
		shippedAt = &now
	}
	if status == constant.OrderStatusDelivered && !order.DeliveredAt.Valid {
		deliveredAt = &now
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, shippedAt, deliveredAt); err != nil {
		logger.Error("[UpdateOrderStatus] update status", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	order.Status = status
	if shippedAt != nil {
		order.ShippedAt = sql.NullTime{Time: *shippedAt, Valid: true}
	}
	if deliveredAt != nil {
		order.DeliveredAt = sql.NullTime{Time: *deliveredAt, Valid: true}
	}
	order.Items = items
	return order, nil
}

func (s *orderAppImpl) applyReservationAction(ctx context.Context, order *model.Order, items []model.OrderItem, status constant.OrderStatus) error {
	action := reservationActionFor(order.Status, status)
	for _, item := range items {
		var err error
		switch action {
		case actionConfirm:
			err = s.inventoryApp.ConfirmReservation(ctx, item.ProductID, item.Quantity, order.ID)
		case actionRelease:
			err = s.inventoryApp.ReleaseReservation(ctx, item.ProductID, item.Quantity)
		case actionRestore:
			err = s.inventoryApp.RestoreStock(ctx, item.ProductID, item.Quantity, order.ID)
		default:
			continue
		}
		if err != nil {
			logger.Error("[UpdateOrderStatus] reservation side effect failed",
				zap.Uint64("order_id", order.ID),
				zap.Uint64("product_id", item.ProductID),
				zap.String("error", err.Error()))
			var ce cerr.CustomError
			if errors.As(err, &ce) {
				return ce
			}
			return cerr.SetCustomError(constant.ErrInternal)
		}
	}
	return nil
}

func (s *orderAppImpl) UpdatePaymentStatus(ctx context.Context, orderID uint64, paymentStatus constant.PaymentStatus) (*model.Order, error) {
	if !paymentStatus.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.SetCustomError(constant.ErrOrderNotFound)
		}
		logger.Error("[UpdatePaymentStatus] get order", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	// payment status is tracked independently; no stock side effects
	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, paymentStatus); err != nil {
		logger.Error("[UpdatePaymentStatus] update payment status", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	order.PaymentStatus = paymentStatus
	return order, nil
}

func (s *orderAppImpl) UpdateTracking(ctx context.Context, orderID uint64, trackingNumber string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.SetCustomError(constant.ErrOrderNotFound)
		}
		logger.Error("[UpdateTracking] get order", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.UpdateTracking(ctx, orderID, trackingNumber); err != nil {
		logger.Error("[UpdateTracking] update tracking", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	order.TrackingNumber = sql.NullString{String: trackingNumber, Valid: true}
	return order, nil
}

// ExpireOrder cancels a PENDING order whose reservation window elapsed,
// releasing its holds. Orders that progressed past PENDING are left alone.
func (s *orderAppImpl) ExpireOrder(ctx context.Context, orderID uint64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cerr.SetCustomError(constant.ErrOrderNotFound)
		}
		logger.Error("[ExpireOrder] get order", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	if order.Status != constant.OrderStatusPending {
		return cerr.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if _, err := s.UpdateOrderStatus(ctx, orderID, constant.OrderStatusCancelled); err != nil {
		return err
	}

	logger.Info("[ExpireOrder] pending order expired", zap.Uint64("order_id", orderID))
	return nil
}
