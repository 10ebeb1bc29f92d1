package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/farhanmaulid/commerce-inventory/cmd/config"
	"github.com/farhanmaulid/commerce-inventory/constant"
	"github.com/farhanmaulid/commerce-inventory/model"
	productrepo "github.com/farhanmaulid/commerce-inventory/repository/product"
	redisrepo "github.com/farhanmaulid/commerce-inventory/repository/redis"
	stockhistoryrepo "github.com/farhanmaulid/commerce-inventory/repository/stockhistory"
	txrepo "github.com/farhanmaulid/commerce-inventory/repository/tx"
	utilsContext "github.com/farhanmaulid/commerce-inventory/utils/context"
	cerr "github.com/farhanmaulid/commerce-inventory/utils/errors"
	"github.com/farhanmaulid/commerce-inventory/utils/logger"
	"go.uber.org/zap"
)

// InventoryApp owns every mutation of a product's quantity/reserved_stock
// pair. Reserve and Release move held stock only; Confirm and Restore move
// on-hand stock and append a ledger entry in the same transaction.
type InventoryApp interface {
	AdjustStock(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockHistory, error)
	ReserveStock(ctx context.Context, productID uint64, qty int64) error
	ReleaseReservation(ctx context.Context, productID uint64, qty int64) error
	ConfirmReservation(ctx context.Context, productID uint64, qty int64, orderID uint64) error
	RestoreStock(ctx context.Context, productID uint64, qty int64, orderID uint64) error
	ListLowStock(ctx context.Context) ([]model.Product, error)
	BatchAdjustStock(ctx context.Context, items []model.BatchStockUpdateItem) (*model.BatchStockUpdateResponse, error)
	ListStockHistory(ctx context.Context, productID uint64, query *model.StockHistoryQuery) (*model.StockHistoryListResponse, error)
}

type inventoryAppImpl struct {
	config           *config.Config
	txRepo           txrepo.TxRepository
	productRepo      productrepo.ProductRepository
	stockHistoryRepo stockhistoryrepo.StockHistoryRepository
	redisRepo        redisrepo.Repository
}

func NewInventoryApp(config *config.Config, txRepo txrepo.TxRepository, productRepo productrepo.ProductRepository, stockHistoryRepo stockhistoryrepo.StockHistoryRepository, redisRepo redisrepo.Repository) InventoryApp {
	return &inventoryAppImpl{
		config:           config,
		txRepo:           txRepo,
		productRepo:      productRepo,
		stockHistoryRepo: stockHistoryRepo,
		redisRepo:        redisRepo,
	}
}

// AdjustStock applies a signed delta to on-hand quantity and appends the
// matching ledger row in one transaction. A delta that would drive the
// quantity negative is rejected with no partial write.
func (s *inventoryAppImpl) AdjustStock(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockHistory, error) {
	if !req.Reason.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AdjustStock] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	product, err := s.productRepo.GetByIDForUpdateTx(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[AdjustStock] get product", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	previousQuantity := product.Quantity
	newQuantity := previousQuantity + req.Adjustment
	if newQuantity < 0 {
		logger.Info("[AdjustStock] adjustment rejected",
			zap.Uint64("product_id", productID),
			zap.Int64("current", previousQuantity),
			zap.Int64("adjustment", req.Adjustment))
		return nil, cerr.SetCustomError(constant.ErrInvalidAdjustment)
	}

	if err := s.productRepo.UpdateQuantityTx(ctx, tx, productID, newQuantity); err != nil {
		logger.Error("[AdjustStock] update quantity", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	userID, _ := utilsContext.GetUserID(ctx)
	historyItem := &model.InsertStockHistoryTxItem{
		ProductID:        productID,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		Adjustment:       req.Adjustment,
		Reason:           req.Reason,
		Notes:            req.Notes,
		UserID:           userID,
		OrderID:          req.OrderID,
	}
	historyID, err := s.stockHistoryRepo.InsertTx(ctx, tx, historyItem)
	if err != nil {
		logger.Error("[AdjustStock] insert stock history", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AdjustStock] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return &model.StockHistory{
		ID:               historyID,
		ProductID:        productID,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		Adjustment:       req.Adjustment,
		Reason:           req.Reason,
		Notes:            sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		UserID:           sql.NullInt64{Int64: int64(userID), Valid: userID != 0},
		OrderID:          sql.NullInt64{Int64: int64(req.OrderID), Valid: req.OrderID != 0},
	}, nil
}

// ReserveStock holds qty units against unconfirmed orders. The
// availability check and the increment are one conditional statement, so
// two concurrent reservations can never both pass on the same stock.
func (s *inventoryAppImpl) ReserveStock(ctx context.Context, productID uint64, qty int64) error {
	if qty <= 0 {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	ok, err := s.productRepo.ReserveStock(ctx, productID, qty)
	if err != nil {
		logger.Error("[ReserveStock] reserve stock", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if ok {
		return nil
	}

	// Guard rejected: distinguish missing, inactive, and short stock.
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cerr.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[ReserveStock] get product", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if !product.IsActive {
		return cerr.SetCustomError(constant.ErrProductInactive)
	}

	logger.Info("[ReserveStock] insufficient stock",
		zap.Uint64("product_id", productID),
		zap.Int64("need", qty),
		zap.Int64("available", product.Available()))
	return cerr.SetCustomError(constant.ErrInsufficientStock)
}

// ReleaseReservation frees held stock without consuming it. No ledger
// entry: no physical stock moved.
func (s *inventoryAppImpl) ReleaseReservation(ctx context.Context, productID uint64, qty int64) error {
	if qty <= 0 {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	ok, err := s.productRepo.ReleaseStock(ctx, productID, qty)
	if err != nil {
		logger.Error("[ReleaseReservation] release stock", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		// Held counter smaller than the release amount or product gone.
		logger.Error("[ReleaseReservation] release guard rejected",
			zap.Uint64("product_id", productID), zap.Int64("qty", qty))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// ConfirmReservation converts a hold into an actual consumption: quantity
// and reserved_stock both drop by qty, and an ORDER ledger row is written
// in the same transaction.
func (s *inventoryAppImpl) ConfirmReservation(ctx context.Context, productID uint64, qty int64, orderID uint64) error {
	if qty <= 0 {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ConfirmReservation] begin tx", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	product, err := s.productRepo.GetByIDForUpdateTx(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cerr.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[ConfirmReservation] get product", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	ok, err := s.productRepo.ConfirmReservationTx(ctx, tx, productID, qty)
	if err != nil {
		logger.Error("[ConfirmReservation] confirm reservation", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		logger.Error("[ConfirmReservation] confirm guard rejected",
			zap.Uint64("product_id", productID),
			zap.Int64("qty", qty),
			zap.Int64("reserved", product.ReservedStock))
		return cerr.SetCustomError(constant.ErrInsufficientStock)
	}

	userID, _ := utilsContext.GetUserID(ctx)
	historyItem := &model.InsertStockHistoryTxItem{
		ProductID:        productID,
		PreviousQuantity: product.Quantity,
		NewQuantity:      product.Quantity - qty,
		Adjustment:       -qty,
		Reason:           constant.StockReasonOrder,
		Notes:            "Order confirmed",
		UserID:           userID,
		OrderID:          orderID,
	}
	if _, err := s.stockHistoryRepo.InsertTx(ctx, tx, historyItem); err != nil {
		logger.Error("[ConfirmReservation] insert stock history", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ConfirmReservation] commit tx", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// RestoreStock returns previously confirmed stock to on-hand, writing a
// CANCELLATION ledger row. reserved_stock is untouched.
func (s *inventoryAppImpl) RestoreStock(ctx context.Context, productID uint64, qty int64, orderID uint64) error {
	if qty <= 0 {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RestoreStock] begin tx", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	product, err := s.productRepo.GetByIDForUpdateTx(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cerr.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[RestoreStock] get product", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.productRepo.RestoreStockTx(ctx, tx, productID, qty); err != nil {
		logger.Error("[RestoreStock] restore stock", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	userID, _ := utilsContext.GetUserID(ctx)
	historyItem := &model.InsertStockHistoryTxItem{
		ProductID:        productID,
		PreviousQuantity: product.Quantity,
		NewQuantity:      product.Quantity + qty,
		Adjustment:       qty,
		Reason:           constant.StockReasonCancellation,
		Notes:            "Order cancelled",
		UserID:           userID,
		OrderID:          orderID,
	}
	if _, err := s.stockHistoryRepo.InsertTx(ctx, tx, historyItem); err != nil {
		logger.Error("[RestoreStock] insert stock history", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RestoreStock] commit tx", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *inventoryAppImpl) ListLowStock(ctx context.Context) ([]model.Product, error) {
	if s.redisRepo != nil {
		if cached, err := s.redisRepo.GetLowStockAlerts(ctx); err == nil && cached != "" {
			var products []model.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		logger.Error("[ListLowStock] list low stock", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if s.redisRepo != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.redisRepo.SetLowStockAlerts(ctx, string(payload), s.config.Cache.LowStockTTL); err != nil {
				logger.Warn("[ListLowStock] cache set", zap.String("error", err.Error()))
			}
		}
	}

	return products, nil
}

// BatchAdjustStock re-expresses each target quantity as a signed delta and
// delegates to AdjustStock. One item failing does not abort the batch.
func (s *inventoryAppImpl) BatchAdjustStock(ctx context.Context, items []model.BatchStockUpdateItem) (*model.BatchStockUpdateResponse, error) {
	if len(items) == 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	result := &model.BatchStockUpdateResponse{Errors: make([]string, 0)}
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.Errors = append(result.Errors, fmt.Sprintf("product %d not found", item.ProductID))
			} else {
				logger.Error("[BatchAdjustStock] get product", zap.String("error", err.Error()))
				result.Errors = append(result.Errors, fmt.Sprintf("product %d: %s", item.ProductID, cerr.SetCustomError(constant.ErrInternal).Error()))
			}
			result.Failed++
			continue
		}

		notes := item.Notes
		if notes == "" {
			notes = "Batch update"
		}
		req := &model.StockAdjustmentRequest{
			Adjustment: item.TargetQuantity - product.Quantity,
			Reason:     constant.StockReasonManual,
			Notes:      notes,
		}
		if _, err := s.AdjustStock(ctx, item.ProductID, req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("product %d: %s", item.ProductID, err.Error()))
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

func (s *inventoryAppImpl) ListStockHistory(ctx context.Context, productID uint64, query *model.StockHistoryQuery) (*model.StockHistoryListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Reason != "" && !query.Reason.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[ListStockHistory] get product", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	entries, total, err := s.stockHistoryRepo.ListByProduct(ctx, productID, query.Reason, query.Page, query.Limit)
	if err != nil {
		logger.Error("[ListStockHistory] list stock history", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	totalPages := total / int64(query.Limit)
	if total%int64(query.Limit) != 0 {
		totalPages++
	}

	return &model.StockHistoryListResponse{
		Data:       entries,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}
