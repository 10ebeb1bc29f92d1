package inventory_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	appinventory "github.com/farhanmaulid/commerce-inventory/application/inventory"
	"github.com/farhanmaulid/commerce-inventory/cmd/config"
	"github.com/farhanmaulid/commerce-inventory/constant"
	productmocks "github.com/farhanmaulid/commerce-inventory/mocks/repository/product"
	redismocks "github.com/farhanmaulid/commerce-inventory/mocks/repository/redis"
	stockhistorymocks "github.com/farhanmaulid/commerce-inventory/mocks/repository/stockhistory"
	txmocks "github.com/farhanmaulid/commerce-inventory/mocks/repository/tx"
	"github.com/farhanmaulid/commerce-inventory/model"
	cerr "github.com/farhanmaulid/commerce-inventory/utils/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

func TestInventoryApp_AdjustStock(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	type args struct {
		ctx       context.Context
		productID uint64
		req       *model.StockAdjustmentRequest
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		wantNewQty  int64
		wantErr     bool
		errCode     constant.ErrorType
	}{
		{
			name: "success: positive adjustment",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				req: &model.StockAdjustmentRequest{
					Adjustment: 25,
					Reason:     constant.StockReasonManual,
					Notes:      "restock",
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:       1,
					Quantity: 10,
					IsActive: true,
				}, nil).Once()
				f.productRepo.On("UpdateQuantityTx", mock.Anything, tx, uint64(1), int64(35)).Return(nil).Once()

				f.stockHistoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(item *model.InsertStockHistoryTxItem) bool {
					return item.ProductID == 1 &&
						item.PreviousQuantity == 10 &&
						item.NewQuantity == 35 &&
						item.Adjustment == 25 &&
						item.Reason == constant.StockReasonManual
				})).Return(uint64(7), nil).Once()
			},
			wantNewQty: 35,
			wantErr:    false,
		},
		{
			name: "success: negative adjustment down to zero",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				req: &model.StockAdjustmentRequest{
					Adjustment: -10,
					Reason:     constant.StockReasonDamaged,
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:       1,
					Quantity: 10,
					IsActive: true,
				}, nil).Once()
				f.productRepo.On("UpdateQuantityTx", mock.Anything, tx, uint64(1), int64(0)).Return(nil).Once()

				f.stockHistoryRepo.On("InsertTx", mock.Anything, tx, mock.Anything).Return(uint64(8), nil).Once()
			},
			wantNewQty: 0,
			wantErr:    false,
		},
		{
			name: "error: invalid reason",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				req: &model.StockAdjustmentRequest{
					Adjustment: 5,
					Reason:     constant.StockReason("GUESS"),
				},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: adjustment would drive quantity negative",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				req: &model.StockAdjustmentRequest{
					Adjustment: -11,
					Reason:     constant.StockReasonLost,
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:       1,
					Quantity: 10,
					IsActive: true,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidAdjustment,
		},
		{
			name: "error: product not found",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 999,
				req: &model.StockAdjustmentRequest{
					Adjustment: 5,
					Reason:     constant.StockReasonManual,
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(999)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
		{
			name: "error: BeginTx returns error",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				req: &model.StockAdjustmentRequest{
					Adjustment: 5,
					Reason:     constant.StockReasonManual,
				},
			},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("tx error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: InsertTx stock history returns error",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				req: &model.StockAdjustmentRequest{
					Adjustment: 5,
					Reason:     constant.StockReasonManual,
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:       1,
					Quantity: 10,
					IsActive: true,
				}, nil).Once()
				f.productRepo.On("UpdateQuantityTx", mock.Anything, tx, uint64(1), int64(15)).Return(nil).Once()

				f.stockHistoryRepo.On("InsertTx", mock.Anything, tx, mock.Anything).Return(uint64(0), errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			got, err := app.AdjustStock(tt.args.ctx, tt.args.productID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AdjustStock() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.NewQuantity != tt.wantNewQty {
				t.Fatalf("AdjustStock() NewQuantity = %d, want %d", got.NewQuantity, tt.wantNewQty)
			}
		})
	}
}

func TestInventoryApp_ReserveStock(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	type args struct {
		ctx       context.Context
		productID uint64
		qty       int64
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: reserve passes the guard",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				qty:       3,
			},
			mockCall: func(f fields) {
				f.productRepo.On("ReserveStock", mock.Anything, uint64(1), int64(3)).Return(true, nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: non-positive quantity",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				qty:       0,
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: guard rejected, product missing",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 999,
				qty:       3,
			},
			mockCall: func(f fields) {
				f.productRepo.On("ReserveStock", mock.Anything, uint64(999), int64(3)).Return(false, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(999)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
		{
			name: "error: guard rejected, product inactive",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				qty:       3,
			},
			mockCall: func(f fields) {
				f.productRepo.On("ReserveStock", mock.Anything, uint64(1), int64(3)).Return(false, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Product{
					ID:       1,
					Quantity: 100,
					IsActive: false,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductInactive,
		},
		{
			name: "error: guard rejected, insufficient stock",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				qty:       10,
			},
			mockCall: func(f fields) {
				f.productRepo.On("ReserveStock", mock.Anything, uint64(1), int64(10)).Return(false, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Product{
					ID:            1,
					Quantity:      10,
					ReservedStock: 5,
					IsActive:      true,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: repository error",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			args: args{
				ctx:       context.Background(),
				productID: 1,
				qty:       3,
			},
			mockCall: func(f fields) {
				f.productRepo.On("ReserveStock", mock.Anything, uint64(1), int64(3)).Return(false, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			err := app.ReserveStock(tt.args.ctx, tt.args.productID, tt.args.qty)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReserveStock() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

func TestInventoryApp_ReleaseReservation(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		qty      int64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: release held stock",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			qty: 3,
			mockCall: func(f fields) {
				f.productRepo.On("ReleaseStock", mock.Anything, uint64(1), int64(3)).Return(true, nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: release guard rejected",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			qty: 3,
			mockCall: func(f fields) {
				f.productRepo.On("ReleaseStock", mock.Anything, uint64(1), int64(3)).Return(false, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: non-positive quantity",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			qty:      -1,
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			err := app.ReleaseReservation(context.Background(), 1, tt.qty)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReleaseReservation() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

func TestInventoryApp_ConfirmReservation(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: confirm writes an ORDER ledger row",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:            1,
					Quantity:      10,
					ReservedStock: 5,
					IsActive:      true,
				}, nil).Once()
				f.productRepo.On("ConfirmReservationTx", mock.Anything, tx, uint64(1), int64(3)).Return(true, nil).Once()

				f.stockHistoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(item *model.InsertStockHistoryTxItem) bool {
					return item.Reason == constant.StockReasonOrder &&
						item.PreviousQuantity == 10 &&
						item.NewQuantity == 7 &&
						item.Adjustment == -3 &&
						item.OrderID == 42
				})).Return(uint64(1), nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: confirm guard rejected",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:            1,
					Quantity:      10,
					ReservedStock: 1,
					IsActive:      true,
				}, nil).Once()
				f.productRepo.On("ConfirmReservationTx", mock.Anything, tx, uint64(1), int64(3)).Return(false, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: product not found",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			err := app.ConfirmReservation(context.Background(), 1, 3, 42)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfirmReservation() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

func TestInventoryApp_RestoreStock(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: restore writes a CANCELLATION ledger row",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
					ID:       1,
					Quantity: 7,
					IsActive: true,
				}, nil).Once()
				f.productRepo.On("RestoreStockTx", mock.Anything, tx, uint64(1), int64(3)).Return(nil).Once()

				f.stockHistoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(item *model.InsertStockHistoryTxItem) bool {
					return item.Reason == constant.StockReasonCancellation &&
						item.PreviousQuantity == 7 &&
						item.NewQuantity == 10 &&
						item.Adjustment == 3 &&
						item.OrderID == 42
				})).Return(uint64(1), nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: product not found",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			err := app.RestoreStock(context.Background(), 1, 3, 42)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RestoreStock() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

func TestInventoryApp_ListLowStock(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		wantLen  int
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: cache hit skips the database",
			fields: fields{
				config:           &config.Config{Cache: config.CacheConfig{LowStockTTL: 30 * time.Second}},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.On("GetLowStockAlerts", mock.Anything).
					Return(`[{"id":1,"sku":"SKU-1","name":"Widget","quantity":2,"low_stock_threshold":5}]`, nil).Once()
			},
			wantLen: 1,
			wantErr: false,
		},
		{
			name: "success: cache miss falls through and repopulates",
			fields: fields{
				config:           &config.Config{Cache: config.CacheConfig{LowStockTTL: 30 * time.Second}},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.On("GetLowStockAlerts", mock.Anything).Return("", nil).Once()
				f.productRepo.On("ListLowStock", mock.Anything).Return([]model.Product{
					{ID: 1, SKU: "SKU-1", Quantity: 2, LowStockThreshold: 5, IsActive: true},
					{ID: 2, SKU: "SKU-2", Quantity: 4, LowStockThreshold: 10, IsActive: true},
				}, nil).Once()
				f.redisRepo.On("SetLowStockAlerts", mock.Anything, mock.Anything, 30*time.Second).Return(nil).Once()
			},
			wantLen: 2,
			wantErr: false,
		},
		{
			name: "error: database error",
			fields: fields{
				config:           &config.Config{Cache: config.CacheConfig{LowStockTTL: 30 * time.Second}},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.On("GetLowStockAlerts", mock.Anything).Return("", errors.New("redis down")).Once()
				f.productRepo.On("ListLowStock", mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			got, err := app.ListLowStock(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListLowStock() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if len(got) != tt.wantLen {
				t.Fatalf("ListLowStock() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestInventoryApp_BatchAdjustStock(t *testing.T) {
	t.Run("partial failure: one item succeeds, one missing product reported", func(t *testing.T) {
		txRepo := txmocks.NewTxRepository(t)
		productRepo := productmocks.NewProductRepository(t)
		stockHistoryRepo := stockhistorymocks.NewStockHistoryRepository(t)
		redisRepo := redismocks.NewRepository(t)

		tx := &sqlx.Tx{}
		productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Product{
			ID:       1,
			Quantity: 5,
			IsActive: true,
		}, nil).Once()
		txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		txRepo.On("CommitTx", tx).Return(nil).Once()
		productRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Product{
			ID:       1,
			Quantity: 5,
			IsActive: true,
		}, nil).Once()
		productRepo.On("UpdateQuantityTx", mock.Anything, tx, uint64(1), int64(12)).Return(nil).Once()
		stockHistoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(item *model.InsertStockHistoryTxItem) bool {
			return item.Adjustment == 7 && item.Reason == constant.StockReasonManual && item.Notes == "Batch update"
		})).Return(uint64(1), nil).Once()

		productRepo.On("GetByID", mock.Anything, uint64(2)).Return(nil, sql.ErrNoRows).Once()

		app := appinventory.NewInventoryApp(&config.Config{}, txRepo, productRepo, stockHistoryRepo, redisRepo)
		got, err := app.BatchAdjustStock(context.Background(), []model.BatchStockUpdateItem{
			{ProductID: 1, TargetQuantity: 12},
			{ProductID: 2, TargetQuantity: 8},
		})
		if err != nil {
			t.Fatalf("BatchAdjustStock() error = %v", err)
		}
		if got.Succeeded != 1 || got.Failed != 1 {
			t.Fatalf("BatchAdjustStock() succeeded = %d, failed = %d, want 1/1", got.Succeeded, got.Failed)
		}
		if len(got.Errors) != 1 || !strings.Contains(got.Errors[0], "product 2") {
			t.Fatalf("BatchAdjustStock() errors = %v, want one entry naming product 2", got.Errors)
		}
	})

	t.Run("error: empty batch", func(t *testing.T) {
		app := appinventory.NewInventoryApp(&config.Config{},
			txmocks.NewTxRepository(t),
			productmocks.NewProductRepository(t),
			stockhistorymocks.NewStockHistoryRepository(t),
			redismocks.NewRepository(t))

		_, err := app.BatchAdjustStock(context.Background(), nil)
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInvalidRequest] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrInvalidRequest])
		}
	})
}

func TestInventoryApp_ListStockHistory(t *testing.T) {
	type fields struct {
		config           *config.Config
		txRepo           *txmocks.TxRepository
		productRepo      *productmocks.ProductRepository
		stockHistoryRepo *stockhistorymocks.StockHistoryRepository
		redisRepo        *redismocks.Repository
	}
	tests := []struct {
		name           string
		fields         fields
		query          *model.StockHistoryQuery
		mockCall       func(f fields)
		wantTotalPages int64
		wantErr        bool
		errCode        constant.ErrorType
	}{
		{
			name: "success: defaults applied when page and limit are zero",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			query: &model.StockHistoryQuery{},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Product{ID: 1, IsActive: true}, nil).Once()
				f.stockHistoryRepo.On("ListByProduct", mock.Anything, uint64(1), constant.StockReason(""), 1, 20).
					Return([]model.StockHistory{{ID: 1, ProductID: 1}}, int64(45), nil).Once()
			},
			wantTotalPages: 3,
			wantErr:        false,
		},
		{
			name: "error: invalid reason filter",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			query:    &model.StockHistoryQuery{Reason: constant.StockReason("BROKEN")},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: product not found",
			fields: fields{
				config:           &config.Config{},
				txRepo:           txmocks.NewTxRepository(t),
				productRepo:      productmocks.NewProductRepository(t),
				stockHistoryRepo: stockhistorymocks.NewStockHistoryRepository(t),
				redisRepo:        redismocks.NewRepository(t),
			},
			query: &model.StockHistoryQuery{},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.config, tt.fields.txRepo, tt.fields.productRepo, tt.fields.stockHistoryRepo, tt.fields.redisRepo)

			got, err := app.ListStockHistory(context.Background(), 1, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListStockHistory() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.TotalPages != tt.wantTotalPages {
				t.Fatalf("ListStockHistory() TotalPages = %d, want %d", got.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

// guardedProductRepo mimics the conditional-update contract of the SQL
// implementation so concurrent reservations contend on real state.
type guardedProductRepo struct {
	mu      sync.Mutex
	product model.Product
}

func (g *guardedProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id != g.product.ID {
		return nil, sql.ErrNoRows
	}
	p := g.product
	return &p, nil
}

func (g *guardedProductRepo) GetByIDs(ctx context.Context, ids []uint64) ([]model.Product, error) {
	return nil, errors.New("not supported")
}

func (g *guardedProductRepo) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error) {
	return nil, errors.New("not supported")
}

func (g *guardedProductRepo) UpdateQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, newQuantity int64) error {
	return errors.New("not supported")
}

func (g *guardedProductRepo) ReserveStock(ctx context.Context, id uint64, qty int64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id != g.product.ID || !g.product.IsActive {
		return false, nil
	}
	if g.product.Quantity-g.product.ReservedStock < qty {
		return false, nil
	}
	g.product.ReservedStock += qty
	return true, nil
}

func (g *guardedProductRepo) ReleaseStock(ctx context.Context, id uint64, qty int64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id != g.product.ID || g.product.ReservedStock < qty {
		return false, nil
	}
	g.product.ReservedStock -= qty
	return true, nil
}

func (g *guardedProductRepo) ConfirmReservationTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) (bool, error) {
	return false, errors.New("not supported")
}

func (g *guardedProductRepo) RestoreStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	return errors.New("not supported")
}

func (g *guardedProductRepo) ListLowStock(ctx context.Context) ([]model.Product, error) {
	return nil, errors.New("not supported")
}

func TestInventoryApp_ReserveStock_Concurrent(t *testing.T) {
	repo := &guardedProductRepo{
		product: model.Product{
			ID:       1,
			Quantity: 5,
			IsActive: true,
		},
	}
	app := appinventory.NewInventoryApp(&config.Config{}, nil, repo, nil, nil)

	const workers = 10
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- app.ReserveStock(context.Background(), 1, 3)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInsufficientStock] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrInsufficientStock])
		}
		insufficient++
	}

	// 5 on hand, each worker wants 3: exactly one reservation can win
	if succeeded != 1 {
		t.Fatalf("concurrent reserves succeeded = %d, want 1", succeeded)
	}
	if insufficient != workers-1 {
		t.Fatalf("insufficient stock rejections = %d, want %d", insufficient, workers-1)
	}
	if repo.product.ReservedStock != 3 {
		t.Fatalf("reserved stock = %d, want 3", repo.product.ReservedStock)
	}
}
