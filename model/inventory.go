package model

import (
	"database/sql"
	"time"

	"github.com/farhanmaulid/commerce-inventory/constant"
)

type StockHistory struct {
	ID               uint64               `db:"id" json:"id"`
	ProductID        uint64               `db:"product_id" json:"product_id"`
	PreviousQuantity int64                `db:"previous_quantity" json:"previous_quantity"`
	NewQuantity      int64                `db:"new_quantity" json:"new_quantity"`
	Adjustment       int64                `db:"adjustment" json:"adjustment"`
	Reason           constant.StockReason `db:"reason" json:"reason"`
	Notes            sql.NullString       `db:"notes" json:"notes,omitempty"`
	UserID           sql.NullInt64        `db:"user_id" json:"user_id,omitempty"`
	OrderID          sql.NullInt64        `db:"order_id" json:"order_id,omitempty"`
	CreatedAt        time.Time            `db:"created_at" json:"created_at"`
}

type StockAdjustmentRequest struct {
	Adjustment int64                `json:"adjustment" validate:"required"`
	Reason     constant.StockReason `json:"reason" validate:"required"`
	Notes      string               `json:"notes,omitempty"`
	OrderID    uint64               `json:"order_id,omitempty"`
}

// InsertStockHistoryTxItem is the ledger row written alongside a quantity change.
type InsertStockHistoryTxItem struct {
	ProductID        uint64
	PreviousQuantity int64
	NewQuantity      int64
	Adjustment       int64
	Reason           constant.StockReason
	Notes            string
	UserID           uint64
	OrderID          uint64
}

type StockHistoryQuery struct {
	Reason constant.StockReason `json:"reason,omitempty"`
	Page   int                  `json:"page"`
	Limit  int                  `json:"limit"`
}

type StockHistoryListResponse struct {
	Data       []StockHistory `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int64          `json:"total_pages"`
}

type BatchStockUpdateItem struct {
	ProductID      uint64 `json:"product_id" validate:"required"`
	TargetQuantity int64  `json:"target_quantity" validate:"gte=0"`
	Notes          string `json:"notes,omitempty"`
}

type BatchStockUpdateResponse struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}
