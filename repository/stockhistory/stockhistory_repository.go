package stockhistory

import (
	"context"
	"database/sql"

	"github.com/farhanmaulid/commerce-inventory/constant"
	"github.com/farhanmaulid/commerce-inventory/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

// StockHistoryRepository is insert-only on purpose: ledger rows are never
// updated or deleted once written.
type StockHistoryRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, item *model.InsertStockHistoryTxItem) (uint64, error)
	ListByProduct(ctx context.Context, productID uint64, reason constant.StockReason, page, limit int) ([]model.StockHistory, int64, error)
}

func NewStockHistoryRepository(conn *sqlx.DB) StockHistoryRepository {
	return &SQL{conn: conn}
}

const insertStockHistoryQuery = `INSERT INTO stock_history
(product_id, previous_quantity, new_quantity, adjustment, reason, notes, user_id, order_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, item *model.InsertStockHistoryTxItem) (uint64, error) {
	notes := sql.NullString{String: item.Notes, Valid: item.Notes != ""}
	userID := sql.NullInt64{Int64: int64(item.UserID), Valid: item.UserID != 0}
	orderID := sql.NullInt64{Int64: int64(item.OrderID), Valid: item.OrderID != 0}

	res, err := tx.ExecContext(ctx, insertStockHistoryQuery,
		item.ProductID, item.PreviousQuantity, item.NewQuantity, item.Adjustment,
		item.Reason, notes, userID, orderID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) ListByProduct(ctx context.Context, productID uint64, reason constant.StockReason, page, limit int) ([]model.StockHistory, int64, error) {
	offset := (page - 1) * limit

	query := `SELECT id, product_id, previous_quantity, new_quantity, adjustment, reason, notes, user_id, order_id, created_at
FROM stock_history WHERE product_id = ?`
	countQuery := "SELECT COUNT(*) FROM stock_history WHERE product_id = ?"
	args := []interface{}{productID}

	if reason != "" {
		query += " AND reason = ?"
		countQuery += " AND reason = ?"
		args = append(args, reason)
	}

	rows, err := s.conn.QueryxContext(ctx, query+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]model.StockHistory, 0)
	for rows.Next() {
		var e model.StockHistory
		if err := rows.StructScan(&e); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
