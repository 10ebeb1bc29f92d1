package product

import (
	"context"

	"github.com/farhanmaulid/commerce-inventory/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

// ProductRepository owns every write to the quantity/reserved_stock pair.
// The reserve/release/confirm guards are single conditional statements so
// two concurrent requests can never both pass the availability check.
type ProductRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]model.Product, error)
	GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error)
	UpdateQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, newQuantity int64) error
	ReserveStock(ctx context.Context, id uint64, qty int64) (bool, error)
	ReleaseStock(ctx context.Context, id uint64, qty int64) (bool, error)
	ConfirmReservationTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) (bool, error)
	RestoreStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	ListLowStock(ctx context.Context) ([]model.Product, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	getProductQuery = `SELECT id, sku, name, price, quantity, reserved_stock, low_stock_threshold, is_active, created_at, updated_at
FROM product WHERE id = ?`

	reserveStockQuery = `UPDATE product SET reserved_stock = reserved_stock + ?
WHERE id = ? AND is_active = 1 AND quantity - reserved_stock >= ?`

	releaseStockQuery = `UPDATE product SET reserved_stock = reserved_stock - ?
WHERE id = ? AND reserved_stock >= ?`

	confirmReservationQuery = `UPDATE product SET quantity = quantity - ?, reserved_stock = reserved_stock - ?
WHERE id = ? AND reserved_stock >= ? AND quantity >= ?`

	restoreStockQuery = `UPDATE product SET quantity = quantity + ? WHERE id = ?`

	listLowStockQuery = `SELECT id, sku, name, price, quantity, reserved_stock, low_stock_threshold, is_active, created_at, updated_at
FROM product WHERE is_active = 1 AND quantity <= low_stock_threshold ORDER BY quantity ASC`
)

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQL) GetByIDs(ctx context.Context, ids []uint64) ([]model.Product, error) {
	query, args, err := sqlx.In(`SELECT id, sku, name, price, quantity, reserved_stock, low_stock_threshold, is_active, created_at, updated_at
FROM product WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryxContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0, len(ids))
	for rows.Next() {
		var p model.Product
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQL) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error) {
	var p model.Product
	if err := tx.QueryRowxContext(ctx, getProductQuery+" FOR UPDATE", id).StructScan(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQL) UpdateQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, newQuantity int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE product SET quantity = ? WHERE id = ?", newQuantity, id)
	return err
}

// ReserveStock increments reserved_stock only when enough available stock
// remains. Returns false when the guard rejected the update.
func (s *SQL) ReserveStock(ctx context.Context, id uint64, qty int64) (bool, error) {
	res, err := s.conn.ExecContext(ctx, reserveStockQuery, qty, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQL) ReleaseStock(ctx context.Context, id uint64, qty int64) (bool, error) {
	res, err := s.conn.ExecContext(ctx, releaseStockQuery, qty, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ConfirmReservation moves held stock to consumed: both counters drop by qty.
func (s *SQL) ConfirmReservationTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) (bool, error) {
	res, err := tx.ExecContext(ctx, confirmReservationQuery, qty, qty, id, qty, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQL) RestoreStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	_, err := tx.ExecContext(ctx, restoreStockQuery, qty, id)
	return err
}

func (s *SQL) ListLowStock(ctx context.Context) ([]model.Product, error) {
	rows, err := s.conn.QueryxContext(ctx, listLowStockQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
