package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/farhanmaulid/commerce-inventory/constant"
	"github.com/farhanmaulid/commerce-inventory/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error
	GetByID(ctx context.Context, orderID uint64) (*model.Order, error)
	GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID uint64, status constant.OrderStatus, shippedAt, deliveredAt *time.Time) error
	UpdatePaymentStatus(ctx context.Context, orderID uint64, paymentStatus constant.PaymentStatus) error
	UpdateTracking(ctx context.Context, orderID uint64, trackingNumber string) error
	List(ctx context.Context, query *model.OrderQuery) ([]model.Order, int64, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	orderColumns = `id, order_number, customer_name, customer_email, status, payment_status, tracking_number,
subtotal, shipping_cost, total, notes, shipped_at, delivered_at, expires_at, created_at, updated_at`

	insertOrderQuery = "INSERT INTO `order` (order_number, customer_name, customer_email, status, payment_status, subtotal, shipping_cost, total, notes, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	insertOrderItemQuery = "INSERT INTO order_item (order_id, product_id, product_name, sku, quantity, price, total) VALUES (?, ?, ?, ?, ?, ?, ?)"
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	notes := sql.NullString{String: req.Notes, Valid: req.Notes != ""}
	res, err := tx.ExecContext(ctx, insertOrderQuery,
		req.OrderNumber, req.CustomerName, req.CustomerEmail, req.Status, req.PaymentStatus,
		req.Subtotal, req.ShippingCost, req.Total, notes, req.ExpiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertOrderItemQuery,
			orderID, it.ProductID, it.ProductName, it.SKU, it.Quantity, it.Price, it.Total); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetByID(ctx context.Context, orderID uint64) (*model.Order, error) {
	var o model.Order
	row := r.conn.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE id = ?", orderID)
	if err := row.StructScan(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQL) GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.conn.QueryxContext(ctx, "SELECT id, order_id, product_id, product_name, sku, quantity, price, total FROM order_item WHERE order_id = ? ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus persists the new status. shippedAt/deliveredAt are only
// written when non-nil so the first-transition timestamps are never
// overwritten.
func (r *SQL) UpdateStatus(ctx context.Context, orderID uint64, status constant.OrderStatus, shippedAt, deliveredAt *time.Time) error {
	query := "UPDATE `order` SET status = ?"
	args := []interface{}{status}

	if shippedAt != nil {
		query += ", shipped_at = ?"
		args = append(args, *shippedAt)
	}
	if deliveredAt != nil {
		query += ", delivered_at = ?"
		args = append(args, *deliveredAt)
	}

	query += " WHERE id = ?"
	args = append(args, orderID)

	_, err := r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *SQL) UpdatePaymentStatus(ctx context.Context, orderID uint64, paymentStatus constant.PaymentStatus) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE `order` SET payment_status = ? WHERE id = ?", paymentStatus, orderID)
	return err
}

func (r *SQL) UpdateTracking(ctx context.Context, orderID uint64, trackingNumber string) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE `order` SET tracking_number = ? WHERE id = ?", trackingNumber, orderID)
	return err
}

func (r *SQL) List(ctx context.Context, query *model.OrderQuery) ([]model.Order, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if query.Status != "" {
		where += " AND status = ?"
		args = append(args, query.Status)
	}
	if query.PaymentStatus != "" {
		where += " AND payment_status = ?"
		args = append(args, query.PaymentStatus)
	}

	offset := (query.Page - 1) * query.Limit
	listQuery := "SELECT " + orderColumns + " FROM `order`" + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"

	rows, err := r.conn.QueryxContext(ctx, listQuery, append(args, query.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.StructScan(&o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM `order`"+where, args...); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
