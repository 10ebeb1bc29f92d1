package model

import "time"

type Product struct {
	ID                uint64    `db:"id" json:"id"`
	SKU               string    `db:"sku" json:"sku"`
	Name              string    `db:"name" json:"name"`
	Price             float64   `db:"price" json:"price"`
	Quantity          int64     `db:"quantity" json:"quantity"`
	ReservedStock     int64     `db:"reserved_stock" json:"reserved_stock"`
	LowStockThreshold int64     `db:"low_stock_threshold" json:"low_stock_threshold"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Available is the quantity orderable right now.
func (p *Product) Available() int64 {
	return p.Quantity - p.ReservedStock
}
