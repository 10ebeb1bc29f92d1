package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInsufficientStock
	ErrInvalidAdjustment
	ErrProductNotFound
	ErrOrderNotFound
	ErrProductInactive
	ErrInvalidTransition
	ErrInvalidOrderStatus
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrInsufficientStock:  "insufficient stock",
	ErrInvalidAdjustment:  "adjustment would result in negative quantity",
	ErrProductNotFound:    "product not found",
	ErrOrderNotFound:      "order not found",
	ErrProductInactive:    "product is not active",
	ErrInvalidTransition:  "invalid order status transition",
	ErrInvalidOrderStatus: "order status does not allow this operation",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusBadRequest,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrInsufficientStock:  http.StatusBadRequest,
	ErrInvalidAdjustment:  http.StatusBadRequest,
	ErrProductNotFound:    http.StatusNotFound,
	ErrOrderNotFound:      http.StatusNotFound,
	ErrProductInactive:    http.StatusBadRequest,
	ErrInvalidTransition:  http.StatusConflict,
	ErrInvalidOrderStatus: http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrInsufficientStock:  "0005",
	ErrInvalidAdjustment:  "0006",
	ErrProductNotFound:    "0007",
	ErrOrderNotFound:      "0008",
	ErrProductInactive:    "0009",
	ErrInvalidTransition:  "0010",
	ErrInvalidOrderStatus: "0011",
}
