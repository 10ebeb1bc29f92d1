package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	inventoryapp "github.com/farhanmaulid/commerce-inventory/application/inventory"
	orderapp "github.com/farhanmaulid/commerce-inventory/application/order"
	"github.com/farhanmaulid/commerce-inventory/cmd/config"
	"github.com/farhanmaulid/commerce-inventory/constant"
	"github.com/farhanmaulid/commerce-inventory/model"
	"github.com/farhanmaulid/commerce-inventory/utils/errors"
	validatorx "github.com/farhanmaulid/commerce-inventory/utils/validator"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	InventoryApp inventoryapp.InventoryApp
	OrderApp     orderapp.OrderApp
}

func NewTransport(cfg *config.Config, inventoryApp inventoryapp.InventoryApp, orderApp orderapp.OrderApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		InventoryApp: inventoryApp,
		OrderApp:     orderApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Admin order routes
	router.HandleFunc("/admin/orders", rh.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/admin/orders", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/admin/orders/{id:[0-9]+}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/admin/orders/{id:[0-9]+}/status", rh.UpdateOrderStatus).Methods(http.MethodPatch)
	router.HandleFunc("/admin/orders/{id:[0-9]+}/payment-status", rh.UpdatePaymentStatus).Methods(http.MethodPatch)
	router.HandleFunc("/admin/orders/{id:[0-9]+}/tracking", rh.UpdateTracking).Methods(http.MethodPatch)

	// Admin inventory routes
	router.HandleFunc("/admin/inventory/products/{id:[0-9]+}/stock-adjustment", rh.CreateStockAdjustment).Methods(http.MethodPost)
	router.HandleFunc("/admin/inventory/products/{id:[0-9]+}/stock-history", rh.GetStockHistory).Methods(http.MethodGet)
	router.HandleFunc("/admin/inventory/alerts", rh.GetLowStockAlerts).Methods(http.MethodGet)
	router.HandleFunc("/admin/inventory/batch-update", rh.BatchUpdateStock).Methods(http.MethodPost)

	// Internal routes (API key, used by the expiration consumer)
	internal := router.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))
	internal.HandleFunc("/orders/{id:[0-9]+}/expire", rh.ExpireOrder).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(cfg.Auth.JWTSecret))

	return router
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

// CreateOrder handler
// @Summary Create order
// @Description Create an order, reserving stock for every line item
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.CreateOrderRequest true "Create Order Request"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.CustomError
// @Router /admin/orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.CreateOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListOrders handler
// @Summary List orders
// @Tags Orders
// @Produce json
// @Param status query string false "Order status filter"
// @Param payment_status query string false "Payment status filter"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} model.OrderListResponse
// @Router /admin/orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	query := &model.OrderQuery{
		Status:        constant.OrderStatus(q.Get("status")),
		PaymentStatus: constant.PaymentStatus(q.Get("payment_status")),
		Page:          page,
		Limit:         limit,
	}

	res, err := s.OrderApp.ListOrders(ctx, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order detail
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.CustomError
// @Router /admin/orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateOrderStatus handler
// @Summary Update order status
// @Description Transition an order through its lifecycle, applying stock side effects
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Status"
// @Success 200 {object} model.Order
// @Failure 409 {object} errors.CustomError
// @Router /admin/orders/{id}/status [patch]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdateOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdatePaymentStatus handler
// @Summary Update payment status
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdatePaymentStatusRequest true "Payment Status"
// @Success 200 {object} model.Order
// @Router /admin/orders/{id}/payment-status [patch]
func (s *RestHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdatePaymentStatus(ctx, orderID, req.PaymentStatus)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateTracking handler
// @Summary Update tracking number
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateTrackingRequest true "Tracking"
// @Success 200 {object} model.Order
// @Router /admin/orders/{id}/tracking [patch]
func (s *RestHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateTrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdateTracking(ctx, orderID, req.TrackingNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateStockAdjustment handler
// @Summary Adjust stock
// @Description Apply a signed adjustment to on-hand quantity, appending a ledger entry
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.StockAdjustmentRequest true "Adjustment"
// @Success 200 {object} model.StockHistory
// @Failure 400 {object} errors.CustomError
// @Router /admin/inventory/products/{id}/stock-adjustment [post]
func (s *RestHandler) CreateStockAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.StockAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.InventoryApp.AdjustStock(ctx, productID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetStockHistory handler
// @Summary List stock history
// @Tags Inventory
// @Produce json
// @Param id path int true "Product ID"
// @Param reason query string false "Reason filter"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} model.StockHistoryListResponse
// @Router /admin/inventory/products/{id}/stock-history [get]
func (s *RestHandler) GetStockHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	query := &model.StockHistoryQuery{
		Reason: constant.StockReason(q.Get("reason")),
		Page:   page,
		Limit:  limit,
	}

	res, err := s.InventoryApp.ListStockHistory(ctx, productID, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetLowStockAlerts handler
// @Summary List low-stock products
// @Tags Inventory
// @Produce json
// @Success 200 {array} model.Product
// @Router /admin/inventory/alerts [get]
func (s *RestHandler) GetLowStockAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.InventoryApp.ListLowStock(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// BatchUpdateStock handler
// @Summary Batch stock update
// @Description Set target quantities for multiple products; failures are reported per item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body []model.BatchStockUpdateItem true "Batch items"
// @Success 200 {object} model.BatchStockUpdateResponse
// @Router /admin/inventory/batch-update [post]
func (s *RestHandler) BatchUpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var items []model.BatchStockUpdateItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	for i := range items {
		if err := validatorx.ValidateStruct(&items[i]); err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
	}

	res, err := s.InventoryApp.BatchAdjustStock(ctx, items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ExpireOrder handler (internal)
// @Summary Expire a pending order
// @Description Cancels a PENDING order past its reservation window, releasing held stock
// @Tags Internal
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} response
// @Router /internal/v1/orders/{id}/expire [post]
func (s *RestHandler) ExpireOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.ExpireOrder(ctx, orderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
