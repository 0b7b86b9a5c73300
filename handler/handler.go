package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cornerstore/metrics"
	"cornerstore/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc     service.ServiceInterface
	log     *slog.Logger
	metrics *metrics.ServerMetrics
	timeout time.Duration
}

// NewHandler returns a Handler instance. A zero timeout leaves request
// contexts without a deadline.
func NewHandler(s service.ServiceInterface, log *slog.Logger, m *metrics.ServerMetrics, timeout time.Duration) *Handler {
	return &Handler{svc: s, log: log, metrics: m, timeout: timeout}
}

// RegisterRoutes registers all routes and middleware on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.requestID, h.accessLog, h.deadline)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Cashiers
	r.HandleFunc("/cashiers", h.ListCashiers).Methods(http.MethodGet)
	r.HandleFunc("/cashiers", h.CreateCashier).Methods(http.MethodPost)
	r.HandleFunc("/cashiers/{id:[0-9]+}", h.GetCashier).Methods(http.MethodGet)

	// Categories
	r.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)

	// Products
	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/{id:[0-9]+}", h.UpdateProductPrice).Methods(http.MethodPut)

	// Orders
	r.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}", h.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}", h.DeleteOrder).Methods(http.MethodDelete)
}

// --- request / response shapes ---
type updatePriceReq struct {
	Price decimal.Decimal `json:"price"`
}

type errorResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, kind, msg string) {
	writeJSON(w, code, errorResp{Error: msg, Code: kind})
}

// fail maps a service error kind onto a status code. Anything unclassified
// is logged and reported as an internal error without its detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		writeErr(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, service.ErrInvalidReference):
		writeErr(w, http.StatusBadRequest, "invalid_reference", err.Error())
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "error", err)
		writeErr(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			return err
		}
		return fmt.Errorf("%w: invalid json: %v", service.ErrInvalidArgument, err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", service.ErrInvalidArgument, mux.Vars(r)["id"])
	}
	return id, nil
}

// parseDay accepts what service.ParseTimestamp does. Only the calendar day is
// used by the caller.
func parseDay(s string) (time.Time, error) {
	t, err := service.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("orderDate: %w", err)
	}
	return t, nil
}

// --- Handler ---

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.log.WarnContext(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCashiers handles GET /cashiers
func (h *Handler) ListCashiers(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListCashiers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// GetCashier handles GET /cashiers/{id}
func (h *Handler) GetCashier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.svc.GetCashier(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCashier handles POST /cashiers
// body: { "firstName": "...", "lastName": "..." }
func (h *Handler) CreateCashier(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCashierInput
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.svc.CreateCashier(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/cashiers/%d", c.ID))
	writeJSON(w, http.StatusCreated, c)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// ListProducts handles GET /products?search=...
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.ListProducts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// CreateProduct handles POST /products
// body: { "productName": "...", "brand": "...", "price": 1.75, "categoryId": 1 }
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductInput
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/products/%d", p.ID))
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProductPrice handles PUT /products/{id}
// body: { "price": 1.99 }
func (h *Handler) UpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req updatePriceReq
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.UpdateProductPrice(r.Context(), id, req.Price)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	od, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, od)
}

// ListOrders handles GET /orders?orderDate=YYYY-MM-DD
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var day *time.Time
	if s := strings.TrimSpace(r.URL.Query().Get("orderDate")); s != "" {
		t, err := parseDay(s)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		day = &t
	}
	orders, err := h.svc.ListOrders(r.Context(), day)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateOrder handles POST /orders
// body: { "cashierId": 1, "paidOnDate": "...", "products": [{ "productId": 1, "quantity": 2 }] }
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderInput
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	od, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.OrdersCreated.Inc()
	w.Header().Set("Location", fmt.Sprintf("/orders/%d", od.ID))
	writeJSON(w, http.StatusCreated, od)
}

// DeleteOrder handles DELETE /orders/{id}
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.DeleteOrder(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.OrdersDeleted.Inc()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Order with ID %d was deleted successfully.", id),
	})
}
