package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"beverage-backend/internal/httpx"
	"beverage-backend/internal/services"
	"beverage-backend/internal/validation"
)

type OrderHandler struct {
	Svc *services.OrderService
}

func NewOrderHandler(svc *services.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

type orderItemRequest struct {
	BeverageTypeID uuid.UUID `json:"beverageTypeId"`
	BeverageSizeID uuid.UUID `json:"beverageSizeId"`
	Quantity       int       `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerContact string             `json:"customerContact"`
	Items           []orderItemRequest `json:"items"`
}

// Create places an order. The service owns all order semantics; this
// handler only rejects requests that are malformed at the JSON level.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("customerName", req.CustomerName, v)
	validation.Required("customerContact", req.CustomerContact, v)
	validation.NotEmptySlice("items", len(req.Items), v)
	for i, it := range req.Items {
		validation.MinInt(fmt.Sprintf("items[%d].quantity", i), it.Quantity, 1, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	items := make([]services.OrderItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.OrderItemRequest{
			BeverageTypeID: it.BeverageTypeID,
			BeverageSizeID: it.BeverageSizeID,
			Quantity:       it.Quantity,
		})
	}
	order, err := h.Svc.PlaceOrder(r.Context(), req.CustomerName, req.CustomerContact, items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.Svc.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
