package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"beverage-backend/internal/httpx"
	"beverage-backend/internal/models"
	"beverage-backend/internal/services"
	"beverage-backend/internal/validation"
)

type PricingHandler struct {
	Svc *services.PricingService
}

func NewPricingHandler(svc *services.PricingService) *PricingHandler {
	return &PricingHandler{Svc: svc}
}

func (h *PricingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BeverageTypeID uuid.UUID     `json:"beverageTypeId"`
		BeverageSizeID uuid.UUID     `json:"beverageSizeId"`
		Price          *models.Price `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if req.BeverageTypeID == uuid.Nil {
		v["beverageTypeId"] = "required"
	}
	if req.BeverageSizeID == uuid.Nil {
		v["beverageSizeId"] = "required"
	}
	if req.Price == nil {
		v["price"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	link, err := h.Svc.CreateLink(r.Context(), req.BeverageTypeID, req.BeverageSizeID, *req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, link)
}

func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.Svc.ListLinks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, links)
}

func (h *PricingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	link, err := h.Svc.GetLink(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, link)
}

func (h *PricingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		BeverageTypeID *uuid.UUID    `json:"beverageTypeId"`
		BeverageSizeID *uuid.UUID    `json:"beverageSizeId"`
		Price          *models.Price `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	link, err := h.Svc.UpdateLink(r.Context(), id, services.PriceLinkUpdate{
		BeverageTypeID: req.BeverageTypeID,
		BeverageSizeID: req.BeverageSizeID,
		Price:          req.Price,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, link)
}

func (h *PricingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteLink(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
