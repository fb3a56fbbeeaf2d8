package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
	"github.com/jfraser77/hrops-backend/internal/handler/http/response"
)

type InventoryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
}

type InventoryHandlerImpl struct {
	inventoryService inventory.Service
}

func NewInventoryHandler(inventoryService inventory.Service) InventoryHandler {
	return &InventoryHandlerImpl{inventoryService: inventoryService}
}

// List implements InventoryHandler.
func (h *InventoryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	counters, err := h.inventoryService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, counters)
}

// Adjust implements InventoryHandler.
func (h *InventoryHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req inventory.AdjustInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Adjust inventory decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	counter, err := h.inventoryService.Adjust(r.Context(), userID, req.Delta)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inventory adjusted successfully", counter)
}
