package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jfraser77/hrops-backend/internal/domain/termination"
	"github.com/jfraser77/hrops-backend/internal/handler/http/response"
)

type TerminationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	SetItemCompletion(w http.ResponseWriter, r *http.Request)
	BulkSetChecklist(w http.ResponseWriter, r *http.Request)
	AddChecklistItem(w http.ResponseWriter, r *http.Request)
	RemoveChecklistItem(w http.ResponseWriter, r *http.Request)

	MarkReturned(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	CheckOverdue(w http.ResponseWriter, r *http.Request)
}

type TerminationHandlerImpl struct {
	terminationService termination.Service
}

func NewTerminationHandler(terminationService termination.Service) TerminationHandler {
	return &TerminationHandlerImpl{terminationService: terminationService}
}

func terminationID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// actorName resolves who performed a checklist mutation from the JWT claims.
func actorName(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		return name
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}

// Create implements TerminationHandler.
func (h *TerminationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req termination.CreateTerminationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create termination decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.terminationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Termination record created successfully", termination.ToResponse(record))
}

// List implements TerminationHandler.
func (h *TerminationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if !termination.IsValidListFilter(filter) {
		response.BadRequest(w, "filter must be one of: overdue, archived", nil)
		return
	}

	records, err := h.terminationService.List(r.Context(), termination.ListFilter(filter))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]termination.TerminationResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, termination.ToResponse(record))
	}

	response.Success(w, responses)
}

// Get implements TerminationHandler.
func (h *TerminationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	record, err := h.terminationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, termination.ToResponse(record))
}

// Update implements TerminationHandler.
func (h *TerminationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	var req termination.UpdateTerminationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update termination decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.terminationService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Termination record updated successfully", termination.ToResponse(record))
}

// Delete implements TerminationHandler.
func (h *TerminationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	if err := h.terminationService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Termination record deleted successfully", nil)
}

// SetItemCompletion implements TerminationHandler.
func (h *TerminationHandlerImpl) SetItemCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		response.BadRequest(w, "Checklist item ID is required", nil)
		return
	}

	var req termination.SetItemCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetItemCompletion decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.terminationService.SetItemCompletion(r.Context(), id, itemID, req.Completed, actorName(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checklist item updated successfully", termination.ToResponse(record))
}

// BulkSetChecklist implements TerminationHandler.
func (h *TerminationHandlerImpl) BulkSetChecklist(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	var req termination.BulkChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkSetChecklist decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.terminationService.BulkSetChecklist(r.Context(), id, req.Category, req.Completed, actorName(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checklist updated successfully", termination.ToResponse(record))
}

// AddChecklistItem implements TerminationHandler.
func (h *TerminationHandlerImpl) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	var req termination.AddChecklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddChecklistItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.terminationService.AddChecklistItem(r.Context(), id, req.Category, req.Description)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checklist item added successfully", termination.ToResponse(record))
}

// RemoveChecklistItem implements TerminationHandler.
func (h *TerminationHandlerImpl) RemoveChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		response.BadRequest(w, "Checklist item ID is required", nil)
		return
	}

	record, err := h.terminationService.RemoveChecklistItem(r.Context(), id, itemID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checklist item removed successfully", termination.ToResponse(record))
}

// MarkReturned implements TerminationHandler.
func (h *TerminationHandlerImpl) MarkReturned(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	var req termination.MarkReturnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkReturned decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.terminationService.MarkEquipmentReturned(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Equipment return recorded successfully", termination.ToResponse(record))
}

// Archive implements TerminationHandler.
func (h *TerminationHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := terminationID(r)
	if !ok {
		response.BadRequest(w, "Termination ID must be a positive integer", nil)
		return
	}

	record, err := h.terminationService.Archive(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Termination record archived successfully", termination.ToResponse(record))
}

// CheckOverdue implements TerminationHandler.
func (h *TerminationHandlerImpl) CheckOverdue(w http.ResponseWriter, r *http.Request) {
	examined, err := h.terminationService.SweepOverdue(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overdue check completed", map[string]int{"examined": examined})
}
