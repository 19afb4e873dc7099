package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/expensely/expensely-be/internal/auth"
	"github.com/expensely/expensely-be/internal/events"
	"github.com/expensely/expensely-be/internal/http/respond"
	"github.com/expensely/expensely-be/internal/ledger"
	"github.com/expensely/expensely-be/internal/models"
	"github.com/expensely/expensely-be/internal/models/dto"
	"github.com/expensely/expensely-be/internal/storage"
)

// ExpenseHandler owns the four ledger endpoints. All collaborators are
// injected; the handler carries no per-request state.
type ExpenseHandler struct {
	store         storage.ExpenseStore
	authenticator auth.Authenticator
	publisher     events.Publisher
}

// NewExpenseHandler constructs the handler.
func NewExpenseHandler(store storage.ExpenseStore, authenticator auth.Authenticator, publisher events.Publisher) *ExpenseHandler {
	return &ExpenseHandler{store: store, authenticator: authenticator, publisher: publisher}
}

// Register attaches the ledger routes to the mux.
func (h *ExpenseHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/expenses", h.handleCollection)
	mux.HandleFunc("/expenses/", h.handleItem)
}

func (h *ExpenseHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed. Use GET or POST request.")
	}
}

func (h *ExpenseHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/expenses/")
	if id == "" || strings.Contains(id, "/") {
		respond.Error(w, http.StatusBadRequest, "Expense ID is required in path parameters")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed. Use PUT or DELETE request.")
	}
}

func (h *ExpenseHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	record, err := req.Validate()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.store.Create(r.Context(), identity.UserID, record)
	if err != nil {
		slog.ErrorContext(r.Context(), "create expense failed", "error", err, "user_id", identity.UserID)
		respond.Error(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	h.publish(r, events.ActionCreated, identity.UserID, stored.ID)

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Expense created successfully",
		"record":  stored,
	})
}

type pagination struct {
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

type listSummary struct {
	ledger.Summary
	Pagination pagination `json:"pagination"`
}

type listFilters struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Category  string `json:"category,omitempty"`
}

type listResponse struct {
	Records []models.Record `json:"records"`
	Summary listSummary     `json:"summary"`
	Filters listFilters     `json:"filters"`
}

func (h *ExpenseHandler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filters, err := dto.ParseListQuery(query)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.store.List(r.Context(), identity.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "list expenses failed", "error", err, "user_id", identity.UserID)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}

	records := filters.Apply(history)
	summary := ledger.Summarize(records)

	respond.JSON(w, http.StatusOK, listResponse{
		Records: records,
		Summary: listSummary{
			Summary: summary,
			Pagination: pagination{
				Limit:   filters.Limit,
				HasMore: filters.HasMore(len(records)),
			},
		},
		Filters: listFilters{
			StartDate: query.Get("startDate"),
			EndDate:   query.Get("endDate"),
			Category:  query.Get("category"),
		},
	})
}

func (h *ExpenseHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update, err := req.Validate()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.Update(r.Context(), identity.UserID, id, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "update expense failed", "error", err, "user_id", identity.UserID, "expense_id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	h.publish(r, events.ActionUpdated, identity.UserID, id)

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Expense updated successfully",
		"record":  updated,
	})
}

func (h *ExpenseHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "delete expense failed", "error", err, "user_id", identity.UserID, "expense_id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	h.publish(r, events.ActionDeleted, identity.UserID, id)

	respond.JSON(w, http.StatusOK, map[string]any{
		"message":   "Expense deleted successfully",
		"deletedId": id,
	})
}

func (h *ExpenseHandler) authenticate(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, err := h.authenticator.Authenticate(r.Context(), r.Header)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Authentication failed: "+err.Error())
		return models.Identity{}, false
	}
	return identity, true
}

func (h *ExpenseHandler) publish(r *http.Request, action, userID, recordID string) {
	if err := h.publisher.Publish(r.Context(), events.NewEvent(action, userID, recordID)); err != nil {
		slog.WarnContext(r.Context(), "publish record event failed",
			"error", err, "action", action, "record_id", recordID)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respond.Error(w, http.StatusBadRequest, "Request body is required")
			return false
		}
		respond.Error(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}
	return true
}
