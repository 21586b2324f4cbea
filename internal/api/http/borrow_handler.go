package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/service"
)

// BorrowHandler exposes the lifecycle engine, one route per user action.
type BorrowHandler struct {
	borrowSvc     service.BorrowService
	projectionSvc service.ProjectionService
}

func NewBorrowHandler(borrowSvc service.BorrowService, projectionSvc service.ProjectionService) *BorrowHandler {
	return &BorrowHandler{borrowSvc: borrowSvc, projectionSvc: projectionSvc}
}

type createRequestBody struct {
	Message string `json:"message"`
}

func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	return id, err == nil
}

func actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
	}
	return id, ok
}

func (h *BorrowHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	toolID, ok := pathID(r, "toolID")
	if !ok {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid tool id")
		return
	}

	var body createRequestBody
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body) // message is optional
	}

	req, err := h.borrowSvc.CreateRequest(r.Context(), actorID, toolID, body.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

func (h *BorrowHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	toolID, ok := pathID(r, "toolID")
	if !ok {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid tool id")
		return
	}

	var body createRequestBody
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	req, err := h.borrowSvc.JoinWaitlist(r.Context(), actorID, toolID, body.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

// action wraps the simple transition endpoints, which differ only in the
// service method they call.
func (h *BorrowHandler) action(fn func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := actor(w, r)
		if !ok {
			return
		}
		requestID, ok := pathID(r, "requestID")
		if !ok {
			respondError(w, http.StatusBadRequest, "bad_request", "Invalid request id")
			return
		}
		req, err := fn(r, actorID, requestID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, req)
	}
}

func (h *BorrowHandler) Approve() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.Approve(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) Decline() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.Decline(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) Cancel() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.Cancel(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) LeaveWaitlist() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.LeaveWaitlist(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) ConfirmPickup() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.ConfirmPickup(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) ConfirmReturn() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.ConfirmReturn(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) GetRequest() http.HandlerFunc {
	return h.action(func(r *http.Request, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
		return h.borrowSvc.GetRequest(r.Context(), actorID, requestID)
	})
}

func (h *BorrowHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	requests, err := h.projectionSvc.Incoming(r.Context(), actorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *BorrowHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	requests, err := h.projectionSvc.Outgoing(r.Context(), actorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *BorrowHandler) ActiveLoans(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	lentOut, borrowed, err := h.projectionSvc.ActiveLoans(r.Context(), actorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"lent_out": lentOut,
		"borrowed": borrowed,
	})
}

func (h *BorrowHandler) ToolAvailability(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	toolID, ok := pathID(r, "toolID")
	if !ok {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid tool id")
		return
	}
	view, err := h.projectionSvc.ToolAvailability(r.Context(), actorID, toolID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *BorrowHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	count, err := h.projectionSvc.PendingIncomingCount(r.Context(), actorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"pending_count": count})
}
