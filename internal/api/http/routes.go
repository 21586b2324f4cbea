package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires all API routes. Everything under /api/v1 requires a
// valid bearer token; /healthz does not.
func RegisterRoutes(router *mux.Router, auth *AuthMiddleware, borrow *BorrowHandler, notes *NotificationHandler, db *sql.DB) {
	router.HandleFunc("/healthz", healthHandler(db)).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Handler)

	// Tool-scoped operations
	api.HandleFunc("/tools/{toolID}/requests", borrow.CreateRequest).Methods(http.MethodPost)
	api.HandleFunc("/tools/{toolID}/waitlist", borrow.JoinWaitlist).Methods(http.MethodPost)
	api.HandleFunc("/tools/{toolID}/availability", borrow.ToolAvailability).Methods(http.MethodGet)

	// Request lifecycle
	api.HandleFunc("/requests/incoming", borrow.Incoming).Methods(http.MethodGet)
	api.HandleFunc("/requests/outgoing", borrow.Outgoing).Methods(http.MethodGet)
	api.HandleFunc("/requests/pending-count", borrow.PendingCount).Methods(http.MethodGet)
	api.HandleFunc("/requests/{requestID}", borrow.GetRequest()).Methods(http.MethodGet)
	api.HandleFunc("/requests/{requestID}/approve", borrow.Approve()).Methods(http.MethodPost)
	api.HandleFunc("/requests/{requestID}/decline", borrow.Decline()).Methods(http.MethodPost)
	api.HandleFunc("/requests/{requestID}/cancel", borrow.Cancel()).Methods(http.MethodPost)
	api.HandleFunc("/requests/{requestID}/waitlist", borrow.LeaveWaitlist()).Methods(http.MethodDelete)
	api.HandleFunc("/requests/{requestID}/pickup-confirmation", borrow.ConfirmPickup()).Methods(http.MethodPost)
	api.HandleFunc("/requests/{requestID}/return-confirmation", borrow.ConfirmReturn()).Methods(http.MethodPost)

	// Loans view
	api.HandleFunc("/loans", borrow.ActiveLoans).Methods(http.MethodGet)

	// Notifications
	api.HandleFunc("/notifications", notes.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notes.MarkAsRead).Methods(http.MethodPost)
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
