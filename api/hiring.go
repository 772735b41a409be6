package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/gigboard/gigboard/internal/hiring"
)

// HireService is the slice of the hiring engine the handler depends on.
type HireService interface {
	Hire(ctx context.Context, bidID, requesterID int64) error
	DashboardFor(ctx context.Context, userID int64) (*hiring.Dashboard, error)
}

type HiringHandler struct {
	engine HireService
}

func NewHiringHandler(engine HireService) *HiringHandler {
	return &HiringHandler{engine: engine}
}

// Hire handles POST /v1/hire/{bidId}. Error kinds map to statuses:
// not found 404, forbidden 403, conflict 400, anything else 500.
func (h *HiringHandler) Hire(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bidID, err := strconv.ParseInt(vars["bidId"], 10, 64)
	if err != nil || bidID <= 0 {
		http.Error(w, "invalid bid id", http.StatusBadRequest)
		return
	}

	requesterID := UserIDFromContext(r.Context())
	if requesterID <= 0 {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.engine.Hire(r.Context(), bidID, requesterID); err != nil {
		switch {
		case errors.Is(err, hiring.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, hiring.ErrForbidden):
			http.Error(w, "only the gig owner can hire", http.StatusForbidden)
		case errors.Is(err, hiring.ErrConflict):
			http.Error(w, "this gig is no longer open for hiring", http.StatusBadRequest)
		default:
			logger.Error("hire failed", slog.Int64("bid_id", bidID), slog.Any("err", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]string{"message": "freelancer hired and other bids rejected"}, http.StatusOK)
}

// Dashboard handles GET /v1/dashboard for the authenticated user.
func (h *HiringHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID <= 0 {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	view, err := h.engine.DashboardFor(r.Context(), userID)
	if err != nil {
		logger.Error("dashboard failed", slog.Int64("user_id", userID), slog.Any("err", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, view, http.StatusOK)
}
