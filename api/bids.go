package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gigboard/gigboard/pkg/models"
	"github.com/gigboard/gigboard/pkg/repository"
)

type BidsHandler struct {
	bidRepo repository.BidRepo
	gigRepo repository.GigRepo
}

func NewBidsHandler(br repository.BidRepo, gr repository.GigRepo) *BidsHandler {
	return &BidsHandler{bidRepo: br, gigRepo: gr}
}

type createBidRequest struct {
	GigID   int64   `json:"gig_id"`
	Message string  `json:"message"`
	Price   float64 `json:"price"`
}

func (h *BidsHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := validatePayload(r.Context(), createBidSchema, body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req createBidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	freelancerID := UserIDFromContext(r.Context())
	if freelancerID <= 0 {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	gig, err := h.gigRepo.GetGig(r.Context(), req.GigID)
	if err != nil {
		http.Error(w, "failed to load gig", http.StatusInternalServerError)
		return
	}
	if gig == nil {
		http.Error(w, "gig not found", http.StatusNotFound)
		return
	}
	if gig.Status != models.GigStatusOpen {
		http.Error(w, "cannot bid on a gig that is already assigned", http.StatusBadRequest)
		return
	}

	b := &models.Bid{
		GigID:        req.GigID,
		FreelancerID: freelancerID,
		Message:      req.Message,
		Price:        req.Price,
		Status:       models.BidStatusPending,
	}

	id, err := h.bidRepo.CreateBid(r.Context(), b)
	if err != nil {
		http.Error(w, "failed to create bid", http.StatusInternalServerError)
		return
	}

	created, err := h.bidRepo.GetBid(r.Context(), id)
	if err != nil || created == nil {
		http.Error(w, "failed to load bid", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *BidsHandler) ListBidsByGig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gigID, err := strconv.ParseInt(vars["gigId"], 10, 64)
	if err != nil || gigID <= 0 {
		http.Error(w, "invalid gig id", http.StatusBadRequest)
		return
	}

	bids, err := h.bidRepo.ListBidsByGig(r.Context(), gigID)
	if err != nil {
		http.Error(w, "failed to list bids", http.StatusInternalServerError)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	writeJSON(w, bids, http.StatusOK)
}
