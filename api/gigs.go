package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/gigboard/gigboard/pkg/models"
	"github.com/gigboard/gigboard/pkg/repository"
)

// EventNewGig is broadcast when a gig is posted so browsing clients can show
// it without refetching.
const EventNewGig = "new-gig-added"

// Broadcaster is the slice of the realtime hub the gig handler needs.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

type GigsHandler struct {
	gigRepo     repository.GigRepo
	broadcaster Broadcaster
}

func NewGigsHandler(gr repository.GigRepo, b Broadcaster) *GigsHandler {
	return &GigsHandler{gigRepo: gr, broadcaster: b}
}

type createGigRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

func (h *GigsHandler) CreateGig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := validatePayload(r.Context(), createGigSchema, body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req createGigRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	ownerID := UserIDFromContext(r.Context())
	if ownerID <= 0 {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	g := &models.Gig{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		OwnerID:     ownerID,
		Status:      models.GigStatusOpen,
	}

	id, err := h.gigRepo.CreateGig(r.Context(), g)
	if err != nil {
		http.Error(w, "failed to create gig", http.StatusInternalServerError)
		return
	}

	created, err := h.gigRepo.GetGig(r.Context(), id)
	if err != nil || created == nil {
		http.Error(w, "failed to load gig", http.StatusInternalServerError)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Broadcast(EventNewGig, created)
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *GigsHandler) ListGigs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := repository.GigFilter{
		Search: strings.TrimSpace(q.Get("search")),
	}
	if q.Get("status") == models.GigStatusOpen {
		f.Status = models.GigStatusOpen
	}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			f.Limit = v
		}
	}

	gigs, err := h.gigRepo.ListGigs(r.Context(), f)
	if err != nil {
		logger.Error("list gigs", slog.Any("err", err))
		http.Error(w, "failed to list gigs", http.StatusInternalServerError)
		return
	}
	if gigs == nil {
		gigs = []models.Gig{}
	}

	writeJSON(w, gigs, http.StatusOK)
}
