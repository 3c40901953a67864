package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/canback/pickup-platform/internal/observability/metrics"
	"github.com/canback/pickup-platform/internal/payout"
	"github.com/canback/pickup-platform/internal/rewards"
	"github.com/canback/pickup-platform/pkg/logging"
)

// LeadNotifier is notified after a lead is accepted. Failures are logged
// and never surfaced to the caller.
type LeadNotifier interface {
	LeadReceived(ctx context.Context, lead *PickupLead, quote rewards.RewardQuote) error
}

// Handler handles HTTP requests for pickup leads
type Handler struct {
	validator *Validator
	repo      Repository
	rewards   rewards.Config
	notifier  LeadNotifier
	metrics   *metrics.IntakeMetrics
	logger    *logging.Logger
}

// NewHandler creates a new intake handler
func NewHandler(validator *Validator, repo Repository, rewardsCfg rewards.Config, notifier LeadNotifier, m *metrics.IntakeMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		validator: validator,
		repo:      repo,
		rewards:   rewardsCfg,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// CreatePickupResponse is the response for an accepted pickup request.
type CreatePickupResponse struct {
	Lead  *PickupLead         `json:"lead"`
	Quote rewards.RewardQuote `json:"quote"`
}

// validationFailure is the response for a rejected submission: every
// violation, in submission order.
type validationFailure struct {
	Errors []string `json:"errors"`
}

// CreatePickup handles POST /pickups requests
func (h *Handler) CreatePickup(w http.ResponseWriter, r *http.Request) {
	var req PickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode pickup request", "error", err)
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	lead, errs := h.validator.ValidatePickup(&req)
	if len(errs) > 0 {
		h.metrics.ObserveLead(req.PickupType, "rejected")
		h.metrics.ObserveValidationFailures("pickup", len(errs))
		h.logger.Info("pickup request rejected", "violations", len(errs))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationFailure{Errors: errs})
		return
	}

	if err := h.repo.Create(r.Context(), lead); err != nil {
		h.logger.Error("failed to store lead", "error", err, "lead_id", lead.ID)
		http.Error(w, `{"error":"failed to store pickup request"}`, http.StatusInternalServerError)
		return
	}

	// Projection is only meaningful when rewards compound in KiwiSaver.
	withProjection := lead.Payout.Method == payout.MethodKiwiSaver
	quote := h.rewards.Quote(lead.Pickup.WeeklyCans, lead.ApplianceItems(), withProjection)

	if h.notifier != nil {
		if err := h.notifier.LeadReceived(r.Context(), lead, quote); err != nil {
			h.logger.Warn("lead notification failed", "error", err, "lead_id", lead.ID)
		}
	}

	h.metrics.ObserveLead(lead.Pickup.Type, "accepted")
	h.logger.Info("pickup lead created", "id", lead.ID, "pickup_type", lead.Pickup.Type, "total_dollars", quote.TotalDollars)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreatePickupResponse{Lead: lead, Quote: quote})
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads  []*PickupLead `json:"leads"`
	Count  int           `json:"count"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// ListLeads handles GET /admin/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if pickupType := r.URL.Query().Get("pickup_type"); pickupType != "" {
		filter.PickupType = pickupType
	}

	leads, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, `{"error":"failed to list leads"}`, http.StatusInternalServerError)
		return
	}

	response := ListLeadsResponse{
		Leads:  leads,
		Count:  len(leads),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
