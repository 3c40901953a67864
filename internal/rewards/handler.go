package rewards

import (
	"encoding/json"
	"net/http"

	"github.com/canback/pickup-platform/pkg/logging"
)

// Handler serves reward quotes over HTTP
type Handler struct {
	cfg    Config
	logger *logging.Logger
}

// NewHandler creates a new rewards handler
func NewHandler(cfg Config, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{cfg: cfg, logger: logger}
}

// QuoteRequest is the request body for computing a reward quote
type QuoteRequest struct {
	WeeklyCans        int             `json:"weekly_cans"`
	Appliances        []ApplianceItem `json:"appliances"`
	IncludeProjection bool            `json:"include_projection"`
}

// Quote handles POST /quote requests
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode quote request", "error", err)
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	if req.WeeklyCans < 0 {
		http.Error(w, `{"error":"weekly_cans must not be negative"}`, http.StatusBadRequest)
		return
	}

	quote := h.cfg.Quote(req.WeeklyCans, req.Appliances, req.IncludeProjection)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}
