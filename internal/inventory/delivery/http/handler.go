package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/usecase/command"
	"github.com/tair/stock-tracker/internal/inventory/usecase/query"
	"github.com/tair/stock-tracker/pkg/logger"
)

// SessionHeader selects the inventory a request operates on
const SessionHeader = "X-Session-ID"

type contextKey string

const sessionIDKey contextKey = "session_id"

// InventoryHandler handles HTTP requests for the session inventory
type InventoryHandler struct {
	// Command handlers
	addHandler    *command.AddItemHandler
	deleteHandler *command.DeleteItemHandler

	// Query handlers
	listHandler  *query.ListItemsHandler
	getHandler   *query.GetItemHandler
	statsHandler *query.GetStatsHandler

	sessions domain.SessionStore

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	mutations      *prometheus.CounterVec
	activeSessions prometheus.GaugeFunc
}

// NewInventoryHandler creates a new inventory handler and registers its metrics on reg
func NewInventoryHandler(
	addHandler *command.AddItemHandler,
	deleteHandler *command.DeleteItemHandler,
	listHandler *query.ListItemsHandler,
	getHandler *query.GetItemHandler,
	statsHandler *query.GetStatsHandler,
	sessions domain.SessionStore,
	reg prometheus.Registerer,
) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_item_mutations_total",
			Help: "Successful item mutations by operation",
		},
		[]string{"operation"},
	)

	activeSessions := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "inventory_service_active_sessions",
			Help: "Number of sessions currently holding an inventory",
		},
		func() float64 { return float64(sessions.Len()) },
	)

	reg.MustRegister(requestCounter, requestLatency, mutations, activeSessions)

	return &InventoryHandler{
		addHandler:     addHandler,
		deleteHandler:  deleteHandler,
		listHandler:    listHandler,
		getHandler:     getHandler,
		statsHandler:   statsHandler,
		sessions:       sessions,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		mutations:      mutations,
		activeSessions: activeSessions,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// MutationResult is returned by add and delete together with the refreshed aggregates
type MutationResult struct {
	Item          *domain.Item `json:"item,omitempty"`
	TotalQuantity int          `json:"total_quantity"`
	ItemCount     int          `json:"item_count"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// sessionMiddleware resolves the session id, issuing a new one when the header is missing
func sessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func sessionFrom(r *http.Request) string {
	sessionID, _ := r.Context().Value(sessionIDKey).(string)
	return sessionID
}

func (h *InventoryHandler) route(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return h.metricsMiddleware(endpoint, sessionMiddleware(next))
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory", h.route("/api/inventory", h.ListItems)).Methods("GET")
	router.HandleFunc("/api/inventory", h.route("/api/inventory", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/inventory/stats", h.route("/api/inventory/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/inventory/{id}", h.route("/api/inventory/{id}", h.GetItem)).Methods("GET")
	router.HandleFunc("/api/inventory/{id}", h.route("/api/inventory/{id}", h.DeleteItem)).Methods("DELETE")
	router.HandleFunc("/api/session", h.route("/api/session", h.EndSession)).Methods("DELETE")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
			Data:    map[string]int{"active_sessions": h.sessions.Len()},
		})
	}).Methods("GET")
}

// ListItems handles GET /api/inventory
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.listHandler.Handle(r.Context(), query.ListItemsQuery{SessionID: sessionFrom(r)})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	message := ""
	if result.ItemCount == 0 {
		message = "Inventory is empty"
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    result,
	})
}

// AddItem handles POST /api/inventory
func (h *InventoryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string          `json:"name"`
		Quantity json.RawMessage `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	quantity, err := domain.DecodeQuantity(req.Quantity)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sessionID := sessionFrom(r)
	item, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		SessionID: sessionID,
		Name:      req.Name,
		Quantity:  quantity,
	})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	h.mutations.WithLabelValues("add").Inc()

	logger.Info(r.Context()).
		Str("session_id", sessionID).
		Int("item_id", item.ID).
		Str("name", item.Name).
		Int("quantity", item.Quantity).
		Msg("Item added")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: fmt.Sprintf("Added item: %s (ID: %d)", item.Name, item.ID),
		Data:    h.mutationResult(sessionID, item),
	})
}

// GetItem handles GET /api/inventory/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.getHandler.Handle(r.Context(), query.GetItemQuery{SessionID: sessionFrom(r), ID: id})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sessionID := sessionFrom(r)
	if err := h.deleteHandler.Handle(r.Context(), command.DeleteItemCommand{SessionID: sessionID, ID: id}); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	h.mutations.WithLabelValues("delete").Inc()

	logger.Info(r.Context()).
		Str("session_id", sessionID).
		Int("item_id", id).
		Msg("Item deleted")

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Deleted item with ID: %d", id),
		Data:    h.mutationResult(sessionID, nil),
	})
}

// GetStats handles GET /api/inventory/stats
func (h *InventoryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{SessionID: sessionFrom(r)})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// EndSession handles DELETE /api/session
func (h *InventoryHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Close(sessionFrom(r)) {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Session not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Session ended",
	})
}

func (h *InventoryHandler) mutationResult(sessionID string, item *domain.Item) MutationResult {
	inv := h.sessions.Open(sessionID)
	return MutationResult{
		Item:          item,
		TotalQuantity: inv.TotalQuantity(),
		ItemCount:     inv.ItemCount(),
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return 0, false
	}
	return id, true
}

// respondError maps use case errors to HTTP statuses
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var nferr *domain.NotFoundError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   verr.Error(),
			Kind:    string(verr.Kind),
		})
	case errors.As(err, &nferr):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   nferr.Error(),
		})
	default:
		logger.Error(ctx).Err(err).Msg("Inventory request failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
