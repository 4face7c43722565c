package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leylaiskandarli/average-squares/internal/calc"
	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
	"github.com/leylaiskandarli/average-squares/internal/store"
)

type CalculationsHandler struct {
	store   store.Store
	service *calc.Service
}

func NewCalculationsHandler(s store.Store, svc *calc.Service) *CalculationsHandler {
	return &CalculationsHandler{store: s, service: svc}
}

// CreateCalculationRequest accepts numbers either as JSON numbers or as
// whitespace-separated tokens. Explicit numbers win when both are present;
// omitting weights entirely means equal weighting.
type CreateCalculationRequest struct {
	Numbers      []float64 `json:"numbers,omitempty"`
	Weights      []float64 `json:"weights,omitempty"`
	Tokens       []string  `json:"tokens,omitempty"`
	WeightTokens []string  `json:"weight_tokens,omitempty"`
}

// Create computes and records a calculation.
// POST /api/v1/calculations
func (h *CalculationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	numbers, err := calc.Resolve(req.Numbers, req.Tokens)
	if err != nil {
		h.service.Reject(store.SourceAPI, err)
		writeServiceError(w, err)
		return
	}
	weights, err := calc.Resolve(req.Weights, req.WeightTokens)
	if err != nil {
		h.service.Reject(store.SourceAPI, err)
		writeServiceError(w, err)
		return
	}

	out, err := h.service.Calculate(r.Context(), calc.Input{
		Numbers: numbers,
		Weights: weights,
		Source:  store.SourceAPI,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// List returns recorded calculations, newest first.
// GET /api/v1/calculations?source=&limit=&offset=
func (h *CalculationsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.CalculationFilter{
		Source: store.Source(r.URL.Query().Get("source")),
	}
	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	calculations, err := h.store.ListCalculations(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if calculations == nil {
		calculations = []*store.Calculation{}
	}
	writeJSON(w, http.StatusOK, calculations)
}

// Get returns one recorded calculation.
// GET /api/v1/calculations/{id}
func (h *CalculationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid calculation id")
		return
	}

	c, err := h.store.GetCalculation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "calculation not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apperrors.NewArgumentError(key, "must be a non-negative integer")
	}
	return n, nil
}
