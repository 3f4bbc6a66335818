package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http/dto"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/infrastructure/metrics"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
)

// DepositService defines the behavior needed by DepositHandler.
type DepositService interface {
	UpdateAllBalances(ctx context.Context) (*usecase.UpdateBalancesResult, error)
	ListDeposits(ctx context.Context) ([]*domain.TimeDeposit, error)
	GetDeposit(ctx context.Context, id string) (*domain.TimeDeposit, error)
	CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.TimeDeposit, error)
	CreateWithdrawal(ctx context.Context, input usecase.CreateWithdrawalInput) (*domain.Withdrawal, error)
}

// DepositHandler handles time deposit HTTP requests.
type DepositHandler struct {
	depositUC DepositService
	metrics   *metrics.Metrics
}

// NewDepositHandler creates a new DepositHandler. metrics may be nil.
func NewDepositHandler(depositUC DepositService, m *metrics.Metrics) *DepositHandler {
	return &DepositHandler{depositUC: depositUC, metrics: m}
}

// UpdateBalances runs interest accrual over every time deposit.
func (h *DepositHandler) UpdateBalances(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.depositUC.UpdateAllBalances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update balances", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccrualRuns.Inc()
		h.metrics.AccrualDuration.Observe(time.Since(start).Seconds())
		h.metrics.DepositsAccrued.Add(float64(result.UpdatedCount))
	}

	writeJSON(w, http.StatusOK, dto.UpdateBalancesResponse{
		Message:      fmt.Sprintf("Successfully updated %d time deposit balances", result.UpdatedCount),
		UpdatedCount: result.UpdatedCount,
		Status:       "success",
	})
}

// List lists all time deposits with their withdrawals.
func (h *DepositHandler) List(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.depositUC.ListDeposits(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list time deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositsFromDomain(deposits))
}

// Get retrieves a time deposit by ID.
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	deposit, err := h.depositUC.GetDeposit(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get time deposit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// Create creates a new time deposit.
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.depositUC.CreateDeposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create time deposit", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.DepositsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// CreateWithdrawal withdraws an amount from a time deposit.
func (h *DepositHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	var req dto.CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	withdrawal, err := h.depositUC.CreateWithdrawal(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create withdrawal", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.WithdrawalsCreated.Inc()
		amount, _ := withdrawal.Amount.Float64()
		h.metrics.WithdrawalAmount.Observe(amount)
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalResponse{
		ID:     withdrawal.ID,
		Amount: withdrawal.Amount,
		Date:   withdrawal.Date.Format("2006-01-02"),
	})
}
