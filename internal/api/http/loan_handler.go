package http

import (
	"net/http"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/service"
)

// LoanHandler serves the loan lifecycle endpoints.
type LoanHandler struct {
	loans service.LoanService
}

func NewLoanHandler(loans service.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type applyLoanRequest struct {
	AccountID int32 `json:"account_id" validate:"required,gt=0"`
	Amount    int64 `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyLoanRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.loans.Apply(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.loans.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	loans, err := h.loans.ListByAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	var statuses []domain.LoanStatus
	for _, raw := range r.URL.Query()["status"] {
		statuses = append(statuses, domain.LoanStatus(raw))
	}

	loans, err := h.loans.ListByStatus(r.Context(), statuses...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

type assignGuarantorRequest struct {
	GuarantorAccountID int32 `json:"guarantor_account_id" validate:"required,gt=0"`
}

func (h *LoanHandler) AssignGuarantor(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req assignGuarantorRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.loans.AssignGuarantor(r.Context(), loanID, req.GuarantorAccountID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "guarantor assigned"})
}

type guarantorResponseRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

func (h *LoanHandler) GuarantorRespond(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req guarantorResponseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	caller := CallerFromContext(r.Context())

	if err := h.loans.GuarantorRespond(r.Context(), loanID, caller.AccountID,
		domain.GuarantorStatus(req.Decision)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Decision})
}

func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	caller := CallerFromContext(r.Context())

	if err := h.loans.Approve(r.Context(), loanID, caller.AccountID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *LoanHandler) Reject(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	caller := CallerFromContext(r.Context())

	if err := h.loans.Reject(r.Context(), loanID, caller.AccountID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *LoanHandler) Disburse(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	txn, err := h.loans.Disburse(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (h *LoanHandler) Edit(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var edit domain.LoanEdit
	if err := decodeAndValidate(r, &edit); err != nil {
		writeError(w, err)
		return
	}

	if err := h.loans.EditDetails(r.Context(), loanID, edit); err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.loans.Get(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) PaymentSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	schedule, err := h.loans.PaymentSchedule(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
