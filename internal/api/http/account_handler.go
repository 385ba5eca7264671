package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/service"
)

// AccountHandler serves account, savings-feed and eligibility endpoints.
type AccountHandler struct {
	accounts    service.AccountService
	eligibility service.EligibilityService
}

func NewAccountHandler(accounts service.AccountService, eligibility service.EligibilityService) *AccountHandler {
	return &AccountHandler{accounts: accounts, eligibility: eligibility}
}

type createAccountRequest struct {
	OwnerName       string `json:"owner_name" validate:"required"`
	OwnerEmail      string `json:"owner_email" validate:"required,email"`
	AccountType     string `json:"account_type" validate:"required,oneof=main sub"`
	ParentAccountID *int32 `json:"parent_account_id,omitempty"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), req.OwnerName, req.OwnerEmail,
		domain.AccountType(req.AccountType), req.ParentAccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	if number := r.URL.Query().Get("number"); number != "" {
		account, err := h.accounts.GetAccountByNumber(r.Context(), number)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []domain.Account{*account})
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) SavingsHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	since, err := parseTimeParam(r.URL.Query().Get("since"))
	if err != nil {
		writeError(w, err)
		return
	}
	start := time.Time{}
	if since != nil {
		start = *since
	}

	records, err := h.accounts.SavingsHistory(r.Context(), accountID, start)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type recordSavingsRequest struct {
	WeekStart time.Time `json:"week_start" validate:"required"`
	WeekEnd   time.Time `json:"week_end" validate:"required"`
	Amount    int64     `json:"amount" validate:"required,gt=0"`
}

func (h *AccountHandler) RecordSavings(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req recordSavingsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	record := &domain.SavingsRecord{
		AccountID: accountID,
		WeekStart: req.WeekStart,
		WeekEnd:   req.WeekEnd,
		Amount:    req.Amount,
	}
	if err := h.accounts.RecordWeeklySavings(r.Context(), record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *AccountHandler) WelfareHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.accounts.WelfareHistory(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *AccountHandler) LoanEligible(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	eligible, err := h.eligibility.LoanEligible(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"eligible": eligible})
}

func (h *AccountHandler) GuarantorCandidates(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	candidates, err := h.eligibility.GuarantorCandidates(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// pathID extracts a positive int32 path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid " + name)
	}
	return int32(id), nil
}
