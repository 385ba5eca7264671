package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles every endpoint group the router mounts.
type Handlers struct {
	Accounts      *AccountHandler
	Transactions  *TransactionHandler
	Loans         *LoanHandler
	Notifications *NotificationHandler
	Jobs          *JobHandler
}

// NewRouter builds the full HTTP surface. Everything under /api requires a
// bearer token; approval and job endpoints additionally require the admin role.
func NewRouter(auth *AuthMiddleware, h Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Authenticate)

	// Accounts
	api.HandleFunc("/accounts", RequireAdmin(h.Accounts.Create)).Methods(http.MethodPost)
	api.HandleFunc("/accounts", h.Accounts.List).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}", h.Accounts.Get).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/savings", h.Accounts.RecordSavings).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}/savings", h.Accounts.SavingsHistory).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/welfare", h.Accounts.WelfareHistory).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/eligibility", h.Accounts.LoanEligible).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/guarantor-candidates", h.Accounts.GuarantorCandidates).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/transactions", h.Transactions.ListByAccount).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/loans", h.Loans.ListByAccount).Methods(http.MethodGet)

	// Transactions
	api.HandleFunc("/transactions", h.Transactions.Create).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}", h.Transactions.Get).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}/approve", RequireAdmin(h.Transactions.Approve)).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}/reject", RequireAdmin(h.Transactions.Reject)).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}", RequireAdmin(h.Transactions.Delete)).Methods(http.MethodDelete)

	// Loans
	api.HandleFunc("/loans", h.Loans.Apply).Methods(http.MethodPost)
	api.HandleFunc("/loans", h.Loans.List).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", h.Loans.Get).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", RequireAdmin(h.Loans.Edit)).Methods(http.MethodPatch)
	api.HandleFunc("/loans/{id}/guarantor", h.Loans.AssignGuarantor).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/guarantor/respond", h.Loans.GuarantorRespond).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/approve", RequireAdmin(h.Loans.Approve)).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/reject", RequireAdmin(h.Loans.Reject)).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/disburse", RequireAdmin(h.Loans.Disburse)).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/schedule", h.Loans.PaymentSchedule).Methods(http.MethodGet)

	// Notifications
	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost)

	// Batch job triggers
	api.HandleFunc("/jobs/welfare-deduction", RequireAdmin(h.Jobs.RunWelfareDeduction)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/overdue-interest", RequireAdmin(h.Jobs.RunOverdueInterest)).Methods(http.MethodPost)

	return r
}
