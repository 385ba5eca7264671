package http

import (
	"net/http"

	"sacco-backend/internal/service"
)

// JobHandler exposes manual triggers for the batch jobs. The same code paths
// run on the cron schedule; these endpoints exist for operations staff.
type JobHandler struct {
	batch service.BatchService
}

func NewJobHandler(batch service.BatchService) *JobHandler {
	return &JobHandler{batch: batch}
}

func (h *JobHandler) RunWelfareDeduction(w http.ResponseWriter, r *http.Request) {
	result, err := h.batch.WeeklyWelfareDeduction(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *JobHandler) RunOverdueInterest(w http.ResponseWriter, r *http.Request) {
	result, err := h.batch.ApplyOverdueInterest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
