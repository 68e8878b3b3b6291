package finance

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finny/internal/http/auth"
	"github.com/MrJamesThe3rd/finny/internal/http/respond"
	"github.com/MrJamesThe3rd/finny/internal/ledger"
	"github.com/MrJamesThe3rd/finny/internal/report"
)

type Handler struct {
	ledger *ledger.Ledger
	now    func() time.Time
}

func NewHandler(l *ledger.Ledger, now func() time.Time) *Handler {
	return &Handler{ledger: l, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.transactions)
	r.Get("/reports/monthly", h.monthlyReport)
	r.Get("/budgets", h.budgets)
	r.Get("/analytics/forecast", h.forecast)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.ledger.Transactions(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToTransactionList(txs))
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if !report.ValidMonth(month) {
		respond.Error(w, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	rep, err := h.ledger.MonthlyReport(auth.UserID(r.Context()), month)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReport(rep))
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	bs, err := h.ledger.Budgets(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBudgetList(bs))
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	fs, err := h.ledger.Forecast(auth.UserID(r.Context()), h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toForecastList(fs))
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrNotFound) {
		respond.Error(w, http.StatusUnauthorized, "User no longer exists")
		return
	}

	respond.Error(w, http.StatusInternalServerError, "internal error")
}
