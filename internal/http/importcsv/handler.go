package importcsv

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finny/internal/http/auth"
	"github.com/MrJamesThe3rd/finny/internal/http/finance"
	"github.com/MrJamesThe3rd/finny/internal/http/respond"
	"github.com/MrJamesThe3rd/finny/internal/importer"
	"github.com/MrJamesThe3rd/finny/internal/ledger"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledger    *ledger.Ledger
}

func NewHandler(importSvc *importer.Service, l *ledger.Ledger) *Handler {
	return &Handler{importSvc: importSvc, ledger: l}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported     int                           `json:"imported"`
	Skipped      int                           `json:"skipped"`
	Encoding     string                        `json:"encoding"`
	Transactions []finance.TransactionResponse `json:"transactions"`
}

// importCSV accepts a multipart form with "bank" and "file" fields.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	bank, err := importer.ParseBank(r.FormValue("bank"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "bank must be one of: cgd")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), bank, file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.ledger.Import(auth.UserID(r.Context()), res.Transactions)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "User no longer exists")
			return
		}

		slog.Error("failed to import statement", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	slog.Info("imported statement",
		"bank", bank,
		"encoding", res.Charset,
		"imported", len(added.Added),
		"skipped", added.Skipped,
	)

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:     len(added.Added),
		Skipped:      added.Skipped,
		Encoding:     string(res.Charset),
		Transactions: finance.ToTransactionList(added.Added),
	})
}
