package handler

import (
	"errors"
	"net/http"

	"invoice-desk/internal/auth"
	"invoice-desk/internal/client"
	"invoice-desk/internal/invoice"
	"invoice-desk/internal/logger"
	"invoice-desk/internal/numbering"
	"invoice-desk/internal/utils"
	"invoice-desk/internal/words"

	"go.uber.org/zap"
)

// writeError maps domain errors to HTTP statuses. Anything unrecognised is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, client.ErrInvalidClient),
		errors.Is(err, invoice.ErrInvalidInvoice):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, words.ErrNegative),
		errors.Is(err, words.ErrUnsupportedMagnitude):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, client.ErrClientNotFound),
		errors.Is(err, invoice.ErrInvoiceNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, numbering.ErrAllocationConflict),
		errors.Is(err, numbering.ErrSerialExhausted):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("unhandled error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
