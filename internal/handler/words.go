package handler

import (
	"net/http"
	"strings"

	"invoice-desk/internal/utils"
	"invoice-desk/internal/words"

	"github.com/shopspring/decimal"
)

type wordsResponse struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
	Rupees string `json:"rupees"`
}

// AmountInWords spells out ?amount=. Any fractional part is dropped.
func (h *Handler) AmountInWords(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("amount"))
	if raw == "" {
		utils.WriteJSONError(w, "amount is required", http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		utils.WriteJSONError(w, "amount must be a number", http.StatusBadRequest)
		return
	}

	spelled, err := words.Amount(amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rupees, err := words.Rupees(amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wordsResponse{
		Amount: amount.String(),
		Words:  spelled,
		Rupees: rupees,
	})
}
