package batch

import (
	"encoding/json"
	"net/http"

	"github.com/siknue/gpg-back/internal/calc/stress"
)

type Handler struct {
	Calc stress.Calculator
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Evaluate(h.Calc, input.Items)
	if err != nil {
		stress.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	stress.WriteJSON(w, http.StatusOK, res)
}
