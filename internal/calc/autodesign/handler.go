package autodesign

import (
	"encoding/json"
	"net/http"

	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/stress"
)

type Handler struct {
	Checker check.Checker
}

func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Design(h.Checker, input)
	if err != nil {
		stress.WriteJSON(w, http.StatusUnprocessableEntity, struct {
			Error    string    `json:"error"`
			Rejected []Attempt `json:"rejected,omitempty"`
		}{err.Error(), res.Rejected})
		return
	}
	stress.WriteJSON(w, http.StatusOK, res)
}
