package check

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/siknue/gpg-back/internal/calc/allowable"
	"github.com/siknue/gpg-back/internal/calc/stress"
)

type Handler struct {
	Checker Checker
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Checker.Check(input)
	if err != nil {
		stress.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	stress.WriteJSON(w, http.StatusOK, res)
}

// Allowable serves GET ?type=<glass type>&t=<mm>.
func (h *Handler) Allowable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := strconv.ParseFloat(q.Get("t"), 64)
	if err != nil {
		stress.WriteError(w, http.StatusBadRequest, "t must be a number")
		return
	}
	gt, err := allowable.ParseGlassType(q.Get("type"))
	if err != nil {
		stress.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := allowable.Lookup(gt, t)
	if err != nil {
		stress.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	stress.WriteJSON(w, http.StatusOK, rec)
}
