package report

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/stress"
)

type Handler struct {
	Checker check.Checker
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	doc, err := Build(h.Checker, input)
	if err != nil {
		stress.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		log.Printf("render report %s: %v", doc.ID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Header().Set("X-Report-Id", doc.ID)
	w.Write(buf.Bytes())
}
