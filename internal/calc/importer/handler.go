package importer

import (
	"net/http"

	"github.com/siknue/gpg-back/internal/calc/batch"
	"github.com/siknue/gpg-back/internal/calc/stress"
)

type Handler struct {
	Calc stress.Calculator
}

type ImportResult struct {
	batch.Result
	Labels   []string `json:"labels"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Import evaluates every panel of an uploaded workbook (multipart field "file").
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imp := ImportExcel(file)
	if len(imp.Rows) == 0 {
		stress.WriteJSON(w, http.StatusBadRequest, imp)
		return
	}
	res, err := batch.Evaluate(h.Calc, imp.Panels())
	if err != nil {
		stress.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := ImportResult{Result: res, Errors: imp.Errors, Warnings: imp.Warnings}
	for _, row := range imp.Rows {
		out.Labels = append(out.Labels, row.Label)
	}
	stress.WriteJSON(w, http.StatusOK, out)
}
