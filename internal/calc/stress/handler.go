package stress

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// Recorder stores evaluated requests. history.Recorder is the production one.
type Recorder interface {
	Record(ctx context.Context, req Request, resp Response) (string, error)
}

type Handler struct {
	Calc  Calculator
	Store Recorder
}

func (h *Handler) Circular(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, &CircularInput{})
}

func (h *Handler) TwoSide(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, &TwoSideInput{})
}

func (h *Handler) ThreeSide(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, &ThreeSideInput{})
}

func (h *Handler) FourSide(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, &FourSideUniformInput{})
}

func (h *Handler) FourSidePartial(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, &FourSidePartialInput{})
}

// serve decodes into req and always answers 200 once the payload parses;
// engine failures travel in the error field.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, req Request) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	resp := h.Calc.Evaluate(req)
	if h.Store != nil {
		id, err := h.Store.Record(r.Context(), req, resp)
		if err != nil {
			log.Printf("record %s calculation: %v", req.Case(), err)
		} else if id != "" {
			w.Header().Set("X-Calculation-Id", id)
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// WriteJSON is shared by the glass handlers.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// WriteError writes {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Response{Error: msg})
}
