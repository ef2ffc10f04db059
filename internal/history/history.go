// Package history stores glass calculations per user and serves them back.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/siknue/gpg-back/internal/auth"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/siknue/gpg-back/internal/repo"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Recorder saves calculations made by authenticated users. Anonymous
// requests are not stored.
type Recorder struct {
	Repo repo.Repository
	Now  func() time.Time
}

func (rc *Recorder) Record(ctx context.Context, req stress.Request, resp stress.Response) (string, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return "", nil
	}
	input, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	now := time.Now
	if rc.Now != nil {
		now = rc.Now
	}
	c := repo.Calculation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Case:      string(req.Case()),
		Input:     input,
		Error:     resp.Error,
		CreatedAt: now().UTC(),
	}
	if resp.Result != nil {
		sigma, delta := resp.Sigma, resp.Delta
		c.Sigma, c.Delta = &sigma, &delta
	}
	if err := rc.Repo.SaveCalculation(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

type Handler struct {
	Repo repo.Repository
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			stress.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLimit)
	}
	list, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		stress.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	stress.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		stress.WriteError(w, http.StatusBadRequest, "invalid calculation id")
		return
	}
	c, err := h.Repo.GetCalculation(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		stress.WriteError(w, http.StatusNotFound, "calculation not found")
		return
	}
	if err != nil {
		stress.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	stress.WriteJSON(w, http.StatusOK, c)
}
