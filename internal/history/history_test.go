package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/siknue/gpg-back/internal/auth"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/siknue/gpg-back/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ stress.Recorder = (*Recorder)(nil)

func TestRecorderSkipsAnonymous(t *testing.T) {
	store := repo.NewMemory()
	rc := &Recorder{Repo: store}
	id, err := rc.Record(context.Background(), &stress.CircularInput{D: 100}, stress.Response{Error: "x"})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestStressHandlerStoresHistory(t *testing.T) {
	store := repo.NewMemory()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calc := &stress.Handler{Store: &Recorder{Repo: store, Now: func() time.Time { return clock }}}
	ctx := auth.WithUser(context.Background(), 3, "anna")

	post := func(h http.HandlerFunc, body string) string {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)).WithContext(ctx)
		rec := httptest.NewRecorder()
		h(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Header().Get("X-Calculation-Id")
	}
	okID := post(calc.FourSide, `{"a":1000,"b":1000,"t":[6,6],"w":0.002}`)
	clock = clock.Add(time.Minute)
	badID := post(calc.TwoSide, `{"free":1000,"fix":400,"t":[6],"w":0.001}`)

	h := &Handler{Repo: store}
	router := mux.NewRouter()
	router.HandleFunc("/calculations", h.List)
	router.HandleFunc("/calculations/{id}", h.Get)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations", nil).WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []repo.Calculation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, badID, list[0].ID)
	assert.Equal(t, "b/a is smaller than 0.5. use FEM instead", list[0].Error)
	assert.Nil(t, list[0].Sigma)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations/"+okID, nil).WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	var got repo.Calculation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "four-uniform", got.Case)
	require.NotNil(t, got.Sigma)
	assert.Equal(t, 3.78, *got.Sigma)
	assert.JSONEq(t, `{"a":1000,"b":1000,"t":[6,6],"w":0.002}`, string(got.Input))

	other := auth.WithUser(context.Background(), 4, "ben")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations/"+okID, nil).WithContext(other))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerValidation(t *testing.T) {
	h := &Handler{Repo: repo.NewMemory()}
	router := mux.NewRouter()
	router.HandleFunc("/calculations", h.List)
	router.HandleFunc("/calculations/{id}", h.Get)
	ctx := auth.WithUser(context.Background(), 1, "anna")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations?limit=-1", nil).WithContext(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations/not-a-uuid", nil).WithContext(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations/"+uuid.NewString(), nil).WithContext(ctx))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculations", nil).WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
