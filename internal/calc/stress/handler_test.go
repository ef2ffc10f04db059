package stress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	cases []Case
	err   error
}

func (f *fakeRecorder) Record(_ context.Context, req Request, _ Response) (string, error) {
	f.cases = append(f.cases, req.Case())
	if f.err != nil {
		return "", f.err
	}
	return "calc-1", nil
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestHandlerFourSide(t *testing.T) {
	h := &Handler{}
	rec := post(h.FourSide, `{"a":1000,"b":1000,"t":[6,6],"w":0.002}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"sigma":3.78,"delta":0.76}`, rec.Body.String())
}

func TestHandlerEngineErrorIsData(t *testing.T) {
	h := &Handler{}
	rec := post(h.TwoSide, `{"free":1000,"fix":400,"t":[6],"w":0.001}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b/a is smaller than 0.5. use FEM instead", resp.Error)
	assert.Nil(t, resp.Result)
}

func TestHandlerOverflowIsError(t *testing.T) {
	h := &Handler{}
	rec := post(h.FourSide, `{"a":1e160,"b":1e160,"t":[6],"w":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "result overflows")
}

func TestHandlerBadPayload(t *testing.T) {
	h := &Handler{}
	for _, fn := range []http.HandlerFunc{h.Circular, h.TwoSide, h.ThreeSide, h.FourSide, h.FourSidePartial} {
		rec := post(fn, `{"a":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid request payload")
	}
}

func TestHandlerRecords(t *testing.T) {
	store := &fakeRecorder{}
	h := &Handler{Store: store}

	rec := post(h.Circular, `{"D":1000,"t":[10],"w":0.001}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "calc-1", rec.Header().Get("X-Calculation-Id"))

	rec = post(h.FourSidePartial, `{"a":1000,"b":1000,"a1":10,"b1":10,"t":[6,6],"w":0.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []Case{CaseCircular, CaseFourPartial}, store.cases)
}

func TestHandlerRecordFailureStillAnswers(t *testing.T) {
	h := &Handler{Store: &fakeRecorder{err: errors.New("db down")}}
	rec := post(h.ThreeSide, `{"free":1000,"fix":100,"t":[6,6],"w":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Calculation-Id"))
	assert.Contains(t, rec.Body.String(), `"sigma"`)
}
