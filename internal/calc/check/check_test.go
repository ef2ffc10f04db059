package check

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siknue/gpg-back/internal/calc/allowable"
	"github.com/siknue/gpg-back/internal/calc/plate"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourSide() stress.Panel {
	return stress.Panel{Case: stress.CaseFourSide, A: 1000, B: 1000, Glazing: stress.Glazing{T: []float64{6, 6}, W: 0.002}}
}

func twoSide() stress.Panel {
	return stress.Panel{Case: stress.CaseTwoSide, Free: 1000, Fix: 1000, Glazing: stress.Glazing{T: []float64{8}, W: 0.002}}
}

func TestCheckPasses(t *testing.T) {
	res, err := Checker{}.Check(Input{Panel: fourSide(), GlassType: "float"})
	require.NoError(t, err)

	assert.Equal(t, stress.Result{Sigma: 3.78, Delta: 0.76}, res.Result)
	assert.Equal(t, allowable.ShortTerm, res.Term)
	assert.Equal(t, allowable.Inplane, res.Location)
	assert.Equal(t, 24.5, res.Allowable)
	assert.Equal(t, 0.15, res.Utilization)
	assert.Equal(t, plate.Coefficients{Alpha: 0.047, Beta: 0.272}, res.Coefficients)
	assert.True(t, res.OK)
}

func TestCheckFailsOnFreeEdge(t *testing.T) {
	res, err := Checker{}.Check(Input{Panel: twoSide(), GlassType: "float"})
	require.NoError(t, err)

	assert.Equal(t, allowable.Edge, res.Location)
	assert.Equal(t, 17.7, res.Allowable)
	assert.Equal(t, 1.38, res.Utilization)
	assert.False(t, res.OK)
}

func TestCheckLongTermOverride(t *testing.T) {
	res, err := Checker{}.Check(Input{Panel: twoSide(), GlassType: "float", Term: allowable.LongTerm, Location: allowable.Inplane})
	require.NoError(t, err)
	assert.Equal(t, 9.8, res.Allowable)
	assert.Equal(t, 2.49, res.Utilization)
}

func TestCheckErrors(t *testing.T) {
	_, err := Checker{}.Check(Input{Panel: fourSide(), GlassType: "acrylic"})
	assert.ErrorIs(t, err, allowable.ErrNoBand)

	thin := fourSide()
	thin.T = []float64{5}
	_, err = Checker{}.Check(Input{Panel: thin, GlassType: "wired"})
	assert.ErrorIs(t, err, allowable.ErrNoBand)

	wide := fourSide()
	wide.B = 6000
	_, err = Checker{}.Check(Input{Panel: wide, GlassType: "float"})
	assert.ErrorIs(t, err, plate.ErrOutOfRange)
}

func TestDefaultLocation(t *testing.T) {
	assert.Equal(t, allowable.Edge, DefaultLocation(stress.CaseThreeSide))
	assert.Equal(t, allowable.Inplane, DefaultLocation(stress.CaseCircular))
	assert.Equal(t, allowable.Inplane, DefaultLocation(stress.CaseFourPartial))
}

func TestCheckHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"case":"four-uniform","a":1000,"b":1000,"t":[6,6],"w":0.002,"glassType":"float"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
	assert.Contains(t, rec.Body.String(), `"sigma":3.78`)

	rec = httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"case":"four-uniform","a":1000,"b":1000,"t":[5,5],"w":0.002,"glassType":"wired"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"invalid glass type or thickness: wired, 5"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`nope`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllowableHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Allowable(rec, httptest.NewRequest(http.MethodGet, "/?type=tempered&t=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"fractureStrength":{"inplane":142.2,"edge":131.4},
		"shortTerm":{"inplane":88.3,"edge":79.4},
		"longTerm":{"inplane":73.5,"edge":68.6}
	}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Allowable(rec, httptest.NewRequest(http.MethodGet, "/?type=tempered&t=30", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Allowable(rec, httptest.NewRequest(http.MethodGet, "/?type=tempered", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
