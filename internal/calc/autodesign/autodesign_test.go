package autodesign

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/glass"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(w float64) Input {
	return Input{Input: check.Input{
		Panel:     stress.Panel{Case: stress.CaseFourSide, A: 1000, B: 1000, Glazing: stress.Glazing{W: w}},
		GlassType: "float",
	}}
}

func TestDesignPicksThinnestPassing(t *testing.T) {
	res, err := Design(check.Checker{}, input(0.002))
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Thickness)
	assert.True(t, res.Check.OK)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, 3.0, res.Rejected[0].Thickness)
	assert.Contains(t, res.Rejected[1].Reason, "exceeds allowable")
}

func TestDesignHonoursDeflectionLimit(t *testing.T) {
	in := input(0.002)
	in.DeflectionLimitMM = 5
	res, err := Design(check.Checker{}, in)
	require.NoError(t, err)

	assert.Equal(t, 8.0, res.Thickness)
	assert.LessOrEqual(t, res.Check.Delta, 5.0)
	assert.Contains(t, res.Rejected[len(res.Rejected)-1].Reason, "deflection")
}

func TestDesignIgnoresGivenPlies(t *testing.T) {
	in := input(0.002)
	in.T = []float64{12, 12}
	in.Interlayer = glass.InterlayerPVB
	res, err := Design(check.Checker{}, in)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Thickness)
}

func TestDesignNoSolution(t *testing.T) {
	res, err := Design(check.Checker{}, input(0.1))
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.Len(t, res.Rejected, len(StandardThicknesses))
}

func TestDesignInvalidInputStops(t *testing.T) {
	_, err := Design(check.Checker{}, input(0))
	assert.ErrorIs(t, err, glass.ErrInvalidInput)

	in := input(0.002)
	in.DeflectionLimitMM = -1
	_, err = Design(check.Checker{}, in)
	assert.ErrorIs(t, err, glass.ErrInvalidInput)
}

func TestDesignHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Design(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"case":"four-uniform","a":1000,"b":1000,"w":0.002,"glassType":"float","deflectionLimitMM":5}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"thickness":8`)

	rec = httptest.NewRecorder()
	h.Design(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"case":"four-uniform","a":1000,"b":1000,"w":0.1,"glassType":"float"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrNoSolution.Error())
}
