package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCalc(t *testing.T) {
	out, err := run(t, "calc", "four-uniform", "-a", "1000", "-b", "1000", "-t", "6+6", "-w", "0.002")
	require.NoError(t, err)
	assert.Contains(t, out, "3.78 N/mm2")
	assert.Contains(t, out, "0.76 mm")
}

func TestCalcJSON(t *testing.T) {
	out, err := run(t, "calc", "circular", "--d", "1000", "-t", "10", "-w", "0.001", "--json")
	require.NoError(t, err)
	var res stress.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, stress.Result{Sigma: 3.03, Delta: 0.66}, res)
}

func TestCalcWithCheck(t *testing.T) {
	out, err := run(t, "calc", "two-uniform", "--free", "1000", "--fix", "1000", "-t", "8", "-w", "0.002", "-g", "float")
	require.NoError(t, err)
	assert.Contains(t, out, "allowable (float, short, edge)")
	assert.Contains(t, out, "NG")
}

func TestCalcOutOfRange(t *testing.T) {
	_, err := run(t, "calc", "two-uniform", "--free", "1000", "--fix", "400", "-t", "6", "-w", "0.001")
	assert.EqualError(t, err, "b/a is smaller than 0.5. use FEM instead")

	_, err = run(t, "calc", "hexagon", "-t", "6", "-w", "0.001")
	assert.Error(t, err)
}

func TestLegacyPartialFlag(t *testing.T) {
	args := []string{"calc", "four-partial", "-a", "1000", "-b", "2000", "--a1", "10", "--b1", "20", "-t", "6+6", "-w", "1", "--json"}

	out, err := run(t, args...)
	require.NoError(t, err)
	var res stress.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2.2, res.Sigma)

	out, err = run(t, append(args, "--legacy-partial")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 4.48, res.Sigma)
}

func TestAllowable(t *testing.T) {
	out, err := run(t, "allowable", "-g", "tempered", "-t", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "88.3")
	assert.Contains(t, out, "68.6")

	_, err = run(t, "allowable", "-g", "wired", "-t", "12")
	assert.EqualError(t, err, "invalid glass type or thickness: wired, 12")
}

func TestDesign(t *testing.T) {
	out, err := run(t, "design", "four-uniform", "-a", "1000", "-b", "1000", "-w", "0.002", "-g", "float")
	require.NoError(t, err)
	assert.Contains(t, out, "thickness: 5 mm")
	assert.Contains(t, out, "3 mm rejected")
}

func TestBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panels.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Label", "Case", "a", "b", "t", "w"},
		{"W1", "four-uniform", 1000, 1000, "6+6", 0.002},
		{"W2", "four-uniform", 100, 600, "6+6", 0.002},
	}
	for i, row := range rows {
		for j, v := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", ref, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := run(t, "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "W1")
	assert.Contains(t, out, "3.78")
	assert.Contains(t, out, "b/a exceeds 5. use FEM instead")
	assert.Contains(t, out, "2 panels, 1 failed")
}

func TestReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	out, err := run(t, "report", "four-uniform", "-a", "1000", "-b", "1200", "-t", "8", "-w", "0.002", "-g", "tempered", "-o", path, "--project", "Atrium")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
