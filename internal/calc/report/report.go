// Package report renders a one-page PDF calculation report for a panel.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/plate"
	"github.com/siknue/gpg-back/internal/calc/stress"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrSize  = 30.0 // mm
	labelW  = 60.0 // mm
	valueW  = 60.0 // mm
	lineH   = 6.0  // mm
	marginL = 15.0 // mm
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	check.Input
}

// Document is everything printed on the report.
type Document struct {
	ID           string
	Title        string
	Project      string
	Author       string
	Notes        string
	Date         time.Time
	Panel        stress.Panel
	Result       stress.Result
	Coefficients plate.Coefficients
	Check        *check.Result
}

// Build evaluates the panel and, when a glass type is given, the allowable
// stress check.
func Build(c check.Checker, in Input) (Document, error) {
	doc := Document{
		ID:      uuid.New().String(),
		Title:   in.Title,
		Project: in.Project,
		Author:  in.Author,
		Notes:   in.Notes,
		Date:    time.Now(),
		Panel:   in.Panel,
	}
	if doc.Title == "" {
		doc.Title = "Glass Panel Calculation"
	}
	if in.GlassType != "" {
		res, err := c.Check(in.Input)
		if err != nil {
			return Document{}, err
		}
		doc.Result, doc.Coefficients, doc.Check = res.Result, res.Coefficients, &res
		return doc, nil
	}

	req, err := in.Panel.Request()
	if err != nil {
		return Document{}, err
	}
	p, _, err := c.Calc.Solve(req)
	if err != nil {
		return Document{}, err
	}
	doc.Result = stress.Result{Sigma: stress.Round(p.Stress()), Delta: stress.Round(p.Displacement())}
	doc.Coefficients = p.Coefficients()
	return doc, nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func plies(t []float64) string {
	s := make([]string, len(t))
	for i, v := range t {
		s[i] = num(v)
	}
	return strings.Join(s, " + ")
}

// inputRows lists the inputs that matter for the panel's case.
func inputRows(p stress.Panel) [][2]string {
	rows := [][2]string{{"Support case", string(p.Case)}}
	switch p.Case {
	case stress.CaseCircular:
		rows = append(rows, [2]string{"Diameter D (mm)", num(p.D)})
	case stress.CaseTwoSide, stress.CaseThreeSide:
		rows = append(rows,
			[2]string{"Free edge (mm)", num(p.Free)},
			[2]string{"Fixed edge (mm)", num(p.Fix)})
	case stress.CaseFourSide:
		rows = append(rows,
			[2]string{"Short edge a (mm)", num(p.A)},
			[2]string{"Long edge b (mm)", num(p.B)})
	case stress.CaseFourPartial:
		rows = append(rows,
			[2]string{"Short edge a (mm)", num(p.A)},
			[2]string{"Long edge b (mm)", num(p.B)},
			[2]string{"Load a1 (mm)", num(p.A1)},
			[2]string{"Load b1 (mm)", num(p.B1)})
	}
	mat, _ := p.Material()
	il := string(p.Interlayer)
	if il == "" {
		il = "sg"
	}
	return append(rows,
		[2]string{"Plies (mm)", plies(p.T)},
		[2]string{"Interlayer", il},
		[2]string{"Pressure w (N/mm2)", num(p.W)},
		[2]string{"E (N/mm2)", num(mat.E)},
		[2]string{"Poisson's ratio", num(mat.Nu)})
}

// Render writes doc as an A4 PDF.
func Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, 15, marginL)
	pdf.AddPage()

	qrPNG, err := qrcode.Encode(doc.ID, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("ref", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("ref", pageW-marginL-qrSize, 12, qrSize, qrSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, lineH, fmt.Sprintf("Project: %s", doc.Project))
	pdf.Ln(lineH)
	pdf.Cell(0, lineH, fmt.Sprintf("Author: %s", doc.Author))
	pdf.Ln(lineH)
	pdf.Cell(0, lineH, fmt.Sprintf("Date: %s", doc.Date.Format("2006-01-02")))
	pdf.Ln(lineH)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, lineH, fmt.Sprintf("Ref: %s", doc.ID))
	pdf.Ln(lineH * 2)

	table := func(title string, rows [][2]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, lineH+2, title)
		pdf.Ln(lineH + 2)
		pdf.SetFont("Helvetica", "", 10)
		for _, r := range rows {
			pdf.CellFormat(labelW, lineH, r[0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(valueW, lineH, r[1], "1", 1, "R", false, 0, "")
		}
		pdf.Ln(lineH)
	}

	table("Input", inputRows(doc.Panel))
	table("Result", [][2]string{
		{"Coefficient alpha", num(doc.Coefficients.Alpha)},
		{"Coefficient beta", num(doc.Coefficients.Beta)},
		{"Max stress sigma (N/mm2)", num(doc.Result.Sigma)},
		{"Max deflection delta (mm)", num(doc.Result.Delta)},
	})
	if c := doc.Check; c != nil {
		verdict := "OK"
		if !c.OK {
			verdict = "NG"
		}
		table("Allowable stress check", [][2]string{
			{"Glass type", string(c.GlassType)},
			{"Load term / location", fmt.Sprintf("%s / %s", c.Term, c.Location)},
			{"Allowable (N/mm2)", num(c.Allowable)},
			{"Utilization", num(c.Utilization)},
			{"Verdict", verdict},
		})
	}
	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineH, doc.Notes, "", "L", false)
	}

	return pdf.Output(w)
}
