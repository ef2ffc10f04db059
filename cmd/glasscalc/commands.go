package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/siknue/gpg-back/internal/calc/allowable"
	"github.com/siknue/gpg-back/internal/calc/autodesign"
	"github.com/siknue/gpg-back/internal/calc/batch"
	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/glass"
	"github.com/siknue/gpg-back/internal/calc/importer"
	"github.com/siknue/gpg-back/internal/calc/plate"
	"github.com/siknue/gpg-back/internal/calc/report"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/spf13/cobra"
)

// panelFlags are shared by every command that takes a single panel.
type panelFlags struct {
	d, free, fix, a, b, a1, b1 float64
	plies                      string
	w, e, nu                   float64
	interlayer                 string
	glassType, term, location  string
}

func (f *panelFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.d, "d", 0, "Diameter D (mm), circular panels")
	fl.Float64Var(&f.free, "free", 0, "Free edge length (mm), two/three-side panels")
	fl.Float64Var(&f.fix, "fix", 0, "Fixed edge length (mm), two/three-side panels")
	fl.Float64VarP(&f.a, "a", "a", 0, "Short edge a (mm), four-side panels")
	fl.Float64VarP(&f.b, "b", "b", 0, "Long edge b (mm), four-side panels")
	fl.Float64Var(&f.a1, "a1", 0, "Load footprint a1 (mm), partial load")
	fl.Float64Var(&f.b1, "b1", 0, "Load footprint b1 (mm), partial load")
	fl.StringVarP(&f.plies, "t", "t", "", `Ply thicknesses (mm), e.g. "6+6" [required]`)
	fl.Float64VarP(&f.w, "w", "w", 0, "Uniform pressure w (N/mm2) [required]")
	fl.Float64Var(&f.e, "e", glass.DefaultE, "Young's modulus E (N/mm2)")
	fl.Float64Var(&f.nu, "nu", glass.DefaultNu, "Poisson's ratio")
	fl.StringVar(&f.interlayer, "interlayer", string(glass.InterlayerSG), "Interlayer: sg, pvb or eva")
	fl.StringVarP(&f.glassType, "glass", "g", "", "Glass type for the allowable stress check (float, wired, wirePatterned, tempered, double)")
	fl.StringVar(&f.term, "term", string(allowable.ShortTerm), "Load term: short or long")
	fl.StringVar(&f.location, "location", "", "Stress location: inplane or edge (default depends on case)")
}

func (f *panelFlags) panel(c stress.Case) (stress.Panel, error) {
	var plies []float64
	if f.plies != "" {
		var err error
		if plies, err = importer.ParsePlies(f.plies); err != nil {
			return stress.Panel{}, err
		}
	}
	e, nu := f.e, f.nu
	return stress.Panel{
		Case: c,
		D:    f.d,
		Free: f.free,
		Fix:  f.fix,
		A:    f.a,
		B:    f.b,
		A1:   f.a1,
		B1:   f.b1,
		Glazing: stress.Glazing{
			T:          plies,
			W:          f.w,
			E:          &e,
			Nu:         &nu,
			Interlayer: glass.Interlayer(f.interlayer),
		},
	}, nil
}

func (f *panelFlags) checkInput(c stress.Case) (check.Input, error) {
	p, err := f.panel(c)
	if err != nil {
		return check.Input{}, err
	}
	return check.Input{
		Panel:     p,
		GlassType: f.glassType,
		Term:      allowable.Term(f.term),
		Location:  allowable.Location(f.location),
	}, nil
}

func newRootCmd() *cobra.Command {
	var legacy bool
	root := &cobra.Command{
		Use:           "glasscalc",
		Short:         "Stress and deflection of glass panels under lateral pressure",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&legacy, "legacy-partial", false, "Index partial-load columns by a1/a (legacy tables)")
	calculator := func() stress.Calculator {
		if legacy {
			return stress.Calculator{PartialIndexing: plate.IndexLegacy}
		}
		return stress.Calculator{}
	}

	root.AddCommand(
		newCalcCmd(calculator),
		newDesignCmd(calculator),
		newAllowableCmd(),
		newBatchCmd(calculator),
		newReportCmd(calculator),
	)
	return root
}

func caseArg(args []string) (stress.Case, error) {
	return stress.ParseCase(args[0])
}

func caseNames() string {
	names := make([]string, 0, len(stress.Cases()))
	for _, c := range stress.Cases() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func newCalcCmd(calculator func() stress.Calculator) *cobra.Command {
	var f panelFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "calc <case>",
		Short: "Maximum stress and deflection of one panel",
		Long: `Compute the maximum bending stress (N/mm2) and deflection (mm) of a glass
panel. Cases: ` + caseNames() + `.

Examples:
  glasscalc calc four-uniform -a 1000 -b 1500 -t 6+6 -w 0.002
  glasscalc calc two-uniform --free 1200 --fix 900 -t 8 -w 0.0015 -g tempered`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := caseArg(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f.glassType != "" {
				in, err := f.checkInput(c)
				if err != nil {
					return err
				}
				res, err := check.Checker{Calc: calculator()}.Check(in)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, res)
				}
				printCheck(out, res)
				return nil
			}

			p, err := f.panel(c)
			if err != nil {
				return err
			}
			req, err := p.Request()
			if err != nil {
				return err
			}
			res, err := calculator().Calculate(req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, res)
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "sigma:\t%.2f N/mm2\n", res.Sigma)
			fmt.Fprintf(w, "delta:\t%.2f mm\n", res.Delta)
			return w.Flush()
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.MarkFlagRequired("t")
	cmd.MarkFlagRequired("w")
	return cmd
}

func printCheck(out io.Writer, res check.Result) {
	verdict := "OK"
	if !res.OK {
		verdict = "NG"
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "sigma:\t%.2f N/mm2\n", res.Sigma)
	fmt.Fprintf(w, "delta:\t%.2f mm\n", res.Delta)
	fmt.Fprintf(w, "allowable (%s, %s, %s):\t%.1f N/mm2\n", res.GlassType, res.Term, res.Location, res.Allowable)
	fmt.Fprintf(w, "utilization:\t%.2f\n", res.Utilization)
	fmt.Fprintf(w, "verdict:\t%s\n", verdict)
	w.Flush()
}

func newDesignCmd(calculator func() stress.Calculator) *cobra.Command {
	var f panelFlags
	var limit float64
	cmd := &cobra.Command{
		Use:   "design <case>",
		Short: "Thinnest standard monolithic pane passing the allowable stress check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := caseArg(args)
			if err != nil {
				return err
			}
			in, err := f.checkInput(c)
			if err != nil {
				return err
			}
			res, err := autodesign.Design(check.Checker{Calc: calculator()}, autodesign.Input{Input: in, DeflectionLimitMM: limit})
			out := cmd.OutOrStdout()
			for _, r := range res.Rejected {
				fmt.Fprintf(out, "  %g mm rejected: %s\n", r.Thickness, r.Reason)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "thickness: %g mm\n", res.Thickness)
			printCheck(out, res.Check)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().Float64Var(&limit, "max-deflection", 0, "Deflection limit (mm), 0 for none")
	cmd.MarkFlagRequired("w")
	cmd.MarkFlagRequired("glass")
	return cmd
}

func newAllowableCmd() *cobra.Command {
	var glassType string
	var t float64
	cmd := &cobra.Command{
		Use:   "allowable",
		Short: "Fracture strength and allowable stresses for a glass type and thickness",
		RunE: func(cmd *cobra.Command, args []string) error {
			gt, err := allowable.ParseGlassType(glassType)
			if err != nil {
				return err
			}
			rec, err := allowable.Lookup(gt, t)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tinplane\tedge")
			fmt.Fprintf(w, "fracture strength\t%.1f\t%.1f\n", rec.Fracture.Inplane, rec.Fracture.Edge)
			fmt.Fprintf(w, "short term\t%.1f\t%.1f\n", rec.ShortTerm.Inplane, rec.ShortTerm.Edge)
			fmt.Fprintf(w, "long term\t%.1f\t%.1f\n", rec.LongTerm.Inplane, rec.LongTerm.Edge)
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&glassType, "glass", "g", "", "Glass type [required]")
	cmd.Flags().Float64VarP(&t, "t", "t", 0, "Thickness (mm) [required]")
	cmd.MarkFlagRequired("glass")
	cmd.MarkFlagRequired("t")
	return cmd
}

func newBatchCmd(calculator func() stress.Calculator) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <panels.xlsx>",
		Short: "Evaluate every panel listed in an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			imp := importer.ImportExcel(file)
			out := cmd.OutOrStdout()
			for _, msg := range imp.Warnings {
				fmt.Fprintln(out, "warning:", msg)
			}
			for _, msg := range imp.Errors {
				fmt.Fprintln(out, "error:", msg)
			}
			if len(imp.Rows) == 0 {
				return fmt.Errorf("no panels in %s", args[0])
			}
			res, err := batch.Evaluate(calculator(), imp.Panels())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "label\tcase\tsigma\tdelta\terror")
			for i, row := range imp.Rows {
				r := res.Items[i]
				if r.OK() {
					fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t\n", row.Label, row.Panel.Case, r.Sigma, r.Delta)
				} else {
					fmt.Fprintf(w, "%s\t%s\t\t\t%s\n", row.Label, row.Panel.Case, r.Error)
				}
			}
			fmt.Fprintf(w, "\n%d panels, %d failed\n", res.Count, res.Failed)
			return w.Flush()
		},
	}
}

func newReportCmd(calculator func() stress.Calculator) *cobra.Command {
	var f panelFlags
	var in report.Input
	var output string
	cmd := &cobra.Command{
		Use:   "report <case>",
		Short: "Write a PDF calculation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := caseArg(args)
			if err != nil {
				return err
			}
			in.Input, err = f.checkInput(c)
			if err != nil {
				return err
			}
			doc, err := report.Build(check.Checker{Calc: calculator()}, in)
			if err != nil {
				return err
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := report.Render(file, doc); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (ref %s)\n", output, doc.ID)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "report.pdf", "Output file")
	cmd.Flags().StringVar(&in.Project, "project", "", "Project name")
	cmd.Flags().StringVar(&in.Author, "author", "", "Author")
	cmd.Flags().StringVar(&in.Title, "title", "", "Report title")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-text notes")
	cmd.MarkFlagRequired("t")
	cmd.MarkFlagRequired("w")
	return cmd
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
