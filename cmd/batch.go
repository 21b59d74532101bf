package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/rcmn/internal/batch"
	"github.com/spf13/cobra"
)

var (
	batchOutFile string
	batchStrict  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE.xlsx",
	Short: "Compute the capacity of every beam in a spreadsheet",
	Long: `Read beams from the first sheet of an Excel workbook and compute the
moment capacity of each one. The first row is a header; the columns are:

  config, b, h, fc, fy, As1, As2, As_c1, As_c2, d1, d2, d'1, d'2

Values are in the selected unit system (--units). A blank As2 or As_c2 on a
two-layer configuration splits As1 or As_c1 evenly, and blank depths follow
the standard cover. A row that fails does not stop the others.

Examples:
  rcmn batch beams.xlsx
  rcmn batch beams.xlsx --out results.xlsx --units si`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutFile, "out", "o", "", "Write results to this workbook")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "Report rows that do not converge as failures")
}

func runBatch(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	rows, err := batch.ReadRows(in)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	strict := cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict = batchStrict
	}
	sys := cfg.Units
	outcomes := batch.Run(rows, sys, strict)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     BATCH CAPACITY - %s\n", args[0])
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Row\tConfig\tc (%s)\tεt\tφ\tMn (%s)\tφMn (%s)\tNote\n", sys.LengthUnit(), sys.MomentUnit(), sys.MomentUnit())
	for _, o := range outcomes {
		if o.Result == nil {
			failed++
			fmt.Fprintf(w, "  %d\t%s\t-\t-\t-\t-\t-\t%v\n", o.Line, o.Config, o.Err)
			continue
		}
		r := sys.Convert(o.Result)
		note := "✓"
		if o.Err != nil {
			failed++
			note = o.Err.Error()
		} else if !r.Converged {
			note = "⚠ not converged"
		}
		fmt.Fprintf(w, "  %d\t%s\t%.3f\t%.5f\t%.3f\t%.2f\t%.2f\t%s\n",
			o.Line, r.Config, r.C, r.EpsilonT, r.Phi, r.Mn, r.PhiMn, note)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  %d rows, %d failed\n", len(outcomes), failed)
	fmt.Println()

	if batchOutFile != "" {
		out, err := os.Create(batchOutFile)
		if err != nil {
			return err
		}
		if err := batch.Write(out, outcomes, sys); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("Results written to: %s\n", batchOutFile)
	}
	return nil
}
