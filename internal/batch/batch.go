// Package batch solves a spreadsheet of beam sections, one per row.
package batch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/report"
	"github.com/alexiusacademia/rcmn/internal/units"
	"github.com/xuri/excelize/v2"
)

// Input sheet columns
const (
	colConfig = iota
	colWidth
	colHeight
	colFc
	colFy
	colAs1
	colAs2
	colAsc1
	colAsc2
	colD1
	colD2
	colDp1
	colDp2
)

// ResultsSheet is the sheet Write puts results on
const ResultsSheet = "Results"

var ErrEmptySheet = errors.New("sheet has no data rows")

// Row is one input row, in the entry units of the sheet
type Row struct {
	Line  int // 1-based row number in the sheet
	Input beam.Input
	Err   error
}

// Outcome is the solve result of one row
type Outcome struct {
	Line   int
	Config string // empty when the row did not parse
	Result *beam.Result
	Err    error
}

// ReadRows reads the first sheet of a workbook. The first row is a header.
// Rows that fail to parse are returned with Err set.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		out = append(out, Row{Line: i + 1, Input: in, Err: err})
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func parseRow(row []string) (beam.Input, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	num := func(i int, name string) (float64, error) {
		s := cell(i)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &beam.InputError{Field: name, Reason: fmt.Sprintf("%q is not a number", s)}
		}
		return v, nil
	}

	config, err := beam.ParseConfig(cell(colConfig))
	if err != nil {
		return beam.Input{}, err
	}

	var (
		vals = make([]float64, colDp2+1)
		name = []string{"config", "width", "height", "f'c", "fy", "As1", "As2", "As'1", "As'2", "d1", "d2", "d'1", "d'2"}
	)
	for i := colWidth; i <= colDp2; i++ {
		if vals[i], err = num(i, name[i]); err != nil {
			return beam.Input{}, err
		}
	}

	in := beam.Input{
		Config:    config,
		Geometry:  beam.Geometry{Width: vals[colWidth], Height: vals[colHeight]},
		Materials: beam.Materials{Fc: vals[colFc], Fy: vals[colFy]},
	}
	in.Tension = layers(config.TensionLayers(),
		[2]float64{vals[colAs1], vals[colD1]},
		[2]float64{vals[colAs2], vals[colD2]},
		cell(colAs2) == "")
	in.Compression = layers(config.CompressionLayers(),
		[2]float64{vals[colAsc1], vals[colDp1]},
		[2]float64{vals[colAsc2], vals[colDp2]},
		cell(colAsc2) == "")
	return in, nil
}

// layers builds n layers from (area, depth) pairs. With two layers and no
// second area, the first area is split evenly.
func layers(n int, first, second [2]float64, split bool) []beam.Layer {
	switch n {
	case 0:
		return nil
	case 1:
		return []beam.Layer{{Area: first[0], Depth: first[1]}}
	}
	if split {
		first[0] /= 2
		second[0] = first[0]
	}
	return []beam.Layer{
		{Area: first[0], Depth: first[1]},
		{Area: second[0], Depth: second[1]},
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Run solves every row independently. Rows entered in sys are converted to
// the solver's units and unset depths take the standard cover. With strict
// set, a result that did not converge is reported as an error.
func Run(rows []Row, sys units.System, strict bool) []Outcome {
	out := make([]Outcome, 0, len(rows))
	for _, row := range rows {
		o := Outcome{Line: row.Line, Err: row.Err}
		if o.Err == nil {
			o.Config = row.Input.Config.String()
			in := sys.ToCore(row.Input).WithDefaultDepths()
			o.Result, o.Err = beam.Solve(in)
			if o.Err == nil && strict {
				o.Err = o.Result.Check()
			}
		}
		if o.Err != nil {
			slog.Warn("batch row failed", "row", row.Line, "err", o.Err)
		}
		out = append(out, o)
	}
	return out
}

// Write saves outcomes as a workbook with a single Results sheet.
func Write(w io.Writer, outcomes []Outcome, sys units.System) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return err
	}

	lu, fu, mu := sys.LengthUnit(), sys.ForceUnit(), sys.MomentUnit()
	header := []interface{}{
		"row", "config",
		"c (" + lu + ")", "a (" + lu + ")", "d (" + lu + ")",
		"beta1", "eps_t", "phi",
		"Cc (" + fu + ")", "Cs (" + fu + ")", "T (" + fu + ")",
		"Mn (" + mu + ")", "phiMn (" + mu + ")",
		"status", "iterations", "converged", "error",
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return err
	}

	for i, o := range outcomes {
		var row []interface{}
		if o.Err != nil && o.Result == nil {
			row = []interface{}{o.Line, o.Config}
			for range len(header) - 3 {
				row = append(row, nil)
			}
			row = append(row, o.Err.Error())
		} else {
			r := sys.Convert(o.Result)
			msg := ""
			if o.Err != nil {
				msg = o.Err.Error()
			}
			row = []interface{}{
				o.Line, r.Config,
				r.C, r.A, r.D,
				r.Beta1, r.EpsilonT, r.Phi,
				r.Cc, r.Cs, r.T,
				r.Mn, r.PhiMn,
				report.Status(o.Result), r.Iterations, r.Converged, msg,
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
