package batch

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/units"
	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory input sheet
func workbook(tst *testing.T, rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			tst.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			tst.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		tst.Fatal(err)
	}
	return buf
}

var header = []interface{}{"config", "b", "h", "fc", "fy", "As1", "As2", "As_c1", "As_c2", "d1", "d2", "d'1", "d'2"}

func sample(tst *testing.T) []Row {
	buf := workbook(tst, [][]interface{}{
		header,
		{"singly-1", 12, 24, 4000, 60, 1.5},
		{"doubly-2t1c", 12, 24, 4000, 60, 3, "", 3},
		{"triply", 12, 24, 4000, 60, 1},
		{"singly-1", 12, "abc", 4000, 60, 1},
		{},
		{"doubly-2t2c", 12, 24, 4000, 60, 3, "", 3},
		{"singly-2", 12, 24, 4000, 60, 1, 2, "", "", 21, 19},
	})
	rows, err := ReadRows(buf)
	if err != nil {
		tst.Fatalf("ReadRows: %v", err)
	}
	return rows
}

func TestReadRows(tst *testing.T) {

	chk.PrintTitle("read input rows")

	rows := sample(tst)
	chk.Int(tst, "rows (blank skipped)", len(rows), 6)
	chk.Int(tst, "line of first row", rows[0].Line, 2)
	chk.Int(tst, "line after blank", rows[4].Line, 7)

	first := rows[0].Input
	chk.Float64(tst, "f'c entered in psi", 1e-15, first.Materials.Fc, 4000)
	chk.Float64(tst, "As", 1e-15, first.Tension[0].Area, 1.5)
	chk.Float64(tst, "depth unset", 1e-15, first.Tension[0].Depth, 0)

	split := rows[1].Input
	chk.Int(tst, "tension layers", len(split.Tension), 2)
	chk.Float64(tst, "split As1", 1e-15, split.Tension[0].Area, 1.5)
	chk.Float64(tst, "split As2", 1e-15, split.Tension[1].Area, 1.5)
	chk.Float64(tst, "As'", 1e-15, split.Compression[0].Area, 3)

	if !errors.Is(rows[2].Err, beam.ErrInvalidInput) {
		tst.Errorf("unknown config: %v", rows[2].Err)
	}
	var ie *beam.InputError
	if !errors.As(rows[3].Err, &ie) || ie.Field != "height" {
		tst.Errorf("bad number: %v", rows[3].Err)
	}

	explicit := rows[5].Input
	chk.Float64(tst, "As2", 1e-15, explicit.Tension[1].Area, 2)
	chk.Float64(tst, "d1", 1e-15, explicit.Tension[0].Depth, 21)
	chk.Float64(tst, "d2", 1e-15, explicit.Tension[1].Depth, 19)
}

func TestReadRowsEmpty(tst *testing.T) {

	chk.PrintTitle("empty and unreadable workbooks")

	if _, err := ReadRows(workbook(tst, [][]interface{}{header})); !errors.Is(err, ErrEmptySheet) {
		tst.Errorf("header only: %v", err)
	}
	if _, err := ReadRows(bytes.NewBufferString("not a workbook")); err == nil {
		tst.Errorf("expected an error for garbage input")
	}
}

func TestRun(tst *testing.T) {

	chk.PrintTitle("solve rows independently")

	out := Run(sample(tst), units.US, false)
	chk.Int(tst, "outcomes", len(out), 6)

	chk.Float64(tst, "singly Mn kip-in", 1e-4, out[0].Result.Mn, 1835.735294)
	chk.String(tst, out[0].Config, "singly-1")
	chk.Float64(tst, "2T1C Mn kip-ft", 0.01, units.US.Moment(out[1].Result.Mn), 280.324)
	if out[2].Err == nil || out[3].Err == nil {
		tst.Errorf("parse errors not carried: %v, %v", out[2].Err, out[3].Err)
	}
	chk.String(tst, out[2].Config, "")

	// non-convergence is a result, not an error, unless strict
	if out[4].Err != nil || out[4].Result.Converged {
		tst.Errorf("2T2C: err=%v converged=%v", out[4].Err, out[4].Result.Converged)
	}
	strict := Run(sample(tst), units.US, true)
	if !errors.Is(strict[4].Err, beam.ErrNonConvergence) || strict[4].Result == nil {
		tst.Errorf("strict 2T2C: %v", strict[4].Err)
	}
	if strict[0].Err != nil {
		tst.Errorf("strict singly: %v", strict[0].Err)
	}
}

func TestWrite(tst *testing.T) {

	chk.PrintTitle("write results workbook")

	out := Run(sample(tst), units.US, true)

	var buf bytes.Buffer
	if err := Write(&buf, out, units.US); err != nil {
		tst.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		tst.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	chk.String(tst, f.GetSheetName(0), ResultsSheet)
	rows, err := f.GetRows(ResultsSheet)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Int(tst, "rows", len(rows), len(out)+1)
	chk.String(tst, rows[0][11], "Mn (kip-ft)")

	mn, err := strconv.ParseFloat(rows[1][11], 64)
	if err != nil {
		tst.Fatalf("Mn cell %q: %v", rows[1][11], err)
	}
	chk.Float64(tst, "Mn kip-ft", 1e-6, mn, 152.977941)
	chk.String(tst, rows[1][13], "Tension-controlled")

	// failed rows carry their message in the last column
	errCol := len(rows[0]) - 1
	if len(rows[3]) <= errCol || rows[3][errCol] == "" {
		tst.Errorf("error row: %q", rows[3])
	}
	if len(rows[5]) <= errCol || rows[5][errCol] == "" {
		tst.Errorf("strict non-converged row: %q", rows[5])
	}
}
