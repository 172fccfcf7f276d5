package bellhop

import (
	"fmt"

	"github.com/maseology/mmio"
)

// Range-dependent sound speed (.ssp) files: a profile count, a line of
// profile ranges (km, ascending), then one row per depth with one speed per
// profile column.

// WriteSSP writes the range-dependent table of a sound speed field.
func WriteSSP(fp string, ss *SoundSpeed) error {
	if ss.Kind != SSTable {
		return &ConfigError{Field: "soundspeed", Msg: "soundspeed is not a range-dependent table"}
	}
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("WriteSSP %s: %v", fp, err)
	}
	defer tw.Close()
	tw.WriteLine(fmt.Sprintf("%d", len(ss.Ranges)))
	ln := ""
	for j, r := range ss.Ranges {
		if j > 0 {
			ln += " "
		}
		ln += fmt.Sprintf("%0.6f", r/1000) // km on the wire
	}
	tw.WriteLine(ln)
	for _, row := range ss.Values {
		ln = ""
		for j, v := range row {
			if j > 0 {
				ln += " "
			}
			ln += fmt.Sprintf("%0.6f", v)
		}
		tw.WriteLine(ln)
	}
	return nil
}

// ReadSSP reads a sound speed file. A single-profile file decodes to a
// depth profile (depth coordinates are row indices; the true depths live in
// the companion .env file); a multi-profile file decodes to a table with
// ranges converted km to m.
func ReadSSP(fp string) (*SoundSpeed, error) {
	lns, err := readTextLines(fp)
	if err != nil {
		return nil, err
	}
	lns = dataLines(lns)
	if len(lns) < 2 {
		return nil, &FormatError{File: fp, Msg: "truncated file"}
	}
	n, err := parseInt(fp, lns[0])
	if err != nil {
		return nil, err
	}
	ranges, err := parseFloats(fp, lns[1], 0)
	if err != nil {
		return nil, err
	}
	if len(ranges) != n {
		return nil, &FormatError{File: fp,
			Msg: fmt.Sprintf("expected %d profile ranges, found %d", n, len(ranges))}
	}

	var rows [][]float64
	for _, ln := range lns[2:] {
		row, err := parseFloats(fp, ln, 0)
		if err != nil {
			return nil, err
		}
		if len(row) != n {
			return nil, &FormatError{File: fp,
				Msg: fmt.Sprintf("expected %d values per row, found %d", n, len(row))}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, &FormatError{File: fp, Msg: "no sound speed data found"}
	}

	if n == 1 {
		pts := make([][2]float64, len(rows))
		for i, row := range rows {
			pts[i] = [2]float64{float64(i), row[0]}
		}
		return ProfileSoundSpeed(pts), nil
	}

	for i := range ranges {
		ranges[i] *= 1000 // km -> m
	}
	depths := make([]float64, len(rows))
	for i := range depths {
		depths[i] = float64(i)
	}
	return TableSoundSpeed(ranges, depths, rows), nil
}
