package bellhop

import (
	"fmt"

	"github.com/maseology/mmio"
)

// Source beam pattern (.sbp) files: a point count then (angle deg, level dB)
// pairs.

// WriteSBP writes a source directionality file.
func WriteSBP(fp string, dir [][2]float64) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("WriteSBP %s: %v", fp, err)
	}
	defer tw.Close()
	tw.WriteLine(fmt.Sprintf("%d", len(dir)))
	for _, p := range dir {
		tw.WriteLine(ftoa(p[0]) + "  " + ftoa(p[1]))
	}
	return nil
}

// ReadSBP reads a source directionality file.
func ReadSBP(fp string) ([][2]float64, error) {
	lns, err := readTextLines(fp)
	if err != nil {
		return nil, err
	}
	lns = dataLines(lns)
	if len(lns) < 1 {
		return nil, &FormatError{File: fp, Msg: "truncated file"}
	}
	n, err := parseInt(fp, lns[0])
	if err != nil {
		return nil, err
	}
	if len(lns)-1 < n {
		return nil, &FormatError{File: fp,
			Msg: fmt.Sprintf("expected %d points, found %d", n, len(lns)-1)}
	}
	dir := make([][2]float64, n)
	for i := 0; i < n; i++ {
		v, err := parseFloats(fp, lns[i+1], 2)
		if err != nil {
			return nil, err
		}
		dir[i] = [2]float64{v[0], v[1]}
	}
	return dir, nil
}
