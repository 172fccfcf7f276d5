package bellhop

import (
	"fmt"

	"github.com/maseology/mmio"
)

// Reflection coefficient (.brc/.trc) files: a point count then
// (angle deg, magnitude, phase deg) triples, magnitude in [0,1].

// WriteReflCoeff writes a reflection coefficient table.
func WriteReflCoeff(fp string, rc [][3]float64) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("WriteReflCoeff %s: %v", fp, err)
	}
	defer tw.Close()
	tw.WriteLine(fmt.Sprintf("%d", len(rc)))
	for _, p := range rc {
		tw.WriteLine(ftoa(p[0]) + "  " + ftoa(p[1]) + "  " + ftoa(p[2]))
	}
	return nil
}

// ReadReflCoeff reads a reflection coefficient table.
func ReadReflCoeff(fp string) ([][3]float64, error) {
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
			Msg: fmt.Sprintf("expected %d reflection coefficient points, found %d", n, len(lns)-1)}
	}
	rc := make([][3]float64, n)
	for i := 0; i < n; i++ {
		v, err := parseFloats(fp, lns[i+1], 3)
		if err != nil {
			return nil, err
		}
		rc[i] = [3]float64{v[0], v[1], v[2]}
	}
	return rc, nil
}
