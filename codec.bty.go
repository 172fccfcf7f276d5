package bellhop

import (
	"fmt"

	"github.com/maseology/mmio"
)

// Bathymetry (.bty) and altimetry (.ati) files share one grammar: a quoted
// interpolation character, a point count, then one (range km, depth/height m)
// pair per line. Ranges are m in memory.

// WriteBTY writes a bathymetry file.
func WriteBTY(fp string, pts [][2]float64, interp string) error {
	return writeBtyAti(fp, pts, interp)
}

// WriteATI writes an altimetry file.
func WriteATI(fp string, pts [][2]float64, interp string) error {
	return writeBtyAti(fp, pts, interp)
}

func writeBtyAti(fp string, pts [][2]float64, interp string) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("writeBtyAti %s: %v", fp, err)
	}
	defer tw.Close()
	tw.WriteLine("'" + string(btyInterpOpts.encode(interp)) + "'")
	tw.WriteLine(fmt.Sprintf("%d", len(pts)))
	for _, p := range pts {
		tw.WriteLine(ftoa(p[0]/1000) + " " + ftoa(p[1])) // km on the wire
	}
	return nil
}

// ReadBTY reads a bathymetry file, returning (range m, depth m) pairs and
// the interpolation tag.
func ReadBTY(fp string) ([][2]float64, string, error) {
	return readBtyAti(fp)
}

// ReadATI reads an altimetry file.
func ReadATI(fp string) ([][2]float64, string, error) {
	return readBtyAti(fp)
}

func readBtyAti(fp string) ([][2]float64, string, error) {
	lns, err := readTextLines(fp)
	if err != nil {
		return nil, "", err
	}
	lns = dataLines(lns)
	if len(lns) < 2 {
		return nil, "", &FormatError{File: fp, Msg: "truncated file"}
	}
	c := unquote(lns[0])
	if len(c) != 1 {
		return nil, "", &FormatError{File: fp, Msg: fmt.Sprintf("expected a quoted interpolation character, found %q", lns[0])}
	}
	interp, err := btyInterpOpts.decode(c[0])
	if err != nil {
		return nil, "", &FormatError{File: fp, Msg: err.Error()}
	}
	n, err := parseInt(fp, lns[1])
	if err != nil {
		return nil, "", err
	}
	if len(lns)-2 < n {
		return nil, "", &FormatError{File: fp,
			Msg: fmt.Sprintf("expected %d points, found %d", n, len(lns)-2)}
	}
	pts := make([][2]float64, n)
	for i := 0; i < n; i++ {
		v, err := parseFloats(fp, lns[i+2], 2)
		if err != nil {
			return nil, "", err
		}
		pts[i] = [2]float64{v[0] * 1000, v[1]} // km -> m
	}
	return pts, interp, nil
}

// dataLines drops blank and comment-only lines.
func dataLines(lns []string) []string {
	o := lns[:0:0]
	for _, ln := range lns {
		if stripComment(ln) != "" {
			o = append(o, ln)
		}
	}
	return o
}
