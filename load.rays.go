package bellhop

import (
	"fmt"
	"strconv"
)

// Ray is the traced path of one launched beam.
type Ray struct {
	AngleOfDeparture float64 // [deg]
	SurfaceBounces   int
	BottomBounces    int
	Path             [][2]float64 // (range m, depth m)
}

// rayHeaderLines is the fixed header block of a .ray file (title, frequency,
// coordinate counts, type line).
const rayHeaderLines = 7

// ReadRays decodes a ray path (.ray) file: after the fixed header, each
// block is a departure-angle line, a point/surface-bounce/bottom-bounce
// count line, then the path coordinates.
func ReadRays(base string) ([]Ray, error) {
	fp := base + ".ray"
	s, err := newScanner(fp)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rayHeaderLines; i++ {
		if _, err := s.next(); err != nil {
			return nil, err
		}
	}

	var rays []Ray
	for {
		ln, ok := s.peek()
		if !ok {
			break
		}
		s.i++
		a, err := strconv.ParseFloat(stripComment(ln), 64)
		if err != nil {
			return nil, &FormatError{File: fp, Msg: fmt.Sprintf("malformed departure angle %q", ln)}
		}
		ln, err = s.next()
		if err != nil {
			return nil, err
		}
		v, err := parseFloats(fp, ln, 3)
		if err != nil {
			return nil, err
		}
		npts := int(v[0])
		ray := Ray{AngleOfDeparture: a, SurfaceBounces: int(v[1]), BottomBounces: int(v[2]),
			Path: make([][2]float64, npts)}
		for k := 0; k < npts; k++ {
			ln, err := s.next()
			if err != nil {
				return nil, &FormatError{File: fp,
					Msg: fmt.Sprintf("expected %d ray points, found %d", npts, k)}
			}
			p, err := parseFloats(fp, ln, 2)
			if err != nil {
				return nil, err
			}
			ray.Path[k] = [2]float64{p[0], p[1]}
		}
		rays = append(rays, ray)
	}
	return rays, nil
}
