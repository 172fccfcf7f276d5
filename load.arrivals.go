package bellhop

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Arrival is one beam's contribution to the received signal at one
// (source depth, receiver depth, receiver range) geometry.
type Arrival struct {
	SourceDepthNdx       int
	ReceiverDepthNdx     int
	ReceiverRangeNdx     int
	ArrivalNumber        int
	SourceDepth          float64 // [m]
	ReceiverDepth        float64 // [m]
	ReceiverRange        float64 // [m]
	Amplitude            complex128
	TimeOfArrival        float64    // [s], real part of the complex travel time
	ComplexTimeOfArrival complex128 // [s]
	AngleOfDeparture     float64    // [deg]
	AngleOfArrival       float64    // [deg]
	SurfaceBounces       int
	BottomBounces        int
}

// ReadArrivals decodes an arrivals (.arr) file: a header of frequency and
// source/receiver coordinates, then per source depth one count-prefixed
// record block per (receiver depth, receiver range) pair.
func ReadArrivals(base string) ([]Arrival, error) {
	fp := base + ".arr"
	s, err := newScanner(fp)
	if err != nil {
		return nil, err
	}

	hdr, err := s.next()
	if err != nil {
		return nil, err
	}
	if !strings.Contains(hdr, "2D") {
		return nil, &FormatError{File: fp,
			Msg: fmt.Sprintf("unsupported arrivals format marker %q (expecting 2D)", strings.TrimSpace(hdr))}
	}

	ln, err := s.next()
	if err != nil {
		return nil, err
	}
	freqv, err := parseFloats(fp, ln, 1)
	if err != nil {
		return nil, err
	}
	freq := freqv[0]

	sd, err := s.readCountedCoords("source depth")
	if err != nil {
		return nil, err
	}
	rd, err := s.readCountedCoords("receiver depth")
	if err != nil {
		return nil, err
	}
	rr, err := s.readCountedCoords("receiver range")
	if err != nil {
		return nil, err
	}

	var arrivals []Arrival
	for j := range sd {
		// one source-angle line precedes each source depth block
		if _, err := s.next(); err != nil {
			return nil, err
		}
		for k := range rd {
			for m := range rr {
				ln, err := s.next()
				if err != nil {
					return nil, err
				}
				count, err := parseInt(fp, ln)
				if err != nil {
					return nil, err
				}
				for n := 0; n < count; n++ {
					ln, err := s.next()
					if err != nil {
						return nil, err
					}
					v, err := parseFloats(fp, ln, 8)
					if err != nil {
						return nil, err
					}
					mag, phase, tre, tim := v[0], v[1], v[2], v[3]
					// amplitude = mag * exp(-i*(phase_rad + 2*pi*f*(t_re + i*t_im)))
					inner := complex(phase*math.Pi/180+2*math.Pi*freq*tre, 2*math.Pi*freq*tim)
					arrivals = append(arrivals, Arrival{
						SourceDepthNdx:   j,
						ReceiverDepthNdx: k,
						ReceiverRangeNdx: m,
						ArrivalNumber:    n,
						SourceDepth:      sd[j],
						ReceiverDepth:    rd[k],
						ReceiverRange:    rr[m],
						Amplitude:            complex(mag, 0) * cmplx.Exp(complex(0, -1)*inner),
						TimeOfArrival:        tre,
						ComplexTimeOfArrival: complex(tre, tim),
						AngleOfDeparture:     v[4],
						AngleOfArrival:       v[5],
						SurfaceBounces:       int(v[6]),
						BottomBounces:        int(v[7]),
					})
				}
			}
		}
	}
	return arrivals, nil
}

// readCountedCoords parses a "count v1 v2 ..." header line where the values
// may continue on the following line.
func (s *scanner) readCountedCoords(what string) ([]float64, error) {
	ln, err := s.next()
	if err != nil {
		return nil, err
	}
	v, err := parseFloats(s.fp, ln, 1)
	if err != nil {
		return nil, err
	}
	n := int(v[0])
	vals := v[1:]
	for len(vals) < n {
		ln, err := s.next()
		if err != nil {
			return nil, err
		}
		more, err := parseFloats(s.fp, ln, 0)
		if err != nil {
			return nil, err
		}
		vals = append(vals, more...)
	}
	if len(vals) != n {
		return nil, &FormatError{File: s.fp,
			Msg: fmt.Sprintf("expected %d %s values, found %d", n, what, len(vals))}
	}
	return vals, nil
}

// ImpulseResponse places each arrival's complex amplitude at its sample
// index for the given sampling rate (Hz). With absTime false, time zero is
// the earliest arrival.
func ImpulseResponse(arrivals []Arrival, fs float64, absTime bool) []complex128 {
	if len(arrivals) == 0 {
		return nil
	}
	t0 := 0.0
	if !absTime {
		t0 = arrivals[0].TimeOfArrival
		for _, a := range arrivals[1:] {
			if a.TimeOfArrival < t0 {
				t0 = a.TimeOfArrival
			}
		}
	}
	tmax := arrivals[0].TimeOfArrival
	for _, a := range arrivals[1:] {
		if a.TimeOfArrival > tmax {
			tmax = a.TimeOfArrival
		}
	}
	ir := make([]complex128, int(math.Ceil((tmax-t0)*fs))+1)
	for _, a := range arrivals {
		ir[int(math.Round((a.TimeOfArrival-t0)*fs))] = a.Amplitude
	}
	return ir
}
