package bellhop

import (
	"fmt"
	"strconv"
	"strings"
)

// scanner walks the data lines of a text file.
type scanner struct {
	fp  string
	lns []string
	i   int
}

func newScanner(fp string) (*scanner, error) {
	lns, err := readTextLines(fp)
	if err != nil {
		return nil, err
	}
	return &scanner{fp: fp, lns: dataLines(lns)}, nil
}

func (s *scanner) next() (string, error) {
	if s.i >= len(s.lns) {
		return "", &FormatError{File: s.fp, Msg: "unexpected end of file"}
	}
	ln := s.lns[s.i]
	s.i++
	return ln, nil
}

func (s *scanner) peek() (string, bool) {
	if s.i >= len(s.lns) {
		return "", false
	}
	return s.lns[s.i], true
}

// ReadEnv decodes a .env file (and the .ati/.bty/.sbp side files its option
// characters call for) into an environment. The result carries the file's
// settings over the usual defaults and has not been finalized.
func ReadEnv(fname string) (*Environment, error) {
	base := strings.TrimSuffix(fname, ".env")
	fp := base + ".env"

	s, err := newScanner(fp)
	if err != nil {
		return nil, err
	}
	e := New()

	// title, frequency, media count
	ln, err := s.next()
	if err != nil {
		return nil, err
	}
	e.Name = unquote(ln)
	if err := s.nextFloats(1, func(v []float64) { e.Frequency = v[0] }); err != nil {
		return nil, err
	}
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	nmedia, err := parseInt(fp, ln)
	if err != nil {
		return nil, err
	}
	if nmedia != 1 {
		return nil, &FormatError{File: fp, Msg: fmt.Sprintf("only 1 medium is supported, found %d", nmedia)}
	}

	// top option string
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	topopt := unquote(ln)
	if len(topopt) < 3 {
		return nil, &FormatError{File: fp, Msg: fmt.Sprintf("top option string too short: %q", topopt)}
	}
	if e.SoundSpeedInterp, err = decodeAt(fp, interpOpts, topopt, 0); err != nil {
		return nil, err
	}
	if e.SurfaceBoundary, err = decodeAt(fp, boundaryOpts, topopt, 1); err != nil {
		return nil, err
	}
	if e.AttenuationUnits, err = decodeAt(fp, attUnitOpts, topopt, 2); err != nil {
		return nil, err
	}
	if e.VolumeAttenuation, err = decodeAt(fp, volAttOpts, topopt, 3); err != nil {
		return nil, err
	}
	if e.altimetryFlag, err = decodeAt(fp, surfFlagOpts, topopt, 4); err != nil {
		return nil, err
	}
	if e.singleBeamFlag, err = decodeAt(fp, singleBeamOpts, topopt, 5); err != nil {
		return nil, err
	}
	if e.altimetryFlag == FromFile {
		if e.Surface, e.SurfaceInterp, err = ReadATI(base + ".ati"); err != nil {
			return nil, err
		}
	}

	if e.VolumeAttenuation == FrancoisGarrison {
		err = s.nextFloats(4, func(v []float64) {
			e.FGSalinity, e.FGTemperature, e.FGpH, e.FGDepth = v[0], v[1], v[2], v[3]
		})
		if err != nil {
			return nil, err
		}
	}

	if e.SurfaceBoundary == AcoustoElastic {
		ln, err = s.next()
		if err != nil {
			return nil, err
		}
		v, err := parseFloats(fp, ln, 4)
		if err != nil {
			return nil, err
		}
		e.SurfaceDepth = v[0]
		e.SurfaceSoundSpeed = v[1]
		e.SurfaceSoundSpeedShear = v[2]
		e.SurfaceDensity = v[3] * 1000 // g/cm³ -> kg/m³
		if len(v) > 4 {
			e.SurfaceAttenuation = v[4]
		}
		if len(v) > 5 {
			e.SurfaceAttenuationShear = v[5]
		}
	}

	// depth grid spec
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	v, err := parseFloats(fp, ln, 3)
	if err != nil {
		return nil, err
	}
	e.DepthNpts = int(v[0])
	e.DepthSigmaZ = v[1]
	e.DepthMax = v[2]
	e.Depth = v[2]

	if err := s.readSSPPoints(e); err != nil {
		return nil, err
	}

	// bottom boundary
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	flds := splitData(ln)
	if len(flds) < 2 {
		return nil, &FormatError{File: fp, Msg: fmt.Sprintf("malformed bottom boundary line %q", ln)}
	}
	botopt := unquote(flds[0])
	if len(botopt) < 1 {
		return nil, &FormatError{File: fp, Msg: fmt.Sprintf("malformed bottom option string %q", flds[0])}
	}
	if e.BottomBoundary, err = decodeAt(fp, boundaryOpts, botopt, 0); err != nil {
		return nil, err
	}
	if e.bathymetryFlag, err = decodeAt(fp, botFlagOpts, botopt, 1); err != nil {
		return nil, err
	}
	if e.bathymetryFlag == FromFile {
		if e.Bathymetry, e.DepthInterp, err = ReadBTY(base + ".bty"); err != nil {
			return nil, err
		}
	}
	if e.BottomRoughness, err = strconv.ParseFloat(flds[1], 64); err != nil {
		return nil, &FormatError{File: fp, Msg: fmt.Sprintf("malformed bottom roughness %q", flds[1])}
	}

	if e.BottomBoundary == AcoustoElastic {
		ln, err = s.next()
		if err != nil {
			return nil, err
		}
		v, err := parseFloats(fp, ln, 2)
		if err != nil {
			return nil, err
		}
		e.BottomSoundSpeed = v[1]
		if len(v) > 2 {
			e.BottomSoundSpeedShear = v[2]
		}
		if len(v) > 3 {
			e.BottomDensity = v[3] * 1000 // g/cm³ -> kg/m³
		}
		if len(v) > 4 {
			e.BottomAttenuation = v[4]
		}
		if len(v) > 5 {
			e.BottomAttenuationShear = v[5]
		}
	}

	// source/receiver geometry
	if e.SourceDepth, err = s.readVector(1); err != nil {
		return nil, err
	}
	if e.ReceiverDepth, err = s.readVector(1); err != nil {
		return nil, err
	}
	if e.ReceiverRange, err = s.readVector(1000); err != nil { // km -> m
		return nil, err
	}

	// run type
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	runtype := unquote(ln)
	if len(runtype) < 1 {
		return nil, &FormatError{File: fp, Msg: fmt.Sprintf("malformed run type %q", ln)}
	}
	if e.Task, err = decodeAt(fp, taskOpts, runtype, 0); err != nil {
		return nil, err
	}
	if len(runtype) > 1 {
		if e.BeamType, err = decodeAt(fp, beamOpts, runtype, 1); err != nil {
			return nil, err
		}
	}
	if len(runtype) > 2 {
		if e.sbpFlag, err = decodeAt(fp, sbpOpts, runtype, 2); err != nil {
			return nil, err
		}
	}
	if len(runtype) > 3 {
		if e.SourceType, err = decodeAt(fp, sourceOpts, runtype, 3); err != nil {
			return nil, err
		}
	}
	if len(runtype) > 4 {
		if e.GridType, err = decodeAt(fp, gridOpts, runtype, 4); err != nil {
			return nil, err
		}
	}
	if e.sbpFlag == FromFile {
		if e.SourceDirectionality, err = ReadSBP(base + ".sbp"); err != nil {
			return nil, err
		}
	}

	// beam count, angle bounds, tracing box
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	if v, err = parseFloats(fp, ln, 1); err != nil {
		return nil, err
	}
	e.BeamNum = int(v[0])
	if len(v) > 1 {
		e.SingleBeamIndex = int(v[1])
	}

	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	if v, err = parseFloats(fp, ln, 2); err != nil {
		return nil, err
	}
	e.BeamAngleMin, e.BeamAngleMax = v[0], v[1]

	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	if v, err = parseFloats(fp, ln, 3); err != nil {
		return nil, err
	}
	e.StepSize = v[0]
	e.BoxDepth = v[1]
	e.BoxRange = v[2] * 1000 // km -> m

	return e, nil
}

// nextFloats parses at least n floats from the next line into assign.
func (s *scanner) nextFloats(n int, assign func([]float64)) error {
	ln, err := s.next()
	if err != nil {
		return err
	}
	v, err := parseFloats(s.fp, ln, n)
	if err != nil {
		return err
	}
	assign(v)
	return nil
}

// readSSPPoints consumes (depth, speed) lines up to the quoted bottom
// boundary line. A missing speed repeats the previous one, per the engine's
// value-carryforward rule.
func (s *scanner) readSSPPoints(e *Environment) error {
	var pts [][2]float64
	prev := 1500.0
	for {
		ln, ok := s.peek()
		if !ok {
			return &FormatError{File: s.fp, Msg: "unexpected end of file in soundspeed profile"}
		}
		if strings.HasPrefix(strings.TrimSpace(ln), "'") {
			break
		}
		s.i++
		v, err := parseFloats(s.fp, ln, 1)
		if err != nil {
			return err
		}
		c := prev
		if len(v) > 1 {
			c = v[1]
		}
		pts = append(pts, [2]float64{v[0], c})
		prev = c
	}
	if len(pts) == 0 {
		return &FormatError{File: s.fp, Msg: "no soundspeed points found"}
	}
	if len(pts) == 1 {
		e.SoundSpeed = UniformSoundSpeed(pts[0][1])
	} else {
		e.SoundSpeed = ProfileSoundSpeed(pts)
	}
	return nil
}

// readVector parses a count line then a value line, scaling values on the
// way in (km to m for ranges).
func (s *scanner) readVector(scale float64) ([]float64, error) {
	ln, err := s.next()
	if err != nil {
		return nil, err
	}
	n, err := parseInt(s.fp, ln)
	if err != nil {
		return nil, err
	}
	ln, err = s.next()
	if err != nil {
		return nil, err
	}
	v, err := parseFloats(s.fp, ln, 0)
	if err != nil {
		return nil, err
	}
	if len(v) != n {
		return nil, &FormatError{File: s.fp,
			Msg: fmt.Sprintf("expected %d values, found %d", n, len(v))}
	}
	for i := range v {
		v[i] *= scale
	}
	return v, nil
}

// decodeAt decodes the option character at position i, treating a short
// string as trailing blanks.
func decodeAt(fp string, fam optionFamily, opts string, i int) (string, error) {
	c := byte(' ')
	if i < len(opts) {
		c = opts[i]
	}
	tag, err := fam.decode(c)
	if err != nil {
		return "", &FormatError{File: fp, Msg: err.Error()}
	}
	return tag, nil
}
