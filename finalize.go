package bellhop

import (
	"fmt"
	"log"
	"math"

	"github.com/maseology/mmaths"
)

// Check finalizes then validates the environment. It must be called before
// encoding or running; it only ever completes the record additively, never
// dropping caller-supplied data.
func (e *Environment) Check() error {
	e.finalize()
	return e.validate()
}

// finalize derives the dependent defaults. Idempotent: every step is
// guarded by an unset test or is a pure normalization.
func (e *Environment) finalize() {
	if len(e.Bathymetry) > 1 {
		e.bathymetryFlag = FromFile
	}
	if e.Surface != nil {
		e.altimetryFlag = FromFile
	}
	if e.BottomReflection != nil {
		e.BottomBoundary = FromFile
	}
	if e.SurfaceReflection != nil {
		e.SurfaceBoundary = FromFile
	}

	if !isSet(e.DepthMax) {
		e.DepthMax = e.maxDepth()
	}

	// normalize the sound speed field to profile form
	switch ss := e.SoundSpeed; ss.Kind {
	case SSUniform:
		if len(ss.Profile) == 0 {
			ss.Profile = [][2]float64{{0, ss.Uniform}, {e.DepthMax, ss.Uniform}}
		}
	case SSProfile:
		if len(ss.Profile) == 1 {
			// a single point acts as a uniform speed spanning the column
			d, c := ss.Profile[0][0], ss.Profile[0][1]
			ss.Profile = [][2]float64{{math.Min(0, d), c}, {math.Max(d, e.DepthMax), c}}
		}
	}

	// beam angles default to the half space, or the full space when
	// receivers sit at negative ranges; an empty range vector is caught by
	// validate
	full := len(e.ReceiverRange) > 0 && minOf(e.ReceiverRange) < 0
	if !isSet(e.BeamAngleMin) {
		if full {
			e.BeamAngleMin = -defBeamAngleFullspace
		} else {
			e.BeamAngleMin = -defBeamAngleHalfspace
		}
	}
	if !isSet(e.BeamAngleMax) {
		if full {
			e.BeamAngleMax = defBeamAngleFullspace
		} else {
			e.BeamAngleMax = defBeamAngleHalfspace
		}
	}

	if !isSet(e.BoxDepth) {
		e.BoxDepth = defBoxMargin * e.DepthMax
	}
	if !isSet(e.BoxRange) && len(e.ReceiverRange) > 0 {
		e.BoxRange = defBoxMargin * (maxOf(e.ReceiverRange) - math.Min(0, minOf(e.ReceiverRange)))
	}

	e.finalized = true
}

// validate enforces the cross-field invariants, failing on the first
// violation. The one permitted mutation is the SSP end-point insertion,
// which warns rather than errors.
func (e *Environment) validate() error {
	if e.Type != "2D" {
		return &ConfigError{Field: "type", Msg: "not a 2D environment: " + e.Type}
	}
	if e.NMedia != 1 {
		return &ConfigError{Field: "nmedia",
			Msg: fmt.Sprintf("only 1 medium is supported, found %d", e.NMedia)}
	}
	if e.Frequency <= 0 {
		return &ConfigError{Field: "frequency",
			Msg: fmt.Sprintf("frequency must be positive, found %g", e.Frequency)}
	}

	for _, g := range []struct {
		field string
		v     []float64
	}{
		{"source_depth", e.SourceDepth},
		{"receiver_depth", e.ReceiverDepth},
		{"receiver_range", e.ReceiverRange},
	} {
		if len(g.v) == 0 {
			return &ConfigError{Field: g.field,
				Msg: g.field + " must have at least one value"}
		}
	}

	// enumerated tags (the string-keyed path checks these at assignment;
	// direct struct mutation lands here)
	for _, t := range []struct {
		field, tag string
		fam        optionFamily
	}{
		{"soundspeed_interp", e.SoundSpeedInterp, interpOpts},
		{"depth_interp", e.DepthInterp, btyInterpOpts},
		{"surface_interp", e.SurfaceInterp, btyInterpOpts},
		{"bottom_boundary_condition", e.BottomBoundary, boundaryOpts},
		{"surface_boundary_condition", e.SurfaceBoundary, boundaryOpts},
		{"beam_type", e.BeamType, beamOpts},
		{"source_type", e.SourceType, sourceOpts},
		{"grid_type", e.GridType, gridOpts},
		{"attenuation_units", e.AttenuationUnits, attUnitOpts},
		{"volume_attenuation", e.VolumeAttenuation, volAttOpts},
	} {
		if !t.fam.has(t.tag) {
			return t.fam.invalidTag(t.field, t.tag)
		}
	}

	maxRange := maxOf(e.ReceiverRange)

	if e.Surface != nil {
		if err := checkProfile("surface", e.Surface, maxRange); err != nil {
			return err
		}
	}
	if e.SurfaceReflection != nil && e.SurfaceBoundary != FromFile {
		return &ConfigError{Field: "surface_reflection_coefficient",
			Msg: "surface reflection coefficients must be read from file"}
	}

	if len(e.Bathymetry) == 1 {
		return &ConfigError{Field: "depth",
			Msg: "a range-dependent depth array needs at least 2 points"}
	}
	if len(e.Bathymetry) > 1 {
		if err := checkProfile("depth", e.Bathymetry, maxRange); err != nil {
			return err
		}
		if e.bathymetryFlag != FromFile {
			return &ConfigError{Field: "depth", Msg: "range-dependent depth requires a BTY file"}
		}
	}
	if e.BottomReflection != nil && e.BottomBoundary != FromFile {
		return &ConfigError{Field: "bottom_reflection_coefficient",
			Msg: "bottom reflection coefficients must be read from file"}
	}

	if zs := maxOf(e.SourceDepth); zs > e.DepthMax {
		return &ConfigError{Field: "source_depth",
			Msg: fmt.Sprintf("source_depth cannot exceed water depth: %g m", e.DepthMax)}
	}
	if zr := maxOf(e.ReceiverDepth); zr > e.DepthMax {
		return &ConfigError{Field: "receiver_depth",
			Msg: fmt.Sprintf("receiver_depth cannot exceed water depth: %g m", e.DepthMax)}
	}

	if err := e.checkSSP(); err != nil {
		return err
	}

	if e.SourceDirectionality != nil {
		if len(e.SourceDirectionality) < 2 {
			return &ConfigError{Field: "source_directionality",
				Msg: "source_directionality must be an Nx2 array"}
		}
		for _, p := range e.SourceDirectionality {
			if p[0] <= -180 || p[0] > 180 {
				return &ConfigError{Field: "source_directionality",
					Msg: fmt.Sprintf("source_directionality angles must be in (-180, 180], found %g", p[0])}
			}
		}
	}

	for _, a := range []struct {
		field string
		v     float64
	}{{"beam_angle_min", e.BeamAngleMin}, {"beam_angle_max", e.BeamAngleMax}} {
		if a.v <= -180 || a.v > 180 {
			return &ConfigError{Field: a.field,
				Msg: fmt.Sprintf("%s must be in range (-180, 180], found %g", a.field, a.v)}
		}
	}

	if e.singleBeamFlag == SingleBeam && e.SingleBeamIndex < 0 {
		return &ConfigError{Field: "single_beam_index",
			Msg: "single beam requested but no index provided"}
	}

	return nil
}

// checkProfile enforces the shared bathymetry/altimetry invariants on a
// (range, value) profile.
func checkProfile(field string, pts [][2]float64, maxRange float64) error {
	if pts[0][0] > 0 {
		return &ConfigError{Field: field,
			Msg: fmt.Sprintf("first range in %s array must be <= 0 m", field)}
	}
	if pts[len(pts)-1][0] < maxRange {
		return &ConfigError{Field: field,
			Msg: fmt.Sprintf("last range in %s array must reach the maximum receiver range: %g m", field, maxRange)}
	}
	for i := 1; i < len(pts); i++ {
		if pts[i][0] <= pts[i-1][0] {
			return &ConfigError{Field: field,
				Msg: fmt.Sprintf("%s array must be strictly monotonic in range", field)}
		}
	}
	return nil
}

func (e *Environment) checkSSP() error {
	ss := e.SoundSpeed
	if ss == nil {
		return &ConfigError{Field: "soundspeed", Msg: "soundspeed is required"}
	}

	if ss.Kind == SSTable {
		if len(ss.Ranges) == 0 || len(ss.Depths) == 0 {
			return &ConfigError{Field: "soundspeed",
				Msg: "soundspeed table needs at least one range and one depth"}
		}
		if len(ss.Values) != len(ss.Depths) {
			return &ConfigError{Field: "soundspeed",
				Msg: fmt.Sprintf("soundspeed table has %d rows for %d depths", len(ss.Values), len(ss.Depths))}
		}
		for i, row := range ss.Values {
			if len(row) != len(ss.Ranges) {
				return &ConfigError{Field: "soundspeed",
					Msg: fmt.Sprintf("soundspeed table row %d has %d values for %d ranges", i, len(row), len(ss.Ranges))}
			}
		}
		if len(ss.Ranges) > 1 && e.SoundSpeedInterp != Quadrilateral {
			return &ConfigError{Field: "soundspeed_interp",
				Msg: "a range-dependent soundspeed table implies quadrilateral interpolation"}
		}
		for i := 1; i < len(ss.Ranges); i++ {
			if ss.Ranges[i] <= ss.Ranges[i-1] {
				return &ConfigError{Field: "soundspeed",
					Msg: "soundspeed table must be strictly monotonic in range"}
			}
		}
	}

	pts := ss.profilePoints()
	if e.SoundSpeedInterp == Spline {
		if len(pts) < 4 {
			return &ConfigError{Field: "soundspeed",
				Msg: "soundspeed profile must have at least 4 points for spline interpolation"}
		}
	} else if len(pts) < 2 {
		return &ConfigError{Field: "soundspeed",
			Msg: "soundspeed profile must have at least 2 points"}
	}
	if pts[0][0] > 0 {
		return &ConfigError{Field: "soundspeed",
			Msg: "first depth in soundspeed array must be 0 m"}
	}
	for i := 1; i < len(pts); i++ {
		if pts[i][0] <= pts[i-1][0] {
			return &ConfigError{Field: "soundspeed",
				Msg: "soundspeed array must be strictly monotonic in depth"}
		}
	}

	last := pts[len(pts)-1][0]
	if last == e.DepthMax {
		return nil
	}

	if ss.Kind == SSTable {
		// no trimming for range-dependent tables; the grid must end exactly
		// at the maximum water depth
		return &ConfigError{Field: "soundspeed",
			Msg: fmt.Sprintf("final entry in soundspeed table must be at the maximum water depth: %g m", e.DepthMax)}
	}

	if last < e.DepthMax {
		// extend to the bottom along the last profile segment
		n := len(pts)
		z0, c0 := pts[n-2][0], pts[n-2][1]
		z1, c1 := pts[n-1][0], pts[n-1][1]
		c := mmaths.LinearTransform(c0, c1, (e.DepthMax-z0)/(z1-z0))
		ss.setProfilePoints(append(pts, [2]float64{e.DepthMax, c}))
	} else {
		// profile runs deeper than the water column: cut it at depth_max,
		// inserting an interpolated end point
		i := 0
		for pts[i][0] < e.DepthMax {
			i++
		}
		z0, c0 := pts[i-1][0], pts[i-1][1]
		z1, c1 := pts[i][0], pts[i][1]
		c := mmaths.LinearTransform(c0, c1, (e.DepthMax-z0)/(z1-z0))
		ss.setProfilePoints(append(pts[:i:i], [2]float64{e.DepthMax, c}))
	}
	if !e.sspExtended {
		log.Printf(" warning: soundspeed profile did not end at the maximum water depth (%g m); end point inserted by linear interpolation\n", e.DepthMax)
		e.sspExtended = true
	}
	return nil
}
