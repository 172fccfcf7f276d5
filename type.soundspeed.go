package bellhop

// SoundSpeedKind tags which form the caller supplied the sound speed field
// in. Finalization normalizes uniform values to a 2-point profile but keeps
// the original kind so round trips can recover the supplied form.
type SoundSpeedKind int

const (
	SSUniform SoundSpeedKind = iota // single speed for the whole column
	SSProfile                       // depth-ordered (depth m, speed m/s) pairs
	SSTable                         // full range-by-depth grid
)

// SoundSpeed is the sound speed field of an environment, one of a uniform
// speed, a depth profile, or a range-dependent table.
type SoundSpeed struct {
	Kind    SoundSpeedKind
	Uniform float64      // SSUniform
	Profile [][2]float64 // SSProfile and normalized SSUniform: (depth [m], speed [m/s])
	Ranges  []float64    // SSTable: profile ranges [m], ascending
	Depths  []float64    // SSTable: grid depths [m], ascending
	Values  [][]float64  // SSTable: speed [m/s], row per depth, column per range
}

// UniformSoundSpeed returns a constant sound speed field (m/s).
func UniformSoundSpeed(c float64) *SoundSpeed {
	return &SoundSpeed{Kind: SSUniform, Uniform: c}
}

// ProfileSoundSpeed returns a depth-dependent sound speed field from
// (depth m, speed m/s) pairs.
func ProfileSoundSpeed(pairs [][2]float64) *SoundSpeed {
	return &SoundSpeed{Kind: SSProfile, Profile: pairs}
}

// TableSoundSpeed returns a range-and-depth dependent sound speed field.
// values holds one row per depth, one column per range.
func TableSoundSpeed(ranges, depths []float64, values [][]float64) *SoundSpeed {
	return &SoundSpeed{Kind: SSTable, Ranges: ranges, Depths: depths, Values: values}
}

func (s *SoundSpeed) copy() *SoundSpeed {
	if s == nil {
		return nil
	}
	c := &SoundSpeed{Kind: s.Kind, Uniform: s.Uniform}
	c.Profile = append([][2]float64(nil), s.Profile...)
	c.Ranges = append([]float64(nil), s.Ranges...)
	c.Depths = append([]float64(nil), s.Depths...)
	for _, row := range s.Values {
		c.Values = append(c.Values, append([]float64(nil), row...))
	}
	return c
}

// profilePoints is the working (depth, speed) profile: the explicit profile
// for uniform/profile kinds, the first-range column for tables.
func (s *SoundSpeed) profilePoints() [][2]float64 {
	if s.Kind == SSTable {
		pts := make([][2]float64, len(s.Depths))
		for i, d := range s.Depths {
			pts[i] = [2]float64{d, s.Values[i][0]}
		}
		return pts
	}
	return s.Profile
}

func (s *SoundSpeed) setProfilePoints(pts [][2]float64) {
	if s.Kind == SSTable {
		// table depths are authoritative; nothing to rewrite
		return
	}
	s.Profile = pts
}
