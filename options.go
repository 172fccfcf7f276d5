package bellhop

import (
	"fmt"
	"sort"
	"strings"
)

// Option tags. BELLHOP selects behaviours with single printable characters
// packed into fixed column positions of the .env file; these are the
// human-readable names each character maps to.
const (
	Default = "default"

	// sound speed interpolation
	Linear        = "linear"
	Spline        = "spline"
	Quadrilateral = "quadrilateral"
	PCHIP         = "pchip"
	Hexahedral    = "hexahedral"
	NLinear       = "nlinear"
	Curvilinear   = "curvilinear" // bathymetry/altimetry only

	// boundary conditions
	Vacuum         = "vacuum"
	AcoustoElastic = "acousto-elastic"
	Rigid          = "rigid"
	FromFile       = "from-file"
	Flat           = "flat"

	// tasks
	TaskArrivals     = "arrivals"
	TaskEigenrays    = "eigenrays"
	TaskRays         = "rays"
	TaskCoherent     = "coherent"
	TaskIncoherent   = "incoherent"
	TaskSemicoherent = "semicoherent"

	// sources
	PointSource = "point"
	LineSource  = "line"
	Omni        = "omni"

	// receiver grids
	Rectilinear = "rectilinear"
	Irregular   = "irregular"

	// beam types
	HatCartesian      = "hat-cartesian"
	HatRay            = "hat-ray"
	GaussianCartesian = "gaussian-cartesian"
	GaussianRay       = "gaussian-ray"
	SingleBeam        = "single-beam"

	// attenuation units
	NepersPerMeter     = "nepers per meter"
	FrequencyDependent = "frequency dependent"
	DBPerMeter         = "dB per meter"
	ScaledDBPerMeter   = "frequency scaled dB per meter"
	DBPerWavelength    = "dB per wavelength"
	QualityFactor      = "quality factor"
	LossParameter      = "loss parameter"

	// volume attenuation models
	NoVolumeAttenuation = "none"
	Thorp               = "thorp"
	FrancoisGarrison    = "francois-garrison"
	Biological          = "biological"
)

// optionFamily is a closed bidirectional map between single format
// characters and option tags. The space character is a first-class key
// meaning default/unspecified.
type optionFamily struct {
	name string
	fwd  map[byte]string
	rev  map[string]byte
}

func newOptionFamily(name string, fwd map[byte]string) optionFamily {
	rev := make(map[string]byte, len(fwd))
	for c, tag := range fwd {
		rev[tag] = c
	}
	return optionFamily{name: name, fwd: fwd, rev: rev}
}

// decode maps a format character to its tag.
func (o optionFamily) decode(c byte) (string, error) {
	if tag, ok := o.fwd[c]; ok {
		return tag, nil
	}
	return "", &FormatError{Msg: fmt.Sprintf("unsupported option character %q for %s", string(c), o.name)}
}

// encode maps a tag back to its format character. An unknown tag is a
// programming error: the validator rejects them before any encode.
func (o optionFamily) encode(tag string) byte {
	c, ok := o.rev[tag]
	if !ok {
		panic(fmt.Sprintf("bellhop: no %s character for tag %q", o.name, tag))
	}
	return c
}

func (o optionFamily) has(tag string) bool {
	_, ok := o.rev[tag]
	return ok
}

// tags returns the sorted tag set, for error messages.
func (o optionFamily) tags() []string {
	t := make([]string, 0, len(o.rev))
	for tag := range o.rev {
		t = append(t, tag)
	}
	sort.Strings(t)
	return t
}

func (o optionFamily) invalidTag(field string, v interface{}) error {
	return &ConfigError{Field: field,
		Msg: fmt.Sprintf("invalid %s: %v; must be one of: %s", field, v, strings.Join(o.tags(), ", "))}
}

var (
	interpOpts = newOptionFamily("soundspeed interpolation", map[byte]string{
		'S': Spline,
		'C': Linear,
		'P': PCHIP,
		'Q': Quadrilateral,
		'H': Hexahedral,
		'N': NLinear,
		' ': Default,
	})
	boundaryOpts = newOptionFamily("boundary condition", map[byte]string{
		'V': Vacuum,
		'A': AcoustoElastic,
		'R': Rigid,
		'F': FromFile,
		' ': Default,
	})
	attUnitOpts = newOptionFamily("attenuation units", map[byte]string{
		'N': NepersPerMeter,
		'F': FrequencyDependent,
		'M': DBPerMeter,
		'm': ScaledDBPerMeter,
		'W': DBPerWavelength,
		'Q': QualityFactor,
		'L': LossParameter,
		' ': Default,
	})
	volAttOpts = newOptionFamily("volume attenuation", map[byte]string{
		'T': Thorp,
		'F': FrancoisGarrison,
		'B': Biological,
		' ': NoVolumeAttenuation,
	})
	surfFlagOpts = newOptionFamily("altimetry", map[byte]string{
		'*': FromFile,
		' ': Flat,
	})
	botFlagOpts = newOptionFamily("bathymetry", map[byte]string{
		'*': FromFile,
		' ': Flat,
	})
	singleBeamOpts = newOptionFamily("single beam", map[byte]string{
		'I': SingleBeam,
		' ': Default,
	})
	taskOpts = newOptionFamily("task", map[byte]string{
		'A': TaskArrivals,
		'E': TaskEigenrays,
		'R': TaskRays,
		'C': TaskCoherent,
		'I': TaskIncoherent,
		'S': TaskSemicoherent,
	})
	beamOpts = newOptionFamily("beam type", map[byte]string{
		'G': HatCartesian,
		'g': HatRay,
		'B': GaussianCartesian,
		'b': GaussianRay,
		' ': Default,
	})
	sbpOpts = newOptionFamily("source beam pattern", map[byte]string{
		'*': FromFile,
		'O': Omni,
		' ': Default,
	})
	sourceOpts = newOptionFamily("source type", map[byte]string{
		'R': PointSource,
		'X': LineSource,
		' ': Default,
	})
	gridOpts = newOptionFamily("receiver grid", map[byte]string{
		'R': Rectilinear,
		'I': Irregular,
		' ': Default,
	})
	btyInterpOpts = newOptionFamily("bathymetry interpolation", map[byte]string{
		'L': Linear,
		'C': Curvilinear,
	})
)

// optionFamilies lists every codebook family, for exhaustive tests.
func optionFamilies() []optionFamily {
	return []optionFamily{interpOpts, boundaryOpts, attUnitOpts, volAttOpts,
		surfFlagOpts, botFlagOpts, singleBeamOpts, taskOpts, beamOpts, sbpOpts,
		sourceOpts, gridOpts, btyInterpOpts}
}
