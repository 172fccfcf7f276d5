package bellhop

import "math"

// Default limits written when the caller leaves beam angles or box extents
// unset. Angles stop just short of 180 to avoid degenerate trigonometry at
// the half-plane boundary.
const (
	defBeamAngleHalfspace = 89.999  // deg
	defBeamAngleFullspace = 179.999 // deg
	defBoxMargin          = 1.01    // box extends 1% beyond the data extent
)

// unset marks an optional float the caller did not supply.
var unset = math.NaN()

func isSet(v float64) bool { return !math.IsNaN(v) }

// Environment is the complete description of one 2D underwater acoustic
// scenario: geometry, sound speed field, boundary conditions, source and
// receiver layout, and beam/ray control. Construct with New, adjust fields
// (or use Set for the string-keyed compatibility path), then Check before
// encoding or running.
//
// Units in memory: ranges and depths in m, density in kg/m³, angles in
// degrees, frequency in Hz. The wire formats use km and g/cm³; codecs
// convert at the boundary.
type Environment struct {
	Name      string
	Type      string // fixed "2D"
	Frequency float64
	NMedia    int // always 1

	SoundSpeed       *SoundSpeed
	SoundSpeedInterp string

	// bottom halfspace
	BottomSoundSpeed       float64 // [m/s]
	BottomSoundSpeedShear  float64 // [m/s]
	BottomDensity          float64 // [kg/m³]
	BottomAttenuation      float64 // [dB/wavelength], unset if NaN
	BottomAttenuationShear float64 // [dB/wavelength], unset if NaN
	BottomRoughness        float64 // [m] rms
	BottomBoundary         string
	BottomReflection       [][3]float64 // (deg, magnitude, deg)

	// surface
	Surface                 [][2]float64 // altimetry (range m, height m); nil = flat at 0
	SurfaceInterp           string
	SurfaceBoundary         string
	SurfaceReflection       [][3]float64
	SurfaceDepth            float64 // [m]
	SurfaceSoundSpeed       float64 // [m/s]
	SurfaceSoundSpeedShear  float64 // [m/s]
	SurfaceDensity          float64 // [kg/m³]
	SurfaceAttenuation      float64 // [dB/wavelength], unset if NaN
	SurfaceAttenuationShear float64 // [dB/wavelength], unset if NaN

	// source/receiver geometry
	SourceType           string
	SourceDepth          []float64    // [m]
	SourceDirectionality [][2]float64 // (deg, dB)
	ReceiverDepth        []float64    // [m]
	ReceiverRange        []float64    // [m]

	// bathymetry: constant Depth unless Bathymetry is set
	Depth       float64      // [m]
	Bathymetry  [][2]float64 // (range m, depth m); nil = constant
	DepthInterp string
	DepthNpts   int
	DepthSigmaZ float64
	DepthMax    float64 // [m], computed by finalize when unset

	// beam control
	BeamType        string
	BeamAngleMin    float64 // [deg], unset if NaN
	BeamAngleMax    float64 // [deg], unset if NaN
	BeamNum         int     // 0 = auto
	SingleBeamIndex int     // <0 = none
	StepSize        float64 // [m]
	BoxDepth        float64 // [m], unset if NaN
	BoxRange        float64 // [m], unset if NaN

	GridType         string
	InterferenceMode string // transmission loss mode; "" = coherent
	Task             string

	// attenuation
	VolumeAttenuation string
	AttenuationUnits  string
	FGSalinity        float64 // [ppt]
	FGTemperature     float64 // [°C]
	FGpH              float64
	FGDepth           float64 // [m]

	// wire-format flags derived by finalize or set by the decoder
	bathymetryFlag string // Flat or FromFile
	altimetryFlag  string
	sbpFlag        string // Default, Omni or FromFile
	singleBeamFlag string

	sspExtended bool // auto-extension warning fired
	finalized   bool
}

// New returns a fully defaulted environment.
func New() *Environment {
	return &Environment{
		Name:      "gobellhop default",
		Type:      "2D",
		Frequency: 25000, // [Hz]
		NMedia:    1,

		SoundSpeed:       UniformSoundSpeed(1500),
		SoundSpeedInterp: Linear,

		BottomSoundSpeed:       1600,
		BottomSoundSpeedShear:  0,
		BottomDensity:          1600,
		BottomAttenuation:      unset,
		BottomAttenuationShear: unset,
		BottomRoughness:        0,
		BottomBoundary:         AcoustoElastic,

		SurfaceInterp:           Linear,
		SurfaceBoundary:         Vacuum,
		SurfaceDepth:            0,
		SurfaceSoundSpeed:       1600,
		SurfaceSoundSpeedShear:  0,
		SurfaceDensity:          1000,
		SurfaceAttenuation:      unset,
		SurfaceAttenuationShear: unset,

		SourceType:    Default,
		SourceDepth:   []float64{5},
		ReceiverDepth: []float64{10},
		ReceiverRange: []float64{1000},

		Depth:       25,
		DepthInterp: Linear,
		DepthNpts:   0,
		DepthSigmaZ: 0,
		DepthMax:    unset,

		BeamType:        Default,
		BeamAngleMin:    unset,
		BeamAngleMax:    unset,
		BeamNum:         0,
		SingleBeamIndex: -1,
		StepSize:        0,
		BoxDepth:        unset,
		BoxRange:        unset,

		GridType: Default,
		Task:     "",

		VolumeAttenuation: NoVolumeAttenuation,
		AttenuationUnits:  FrequencyDependent,
		FGSalinity:        unset,
		FGTemperature:     unset,
		FGpH:              unset,
		FGDepth:           unset,

		bathymetryFlag: Flat,
		altimetryFlag:  Flat,
		sbpFlag:        Default,
		singleBeamFlag: Default,
	}
}

// Copy returns an independent copy. Per-index runs slice source depth or
// receiver geometry down to scalars on a copy, never on the original.
func (e *Environment) Copy() *Environment {
	c := *e
	c.SoundSpeed = e.SoundSpeed.copy()
	c.BottomReflection = append([][3]float64(nil), e.BottomReflection...)
	c.Surface = append([][2]float64(nil), e.Surface...)
	c.SurfaceReflection = append([][3]float64(nil), e.SurfaceReflection...)
	c.SourceDepth = append([]float64(nil), e.SourceDepth...)
	c.SourceDirectionality = append([][2]float64(nil), e.SourceDirectionality...)
	c.ReceiverDepth = append([]float64(nil), e.ReceiverDepth...)
	c.ReceiverRange = append([]float64(nil), e.ReceiverRange...)
	c.Bathymetry = append([][2]float64(nil), e.Bathymetry...)
	return &c
}

// maxDepth is the deepest bathymetry point (m).
func (e *Environment) maxDepth() float64 {
	if len(e.Bathymetry) == 0 {
		return e.Depth
	}
	zmax := e.Bathymetry[0][1]
	for _, p := range e.Bathymetry[1:] {
		if p[1] > zmax {
			zmax = p[1]
		}
	}
	return zmax
}

func maxOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
