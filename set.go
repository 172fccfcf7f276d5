package bellhop

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NewFrom builds an environment from string-keyed overrides, the dynamic
// counterpart to setting struct fields directly. Unknown keys are rejected.
func NewFrom(kv map[string]interface{}) (*Environment, error) {
	e := New()
	for k, v := range kv {
		if err := e.Set(k, v); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewFromYAML builds an environment from a YAML document of overrides.
func NewFromYAML(doc []byte) (*Environment, error) {
	kv := map[string]interface{}{}
	if err := yaml.Unmarshal(doc, &kv); err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("environment yaml: %v", err)}
	}
	return NewFrom(kv)
}

// Set assigns one keyed override, coercing array-like values to numeric
// slices. Keys follow the .env vocabulary (frequency, soundspeed, depth,
// receiver_range, ...).
func (e *Environment) Set(key string, v interface{}) error {
	switch key {
	case "name":
		s, ok := v.(string)
		if !ok {
			return badValue(key, v)
		}
		e.Name = s
	case "frequency":
		return e.setFloat(&e.Frequency, key, v)
	case "soundspeed":
		return e.setSoundSpeed(v)
	case "soundspeed_interp":
		return e.setTag(&e.SoundSpeedInterp, interpOpts, key, v)
	case "bottom_soundspeed":
		return e.setFloat(&e.BottomSoundSpeed, key, v)
	case "bottom_soundspeed_shear":
		return e.setFloat(&e.BottomSoundSpeedShear, key, v)
	case "bottom_density":
		return e.setFloat(&e.BottomDensity, key, v)
	case "bottom_attenuation":
		return e.setFloat(&e.BottomAttenuation, key, v)
	case "bottom_attenuation_shear":
		return e.setFloat(&e.BottomAttenuationShear, key, v)
	case "bottom_roughness":
		return e.setFloat(&e.BottomRoughness, key, v)
	case "bottom_boundary_condition":
		return e.setTag(&e.BottomBoundary, boundaryOpts, key, v)
	case "bottom_reflection_coefficient":
		t, ok := toTriples(v)
		if !ok {
			return badValue(key, v)
		}
		e.BottomReflection = t
	case "surface":
		p, ok := toPairs(v)
		if !ok {
			return badValue(key, v)
		}
		e.Surface = p
	case "surface_interp":
		return e.setTag(&e.SurfaceInterp, btyInterpOpts, key, v)
	case "surface_boundary_condition":
		return e.setTag(&e.SurfaceBoundary, boundaryOpts, key, v)
	case "surface_reflection_coefficient":
		t, ok := toTriples(v)
		if !ok {
			return badValue(key, v)
		}
		e.SurfaceReflection = t
	case "surface_depth":
		return e.setFloat(&e.SurfaceDepth, key, v)
	case "surface_soundspeed":
		return e.setFloat(&e.SurfaceSoundSpeed, key, v)
	case "surface_soundspeed_shear":
		return e.setFloat(&e.SurfaceSoundSpeedShear, key, v)
	case "surface_density":
		return e.setFloat(&e.SurfaceDensity, key, v)
	case "surface_attenuation":
		return e.setFloat(&e.SurfaceAttenuation, key, v)
	case "surface_attenuation_shear":
		return e.setFloat(&e.SurfaceAttenuationShear, key, v)
	case "source_type":
		return e.setTag(&e.SourceType, sourceOpts, key, v)
	case "source_depth":
		return e.setFloats(&e.SourceDepth, key, v)
	case "source_directionality":
		p, ok := toPairs(v)
		if !ok {
			return badValue(key, v)
		}
		e.SourceDirectionality = p
	case "receiver_depth":
		return e.setFloats(&e.ReceiverDepth, key, v)
	case "receiver_range":
		return e.setFloats(&e.ReceiverRange, key, v)
	case "depth":
		if f, ok := toFloat(v); ok {
			e.Depth = f
			e.Bathymetry = nil
			return nil
		}
		p, ok := toPairs(v)
		if !ok {
			return badValue(key, v)
		}
		e.Bathymetry = p
	case "depth_interp":
		return e.setTag(&e.DepthInterp, btyInterpOpts, key, v)
	case "depth_npts":
		return e.setInt(&e.DepthNpts, key, v)
	case "depth_sigmaz":
		return e.setFloat(&e.DepthSigmaZ, key, v)
	case "depth_max":
		return e.setFloat(&e.DepthMax, key, v)
	case "beam_type":
		return e.setTag(&e.BeamType, beamOpts, key, v)
	case "beam_angle_min":
		return e.setFloat(&e.BeamAngleMin, key, v)
	case "beam_angle_max":
		return e.setFloat(&e.BeamAngleMax, key, v)
	case "beam_num":
		return e.setInt(&e.BeamNum, key, v)
	case "single_beam_index":
		if err := e.setInt(&e.SingleBeamIndex, key, v); err != nil {
			return err
		}
		e.singleBeamFlag = SingleBeam
	case "step_size":
		return e.setFloat(&e.StepSize, key, v)
	case "box_depth":
		return e.setFloat(&e.BoxDepth, key, v)
	case "box_range":
		return e.setFloat(&e.BoxRange, key, v)
	case "grid_type":
		return e.setTag(&e.GridType, gridOpts, key, v)
	case "interference_mode":
		s, ok := v.(string)
		if !ok || (s != TaskCoherent && s != TaskIncoherent && s != TaskSemicoherent) {
			return &ConfigError{Field: key,
				Msg: fmt.Sprintf("invalid transmission loss mode: %v; must be one of: coherent, incoherent, semicoherent", v)}
		}
		e.InterferenceMode = s
	case "task":
		return e.setTag(&e.Task, taskOpts, key, v)
	case "volume_attenuation":
		return e.setTag(&e.VolumeAttenuation, volAttOpts, key, v)
	case "attenuation_units":
		return e.setTag(&e.AttenuationUnits, attUnitOpts, key, v)
	case "fg_salinity":
		return e.setFloat(&e.FGSalinity, key, v)
	case "fg_temperature":
		return e.setFloat(&e.FGTemperature, key, v)
	case "fg_ph":
		return e.setFloat(&e.FGpH, key, v)
	case "fg_depth":
		return e.setFloat(&e.FGDepth, key, v)
	default:
		return &ConfigError{Field: key, Msg: "Unknown key: " + key}
	}
	return nil
}

func (e *Environment) setSoundSpeed(v interface{}) error {
	switch s := v.(type) {
	case *SoundSpeed:
		e.SoundSpeed = s
		return nil
	case SoundSpeed:
		e.SoundSpeed = &s
		return nil
	}
	if f, ok := toFloat(v); ok {
		e.SoundSpeed = UniformSoundSpeed(f)
		return nil
	}
	if p, ok := toPairs(v); ok {
		e.SoundSpeed = ProfileSoundSpeed(p)
		return nil
	}
	return badValue("soundspeed", v)
}

func (e *Environment) setTag(dst *string, fam optionFamily, key string, v interface{}) error {
	s, ok := v.(string)
	if !ok || !fam.has(s) {
		return fam.invalidTag(key, v)
	}
	*dst = s
	return nil
}

func (e *Environment) setFloat(dst *float64, key string, v interface{}) error {
	f, ok := toFloat(v)
	if !ok {
		return badValue(key, v)
	}
	*dst = f
	return nil
}

func (e *Environment) setInt(dst *int, key string, v interface{}) error {
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case float64:
		*dst = int(n)
	default:
		return badValue(key, v)
	}
	return nil
}

func (e *Environment) setFloats(dst *[]float64, key string, v interface{}) error {
	fs, ok := toFloats(v)
	if !ok {
		return badValue(key, v)
	}
	*dst = fs
	return nil
}

func badValue(key string, v interface{}) error {
	return &ConfigError{Field: key, Msg: fmt.Sprintf("invalid value for %s: %v (%T)", key, v, v)}
}

func toFloat(v interface{}) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	}
	return 0, false
}

func toFloats(v interface{}) ([]float64, bool) {
	switch a := v.(type) {
	case []float64:
		return a, true
	case []float32:
		o := make([]float64, len(a))
		for i, x := range a {
			o[i] = float64(x)
		}
		return o, true
	case []int:
		o := make([]float64, len(a))
		for i, x := range a {
			o[i] = float64(x)
		}
		return o, true
	case []interface{}:
		o := make([]float64, len(a))
		for i, x := range a {
			f, ok := toFloat(x)
			if !ok {
				return nil, false
			}
			o[i] = f
		}
		return o, true
	}
	if f, ok := toFloat(v); ok {
		return []float64{f}, true
	}
	return nil, false
}

func toPairs(v interface{}) ([][2]float64, bool) {
	switch a := v.(type) {
	case [][2]float64:
		return a, true
	case [][]float64:
		o := make([][2]float64, len(a))
		for i, r := range a {
			if len(r) != 2 {
				return nil, false
			}
			o[i] = [2]float64{r[0], r[1]}
		}
		return o, true
	case []interface{}:
		o := make([][2]float64, len(a))
		for i, x := range a {
			r, ok := toFloats(x)
			if !ok || len(r) != 2 {
				return nil, false
			}
			o[i] = [2]float64{r[0], r[1]}
		}
		return o, true
	}
	return nil, false
}

func toTriples(v interface{}) ([][3]float64, bool) {
	switch a := v.(type) {
	case [][3]float64:
		return a, true
	case [][]float64:
		o := make([][3]float64, len(a))
		for i, r := range a {
			if len(r) != 3 {
				return nil, false
			}
			o[i] = [3]float64{r[0], r[1], r[2]}
		}
		return o, true
	case []interface{}:
		o := make([][3]float64, len(a))
		for i, x := range a {
			r, ok := toFloats(x)
			if !ok || len(r) != 3 {
				return nil, false
			}
			o[i] = [3]float64{r[0], r[1], r[2]}
		}
		return o, true
	}
	return nil, false
}
