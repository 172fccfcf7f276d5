package bellhop

import (
	"fmt"
	"strings"

	"github.com/maseology/mmio"
)

// The .env grammar pads data to a fixed column before the "!" comment;
// comments are for the reader only, never needed for correctness.
const commentPad = 50

type envWriter struct {
	tw *mmio.TXTwriter
}

func (w *envWriter) line(data, comment string) {
	if len(data) < commentPad {
		data += strings.Repeat(" ", commentPad-len(data))
	}
	if comment != "" {
		data += " ! " + comment
	}
	w.tw.WriteLine(data)
}

// quotedOpt packs option characters into a quoted string, trailing blanks
// stripped.
func quotedOpt(cs ...byte) string {
	return "'" + strings.TrimRight(string(cs), " ") + "'"
}

// trimUnset cuts a value list at the first unset entry and appends the "/"
// terminator.
func trimUnset(vs ...float64) string {
	var sb strings.Builder
	for _, v := range vs {
		if !isSet(v) {
			break
		}
		sb.WriteString(ftoa(v))
		sb.WriteString(" ")
	}
	sb.WriteString("/")
	return sb.String()
}

// WriteEnv encodes the environment and its auxiliary files for one task,
// all sharing the caller-owned file-name base. The environment must pass
// Check first.
func (e *Environment) WriteEnv(task, base string) error {
	if !e.finalized {
		if err := e.Check(); err != nil {
			return err
		}
	}
	if !taskOpts.has(task) {
		return taskOpts.invalidTag("task", task)
	}

	tw, err := mmio.NewTXTwriter(base + ".env")
	if err != nil {
		return fmt.Errorf("WriteEnv %s: %v", base+".env", err)
	}
	defer tw.Close()
	w := &envWriter{tw: tw}

	w.line("", "")
	w.line("'"+e.Name+"'", "environment name/description")
	w.line(ftoa(e.Frequency), "Frequency (Hz)")
	w.line("1", "NMedia -- always 1")
	w.line("", "")

	topopt := quotedOpt(
		interpOpts.encode(e.SoundSpeedInterp),
		boundaryOpts.encode(e.SurfaceBoundary),
		attUnitOpts.encode(e.AttenuationUnits),
		volAttOpts.encode(e.VolumeAttenuation),
		surfFlagOpts.encode(e.altimetryFlag),
		singleBeamOpts.encode(e.singleBeamFlag))
	w.line(topopt, "SSP interp / top boundary / attenuation units / volume attenuation")

	if e.VolumeAttenuation == FrancoisGarrison {
		w.line(fmt.Sprintf("%s %s %s %s", ftoa(e.FGSalinity), ftoa(e.FGTemperature), ftoa(e.FGpH), ftoa(e.FGDepth)),
			"Francois-Garrison parameters (sal, temp, pH, depth)")
	}

	switch e.SurfaceBoundary {
	case AcoustoElastic:
		w.line(ftoa(e.DepthMax)+" "+ftoa(e.SurfaceSoundSpeed)+" "+ftoa(e.SurfaceSoundSpeedShear)+" "+
			ftoa(e.SurfaceDensity/1000)+" "+trimUnset(e.SurfaceAttenuation, e.SurfaceAttenuationShear),
			"top halfspace: depth, speed, shear speed, density (g/cm^3), absorption")
	case FromFile:
		if err := WriteReflCoeff(base+".trc", e.SurfaceReflection); err != nil {
			return err
		}
	}

	if e.Surface != nil {
		if err := WriteATI(base+".ati", e.Surface, e.SurfaceInterp); err != nil {
			return err
		}
	}

	w.line(fmt.Sprintf("%d %s %s", e.DepthNpts, ftoa(e.DepthSigmaZ), ftoa(e.DepthMax)),
		"DEPTH_Npts, DEPTH_SigmaZ, DEPTH_Max")

	if err := e.writeSSPLines(w, base); err != nil {
		return err
	}

	w.line("", "")
	botopt := quotedOpt(boundaryOpts.encode(e.BottomBoundary), botFlagOpts.encode(e.bathymetryFlag))
	w.line(botopt+" "+ftoa(e.BottomRoughness), "bottom boundary / roughness (m)")

	if len(e.Bathymetry) > 1 {
		if err := WriteBTY(base+".bty", e.Bathymetry, e.DepthInterp); err != nil {
			return err
		}
	}

	switch e.BottomBoundary {
	case AcoustoElastic:
		w.line(ftoa(e.DepthMax)+" "+ftoa(e.BottomSoundSpeed)+" "+ftoa(e.BottomSoundSpeedShear)+" "+
			ftoa(e.BottomDensity/1000)+" "+trimUnset(e.BottomAttenuation, e.BottomAttenuationShear),
			"bottom halfspace: depth, speed, shear speed, density (g/cm^3), absorption")
	case FromFile:
		if err := WriteReflCoeff(base+".brc", e.BottomReflection); err != nil {
			return err
		}
	}

	w.line("", "")
	w.writeVector(e.SourceDepth, 1, "source depth (m)")
	w.writeVector(e.ReceiverDepth, 1, "receiver depth (m)")
	w.writeVector(e.ReceiverRange, 1000, "receiver range (km)")
	w.line("", "")

	pattern := byte(' ')
	if e.SourceDirectionality != nil {
		pattern = '*'
		if err := WriteSBP(base+".sbp", e.SourceDirectionality); err != nil {
			return err
		}
	}
	runtype := quotedOpt(taskOpts.encode(task), beamOpts.encode(e.BeamType), pattern,
		sourceOpts.encode(e.SourceType), gridOpts.encode(e.GridType))
	w.line(runtype, "run type")

	if e.SingleBeamIndex >= 0 {
		w.line(fmt.Sprintf("%d %d /", e.BeamNum, e.SingleBeamIndex), "NBeams, single beam index")
	} else {
		w.line(fmt.Sprintf("%d /", e.BeamNum), "NBeams (0 = auto)")
	}
	w.line(ftoa(e.BeamAngleMin)+" "+ftoa(e.BeamAngleMax)+" /", "ALPHA1,2 (degrees)")
	w.line(ftoa(e.StepSize)+" "+ftoa(e.BoxDepth)+" "+ftoa(e.BoxRange/1000),
		"step size (m), ZBOX (m), RBOX (km)")
	w.line("", "")
	return nil
}

func (e *Environment) writeSSPLines(w *envWriter, base string) error {
	ss := e.SoundSpeed
	if ss.Kind == SSTable {
		if e.SoundSpeedInterp != Quadrilateral {
			return &ConfigError{Field: "soundspeed_interp",
				Msg: "a range-dependent soundspeed table requires quadrilateral interpolation"}
		}
		for i, d := range ss.Depths {
			w.line(ftoa(d)+" "+ftoa(ss.Values[i][0])+" /", fmt.Sprintf("ssp_%d", i))
		}
		return WriteSSP(base+".ssp", ss)
	}
	for i, p := range ss.profilePoints() {
		w.line(ftoa(p[0])+" "+ftoa(p[1])+" /", fmt.Sprintf("ssp_%d", i))
	}
	return nil
}

// writeVector writes a count line then a "/"-terminated value line, the
// wire form of every source/receiver vector. scale divides on the way out
// (m to km for ranges).
func (w *envWriter) writeVector(vs []float64, scale float64, label string) {
	w.line(fmt.Sprintf("%d", len(vs)), label)
	var sb strings.Builder
	for _, v := range vs {
		sb.WriteString(ftoa(v / scale))
		sb.WriteString(" ")
	}
	sb.WriteString("/")
	w.tw.WriteLine(sb.String())
}
