package bellhop

import (
	"errors"
	"fmt"
)

// Engine is the boundary to an external propagation executable: it is
// handed a working file-name base whose input files are already on disk and
// is expected to leave its output files beside them.
type Engine interface {
	Name() string
	Supports(e *Environment, task string) bool
	Run(base string) error
}

// Registry holds the engines available to the compute functions. Build one
// at startup and pass it around explicitly; there is no package-level
// registry.
type Registry struct {
	engines []Engine
}

func NewRegistry(engines ...Engine) *Registry {
	return &Registry{engines: engines}
}

func (r *Registry) Register(eng Engine) {
	r.engines = append(r.engines, eng)
}

// Names lists the registered engines that support the environment/task
// pair. A nil environment lists every engine.
func (r *Registry) Names(e *Environment, task string) []string {
	var names []string
	for _, eng := range r.engines {
		if e == nil || eng.Supports(e, task) {
			names = append(names, eng.Name())
		}
	}
	return names
}

// Select returns the first registered engine that supports the
// environment/task pair.
func (r *Registry) Select(e *Environment, task string) (Engine, error) {
	for _, eng := range r.engines {
		if eng.Supports(e, task) {
			return eng, nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", task, ErrNoEngine)
}

// ComputeArrivals runs the arrivals task for every transmitter-receiver
// combination of the environment. A run that produces no output file and no
// fatal log entry yields an empty result, not an error.
func ComputeArrivals(e *Environment, r *Registry, base string) ([]Arrival, error) {
	if err := runTask(e, r, TaskArrivals, base); err != nil {
		return nil, err
	}
	arr, err := ReadArrivals(base)
	if errors.Is(err, ErrFileNotFound) {
		return nil, noOutput(base)
	}
	return arr, err
}

// ComputeRays traces the ray fan from the source depth at sourceDepthNdx.
func ComputeRays(e *Environment, sourceDepthNdx int, r *Registry, base string) ([]Ray, error) {
	e, err := sliceSource(e, sourceDepthNdx)
	if err != nil {
		return nil, err
	}
	if err := runTask(e, r, TaskRays, base); err != nil {
		return nil, err
	}
	rays, err := ReadRays(base)
	if errors.Is(err, ErrFileNotFound) {
		return nil, noOutput(base)
	}
	return rays, err
}

// ComputeEigenrays traces the eigenrays joining one transmitter and one
// receiver, selected by index into the environment's geometry vectors.
func ComputeEigenrays(e *Environment, sourceDepthNdx, receiverDepthNdx, receiverRangeNdx int, r *Registry, base string) ([]Ray, error) {
	e, err := sliceSource(e, sourceDepthNdx)
	if err != nil {
		return nil, err
	}
	if e.ReceiverDepth, err = sliceAt(e.ReceiverDepth, receiverDepthNdx, "receiver_depth_ndx"); err != nil {
		return nil, err
	}
	if e.ReceiverRange, err = sliceAt(e.ReceiverRange, receiverRangeNdx, "receiver_range_ndx"); err != nil {
		return nil, err
	}
	if err := runTask(e, r, TaskEigenrays, base); err != nil {
		return nil, err
	}
	rays, err := ReadRays(base)
	if errors.Is(err, ErrFileNotFound) {
		return nil, noOutput(base)
	}
	return rays, err
}

// ComputeTransmissionLoss computes the complex pressure field from the
// source depth at sourceDepthNdx to every receiver. mode selects coherent,
// incoherent or semicoherent summation; empty falls back to the
// environment's interference mode, then to coherent.
func ComputeTransmissionLoss(e *Environment, sourceDepthNdx int, mode string, r *Registry, base string) (*PressureField, error) {
	if mode == "" {
		mode = e.InterferenceMode
	}
	if mode == "" {
		mode = TaskCoherent
	}
	switch mode {
	case TaskCoherent, TaskIncoherent, TaskSemicoherent:
	default:
		return nil, &ConfigError{Field: "mode",
			Msg: fmt.Sprintf("invalid mode: %s; must be one of: %s, %s, %s", mode, TaskCoherent, TaskIncoherent, TaskSemicoherent)}
	}
	e, err := sliceSource(e, sourceDepthNdx)
	if err != nil {
		return nil, err
	}
	if err := runTask(e, r, mode, base); err != nil {
		return nil, err
	}
	pf, err := ReadSHD(base)
	if errors.Is(err, ErrFileNotFound) {
		return nil, noOutput(base)
	}
	return pf, err
}

// runTask is the shared run path: finalize and validate, pick an engine,
// clear stale working files, write the input file set, run.
func runTask(e *Environment, r *Registry, task, base string) error {
	if base == "" {
		return &ConfigError{Field: "fname_base", Msg: "a working file-name base is required"}
	}
	if err := e.Check(); err != nil {
		return err
	}
	eng, err := r.Select(e, task)
	if err != nil {
		return err
	}
	RemoveWorkingFiles(base)
	if err := e.WriteEnv(task, base); err != nil {
		return err
	}
	if err := eng.Run(base); err != nil {
		if msg := ScanPRT(base); msg != "" {
			return &EngineError{Base: base, Msg: msg}
		}
		return &EngineError{Base: base, Msg: err.Error()}
	}
	return nil
}

// noOutput distinguishes an engine failure logged to the .prt file from the
// milder no-output-produced condition.
func noOutput(base string) error {
	if msg := ScanPRT(base); msg != "" {
		return &EngineError{Base: base, Msg: msg}
	}
	return nil
}

// sliceSource narrows a multi-valued source depth to the indexed scalar on
// an independent copy.
func sliceSource(e *Environment, ndx int) (*Environment, error) {
	c := e.Copy()
	sd, err := sliceAt(c.SourceDepth, ndx, "source_depth_ndx")
	if err != nil {
		return nil, err
	}
	c.SourceDepth = sd
	return c, nil
}

func sliceAt(v []float64, ndx int, field string) ([]float64, error) {
	if len(v) <= 1 {
		return v, nil
	}
	if ndx < 0 || ndx >= len(v) {
		return nil, &ConfigError{Field: field,
			Msg: fmt.Sprintf("index %d out of range for %d values", ndx, len(v))}
	}
	return []float64{v[ndx]}, nil
}
