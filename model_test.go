package bellhop

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubEngine struct {
	name     string
	lastTask string
	run      func(base string) error
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Supports(e *Environment, task string) bool {
	s.lastTask = task
	return true
}

func (s *stubEngine) Run(base string) error {
	if s.run != nil {
		return s.run(base)
	}
	return nil
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Select(New(), TaskArrivals); !errors.Is(err, ErrNoEngine) {
		t.Fatalf("empty registry: err = %v, want ErrNoEngine", err)
	}

	eng := &stubEngine{name: "stub"}
	r.Register(eng)
	got, err := r.Select(New(), TaskArrivals)
	if err != nil {
		t.Fatal(err)
	}
	if got != Engine(eng) {
		t.Errorf("selected %v, want the registered stub", got)
	}
	if names := r.Names(nil, ""); len(names) != 1 || names[0] != "stub" {
		t.Errorf("Names = %v", names)
	}
}

func TestComputeArrivalsNoOutput(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	r := NewRegistry(&stubEngine{name: "stub"})

	arr, err := ComputeArrivals(New(), r, base)
	if err != nil {
		t.Fatal(err)
	}
	if arr != nil {
		t.Errorf("arrivals = %v, want empty", arr)
	}
	if _, err := os.Stat(base + ".env"); err != nil {
		t.Errorf("input file not written: %v", err)
	}
}

func TestComputeArrivalsEngineFailure(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	eng := &stubEngine{name: "stub", run: func(base string) error {
		doc := "*** FATAL ERROR ***\nSSP: depth out of order\n"
		return os.WriteFile(base+".prt", []byte(doc), 0644)
	}}
	r := NewRegistry(eng)

	_, err := ComputeArrivals(New(), r, base)
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *EngineError", err)
	}
	if ee.Msg != "SSP: depth out of order\n" {
		t.Errorf("captured %q", ee.Msg)
	}
}

func TestComputeArrivalsResult(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	eng := &stubEngine{name: "stub", run: func(base string) error {
		return os.WriteFile(base+".arr", []byte(arrFixture), 0644)
	}}
	r := NewRegistry(eng)

	arr, err := ComputeArrivals(New(), r, base)
	if err != nil {
		t.Fatal(err)
	}
	if len(arr) != 5 {
		t.Errorf("len = %d, want 5", len(arr))
	}
}

func TestComputeRaysSlicesSourceDepth(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	r := NewRegistry(&stubEngine{name: "stub"})

	e := New()
	e.SourceDepth = []float64{5, 10}
	if _, err := ComputeRays(e, 1, r, base); err != nil {
		t.Fatal(err)
	}
	if len(e.SourceDepth) != 2 {
		t.Errorf("original environment mutated: %v", e.SourceDepth)
	}

	written, err := ReadEnv(base + ".env")
	if err != nil {
		t.Fatal(err)
	}
	if len(written.SourceDepth) != 1 || written.SourceDepth[0] != 10 {
		t.Errorf("written source depth = %v, want [10]", written.SourceDepth)
	}
}

func TestComputeEigenraysIndexRange(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	r := NewRegistry(&stubEngine{name: "stub"})

	e := New()
	e.ReceiverRange = []float64{100, 500}
	_, err := ComputeEigenrays(e, 0, 0, 5, r, base)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}

func TestComputeTransmissionLossMode(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	eng := &stubEngine{name: "stub"}
	r := NewRegistry(eng)

	if _, err := ComputeTransmissionLoss(New(), 0, "loud", r, base); err == nil {
		t.Fatal("invalid mode accepted")
	}

	if _, err := ComputeTransmissionLoss(New(), 0, "", r, base); err != nil {
		t.Fatal(err)
	}
	if eng.lastTask != TaskCoherent {
		t.Errorf("default mode ran task %q, want %q", eng.lastTask, TaskCoherent)
	}

	e := New()
	e.InterferenceMode = TaskIncoherent
	if _, err := ComputeTransmissionLoss(e, 0, "", r, base); err != nil {
		t.Fatal(err)
	}
	if eng.lastTask != TaskIncoherent {
		t.Errorf("interference mode ran task %q, want %q", eng.lastTask, TaskIncoherent)
	}
}

func TestComputeRequiresBase(t *testing.T) {
	r := NewRegistry(&stubEngine{name: "stub"})
	_, err := ComputeArrivals(New(), r, "")
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}
