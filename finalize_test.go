package bellhop

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCheckDefaults(t *testing.T) {
	e := New()
	if err := e.Check(); err != nil {
		t.Fatal(err)
	}
	if e.DepthMax != 25 {
		t.Errorf("DepthMax = %g, want 25", e.DepthMax)
	}
	if e.BeamAngleMin != -defBeamAngleHalfspace || e.BeamAngleMax != defBeamAngleHalfspace {
		t.Errorf("beam angles = [%g, %g], want half space defaults", e.BeamAngleMin, e.BeamAngleMax)
	}
	if e.BoxDepth != defBoxMargin*25 {
		t.Errorf("BoxDepth = %g, want %g", e.BoxDepth, defBoxMargin*25)
	}
	if e.BoxRange != defBoxMargin*1000 {
		t.Errorf("BoxRange = %g, want %g", e.BoxRange, defBoxMargin*1000)
	}
	want := [][2]float64{{0, 1500}, {25, 1500}}
	if diff := cmp.Diff(want, e.SoundSpeed.Profile); diff != "" {
		t.Errorf("normalized profile mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckFullSpaceAngles(t *testing.T) {
	e := New()
	e.ReceiverRange = []float64{-500, 1000}
	if err := e.Check(); err != nil {
		t.Fatal(err)
	}
	if e.BeamAngleMin != -defBeamAngleFullspace || e.BeamAngleMax != defBeamAngleFullspace {
		t.Errorf("beam angles = [%g, %g], want full space defaults", e.BeamAngleMin, e.BeamAngleMax)
	}
	if e.BoxRange != defBoxMargin*1500 {
		t.Errorf("BoxRange = %g, want %g", e.BoxRange, defBoxMargin*1500)
	}
}

func TestCheckIdempotent(t *testing.T) {
	e := New()
	e.Set("depth", [][]float64{{0, 30}, {1000, 25}})
	if err := e.Check(); err != nil {
		t.Fatal(err)
	}
	once := e.Copy()
	if err := e.Check(); err != nil {
		t.Fatal(err)
	}
	opts := []cmp.Option{
		cmp.AllowUnexported(Environment{}),
		cmpopts.EquateNaNs(),
	}
	if diff := cmp.Diff(once, e, opts...); diff != "" {
		t.Errorf("second Check changed the environment (-first +second):\n%s", diff)
	}
}

func TestCheckBathymetryMonotonic(t *testing.T) {
	e := New()
	e.Set("depth", [][]float64{{0, 30}, {10, 28}, {25, 26}, {20, 27}, {30, 25}})
	e.ReceiverRange = []float64{30}
	err := e.Check()
	if err == nil {
		t.Fatal("non-monotonic bathymetry passed Check")
	}
	if !strings.Contains(err.Error(), "strictly monotonic") {
		t.Errorf("error %q does not name the monotonicity violation", err)
	}
}

func TestCheckBathymetryCoverage(t *testing.T) {
	e := New()
	e.Set("depth", [][]float64{{0, 30}, {500, 25}})
	e.ReceiverRange = []float64{1000}
	if err := e.Check(); err == nil {
		t.Fatal("bathymetry short of the maximum receiver range passed Check")
	}
}

func TestCheckSplineNeedsFourPoints(t *testing.T) {
	e := New()
	e.SoundSpeedInterp = Spline
	e.SoundSpeed = ProfileSoundSpeed([][2]float64{{0, 1540}, {10, 1530}, {25, 1520}})
	err := e.Check()
	if err == nil {
		t.Fatal("3-point spline profile passed Check")
	}
	if !strings.Contains(err.Error(), "at least 4 points") {
		t.Errorf("error %q does not name the point minimum", err)
	}

	e = New()
	e.SoundSpeed = ProfileSoundSpeed([][2]float64{{0, 1540}, {10, 1530}, {25, 1520}})
	if err := e.Check(); err != nil {
		t.Fatalf("3-point linear profile rejected: %v", err)
	}
}

func TestCheckProfileAutoExtend(t *testing.T) {
	e := New()
	e.Depth = 30
	e.SoundSpeed = ProfileSoundSpeed([][2]float64{{0, 1540}, {10, 1530}, {20, 1520}})
	if err := e.Check(); err != nil {
		t.Fatal(err)
	}
	pts := e.SoundSpeed.Profile
	last := pts[len(pts)-1]
	if last[0] != 30 {
		t.Fatalf("profile ends at %g m, want 30", last[0])
	}
	if last[1] != 1510 { // linear continuation of the last segment
		t.Errorf("extended speed = %g, want 1510", last[1])
	}
}

func TestCheckProfileTrim(t *testing.T) {
	e := New()
	e.Depth = 15
	e.SoundSpeed = ProfileSoundSpeed([][2]float64{{0, 1540}, {10, 1530}, {20, 1520}})
	if err := e.Check(); err != nil {
		t.Fatal(err)
	}
	pts := e.SoundSpeed.Profile
	want := [][2]float64{{0, 1540}, {10, 1530}, {15, 1525}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Errorf("trimmed profile mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckEmptyGeometryVectors(t *testing.T) {
	for _, key := range []string{"source_depth", "receiver_depth", "receiver_range"} {
		e := New()
		if err := e.Set(key, []float64{}); err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		err := e.Check()
		if err == nil {
			t.Fatalf("%s: empty vector passed Check", key)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: error type %T, want *ConfigError", key, err)
		}
		if ce.Field != key {
			t.Errorf("%s: error names field %q", key, ce.Field)
		}
	}
}

func TestCheckTableShape(t *testing.T) {
	e := New()
	e.SoundSpeedInterp = Quadrilateral
	e.SoundSpeed = TableSoundSpeed(
		[]float64{0, 1000},
		[]float64{0, 10, 25},
		[][]float64{{1540, 1541}})
	err := e.Check()
	if err == nil {
		t.Fatal("table with 1 row for 3 depths passed Check")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error type %T, want *ConfigError", err)
	}

	e = New()
	e.SoundSpeedInterp = Quadrilateral
	e.SoundSpeed = TableSoundSpeed(
		[]float64{0, 1000},
		[]float64{0, 25},
		[][]float64{{1540, 1541}, {1520}})
	if err := e.Check(); err == nil {
		t.Fatal("table with a short row passed Check")
	}
}

func TestCheckSinglePointBathymetry(t *testing.T) {
	e := New()
	e.Set("depth", [][]float64{{0, 30}})
	err := e.Check()
	if err == nil {
		t.Fatal("single-point depth array passed Check")
	}
	if !strings.Contains(err.Error(), "at least 2 points") {
		t.Errorf("error %q does not name the point minimum", err)
	}
}

func TestCheckGeometryBounds(t *testing.T) {
	e := New()
	e.SourceDepth = []float64{30}
	if err := e.Check(); err == nil {
		t.Error("source below the water column passed Check")
	}

	e = New()
	e.ReceiverDepth = []float64{26}
	if err := e.Check(); err == nil {
		t.Error("receiver below the water column passed Check")
	}
}

func TestCheckSingleBeamNeedsIndex(t *testing.T) {
	e := New()
	e.singleBeamFlag = SingleBeam
	err := e.Check()
	if err == nil {
		t.Fatal("single beam without an index passed Check")
	}
	if !strings.Contains(err.Error(), "no index provided") {
		t.Errorf("error %q does not name the missing index", err)
	}
}

func TestCheckTableInterp(t *testing.T) {
	e := New()
	e.SoundSpeed = TableSoundSpeed(
		[]float64{0, 500, 1000},
		[]float64{0, 10, 25},
		[][]float64{{1540, 1541, 1542}, {1530, 1531, 1532}, {1520, 1521, 1522}})
	if err := e.Check(); err == nil {
		t.Fatal("range-dependent table without quadrilateral interpolation passed Check")
	}
	e.SoundSpeedInterp = Quadrilateral
	if err := e.Check(); err != nil {
		t.Fatalf("quadrilateral table rejected: %v", err)
	}
}
