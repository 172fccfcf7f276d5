package bellhop

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBTYRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "chan.bty")
	pts := [][2]float64{{0, 30}, {300, 20}, {1000, 25}}
	if err := WriteBTY(fp, pts, Curvilinear); err != nil {
		t.Fatal(err)
	}
	got, interp, err := ReadBTY(fp)
	if err != nil {
		t.Fatal(err)
	}
	if interp != Curvilinear {
		t.Errorf("interp = %q, want %q", interp, Curvilinear)
	}
	if diff := cmp.Diff(pts, got); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestATIRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "chan.ati")
	pts := [][2]float64{{0, 0.5}, {500, 0}, {1000, 0.5}}
	if err := WriteATI(fp, pts, Linear); err != nil {
		t.Fatal(err)
	}
	got, interp, err := ReadATI(fp)
	if err != nil {
		t.Fatal(err)
	}
	if interp != Linear {
		t.Errorf("interp = %q, want %q", interp, Linear)
	}
	if diff := cmp.Diff(pts, got); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestBTYCountMismatch(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "bad.bty")
	os.WriteFile(fp, []byte("'L'\n3\n0 30\n0.3 20\n"), 0644)
	_, _, err := ReadBTY(fp)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FormatError", err)
	}
}

func TestSBPRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "src.sbp")
	dir := [][2]float64{{-45, -10}, {0, 0}, {45, -10}}
	if err := WriteSBP(fp, dir); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSBP(fp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dir, got); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}

func TestReflCoeffRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "bot.brc")
	rc := [][3]float64{{0, 1, 180}, {45, 0.95, 175}, {90, 0.7, 170}}
	if err := WriteReflCoeff(fp, rc); err != nil {
		t.Fatal(err)
	}
	got, err := ReadReflCoeff(fp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rc, got); diff != "" {
		t.Errorf("coefficients mismatch (-want +got):\n%s", diff)
	}
}

func TestSSPTableRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "chan.ssp")
	ss := TableSoundSpeed(
		[]float64{0, 500, 1000},
		[]float64{0, 10, 25},
		[][]float64{{1540, 1541, 1542}, {1530, 1531, 1532}, {1520, 1521, 1522}})
	if err := WriteSSP(fp, ss); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSSP(fp)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != SSTable {
		t.Fatalf("Kind = %v, want SSTable", got.Kind)
	}
	if diff := cmp.Diff(ss.Ranges, got.Ranges); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ss.Values, got.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSSPRejectsProfile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "chan.ssp")
	err := WriteSSP(fp, UniformSoundSpeed(1500))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := ReadBTY(filepath.Join(t.TempDir(), "nope.bty"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestRemoveWorkingFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	for _, ext := range []string{".env", ".bty", ".arr", ".prt"} {
		os.WriteFile(base+ext, []byte("x\n"), 0644)
	}
	RemoveWorkingFiles(base)
	for _, ext := range []string{".env", ".bty", ".arr", ".prt"} {
		if _, err := os.Stat(base + ext); err == nil {
			t.Errorf("%s still exists", base+ext)
		}
	}
}
