package bellhop

import (
	"fmt"
	"io"
	"strings"

	"github.com/maseology/mmio"
)

// PressureField is a complex acoustic pressure grid over receiver depth and
// range, one row per depth.
type PressureField struct {
	Depths []float64 // [m]
	Ranges []float64 // [m]
	P      [][]complex128
}

// shdPtype is the 10-byte grid type tag every supported field file carries.
const shdPtype = "rectilin"

// ReadSHD decodes a pressure field (.shd) binary file. The leading int32 is
// the record length in 4-byte words and fixes the stride of every seek that
// follows.
func ReadSHD(base string) (*PressureField, error) {
	fp := base + ".shd"
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("%s: %w", fp, ErrFileNotFound)
	}
	b := mmio.OpenBinary(fp)
	recl := int64(mmio.ReadInt32(b))

	// record 1: grid type tag
	if _, err := b.Seek(4*recl, io.SeekStart); err != nil {
		return nil, &FormatError{File: fp, Msg: err.Error()}
	}
	tag := make([]byte, 10)
	if _, err := io.ReadFull(b, tag); err != nil {
		return nil, &FormatError{File: fp, Msg: "truncated file"}
	}
	if strings.TrimSpace(string(tag)) != shdPtype {
		return nil, &FormatError{File: fp,
			Msg: fmt.Sprintf("unsupported field type %q (expecting %q)", strings.TrimSpace(string(tag)), shdPtype)}
	}

	// record 2: dimensions
	if _, err := b.Seek(8*recl, io.SeekStart); err != nil {
		return nil, &FormatError{File: fp, Msg: err.Error()}
	}
	nfreq := int(mmio.ReadInt32(b))
	ntheta := int(mmio.ReadInt32(b))
	_ = mmio.ReadInt32(b) // nsx
	_ = mmio.ReadInt32(b) // nsy
	nsd := int(mmio.ReadInt32(b))
	nrd := int(mmio.ReadInt32(b))
	nrr := int(mmio.ReadInt32(b))
	_ = mmio.ReadFloat32(b) // stabilizing attenuation
	if nfreq != 1 || ntheta != 1 || nsd != 1 {
		return nil, &FormatError{File: fp,
			Msg: fmt.Sprintf("expecting a single frequency, bearing and source depth, found %d/%d/%d", nfreq, ntheta, nsd)}
	}

	pf := &PressureField{
		Depths: make([]float64, nrd),
		Ranges: make([]float64, nrr),
		P:      make([][]complex128, nrd),
	}
	if _, err := b.Seek(32*recl, io.SeekStart); err != nil {
		return nil, &FormatError{File: fp, Msg: err.Error()}
	}
	for i := range pf.Depths {
		pf.Depths[i] = float64(mmio.ReadFloat32(b))
	}
	if _, err := b.Seek(36*recl, io.SeekStart); err != nil {
		return nil, &FormatError{File: fp, Msg: err.Error()}
	}
	for i := range pf.Ranges {
		pf.Ranges[i] = float64(mmio.ReadFloat32(b))
	}

	// one record per receiver depth, starting at record 10, interleaved
	// real/imaginary float32 pairs
	for ird := 0; ird < nrd; ird++ {
		if _, err := b.Seek(int64(10+ird)*4*recl, io.SeekStart); err != nil {
			return nil, &FormatError{File: fp, Msg: err.Error()}
		}
		row := make([]complex128, nrr)
		for j := range row {
			re := mmio.ReadFloat32(b)
			im := mmio.ReadFloat32(b)
			row[j] = complex(float64(re), float64(im))
		}
		pf.P[ird] = row
	}
	return pf, nil
}
