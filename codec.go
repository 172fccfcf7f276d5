package bellhop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// Working-file extensions, input then output.
var workingExts = []string{".env", ".ssp", ".bty", ".ati", ".sbp", ".brc", ".trc",
	".arr", ".ray", ".shd", ".prt", ".log"}

// RemoveWorkingFiles deletes every input/output file sharing the base name.
func RemoveWorkingFiles(base string) {
	for _, ext := range workingExts {
		if _, ok := mmio.FileExists(base + ext); ok {
			mmio.DeleteFile(base + ext)
		}
	}
}

// readTextLines loads a text file, distinguishing a missing file from a
// malformed one before any parsing starts.
func readTextLines(fp string) ([]string, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("%s: %w", fp, ErrFileNotFound)
	}
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, &FormatError{File: fp, Msg: err.Error()}
	}
	return lns, nil
}

// stripComment drops a trailing "!" comment and surrounding whitespace.
func stripComment(ln string) string {
	if i := strings.IndexByte(ln, '!'); i >= 0 {
		ln = ln[:i]
	}
	return strings.TrimSpace(ln)
}

// splitData tokenizes a data line, dropping comments and the "/" line
// terminator the wire format allows.
func splitData(ln string) []string {
	ln = stripComment(ln)
	if i := strings.IndexByte(ln, '/'); i >= 0 {
		ln = ln[:i]
	}
	return strings.Fields(ln)
}

func parseFloats(fp, ln string, want int) ([]float64, error) {
	flds := splitData(ln)
	if want > 0 && len(flds) < want {
		return nil, &FormatError{File: fp,
			Msg: fmt.Sprintf("expected %d values, found %d in line %q", want, len(flds), ln)}
	}
	o := make([]float64, len(flds))
	for i, f := range flds {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &FormatError{File: fp, Msg: fmt.Sprintf("malformed number %q in line %q", f, ln)}
		}
		o[i] = v
	}
	return o, nil
}

func parseInt(fp, ln string) (int, error) {
	flds := splitData(ln)
	if len(flds) == 0 {
		return 0, &FormatError{File: fp, Msg: fmt.Sprintf("expected an integer, found %q", ln)}
	}
	n, err := strconv.Atoi(flds[0])
	if err != nil {
		return 0, &FormatError{File: fp, Msg: fmt.Sprintf("malformed integer %q in line %q", flds[0], ln)}
	}
	return n, nil
}

// unquote extracts the contents of a quoted token ('CVW' -> CVW).
func unquote(s string) string {
	s = stripComment(s)
	if i := strings.IndexByte(s, '\''); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '\''); j >= 0 {
			return s[i+1 : i+1+j]
		}
		return strings.Trim(s, "'")
	}
	return strings.Trim(s, `"`)
}

// ftoa is the wire float format: shortest representation round-tripping
// exactly through ParseFloat.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
