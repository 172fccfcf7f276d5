package bellhop

import "strings"

// fatalMarker flags the start of an engine failure report in a .prt log.
const fatalMarker = "*** FATAL ERROR ***"

// ScanPRT scans an engine log (.prt) for a fatal error report and returns
// the captured text, one line per finding. A missing log or a clean run
// returns the empty string.
func ScanPRT(base string) string {
	lns, err := readTextLines(base + ".prt")
	if err != nil {
		return ""
	}
	var sb strings.Builder
	fatal := false
	for _, ln := range lns {
		if fatal && strings.TrimSpace(ln) != "" {
			sb.WriteString(strings.TrimSpace(ln))
			sb.WriteString("\n")
		}
		if strings.Contains(ln, fatalMarker) {
			fatal = true
		}
	}
	return sb.String()
}
