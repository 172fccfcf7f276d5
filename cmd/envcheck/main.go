package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	bellhop "github.com/oceanum/bellhop"
)

// envcheck loads a .env file set, finalizes and validates it, and reports
// the resulting scenario. With -rewrite it re-encodes the checked
// environment under a new base name.
func main() {
	rewrite := flag.String("rewrite", "", "re-encode the checked environment under this base name")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: envcheck [-rewrite base] file.env")
	}

	e, err := bellhop.ReadEnv(flag.Arg(0))
	if err != nil {
		log.Fatalf("Fatal error: read failed: %v", err)
	}
	if err := e.Check(); err != nil {
		log.Fatalf("Fatal error: check failed: %v", err)
	}

	fmt.Printf("name:        %s\n", e.Name)
	fmt.Printf("frequency:   %g Hz\n", e.Frequency)
	fmt.Printf("depth:       %g m (max %g m)\n", e.Depth, e.DepthMax)
	fmt.Printf("soundspeed:  %s interpolation\n", e.SoundSpeedInterp)
	fmt.Printf("surface:     %s\n", e.SurfaceBoundary)
	fmt.Printf("bottom:      %s (%g m/s, %g kg/m3)\n", e.BottomBoundary, e.BottomSoundSpeed, e.BottomDensity)
	fmt.Printf("sources:     %d at %s m\n", len(e.SourceDepth), fmtVec(e.SourceDepth))
	fmt.Printf("receivers:   %d depths x %d ranges\n", len(e.ReceiverDepth), len(e.ReceiverRange))
	fmt.Printf("beams:       %d over [%g, %g] deg\n", e.BeamNum, e.BeamAngleMin, e.BeamAngleMax)

	if *rewrite != "" {
		task := e.Task
		if task == "" {
			task = bellhop.TaskCoherent
		}
		if err := e.WriteEnv(task, *rewrite); err != nil {
			log.Fatalf("Fatal error: write failed: %v", err)
		}
		fmt.Printf("rewrote %s.env\n", *rewrite)
	}
}

func fmtVec(v []float64) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = fmt.Sprintf("%g", x)
	}
	return "[" + strings.Join(s, " ") + "]"
}
