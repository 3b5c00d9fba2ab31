package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"svg2gif/internal/config"
	"svg2gif/internal/engine"
	"svg2gif/internal/system"
)

func main() {
	system.InitResourceLimits()

	for _, d := range []string{"input", "output"} {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Path to an SVG or GIF (default: the most recent file in input/)")
	outputDirPtr := flag.String("output-dir", "output", "Directory for the rendered artifact")
	namePtr := flag.String("name", "", "Artifact base name (default: derived from the input file)")
	durationPtr := flag.Float64("duration", 0, "Animation length in seconds (0 = detect from the source)")
	fpsPtr := flag.Int("fps", 0, "Frames per second, 5-30 (0 = detect from the source)")
	leadInPtr := flag.Float64("lead-in", 0, "Blank hold before the animation, seconds")
	leadOutPtr := flag.Float64("lead-out", 0, "Blank hold after the animation, seconds")
	fadeInPtr := flag.Float64("fade-in", 0, "Fade-in ramp length, seconds")
	fadeOutPtr := flag.Float64("fade-out", 0, "Fade-out ramp length, seconds")
	formatPtr := flag.String("format", "gif", "Output format: gif or apng")
	browserPtr := flag.String("browser", "", "Path to a Chromium binary (default: search PATH)")
	debugPtr := flag.Bool("debug", false, "Write a timing report next to the artifact")

	flag.Parse()

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestInput("input")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put an SVG or GIF in input/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected input: %s\n", inputPath)
	}

	name := *namePtr
	if name == "" {
		base := filepath.Base(inputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		name = strings.ReplaceAll(name, " ", "_")
	}

	settings := &config.ConversionSettings{
		InputPath:         inputPath,
		OutputDir:         *outputDirPtr,
		ArtifactName:      name,
		AnimationDuration: *durationPtr,
		FPS:               *fpsPtr,
		LeadIn:            *leadInPtr,
		LeadOut:           *leadOutPtr,
		FadeIn:            *fadeInPtr,
		FadeOut:           *fadeOutPtr,
		Format:            *formatPtr,
		BrowserPath:       *browserPtr,
		Debug:             *debugPtr,
	}

	project := engine.NewProject(settings)

	var g errgroup.Group
	g.Go(project.Run)
	for e := range project.Events() {
		switch e.Percent {
		case engine.ProgressFailed:
			fmt.Printf("[!] %s\n", e.Message)
		case engine.ProgressDone:
			// Reported below once Run returns.
		default:
			fmt.Printf("[>] %3d%% %s\n", e.Percent, e.Message)
		}
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[-] Conversion failed: %v", err)
	}

	path, _ := project.ArtifactPath()
	fmt.Printf("[+++] Done! Result: %s\n", path)
}
