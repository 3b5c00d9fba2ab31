// Package engine sequences one conversion run: timing detection,
// schedule planning, frame materialization, fade compositing and loop
// assembly, in that order, with no internal parallelism. The rendering
// session is stateful and must see an ordered stream of calls.
package engine

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"svg2gif/internal/analyzer"
	"svg2gif/internal/browser"
	"svg2gif/internal/capture"
	"svg2gif/internal/config"
	"svg2gif/internal/effects"
	"svg2gif/internal/loop"
	"svg2gif/internal/report"
	"svg2gif/internal/schedule"
	"svg2gif/internal/source"
	"svg2gif/internal/system"
)

// ErrBusy is returned when a run is requested while another holds the
// rendering session. Runs are rejected, never queued.
var ErrBusy = errors.New("a conversion is already running")

// One rendering session per process.
var runGate sync.Mutex

const (
	defaultViewport = 800
	deviceScale     = 2
)

// Project owns one conversion run.
type Project struct {
	Settings *config.ConversionSettings

	// NewSurface opens the rendering session for a markup input.
	// Replaceable in tests; defaults to a headless Chromium session.
	NewSurface func(browser.Options) (browser.Surface, error)

	events chan Progress
}

func NewProject(settings *config.ConversionSettings) *Project {
	return &Project{
		Settings: settings,
		NewSurface: func(opts browser.Options) (browser.Surface, error) {
			path, err := system.FindBrowser(opts.BrowserPath)
			if err != nil {
				return nil, err
			}
			opts.BrowserPath = path
			return browser.NewChromeSurface(opts)
		},
		events: make(chan Progress, 64),
	}
}

// Events is the run's progress stream. It is closed when the run ends.
func (p *Project) Events() <-chan Progress {
	return p.events
}

// ArtifactPath is where the run writes its output.
func (p *Project) ArtifactPath() (string, error) {
	enc, err := loop.ForFormat(p.Settings.Format)
	if err != nil {
		return "", err
	}
	name := p.Settings.ArtifactName
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return filepath.Join(p.Settings.OutputDir, name+"."+enc.Ext()), nil
}

// Run executes the pipeline to completion. There is no cancellation
// and no retry: a run ends in success, error or process termination.
func (p *Project) Run() error {
	if !runGate.TryLock() {
		return ErrBusy
	}
	defer runGate.Unlock()
	defer close(p.events)

	start := time.Now()
	err := p.run()
	if err != nil {
		p.terminal(ProgressFailed, fmt.Sprintf("conversion failed: %v", err))
		return err
	}

	path, _ := p.ArtifactPath()
	p.terminal(ProgressDone, fmt.Sprintf("conversion finished in %.1fs: %s", time.Since(start).Seconds(), path))
	return nil
}

func (p *Project) run() error {
	s := p.Settings

	encoder, err := loop.ForFormat(s.Format)
	if err != nil {
		return err
	}
	artifactPath, err := p.ArtifactPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", s.OutputDir, err)
	}

	// Per-run scratch area, removed success or failure.
	scratch, err := os.MkdirTemp("", "svg2gif_")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	in, err := source.Open(s.InputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	materializer, err := p.prepare(in, scratch)
	if err != nil {
		return err
	}

	// Detection may have filled in duration and rate; bound them now.
	s.Clamp()

	sched := schedule.Plan(s.AnimationDuration, s.FPS, s.LeadIn, s.LeadOut)
	p.notify(0, fmt.Sprintf("sampling %d frames at %dfps over %.2fs", sched.FrameCount, s.FPS, s.TotalTime()))

	frames, err := materializer.Materialize(sched, p.notify)
	if err != nil {
		return err
	}

	env := effects.NewEnvelope(s, sched.FrameCount)
	frames = effects.Composite(frames, env)

	p.notify(75, fmt.Sprintf("assembling %d frames into %s", len(frames), filepath.Base(artifactPath)))
	art := loop.Assemble(frames, sched.FrameDurationMS)
	defer art.Release()

	if err := encoder.Encode(artifactPath, art); err != nil {
		return err
	}
	p.notify(85, fmt.Sprintf("artifact saved (%d frames, %dfps)", len(art.Images), s.FPS))

	if s.Debug {
		if err := p.writeReport(sched, env, artifactPath); err != nil {
			log.Printf("[!] timing report not written: %v", err)
		}
	}

	p.notify(90, "cleaning up temporary files")
	return nil
}

// prepare resolves timing for the input and builds the materializer
// for its kind. Markup goes through the browser; an existing raster
// loop replays its own frames.
func (p *Project) prepare(in source.Input, scratch string) (*capture.Materializer, error) {
	s := p.Settings

	if s.AnimationDuration <= 0 || s.FPS == 0 {
		det, err := analyzer.ForInput(in)
		if err != nil {
			return nil, err
		}
		timing, err := det.Detect()
		if err != nil {
			return nil, err
		}
		if s.AnimationDuration <= 0 {
			s.AnimationDuration = timing.Duration
		}
		if s.FPS == 0 {
			s.FPS = config.ClampFPS(det.Rate())
		}
		p.notify(0, fmt.Sprintf("detected %.2fs at %dfps", s.AnimationDuration, s.FPS))
	}

	switch in := in.(type) {
	case *source.MarkupInput:
		width, height := defaultViewport, defaultViewport
		if w, h, err := in.Dimensions(); err == nil && w >= 1 && h >= 1 {
			width, height = int(w), int(h)
		}
		system.CheckAvailableMemory(uint64(width*height) * 4 * deviceScale * deviceScale * 64)

		harnessURL, err := browser.WriteHarness(scratch, in.Markup(), s.AnimationDuration)
		if err != nil {
			return nil, err
		}

		opts := browser.Options{
			BrowserPath: s.BrowserPath,
			HarnessPath: harnessURL,
			Width:       width,
			Height:      height,
		}
		return &capture.Materializer{
			OpenSurface: func() (browser.Surface, error) { return p.NewSurface(opts) },
			DeviceScale: deviceScale,
		}, nil

	case *source.RasterInput:
		return &capture.Materializer{
			OpenSurface: func() (browser.Surface, error) { return capture.NewGIFSurface(in.GIF()) },
			DeviceScale: 1,
			Settle:      time.Millisecond,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported input %T", in)
	}
}

func (p *Project) writeReport(sched *schedule.Schedule, env *effects.Envelope, artifactPath string) error {
	s := p.Settings
	r := &report.TimingReport{
		Version:         "1.0",
		Source:          s.InputPath,
		Length:          s.AnimationDuration,
		FPS:             s.FPS,
		FrameCount:      sched.FrameCount,
		FrameDurationMS: sched.FrameDurationMS,
	}
	for i, sample := range sched.Samples {
		r.Frames = append(r.Frames, report.FrameRecord{
			Index:       i,
			Progress:    sample.Progress,
			ElementTime: sample.Progress * s.AnimationDuration,
			Phase:       sample.Phase.String(),
			Opacity:     env.Opacity(i),
		})
	}
	path := strings.TrimSuffix(artifactPath, filepath.Ext(artifactPath)) + ".timing.yaml"
	return report.Write(r, path)
}
