package report

import (
	"os"

	"gopkg.in/yaml.v3"
)

// TimingReport is the structured per-frame log written alongside the
// artifact in debug mode.
type TimingReport struct {
	Version         string        `yaml:"version"`
	Source          string        `yaml:"source"`
	Length          float64       `yaml:"length_seconds"`
	FPS             int           `yaml:"fps"`
	FrameCount      int           `yaml:"frame_count"`
	FrameDurationMS int           `yaml:"frame_duration_ms"`
	Frames          []FrameRecord `yaml:"frames"`
}

// FrameRecord captures one sampled instant: the schedule index, the
// normalized progress sent to the renderer, the element time it maps
// to and the window the frame falls in.
type FrameRecord struct {
	Index       int     `yaml:"index"`
	Progress    float64 `yaml:"progress"`
	ElementTime float64 `yaml:"element_time_seconds"`
	Phase       string  `yaml:"phase"`
	Opacity     float64 `yaml:"opacity"`
}

// Write marshals a report to a YAML file.
func Write(r *TimingReport, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a report from a YAML file.
func Read(path string) (*TimingReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r TimingReport
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
