package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/transformable"
	"gopkg.in/yaml.v3"
)

// replayFile is the on-disk format: an element setup plus a gesture script.
// Every field is optional except steps; config and ticker overlay the
// library defaults.
type replayFile struct {
	Name         string                        `yaml:"name"`
	Capabilities []string                      `yaml:"capabilities"`
	State        *transformable.TransformState `yaml:"state"`
	Config       transformable.Config          `yaml:"config"`
	Ticker       transformable.TickerConfig    `yaml:"ticker"`
	Steps        []transformable.ScriptStep    `yaml:"steps"`
	MaxFrames    int                           `yaml:"maxFrames"`
}

var capabilityNames = map[string]transformable.Capability{
	"move":   transformable.CapMove,
	"rotate": transformable.CapRotate,
	"scale":  transformable.CapScale,
	"all":    transformable.CapAll,
}

// loadReplayFile reads and validates path.
func loadReplayFile(path string) (*replayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseReplayFile(data)
}

func parseReplayFile(data []byte) (*replayFile, error) {
	f := &replayFile{
		Config: transformable.DefaultConfig(),
		Ticker: transformable.DefaultTickerConfig(),
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse replay file: %w", err)
	}
	if err := f.Config.Validate(); err != nil {
		return nil, err
	}
	if _, err := f.capabilities(); err != nil {
		return nil, err
	}
	runner, err := transformable.NewScriptRunner(f.Steps)
	if err != nil {
		return nil, err
	}
	if held := runner.HeldFingers(); len(held) > 0 {
		return nil, fmt.Errorf("%w: fingers %v are never released", transformable.ErrScript, held)
	}
	if f.MaxFrames < 0 {
		return nil, fmt.Errorf("maxFrames %d is negative", f.MaxFrames)
	}
	return f, nil
}

// capabilities resolves the capability names; none means all.
func (f *replayFile) capabilities() (transformable.Capability, error) {
	if len(f.Capabilities) == 0 {
		return transformable.CapAll, nil
	}
	var caps transformable.Capability
	for _, name := range f.Capabilities {
		c, ok := capabilityNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown capability %q", name)
		}
		caps |= c
	}
	return caps, nil
}
