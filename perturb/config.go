// SPDX-License-Identifier: MIT

package perturb

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// optionsFile is the on-disk shape of Options. Missing keys keep their
// DefaultOptions values; scratch_capacity allocates the ReduceScratch buffer.
//
//	radius: 0.5
//	percent: 0.8
//	seed: 42
//	workers: 4
//	reduction: scratch
//	scratch_capacity: 256
//	metrics: true
type optionsFile struct {
	Options         `yaml:",inline"`
	ScratchCapacity int `yaml:"scratch_capacity"`
}

// LoadOptions decodes YAML from r on top of DefaultOptions and validates the result.
// Unknown keys are rejected. An empty document yields DefaultOptions.
func LoadOptions(r io.Reader) (Options, error) {
	f := optionsFile{Options: DefaultOptions()}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("perturb: decode options: %w", err)
	}

	opts := f.Options
	if f.ScratchCapacity != 0 {
		buf, err := NewScratchBuffer(f.ScratchCapacity)
		if err != nil {
			return Options{}, err
		}
		opts.Scratch = buf
	}
	if err := validateOptions(opts); err != nil {
		return Options{}, err
	}

	return opts, nil
}

// LoadOptionsFile reads path and delegates to LoadOptions.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("perturb: read options %s: %w", path, err)
	}

	return LoadOptions(bytes.NewReader(data))
}
