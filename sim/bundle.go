package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioBundle is a set of named simulations, loadable from a YAML file.
//
//	scenarios:
//	  - name: textbook
//	    pages: [7, 0, 1, 2, 0, 3, 0, 4]
//	    frames: 3
//	    algos: [fifo, lru]
type ScenarioBundle struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario describes one reference string and the policies to run over it.
// An empty Algos list means every policy.
type Scenario struct {
	Name   string   `yaml:"name"`
	Pages  []int    `yaml:"pages"`
	Frames int      `yaml:"frames"`
	Algos  []string `yaml:"algos,omitempty"`
	Seed   *int64   `yaml:"seed,omitempty"` // set when the pages were produced by a generator
}

// LoadScenarioBundle reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioBundle(path string) (*ScenarioBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario bundle: %w", err)
	}
	var bundle ScenarioBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing scenario bundle: %w", err)
	}
	return &bundle, nil
}

// Marshal renders the bundle back to YAML.
func (b *ScenarioBundle) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshaling scenario bundle: %w", err)
	}
	return data, nil
}

// Validate checks every scenario; the first failure is returned with its index.
func (b *ScenarioBundle) Validate() error {
	if len(b.Scenarios) == 0 {
		return fmt.Errorf("scenario bundle has no scenarios")
	}
	for i := range b.Scenarios {
		if err := b.Scenarios[i].Validate(); err != nil {
			return fmt.Errorf("scenario[%d] %q: %w", i, b.Scenarios[i].Name, err)
		}
	}
	return nil
}

// Validate applies the same rules as a SimulationRequest to every listed policy.
func (s *Scenario) Validate() error {
	if _, err := s.Policies(); err != nil {
		return err
	}
	frames := s.Frames
	req := SimulationRequest{Pages: s.Pages, Frames: &frames, Algo: DefaultAlgo}
	_, err := req.Validate(Limits{})
	return err
}

// Policies returns the parsed Algos, or every policy when none are listed.
func (s *Scenario) Policies() ([]Policy, error) {
	return ParsePolicies(s.Algos)
}
