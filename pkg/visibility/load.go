package visibility

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
)

// ErrInvalid wraps every validation failure of a policy file.
var ErrInvalid = errors.New("visibility: invalid policy")

type fileRule struct {
	Pages      []string `yaml:"pages"`
	ExtraPanel bool     `yaml:"extraPanel"`
}

type file struct {
	Stages map[string]fileRule `yaml:"stages"`
}

// Load reads a policy table from YAML:
//
//	stages:
//	  planning:
//	    pages: [mood-tracker, sleep-tracker]
//	    extraPanel: false
//
// Every stage must be listed with at least one known, non-duplicated page.
func Load(r io.Reader, catalog *page.Catalog) (*Policy, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	p := &Policy{}
	seen := make(map[stage.Stage]bool, stage.Count)
	for name, fr := range f.Stages {
		s, ok := stage.Parse(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalid, name)
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: stage %q listed twice", ErrInvalid, s)
		}
		if len(fr.Pages) == 0 {
			return nil, fmt.Errorf("%w: stage %q has no pages", ErrInvalid, name)
		}
		rule := Rule{ExtraPanel: fr.ExtraPanel}
		dup := make(map[page.ID]bool, len(fr.Pages))
		for _, raw := range fr.Pages {
			id := page.ID(raw)
			if !catalog.Contains(id) {
				return nil, fmt.Errorf("%w: stage %q: unknown page %q", ErrInvalid, name, raw)
			}
			if dup[id] {
				return nil, fmt.Errorf("%w: stage %q: duplicate page %q", ErrInvalid, name, raw)
			}
			dup[id] = true
			rule.Pages = append(rule.Pages, id)
		}
		p.rules[s] = rule
		seen[s] = true
	}
	for _, s := range stage.All() {
		if !seen[s] {
			return nil, fmt.Errorf("%w: stage %q missing", ErrInvalid, s)
		}
	}
	return p, nil
}

// LoadFile reads a policy from path; an empty path yields the default.
func LoadFile(path string, catalog *page.Catalog) (*Policy, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, catalog)
}
