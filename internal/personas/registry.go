// Package personas loads and validates evaluator persona definitions.
// Personas are immutable configuration: a default set is embedded at compile
// time, and human-authored JSON files can replace it per run.
package personas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/persona-evaluator/internal/types"
)

//go:embed personas.json
var defaultPersonas []byte

// weightSumTolerance bounds the allowed drift of the enabled-persona weight
// sum from 1.0. Human-authored configs accumulate rounding error.
const weightSumTolerance = 0.001

var validate = validator.New()

// Registry holds the loaded persona set in declaration order. Declaration
// order is load-bearing: the domain classifier resolves similarity ties by
// enumeration order.
type Registry struct {
	personas []*types.Persona
	byKey    map[string]*types.Persona
}

// LoadDefault builds a registry from the embedded default persona set.
func LoadDefault() (*Registry, error) {
	return loadBytes(defaultPersonas, "embedded personas.json")
}

// LoadDir builds a registry from every *.json file in dir, sorted by
// filename. Each file holds either one persona object or an array of them.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to read persona directory %s", dir), Cause: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("no persona files found in %s", dir)}
	}

	var all []*types.Persona
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("failed to read persona file %s", path), Cause: err}
		}
		loaded, err := parsePersonas(data, path)
		if err != nil {
			return nil, err
		}
		all = append(all, loaded...)
	}

	return newRegistry(all)
}

func loadBytes(data []byte, source string) (*Registry, error) {
	loaded, err := parsePersonas(data, source)
	if err != nil {
		return nil, err
	}
	return newRegistry(loaded)
}

// parsePersonas accepts either a single persona object or an array.
func parsePersonas(data []byte, source string) ([]*types.Persona, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []*types.Persona
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("failed to parse %s", source), Cause: err}
		}
		return list, nil
	}

	var one types.Persona
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to parse %s", source), Cause: err}
	}
	return []*types.Persona{&one}, nil
}

func newRegistry(all []*types.Persona) (*Registry, error) {
	reg := &Registry{byKey: make(map[string]*types.Persona)}

	weightSum := 0.0
	for _, p := range all {
		if p.Disabled {
			continue
		}
		if err := validate.Struct(p); err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("persona %q is invalid", p.Key), Cause: err}
		}
		if _, exists := reg.byKey[p.Key]; exists {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate persona key %q", p.Key)}
		}
		reg.personas = append(reg.personas, p)
		reg.byKey[p.Key] = p
		weightSum += p.Weight
	}

	if len(reg.personas) == 0 {
		return nil, &ConfigError{Message: "no enabled personas configured"}
	}
	if math.Abs(weightSum-1.0) > weightSumTolerance {
		return nil, &ConfigError{Message: fmt.Sprintf("enabled persona weights sum to %.4f, expected 1.0", weightSum)}
	}

	return reg, nil
}

// Enabled returns the enabled personas in declaration order.
func (r *Registry) Enabled() []*types.Persona {
	return r.personas
}

// Get returns the persona for key, or nil if unknown.
func (r *Registry) Get(key string) *types.Persona {
	return r.byKey[key]
}

// Len returns the number of enabled personas.
func (r *Registry) Len() int {
	return len(r.personas)
}
