package workload

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// A Script is a named list of statements.
type Script struct {
	Name       string      `yaml:"name"`
	Statements []Statement `yaml:"statements"`
}

// ParseScript decodes a YAML script from r. Unknown fields are rejected.
func ParseScript(r io.Reader) (Script, error) {
	var script Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		if err == io.EOF {
			return script, nil
		}
		return Script{}, fmt.Errorf("cannot decode script: %w", err)
	}
	return script, nil
}

// Run executes the statements of the script against store. See Store.Batch.
func (sc Script) Run(store *Store) error {
	return store.Batch(sc.Statements)
}
