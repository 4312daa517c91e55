package codegen

import (
	"fmt"
	"sort"
)

// Registry manages available binding generators
type Registry struct {
	generators map[string]func(packageName string) Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]func(packageName string) Generator),
	}
	return r
}

// Register adds a new generator factory to the registry
func (r *Registry) Register(language string, factory func(packageName string) Generator) {
	r.generators[language] = factory
}

// Get returns a generator for the specified language. The packageName
// is the target-language package the generated source declares; an
// empty string lets the generator pick its namespace-derived default.
func (r *Registry) Get(language, packageName string) (Generator, error) {
	factory, exists := r.generators[language]
	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	return factory(packageName), nil
}

// Languages returns the supported language names, sorted, so listings
// are stable run to run.
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.generators))
	for lang := range r.generators {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
