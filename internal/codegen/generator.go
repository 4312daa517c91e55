package codegen

import "github.com/componentry/ffigen/internal/schema"

// Generator is the interface all language-specific binding generators implement
type Generator interface {
	// Generate emits complete binding source for the interface model.
	// Items that fail generation are reported through the returned error;
	// the returned bytes always hold every item that generated cleanly.
	Generate(model *schema.InterfaceModel) ([]byte, error)

	// Language returns the name of the target language (e.g., "kotlin")
	Language() string

	// FileExtension returns the extension for generated files (e.g., ".kt")
	FileExtension() string
}
