package codegen

import (
	"github.com/componentry/ffigen/internal/codegen/kotlin"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	// Register Kotlin generator
	DefaultRegistry.Register("kotlin", func(packageName string) Generator {
		return kotlin.NewGenerator(packageName)
	})

	// Register kt as an alias for kotlin
	DefaultRegistry.Register("kt", func(packageName string) Generator {
		return kotlin.NewGenerator(packageName)
	})
}
