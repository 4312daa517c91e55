package codegen_test

import (
	"fmt"
	"log"

	"github.com/componentry/ffigen/internal/codegen"
	"github.com/componentry/ffigen/internal/codegen/kotlin"
	"github.com/componentry/ffigen/internal/schema"
)

func Example_usage() {
	// A small interface model: one enum, one record, one function
	status := schema.Enum("Status")
	model := &schema.InterfaceModel{
		Namespace: "accounts",
		Enums: []schema.EnumDefinition{
			{Name: "Status", Values: []string{"ACTIVE", "INACTIVE"}},
		},
		Records: []schema.RecordDefinition{
			{
				Name: "User",
				Fields: []schema.Field{
					{Name: "id", Type: schema.U64()},
					{Name: "name", Type: schema.String()},
					{Name: "status", Type: status},
				},
			},
		},
		Functions: []schema.FunctionDefinition{
			{
				Name:      "getStatus",
				Arguments: []schema.Argument{{Name: "id", Type: schema.U64()}},
				Return:    &status,
			},
		},
	}

	// Method 1: direct usage
	ktGen := kotlin.NewGenerator("com.example.accounts")
	ktCode, err := ktGen.Generate(model)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Kotlin bindings generated successfully")

	// Method 2: through the registry
	gen, err := codegen.DefaultRegistry.Get("kotlin", "com.example.accounts")
	if err != nil {
		log.Fatal(err)
	}

	code, err := gen.Generate(model)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Generated %s bindings (%s)\n", gen.Language(), gen.FileExtension())
	_ = code
	_ = ktCode

	// Output:
	// Kotlin bindings generated successfully
	// Generated kotlin bindings (.kt)
}
