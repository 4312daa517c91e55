package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/componentry/ffigen/internal/codegen"
	"github.com/componentry/ffigen/internal/config"
	"github.com/componentry/ffigen/internal/schema"
)

type InitOptions struct {
	ProjectName string
	Language    string
	Package     string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	filesystem FileSystem
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand() *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
	}
}

func (c *Controller) Init(ctx context.Context) error {
	cmd := NewInitCommand()
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if err := ic.scaffoldProject(options); err != nil {
		return fmt.Errorf("failed to scaffold project: %w", err)
	}

	fmt.Printf("Created %s binding project: %s\n", options.Language, options.ProjectName)
	return nil
}

// namespacePattern keeps project names usable as component namespaces:
// they prefix every emitted native symbol.
var namespacePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	var projectName string
	var language string
	var packageName string

	form := ic.createInitForm(&projectName, &language, &packageName)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return &InitOptions{
		ProjectName: projectName,
		Language:    language,
		Package:     packageName,
	}, nil
}

func (ic *InitCommand) createInitForm(projectName, language, packageName *string) *huh.Form {
	languages := codegen.DefaultRegistry.Languages()
	options := make([]huh.Option[string], 0, len(languages))
	for _, lang := range languages {
		options = append(options, huh.NewOption(lang, lang))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Component name").
				Description("Namespace of the native component (prefixes its exported symbols)").
				Value(projectName).
				Validate(ic.validateProjectName),

			huh.NewSelect[string]().
				Title("Language").
				Description("Host language for the generated bindings").
				Options(options...).
				Value(language),

			huh.NewInput().
				Title("Package").
				Description("Generated package name (empty uses the default)").
				Value(packageName),
		),
	)
}

func (ic *InitCommand) validateProjectName(s string) error {
	if s == "" {
		return fmt.Errorf("component name cannot be empty")
	}
	if !namespacePattern.MatchString(s) {
		return fmt.Errorf("component name must match %s", namespacePattern)
	}
	if _, err := ic.filesystem.Stat(s); err == nil {
		return fmt.Errorf("directory %s already exists", s)
	}
	return nil
}

// scaffoldProject writes the project directory: ffigen.json plus a
// model skeleton ready to edit.
func (ic *InitCommand) scaffoldProject(options *InitOptions) error {
	if err := ic.filesystem.MkdirAll(options.ProjectName, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	cfg := config.Config{
		Name:     options.ProjectName,
		Model:    "./interface.json",
		Language: options.Language,
		Output:   "./bindings",
		Package:  options.Package,
	}
	cfgData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := ic.filesystem.WriteFile(filepath.Join(options.ProjectName, "ffigen.json"), append(cfgData, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write ffigen.json: %w", err)
	}

	model := schema.InterfaceModel{
		Namespace: options.ProjectName,
		Enums:     []schema.EnumDefinition{},
		Records:   []schema.RecordDefinition{},
		Functions: []schema.FunctionDefinition{
			{Name: "hello", Arguments: []schema.Argument{{Name: "name", Type: schema.String()}}},
		},
		Objects: []schema.ObjectDefinition{},
	}
	modelData, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	if err := ic.filesystem.WriteFile(filepath.Join(options.ProjectName, "interface.json"), append(modelData, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write interface.json: %w", err)
	}

	return nil
}
