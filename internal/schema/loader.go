package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadModel reads an interface model JSON file and parses it.
func LoadModel(path string) (*InterfaceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interface model: %w", err)
	}

	model, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interface model %s: %w", path, err)
	}
	return model, nil
}

// ParseModel parses an interface model from its JSON form and applies
// the structural checks generation depends on. Semantic validation
// (cross-item type resolution, cycle detection) happens upstream; this
// only rejects models that are malformed at the document level.
func ParseModel(data []byte) (*InterfaceModel, error) {
	var model InterfaceModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("invalid model JSON: %w", err)
	}

	if err := validateModel(&model); err != nil {
		return nil, err
	}
	return &model, nil
}

func validateModel(m *InterfaceModel) error {
	if m.Namespace == "" {
		return fmt.Errorf("model is missing a namespace")
	}

	for _, e := range m.Enums {
		if e.Name == "" {
			return fmt.Errorf("enum is missing a name")
		}
		if len(e.Values) == 0 {
			return fmt.Errorf("enum %s has no values", e.Name)
		}
		seen := make(map[string]bool, len(e.Values))
		for _, v := range e.Values {
			if v == "" {
				return fmt.Errorf("enum %s has an empty value name", e.Name)
			}
			if seen[v] {
				return fmt.Errorf("enum %s declares value %s twice", e.Name, v)
			}
			seen[v] = true
		}
	}

	for _, r := range m.Records {
		if r.Name == "" {
			return fmt.Errorf("record is missing a name")
		}
		seen := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if f.Name == "" {
				return fmt.Errorf("record %s has an unnamed field", r.Name)
			}
			if seen[f.Name] {
				return fmt.Errorf("record %s declares field %s twice", r.Name, f.Name)
			}
			seen[f.Name] = true
			if err := validateType(f.Type); err != nil {
				return fmt.Errorf("record %s field %s: %w", r.Name, f.Name, err)
			}
		}
	}

	for _, f := range m.Functions {
		if f.Name == "" {
			return fmt.Errorf("function is missing a name")
		}
		for _, a := range f.Arguments {
			if a.Name == "" {
				return fmt.Errorf("function %s has an unnamed argument", f.Name)
			}
			if err := validateType(a.Type); err != nil {
				return fmt.Errorf("function %s argument %s: %w", f.Name, a.Name, err)
			}
		}
		if f.Return != nil {
			if err := validateType(*f.Return); err != nil {
				return fmt.Errorf("function %s return: %w", f.Name, err)
			}
		}
	}

	for _, o := range m.Objects {
		if o.Name == "" {
			return fmt.Errorf("object is missing a name")
		}
	}

	return nil
}

func validateType(t TypeReference) error {
	switch t.Kind {
	case KindBoolean, KindU32, KindU64, KindFloat, KindDouble, KindString, KindBytes:
		return nil
	case KindEnum, KindRecord, KindObject:
		if t.Name == "" {
			return fmt.Errorf("%s reference is missing a name", t.Kind)
		}
		return nil
	case KindOptional:
		if t.Inner == nil {
			return fmt.Errorf("optional reference is missing its inner type")
		}
		return validateType(*t.Inner)
	default:
		return fmt.Errorf("unknown type kind %q", string(t.Kind))
	}
}
