package version

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// descriptor is the parsed content of version.yaml.
// A nil field means the key was absent or null in the document.
type descriptor struct {
	Version *string
}

var (
	// errNotMapping is returned when the document root is not a key-value mapping.
	errNotMapping = errors.New("document root must be a mapping")
	// errDuplicateKey is returned when two document keys bind to the same field.
	errDuplicateKey = errors.New("duplicate key")
	// errMultipleDocuments is returned when the stream holds more than one document.
	errMultipleDocuments = errors.New("descriptor must contain a single document")
)

// decodeDescriptor reads a single YAML document from r.
// Empty input and a null document produce a descriptor with no fields set.
// The stream must end after the first document.
func decodeDescriptor(r io.Reader) (*descriptor, error) {
	var (
		result  = new(descriptor)
		root    yaml.Node
		decoder = yaml.NewDecoder(r)
	)

	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return result, nil
		}

		return nil, err
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, fmt.Errorf("line %d: %w", extra.Line, errMultipleDocuments)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return result, nil
		}

		node = node.Content[0]
	}

	switch {
	case node.Kind == yaml.MappingNode:
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		return result, nil
	default:
		return nil, fmt.Errorf("line %d: %w", node.Line, errNotMapping)
	}

	if err := bindMapping(node, result); err != nil {
		return nil, err
	}

	return result, nil
}

// bindMapping assigns mapping values to the exported fields of out, which must be
// a pointer to a struct. Keys are compared after the camelCase normalization;
// unknown keys are skipped.
func bindMapping(node *yaml.Node, out any) error {
	target := reflect.ValueOf(out).Elem()
	targetType := target.Type()

	fields := make(map[string]int, targetType.NumField())

	for i := range targetType.NumField() {
		field := targetType.Field(i)
		if !field.IsExported() {
			continue
		}

		fields[fieldKey(field.Name)] = i
	}

	seen := make(map[string]string, len(fields))

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			continue
		}

		key := documentKey(keyNode.Value)

		index, ok := fields[key]
		if !ok {
			continue
		}

		if previous, exists := seen[key]; exists {
			return fmt.Errorf("line %d: %w %q (already set by %q)", keyNode.Line, errDuplicateKey, keyNode.Value, previous)
		}

		seen[key] = keyNode.Value

		if err := valueNode.Decode(target.Field(index).Addr().Interface()); err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
	}

	return nil
}
