// Package document читает файлы плана и переопределений в обобщенный вид.
// JSON читается тем же парсером, что и YAML.
package document

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/iwtcode/cyclerAdapter/drivers"
	"gopkg.in/yaml.v3"
)

// LoadPlan читает файл плана эксперимента.
func LoadPlan(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать план %s: %w", path, err)
	}
	doc, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParsePlan разбирает YAML/JSON документ. Корень должен быть отображением.
func ParsePlan(data []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse plan document: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

// LoadOverrides читает отображение переопределений с сохранением порядка ключей.
func LoadOverrides(path string) (drivers.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать переопределения %s: %w", path, err)
	}
	o, err := ParseOverrides(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

func ParseOverrides(data []byte) (drivers.Overrides, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("overrides must be a mapping, got %s", nodeKind(mapping.Kind))
	}

	overrides := make(drivers.Overrides, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, valueNode := mapping.Content[i], mapping.Content[i+1]
		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("override %q: %w", key.Value, err)
		}
		overrides = append(overrides, drivers.Override{Key: key.Value, Value: value})
	}
	return overrides, nil
}

// ParseAssignments разбирает аргументы вида key=value. Значение типизируется
// по правилам скаляров YAML: 4.2 - число, 75 - целое, остальное - строка.
func ParseAssignments(args []string) (drivers.Overrides, error) {
	overrides := make(drivers.Overrides, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q, expected key=value", arg)
		}
		var value interface{}
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
			value = raw
		}
		overrides = append(overrides, drivers.Override{Key: key, Value: value})
	}
	return overrides, nil
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}
