package calendar

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a month catalog override.
//
//	months:
//	  - index: 9
//	    name: Ọnwa Ana
//	    alt_name: Ọnwa Ala
//	    greg_hint: October
type catalogFile struct {
	Months []MonthDefinition `yaml:"months"`
}

// ParseCatalogYAML builds a catalog from YAML. The file may list fewer
// than 13 months; the missing ones are synthesized on lookup.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	var errs []error
	seen := make(map[int]bool, len(file.Months))
	for i, def := range file.Months {
		if def.Index < 1 || def.Index > MonthsPerYear {
			errs = append(errs, fmt.Errorf("months[%d]: index must be between 1 and %d, got %d", i, MonthsPerYear, def.Index))
			continue
		}
		if strings.TrimSpace(def.Name) == "" {
			errs = append(errs, fmt.Errorf("months[%d]: name is required", i))
		}
		if seen[def.Index] {
			errs = append(errs, fmt.Errorf("months[%d]: duplicate index %d", i, def.Index))
		}
		seen[def.Index] = true
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	return NewCatalog(file.Months), nil
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalogYAML(data)
}
