package calculator

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed factors.yaml
var defaultFactors []byte

// Tables bundles the emission and credit tables.
type Tables struct {
	Emissions *Table
	Credits   *Table
}

type activityYAML struct {
	Key       string `yaml:"key"`
	Label     string `yaml:"label"`
	Unit      string `yaml:"unit"`
	KgPerUnit string `yaml:"kg_per_unit"`
}

type tablesYAML struct {
	Emissions []activityYAML `yaml:"emissions"`
	Credits   []activityYAML `yaml:"credits"`
}

// LoadDefaults returns the built-in factor tables.
func LoadDefaults() (*Tables, error) {
	return Parse(defaultFactors)
}

// LoadFile reads factor tables from a YAML file shaped like the built-in one.
// An empty path yields the defaults.
func LoadFile(path string) (*Tables, error) {
	if path == "" {
		return LoadDefaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read factors file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML factor tables.
func Parse(data []byte) (*Tables, error) {
	var raw tablesYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse factors: %w", err)
	}

	emissions, err := buildTable(Emission, raw.Emissions)
	if err != nil {
		return nil, err
	}
	credits, err := buildTable(Credit, raw.Credits)
	if err != nil {
		return nil, err
	}
	return &Tables{Emissions: emissions, Credits: credits}, nil
}

func buildTable(kind Kind, rows []activityYAML) (*Table, error) {
	activities := make([]Activity, 0, len(rows))
	for _, r := range rows {
		f, err := decimal.NewFromString(r.KgPerUnit)
		if err != nil {
			return nil, fmt.Errorf("%s table: factor for %q: %w", kind, r.Key, err)
		}
		activities = append(activities, Activity{Key: r.Key, Label: r.Label, Unit: r.Unit, Factor: f})
	}
	return NewTable(kind, activities)
}
