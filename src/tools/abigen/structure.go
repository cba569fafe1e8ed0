package abigen

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Contract is the parsed abi.yaml: the package to emit into and the
// constant groups, in declaration order.
type Contract struct {
	Package string       `yaml:"package"`
	Groups  []ConstGroup `yaml:"groups"`
}

// ConstGroup is one commented const block.
type ConstGroup struct {
	Comment string  `yaml:"comment"`
	Consts  []Const `yaml:"consts"`
}

// Const is a single named value.  Values stay strings so the emitted
// source keeps the declared radix (0x... survives as 0x...).
type Const struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Load reads and validates a contract file.
func Load(path string) (*Contract, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Contract
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if c.Package == "" {
		return nil, fmt.Errorf("%s: no package name declared", path)
	}
	seen := make(map[string]bool)
	for _, g := range c.Groups {
		if len(g.Consts) == 0 {
			return nil, fmt.Errorf("%s: empty const group", path)
		}
		for _, k := range g.Consts {
			if seen[k.Name] {
				return nil, fmt.Errorf("%s: duplicate constant %s", path, k.Name)
			}
			seen[k.Name] = true
			if _, err := strconv.ParseUint(k.Value, 0, 64); err != nil {
				return nil, fmt.Errorf("%s: constant %s has bad value %q", path, k.Name, k.Value)
			}
		}
	}
	return &c, nil
}

// Values flattens the contract into name -> numeric value.
func (c *Contract) Values() map[string]uint64 {
	m := make(map[string]uint64)
	for _, g := range c.Groups {
		for _, k := range g.Consts {
			v, _ := strconv.ParseUint(k.Value, 0, 64)
			m[k.Name] = v
		}
	}
	return m
}
