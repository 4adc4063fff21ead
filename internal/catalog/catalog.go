// Package catalog describes the food categories a catalog entry can carry:
// display name, color, icon and the minimum introduction age.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category tags a food in a child's catalog.
type Category string

const (
	Fruits     Category = "fruits"
	Vegetables Category = "vegetables"
	Grains     Category = "grains"
	Proteins   Category = "proteins"
	Dairy      Category = "dairy"
	Other      Category = "other"
)

// Info is the display and gating data for one category.
type Info struct {
	ID     Category `yaml:"id"`
	Name   string   `yaml:"name"`
	Color  string   `yaml:"color"`
	Icon   string   `yaml:"icon"`
	MinAge int      `yaml:"min_age"`
}

type file struct {
	Categories []Info `yaml:"categories"`
}

//go:embed categories.yaml
var defaultTable []byte

// Table is an ordered, read-only set of categories.
type Table struct {
	order []Category
	info  map[Category]Info
}

// Default returns the built-in category table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded category table is invalid: %v", err))
	}
	return t
}

// Load reads a category table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category table %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML category table. The table must define "other",
// which is the fallback for foods whose category is unknown.
func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse category table: %w", err)
	}

	t := &Table{info: make(map[Category]Info, len(f.Categories))}
	for _, c := range f.Categories {
		c.ID = Category(strings.ToLower(strings.TrimSpace(string(c.ID))))
		if c.ID == "" {
			return nil, fmt.Errorf("category without id")
		}
		if _, dup := t.info[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.ID)
		}
		if c.MinAge < 0 {
			return nil, fmt.Errorf("category %q has negative min_age", c.ID)
		}
		if c.Name == "" {
			c.Name = string(c.ID)
		}
		t.order = append(t.order, c.ID)
		t.info[c.ID] = c
	}
	if _, ok := t.info[Other]; !ok {
		return nil, fmt.Errorf("category table must define %q", Other)
	}
	return t, nil
}

// Lookup returns the info for c and whether the table defines it.
func (t *Table) Lookup(c Category) (Info, bool) {
	info, ok := t.info[c]
	return info, ok
}

// Info returns the info for c, falling back to "other".
func (t *Table) Info(c Category) Info {
	if info, ok := t.info[c]; ok {
		return info
	}
	return t.info[Other]
}

// Categories lists the category ids in table order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.order))
	copy(out, t.order)
	return out
}

// Parse resolves user input such as "Fruits" or " dairy " to a category id.
func (t *Table) Parse(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := t.info[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
