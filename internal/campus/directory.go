// Package campus maps universities to the towns they are in.
package campus

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed universities.yaml
var defaultData []byte

// University is one entry of the directory
type University struct {
	Name string `yaml:"name" json:"name"`
	Town string `yaml:"town" json:"town"`
}

type document struct {
	Universities []University `yaml:"universities"`
	MajorTowns   []string     `yaml:"major_towns"`
}

// Directory is an immutable university/town lookup. Lookups ignore case.
type Directory struct {
	universities []University
	byName       map[string]University
	majorTowns   []string
}

// Parse builds a Directory from YAML
func Parse(data []byte) (*Directory, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("campus: parse directory: %w", err)
	}

	d := &Directory{
		byName:     make(map[string]University, len(doc.Universities)),
		majorTowns: doc.MajorTowns,
	}
	for _, u := range doc.Universities {
		u.Name = strings.TrimSpace(u.Name)
		u.Town = strings.TrimSpace(u.Town)
		if u.Name == "" {
			return nil, fmt.Errorf("campus: university without a name (town %q)", u.Town)
		}
		key := strings.ToLower(u.Name)
		if _, dup := d.byName[key]; dup {
			return nil, fmt.Errorf("campus: duplicate university %q", u.Name)
		}
		d.byName[key] = u
		d.universities = append(d.universities, u)
	}
	sort.Strings(d.majorTowns)
	return d, nil
}

var (
	defaultOnce sync.Once
	defaultDir  *Directory
)

// Default returns the directory compiled into the binary
func Default() *Directory {
	defaultOnce.Do(func() {
		d, err := Parse(defaultData)
		if err != nil {
			panic(err)
		}
		defaultDir = d
	})
	return defaultDir
}

// TownOf returns the town of a university and whether it is known
func (d *Directory) TownOf(university string) (string, bool) {
	u, ok := d.byName[strings.ToLower(strings.TrimSpace(university))]
	return u.Town, ok
}

// IsUniversity reports whether name is in the directory
func (d *Directory) IsUniversity(name string) bool {
	_, ok := d.TownOf(name)
	return ok
}

// IsTown reports whether any university is in the given town
func (d *Directory) IsTown(town string) bool {
	town = strings.TrimSpace(town)
	for _, u := range d.universities {
		if strings.EqualFold(u.Town, town) {
			return true
		}
	}
	return false
}

// UniversitiesIn returns the sorted names of universities in a town
func (d *Directory) UniversitiesIn(town string) []string {
	town = strings.TrimSpace(town)
	names := []string{}
	for _, u := range d.universities {
		if strings.EqualFold(u.Town, town) {
			names = append(names, u.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Universities returns every university name, sorted
func (d *Directory) Universities() []string {
	names := make([]string, 0, len(d.universities))
	for _, u := range d.universities {
		names = append(names, u.Name)
	}
	sort.Strings(names)
	return names
}

// Towns returns the distinct towns, sorted
func (d *Directory) Towns() []string {
	seen := make(map[string]bool)
	towns := []string{}
	for _, u := range d.universities {
		if !seen[u.Town] {
			seen[u.Town] = true
			towns = append(towns, u.Town)
		}
	}
	sort.Strings(towns)
	return towns
}

// MajorTowns returns the quick-pick towns, sorted
func (d *Directory) MajorTowns() []string {
	return append([]string(nil), d.majorTowns...)
}
