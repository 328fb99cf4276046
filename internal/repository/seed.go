package repository

import (
	_ "embed"
	"fmt"
	"os"

	"hostelhub/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the demo data the in-memory store starts with
type Seed struct {
	Listings []model.Listing `yaml:"listings"`
	Users    []model.User    `yaml:"users"`
}

// LoadSeed reads seed data from path, or the built-in data when path is empty
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML and checks that IDs are unique
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	listingIDs := make(map[string]bool, len(seed.Listings))
	for _, l := range seed.Listings {
		if l.ID == "" || listingIDs[l.ID] {
			return nil, fmt.Errorf("seed listing %q: missing or duplicate id", l.Name)
		}
		listingIDs[l.ID] = true
	}

	userIDs := make(map[string]bool, len(seed.Users))
	for _, u := range seed.Users {
		if u.ID == "" || userIDs[u.ID] {
			return nil, fmt.Errorf("seed user %q: missing or duplicate id", u.Email)
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("seed user %q: unknown role %q", u.Email, u.Role)
		}
		userIDs[u.ID] = true
	}

	return &seed, nil
}
