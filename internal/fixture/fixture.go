// Package fixture loads league snapshots from YAML files and runs the
// reveal engine over them offline, or pushes them to a running service.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
)

// ErrInvalidFixture is returned when a fixture file cannot be read or does
// not describe a league snapshot.
var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is one league's clock and data as a test scenario.
type Fixture struct {
	League    league.League
	Timestamp model.Timestamp
	Games     []model.Game
	Teams     []model.Team
	Standings []model.Standing
}

// document is the on-disk shape. Nested sections use the same field names
// as the JSON wire format and are converted through it.
type document struct {
	League    string      `yaml:"league"`
	Timestamp interface{} `yaml:"timestamp"`
	Games     interface{} `yaml:"games"`
	Teams     interface{} `yaml:"teams"`
	Standings interface{} `yaml:"standings"`
}

// Load reads and parses the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML fixture. The league is required; the timestamp is
// optional so clockless scenarios can be expressed.
func Parse(data []byte) (*Fixture, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	l, err := league.Parse(doc.League)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	f := &Fixture{League: l}
	if doc.Timestamp != nil {
		raw, err := json.Marshal(doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: timestamp: %w", ErrInvalidFixture, err)
		}
		if f.Timestamp, err = model.DecodeTimestamp(l, raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
		}
	}
	if err := section("games", doc.Games, &f.Games); err != nil {
		return nil, err
	}
	if err := section("teams", doc.Teams, &f.Teams); err != nil {
		return nil, err
	}
	if err := section("standings", doc.Standings, &f.Standings); err != nil {
		return nil, err
	}
	return f, nil
}

func section(name string, in interface{}, out interface{}) error {
	if in == nil {
		return nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidFixture, name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidFixture, name, err)
	}
	return nil
}
