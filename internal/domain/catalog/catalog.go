// Package catalog provides the activity seed data the store starts with.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/model"
)

// Sentinel kinds for catalog errors.
var (
	ErrLoad    = errors.New("load catalog failed")
	ErrInvalid = errors.New("invalid catalog")
)

// entry is the YAML shape of one activity in a catalog file.
type entry struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// LoadFile reads a YAML catalog of the form:
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
//
// Entry order in the file becomes catalog order.
func LoadFile(path string) (model.Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	var entries []entry
	if err := k.UnmarshalWithConf("activities", &entries, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	c := make(model.Catalog, 0, len(entries))
	for _, e := range entries {
		c = append(c, model.NamedActivity{
			Name: e.Name,
			Activity: model.Activity{
				Description:     e.Description,
				Schedule:        e.Schedule,
				MaxParticipants: e.MaxParticipants,
				Participants:    e.Participants,
			},
		})
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks names are present and unique and that no activity lists
// the same participant twice.
func Validate(c model.Catalog) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no activities", ErrInvalid)
	}
	names := make(map[string]struct{}, len(c))
	for i, item := range c {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: activity #%d has no name", ErrInvalid, i+1)
		}
		if _, dup := names[item.Name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", ErrInvalid, item.Name)
		}
		names[item.Name] = struct{}{}

		seen := make(map[string]struct{}, len(item.Activity.Participants))
		for _, p := range item.Activity.Participants {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q lists %s twice", ErrInvalid, item.Name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}
