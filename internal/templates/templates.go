// Package templates holds the static fallback data used to seed drafts and
// the local studio collection when the portal API cannot be consulted.
package templates

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/portalsync/internal/models"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Set is a parsed collection of fallback templates.
type Set struct {
	Profiles map[models.ResourceType]models.Fields `yaml:"profiles"`
	Studios  []models.Studio                       `yaml:"studios"`
}

// Parse decodes a YAML template document.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for i, s := range set.Studios {
		if s.ID == "" {
			return nil, fmt.Errorf("studio template %d has no id", i)
		}
		if s.Status == "" {
			set.Studios[i].Status = models.StudioStatusDraft
		}
	}
	return &set, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the embedded template set. The embedded document is part of
// the binary, so a parse failure is a programming error.
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Parse(defaultTemplates)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultSet
}

// Profile returns a copy of the fallback template for the resource type.
// Unknown resource types get an empty template.
func (s *Set) Profile(rt models.ResourceType) models.Fields {
	return s.Profiles[rt].Clone()
}

// SampleStudios returns copies of the sample studios assigned to the firm.
func (s *Set) SampleStudios(firmID string) []models.Studio {
	out := make([]models.Studio, len(s.Studios))
	for i, studio := range s.Studios {
		studio.FirmID = firmID
		out[i] = studio
	}
	return out
}
