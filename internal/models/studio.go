package models

import "time"

// StudioStatus is the publication state of a studio listing.
type StudioStatus string

const (
	StudioStatusDraft     StudioStatus = "draft"
	StudioStatusPublished StudioStatus = "published"
)

// Studio is one firm studio listing.
type Studio struct {
	CreatedAt   time.Time    `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"-"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty" yaml:"-"`
	ID          string       `json:"id" yaml:"id"`
	FirmID      string       `json:"firmId,omitempty" yaml:"firmId"`
	Name        string       `json:"name" yaml:"name"`
	Location    string       `json:"location,omitempty" yaml:"location"`
	Description string       `json:"description,omitempty" yaml:"description"`
	Status      StudioStatus `json:"status" yaml:"status"`
}

// StudioInput is the create/update body of a studio listing.
// Empty fields are left unchanged on update.
type StudioInput struct {
	Name        string `json:"name,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Apply copies the non-empty input fields onto the studio.
func (in StudioInput) Apply(s *Studio) {
	if in.Name != "" {
		s.Name = in.Name
	}
	if in.Location != "" {
		s.Location = in.Location
	}
	if in.Description != "" {
		s.Description = in.Description
	}
}
