package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// ResourceType identifies a kind of tenant resource handled by the sync engine.
type ResourceType string

const (
	ResourceAssociateProfile ResourceType = "associate_profile"
	ResourceFirmProfile      ResourceType = "firm_profile"
	ResourceVendorProfile    ResourceType = "vendor_profile"
	ResourceStudios          ResourceType = "studios"
)

// Draft sources stored alongside the payload
const (
	DraftSourceRemote   = "remote"
	DraftSourceLocal    = "local"
	DraftSourceFallback = "fallback"
)

// Reserved keys of the persisted draft object.
const (
	draftUpdatedAtKey = "updatedAt"
	draftSourceKey    = "_source"
)

// Fields is an open map of domain attributes. Its schema is resource-specific
// and opaque to the engine.
type Fields map[string]any

// Clone returns a shallow copy of the fields.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Merge returns a new map with patch fields written over f.
// Fields of f that patch does not mention are preserved unchanged.
func (f Fields) Merge(patch Fields) Fields {
	merged := f.Clone()
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// DraftRecord is the locally persisted copy of one tenant resource.
type DraftRecord struct {
	UpdatedAt time.Time
	Payload   Fields
	Source    string
}

// DraftKey builds the storage key of a (resource type, scope key) pair.
// Globally singular resources use an empty scope.
func DraftKey(rt ResourceType, scope string) string {
	if scope == "" {
		return string(rt)
	}
	return string(rt) + ":" + scope
}

// MarshalJSON stores the record as a flat object: payload fields plus updatedAt.
func (r DraftRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Payload)+2)
	for k, v := range r.Payload {
		flat[k] = v
	}
	flat[draftUpdatedAtKey] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	if r.Source != "" {
		flat[draftSourceKey] = r.Source
	}
	return json.Marshal(flat)
}

// UnmarshalJSON restores a record written by MarshalJSON.
func (r *DraftRecord) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if flat == nil {
		return fmt.Errorf("draft record is null")
	}

	r.UpdatedAt = time.Time{}
	if raw, ok := flat[draftUpdatedAtKey].(string); ok {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("invalid updatedAt: %w", err)
		}
		r.UpdatedAt = ts
	}
	r.Source, _ = flat[draftSourceKey].(string)

	delete(flat, draftUpdatedAtKey)
	delete(flat, draftSourceKey)
	r.Payload = flat
	return nil
}

// Decode converts open fields into a typed view through their JSON form.
func Decode[T any](fields Fields) (T, error) {
	var out T
	data, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("failed to marshal fields: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode fields: %w", err)
	}
	return out, nil
}

// ToFields converts a typed value into open fields through its JSON form.
func ToFields(v any) (Fields, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	var out Fields
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to convert value to fields: %w", err)
	}
	return out, nil
}
