package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Merge(t *testing.T) {
	base := Fields{"title": "Designer", "city": "Austin", "years": 4}
	patch := Fields{"title": "FF&E Specialist"}

	merged := base.Merge(patch)

	assert.Equal(t, Fields{"title": "FF&E Specialist", "city": "Austin", "years": 4}, merged)
	// исходная карта не меняется
	assert.Equal(t, "Designer", base["title"])
}

func TestFields_MergeNil(t *testing.T) {
	var base Fields
	merged := base.Merge(Fields{"a": 1})
	assert.Equal(t, Fields{"a": 1}, merged)
}

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "associate_profile", DraftKey(ResourceAssociateProfile, ""))
	assert.Equal(t, "firm_profile:firm-7", DraftKey(ResourceFirmProfile, "firm-7"))
}

func TestDraftRecord_JSONLayout(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	rec := DraftRecord{
		Payload:   Fields{"title": "X"},
		UpdatedAt: ts,
		Source:    DraftSourceLocal,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "X", flat["title"])
	assert.Equal(t, "2026-03-01T10:30:00Z", flat["updatedAt"])
	assert.Equal(t, "local", flat["_source"])

	var decoded DraftRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Fields{"title": "X"}, decoded.Payload)
	assert.True(t, ts.Equal(decoded.UpdatedAt))
	assert.Equal(t, DraftSourceLocal, decoded.Source)
}

func TestDraftRecord_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{oops"},
		{name: "array", data: "[1,2]"},
		{name: "null", data: "null"},
		{name: "bad timestamp", data: `{"updatedAt":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec DraftRecord
			assert.Error(t, json.Unmarshal([]byte(tt.data), &rec))
		})
	}
}

func TestDecode(t *testing.T) {
	profile, err := Decode[AssociateProfile](Fields{
		"title":       "FF&E Specialist",
		"specialties": []any{"hospitality", "lighting"},
		"unknown":     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "FF&E Specialist", profile.Title)
	assert.Equal(t, []string{"hospitality", "lighting"}, profile.Specialties)
}

func TestToFields(t *testing.T) {
	fields, err := ToFields(FirmProfile{Name: "Studio North", TeamSize: 12})
	require.NoError(t, err)
	assert.Equal(t, Fields{"name": "Studio North", "teamSize": float64(12)}, fields)
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"associate", "firm", "vendor", "admin"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), role)
	}

	_, err := ParseRole("guest")
	assert.Error(t, err)

	assert.True(t, RoleFirm.ProfileRole())
	assert.False(t, RoleAdmin.ProfileRole())
}

func TestStudioInput_Apply(t *testing.T) {
	studio := Studio{Name: "Old", Location: "Denver", Description: "desc"}
	StudioInput{Name: "New"}.Apply(&studio)

	assert.Equal(t, "New", studio.Name)
	assert.Equal(t, "Denver", studio.Location)
	assert.Equal(t, "desc", studio.Description)
}
