package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestCharacterCard_JSONFieldNames(t *testing.T) {
	card := CharacterCard{
		ID:        "abc-123",
		Name:      "Amy",
		EyeColor:  "green",
		HairStyle: "bob",
		Tags:      []string{"hero"},
		CreatedAt: 1700000000000,
	}

	data, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	jsonStr := string(data)

	for _, field := range []string{
		`"id":"abc-123"`,
		`"eyeColor":"green"`,
		`"hairStyle":"bob"`,
		`"tags":["hero"]`,
		`"createdAt":1700000000000`,
	} {
		if !strings.Contains(jsonStr, field) {
			t.Errorf("JSON missing field %q in %s", field, jsonStr)
		}
	}
}

func TestCharacterCard_ApplyKeepsIdentity(t *testing.T) {
	card := CharacterCard{ID: "id-1", Name: "Old", Tags: []string{"a"}, CreatedAt: 42}

	f := Fields{Name: "New", Hobbies: "chess", Tags: []string{"b", "c"}}
	card.Apply(f)

	if card.ID != "id-1" || card.CreatedAt != 42 {
		t.Errorf("Apply() changed identity: id=%q createdAt=%d", card.ID, card.CreatedAt)
	}

	if card.Name != "New" || card.Hobbies != "chess" {
		t.Errorf("Apply() did not overwrite fields: %+v", card)
	}

	// Tags must be copied, not aliased
	f.Tags[0] = "mutated"

	if card.Tags[0] != "b" {
		t.Errorf("Apply() aliased the tag slice: %v", card.Tags)
	}
}

func TestCharacterCard_FieldsRoundTrip(t *testing.T) {
	card := CharacterCard{ID: "x", Name: "Zara", Gender: "f", Tags: []string{"t"}, Others: "notes", CreatedAt: 7}

	var copyCard CharacterCard

	copyCard.ID = card.ID
	copyCard.CreatedAt = card.CreatedAt
	copyCard.Apply(card.Fields())

	if !reflect.DeepEqual(card, copyCard) {
		t.Errorf("Apply(Fields()) = %+v, want %+v", copyCard, card)
	}
}

func TestCharacterCard_HasTag(t *testing.T) {
	card := CharacterCard{Tags: []string{"Hero", "mage"}}

	if !card.HasTag("Hero") {
		t.Error("HasTag(Hero) = false, want true")
	}

	if card.HasTag("hero") {
		t.Error("HasTag(hero) = true, want false (exact match)")
	}
}

func TestCharacterCard_ShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"", ""},
		{"ab", "ab"},
		{"abcd", "abcd"},
		{"abcdef-123", "abcd"},
	}

	for _, tt := range tests {
		if got := (CharacterCard{ID: tt.id}).ShortID(); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewMode
		wantErr bool
	}{
		{"", ViewNamePhoto, false},
		{"name-photo", ViewNamePhoto, false},
		{"name-only", ViewNameOnly, false},
		{"grid", "", true},
	}

	for _, tt := range tests {
		got, err := ParseViewMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseViewMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}

		if got != tt.want {
			t.Errorf("ParseViewMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if ViewNameOnly.Toggle() != ViewNamePhoto || ViewNamePhoto.Toggle() != ViewNameOnly {
		t.Error("Toggle() does not switch between the two modes")
	}
}
