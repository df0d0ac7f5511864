package model

import "time"

// CharacterCard is a single archived character record.
//
// JSON names match the archive export format and must not change.
type CharacterCard struct {
	// ID is the opaque unique identifier and storage key
	ID string `json:"id"`

	// Name is the required display label
	Name string `json:"name"`

	// Photo is empty, a remote URL, or an embedded data URI
	Photo string `json:"photo"`

	Gender    string `json:"gender"`
	Birthday  string `json:"birthday"`
	Height    string `json:"height"`
	Weight    string `json:"weight"`
	EyeColor  string `json:"eyeColor"`
	HairStyle string `json:"hairStyle"`

	// Tags are free-form labels used for filtering
	Tags []string `json:"tags"`

	Personality string `json:"personality"`
	Hobbies     string `json:"hobbies"`
	Others      string `json:"others"`

	// CreatedAt is the creation time in epoch milliseconds, never mutated
	CreatedAt int64 `json:"createdAt"`
}

// Fields is the mutable part of a card: everything except ID and CreatedAt.
type Fields struct {
	Name  string
	Photo string

	// PhotoPath, when set, names a local image that is normalized into
	// Photo on create or update. It is never stored.
	PhotoPath string

	Gender      string
	Birthday    string
	Height      string
	Weight      string
	EyeColor    string
	HairStyle   string
	Tags        []string
	Personality string
	Hobbies     string
	Others      string
}

// Fields returns the mutable fields of the card.
func (c CharacterCard) Fields() Fields {
	return Fields{
		Name:        c.Name,
		Photo:       c.Photo,
		Gender:      c.Gender,
		Birthday:    c.Birthday,
		Height:      c.Height,
		Weight:      c.Weight,
		EyeColor:    c.EyeColor,
		HairStyle:   c.HairStyle,
		Tags:        append([]string(nil), c.Tags...),
		Personality: c.Personality,
		Hobbies:     c.Hobbies,
		Others:      c.Others,
	}
}

// Apply overwrites every mutable field of the card with f.
// ID and CreatedAt are left as they are.
func (c *CharacterCard) Apply(f Fields) {
	c.Name = f.Name
	c.Photo = f.Photo
	c.Gender = f.Gender
	c.Birthday = f.Birthday
	c.Height = f.Height
	c.Weight = f.Weight
	c.EyeColor = f.EyeColor
	c.HairStyle = f.HairStyle
	c.Tags = append([]string(nil), f.Tags...)
	c.Personality = f.Personality
	c.Hobbies = f.Hobbies
	c.Others = f.Others
}

// Created returns CreatedAt as a time.Time.
func (c CharacterCard) Created() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

// HasTag reports whether the card carries the exact tag.
func (c CharacterCard) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// ShortID returns the leading characters of the ID used as a compact label.
func (c CharacterCard) ShortID() string {
	const n = 4

	if len(c.ID) <= n {
		return c.ID
	}

	return c.ID[:n]
}
