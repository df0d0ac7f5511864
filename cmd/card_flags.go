package cmd

import (
	"strings"

	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/imaging"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/spf13/pflag"
)

// cardFlags binds one flag per mutable card field
type cardFlags struct {
	name        string
	photo       string
	tags        string
	gender      string
	birthday    string
	height      string
	weight      string
	eyeColor    string
	hairStyle   string
	personality string
	hobbies     string
	others      string
}

func (c *cardFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "Card name (required)")
	fs.StringVar(&c.photo, "photo", "", "Photo: image URL or local image file to embed")
	fs.StringVar(&c.tags, "tags", "", `Comma separated tags, e.g. "mage, elf"`)
	fs.StringVar(&c.gender, "gender", "", "Gender")
	fs.StringVar(&c.birthday, "birthday", "", "Birthday")
	fs.StringVar(&c.height, "height", "", "Height")
	fs.StringVar(&c.weight, "weight", "", "Weight")
	fs.StringVar(&c.eyeColor, "eye-color", "", "Eye color")
	fs.StringVar(&c.hairStyle, "hair-style", "", "Hair style")
	fs.StringVar(&c.personality, "personality", "", "Personality notes")
	fs.StringVar(&c.hobbies, "hobbies", "", "Hobbies")
	fs.StringVar(&c.others, "others", "", "Anything else")
}

// apply overlays the flags that were set on fs onto base.
// Flags left unset keep the value from base.
func (c *cardFlags) apply(fs *pflag.FlagSet, base model.Fields) (model.Fields, error) {
	f := base

	strs := []struct {
		flag  string
		value string
		dst   *string
	}{
		{"name", c.name, &f.Name},
		{"gender", c.gender, &f.Gender},
		{"birthday", c.birthday, &f.Birthday},
		{"height", c.height, &f.Height},
		{"weight", c.weight, &f.Weight},
		{"eye-color", c.eyeColor, &f.EyeColor},
		{"hair-style", c.hairStyle, &f.HairStyle},
		{"personality", c.personality, &f.Personality},
		{"hobbies", c.hobbies, &f.Hobbies},
		{"others", c.others, &f.Others},
	}

	for _, s := range strs {
		if fs.Changed(s.flag) {
			*s.dst = s.value
		}
	}

	if fs.Changed("tags") {
		f.Tags = core.ParseTags(c.tags)
	}

	if fs.Changed("photo") {
		if err := setPhoto(&f, c.photo); err != nil {
			return f, err
		}
	}

	return f, nil
}

// setPhoto stores URLs and data URIs as they are and routes anything else
// through the normalizer as a local file.
func setPhoto(f *model.Fields, value string) error {
	value = strings.TrimSpace(value)
	f.PhotoPath = ""

	if value == "" || imaging.IsRemote(value) || imaging.IsEmbedded(value) {
		f.Photo = value
		return nil
	}

	path, err := expandPath(value)
	if err != nil {
		return err
	}

	f.Photo = ""
	f.PhotoPath = path

	return nil
}
