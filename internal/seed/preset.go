package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile. Profiles can be declared in a YAML file
// so QA datasets live outside the binary.
type Preset struct {
	Name            string  `yaml:"name"`
	Users           int     `yaml:"users"`
	Posts           int     `yaml:"posts"`
	CommentsPerPost int     `yaml:"comments_per_post"`
	LikeRatio       float64 `yaml:"like_ratio"`
	GardenerRatio   float64 `yaml:"gardener_ratio"`
	SkipBcrypt      bool    `yaml:"skip_bcrypt"`
}

// BuiltinPresets are always available without a preset file.
var BuiltinPresets = []Preset{
	{Name: "tiny", Users: 5, Posts: 10, CommentsPerPost: 2, LikeRatio: 0.2, GardenerRatio: 0.3},
	{Name: "demo", Users: 20, Posts: 60, CommentsPerPost: 4, LikeRatio: 0.15, GardenerRatio: 0.3},
	{Name: "stress", Users: 500, Posts: 5000, CommentsPerPost: 8, LikeRatio: 0.05, GardenerRatio: 0.1, SkipBcrypt: true},
}

// LoadPresets reads additional presets from a YAML file.
func LoadPresets(path string) ([]Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var doc struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}

	for i, p := range doc.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
	}
	return doc.Presets, nil
}

// FindPreset resolves a preset by name, file presets shadowing built-ins.
func FindPreset(name string, extra []Preset) (Preset, bool) {
	for _, p := range extra {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range BuiltinPresets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Options converts a preset into seeder options.
func (p Preset) Options() Options {
	opts := DefaultOptions()
	if p.Users > 0 {
		opts.NumUsers = p.Users
	}
	if p.Posts > 0 {
		opts.NumPosts = p.Posts
	}
	if p.CommentsPerPost > 0 {
		opts.CommentsPerPost = p.CommentsPerPost
	}
	if p.LikeRatio > 0 {
		opts.LikeRatio = p.LikeRatio
	}
	if p.GardenerRatio > 0 {
		opts.GardenerRatio = p.GardenerRatio
	}
	opts.SkipBcrypt = p.SkipBcrypt
	return opts
}
