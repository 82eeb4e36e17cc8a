package config

import (
	"fmt"
	"os"

	"scoutviz/internal/weights"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// Profile is the TOML scouting profile. Weights are an array of tables so
// their order survives decoding.
//
//	palette = ["#1d4ed8", "#dc2626"]
//
//	[[weights]]
//	key = "attacking"
//	value = 40
type Profile struct {
	Weights []WeightEntry `toml:"weights"`
	Palette []string      `toml:"palette"`
}

// WeightEntry is one [[weights]] table.
type WeightEntry struct {
	Key   string `toml:"key"`
	Value int    `toml:"value"`
}

// DefaultWeights is used when no profile supplies weights.
var DefaultWeights = []WeightEntry{
	{Key: "attacking", Value: 40},
	{Key: "defending", Value: 30},
	{Key: "playmaking", Value: 30},
}

// LoadProfile reads a TOML profile. A missing file is not an error.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return Profile{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("failed to stat profile: %w", err)
	}

	var p Profile
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warn().Str("path", path).Interface("keys", undecoded).Msg("Ignoring unknown profile keys")
	}

	if len(p.Weights) > 0 {
		if _, err := p.WeightSet(); err != nil {
			return Profile{}, fmt.Errorf("invalid weights in %s: %w", path, err)
		}
	}

	log.Debug().Str("path", path).Int("weights", len(p.Weights)).Msg("Loaded scouting profile")
	return p, nil
}

// WeightSet builds the profile's default weights, falling back to
// DefaultWeights.
func (p Profile) WeightSet() (weights.WeightSet, error) {
	entries := p.Weights
	if len(entries) == 0 {
		entries = DefaultWeights
	}
	ws := make([]weights.Weight, len(entries))
	for i, e := range entries {
		ws[i] = weights.Weight{Key: e.Key, Value: e.Value}
	}
	return weights.NewWeightSet(ws...)
}
