package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the optional knobs around a splitting run. The job file
// says what to split; Settings say how outputs are decorated.
type Settings struct {
	// Tag settings
	ModifyTags bool `json:"modify_tags"`

	// Cover art settings
	CoverArtResize       bool `json:"cover_art_resize"`
	CoverArtMaxSize      int  `json:"cover_art_max_size"`
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// UI settings
	WaitForKeypress bool `json:"wait_for_keypress"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ModifyTags: true,

		CoverArtResize:       true,
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		WaitForKeypress: true,
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
