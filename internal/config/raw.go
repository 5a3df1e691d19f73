package config

// Raw* structs mirror the YAML file with pointer fields so the effective
// builder can distinguish "absent" from zero values.

// RawWindowBinding is one app's target as written in the file.
type RawWindowBinding struct {
	Screen *int   `yaml:"screen"`
	Space  *int   `yaml:"space"`
	Frame  *Frame `yaml:"frame"`
	// Maximize is shorthand for a full-screen frame.
	Maximize *bool `yaml:"maximize"`
}

// RawArrangement is one named topology arrangement.
type RawArrangement struct {
	// ScreenSpaces is the topology signature: one entry per physical
	// screen, each the number of spaces on that screen.
	ScreenSpaces []int                       `yaml:"screen_spaces"`
	Default      *RawWindowBinding           `yaml:"default"`
	Windows      map[string]RawWindowBinding `yaml:"windows"`
}

// RawConfig is the file-level document.
type RawConfig struct {
	LogLevel      *string                   `yaml:"log_level"`
	Notifications *bool                     `yaml:"notifications"`
	EdgeThreshold *float64                  `yaml:"edge_threshold"`
	Hotkey        *string                   `yaml:"hotkey"`
	ExcludedApps  []string                  `yaml:"excluded_apps"`
	AppFrames     map[string]Frame          `yaml:"app_frames"`
	Arrangements  map[string]RawArrangement `yaml:"arrangements"`
	// ArrangementOrder pins the match order when signatures overlap;
	// unlisted arrangements follow in name order.
	ArrangementOrder []string `yaml:"arrangement_order"`
}
