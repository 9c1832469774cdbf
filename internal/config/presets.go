package config

import "sort"

var presets = map[string]func() *Config{
	"cylindrical_inner": DefaultConfig,
	"coarse": func() *Config {
		c := DefaultConfig()
		c.ZAxis.Count, c.ZAxis.Step = 151, 0.02
		c.RAxis.Count, c.RAxis.Step = 61, 0.02
		c.Rebin = 1
		return c
	},
	"root_bins": func() *Config {
		c := DefaultConfig()
		c.ZAxis.Origin, c.ZAxis.Count = 1, DefaultZCount+1
		c.RAxis.Origin, c.RAxis.Count = 1, DefaultRCount+1
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
