package configpaths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Honkonx/wine-mice/internal/configpaths"
)

func TestConfigCandidatePathsUserFile(t *testing.T) {
	tests := map[string]struct {
		file string
		pick func(j, y, t []string) []string
	}{
		"json": {"my.json", func(j, _, _ []string) []string { return j }},
		"yaml": {"my.yaml", func(_, y, _ []string) []string { return y }},
		"yml":  {"my.YML", func(_, y, _ []string) []string { return y }},
		"toml": {"my.toml", func(_, _, t []string) []string { return t }},
		"none": {"my.conf", func(j, _, _ []string) []string { return j }},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tt.file)
			got := tt.pick(j, y, tm)
			if assert.NotEmpty(t, got) {
				assert.Equal(t, tt.file, got[0])
			}
		})
	}
}

func TestConfigCandidatePathsDefaults(t *testing.T) {
	j, y, tm := configpaths.ConfigCandidatePaths("")
	for _, p := range j {
		assert.Equal(t, ".json", filepath.Ext(p))
	}
	for _, p := range tm {
		assert.Equal(t, ".toml", filepath.Ext(p))
	}
	assert.Len(t, y, 2*len(tm))

	if dir := configpaths.SystemConfigDir(); dir != "" {
		assert.Contains(t, j, filepath.Join(dir, "config.json"))
	}
}
