package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("MICEWINE_CONFIG", "")
	assert.Equal(t, "a.yaml", findUserConfig([]string{"run", "--config=a.yaml"}))
	assert.Equal(t, "b.toml", findUserConfig([]string{"--config", "b.toml", "probe"}))
	assert.Empty(t, findUserConfig([]string{"run", "--config"}))

	t.Setenv("MICEWINE_CONFIG", "env.json")
	assert.Equal(t, "env.json", findUserConfig([]string{"run"}))
}
