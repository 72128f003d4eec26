package config_test

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Honkonx/wine-mice/internal/config"
)

func parse(t *testing.T, args ...string) (*config.CLI, *kong.Context) {
	t.Helper()
	var cli config.CLI
	parser, err := kong.New(&cli, kong.Name("micewine"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestDefaults(t *testing.T) {
	cli, ctx := parse(t, "run")
	assert.Equal(t, "run", ctx.Command())
	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, "127.0.0.1", cli.Run.Provider.Host)
	assert.Equal(t, 7941, cli.Run.Provider.Port)
	assert.Equal(t, 2*time.Second, cli.Run.Provider.ReceiveTimeout)
	assert.Equal(t, 60, cli.Run.Provider.TimeoutThreshold)
	assert.Equal(t, 250*time.Millisecond, cli.Run.Provider.ResetPause)
	assert.Empty(t, cli.Run.Monitor.Addr)
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("MICEWINE_JOYSTICK_SERVER_IP", "10.0.0.2")
	t.Setenv("MICEWINE_LOG_LEVEL", "debug")

	cli, _ := parse(t, "run", "--provider.port=8000", "--monitor.addr=:9000")
	assert.Equal(t, "10.0.0.2", cli.Run.Provider.Host)
	assert.Equal(t, 8000, cli.Run.Provider.Port)
	assert.Equal(t, ":9000", cli.Run.Monitor.Addr)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestObjectsFormat(t *testing.T) {
	cli, ctx := parse(t, "objects", "--format=yaml")
	assert.Equal(t, "objects", ctx.Command())
	assert.Equal(t, "yaml", cli.Objects.Format)

	var c config.CLI
	parser, err := kong.New(&c)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"objects", "--format=xml"})
	assert.Error(t, err)
}
