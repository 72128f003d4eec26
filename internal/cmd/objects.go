package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/Honkonx/wine-mice/apitypes"
	"github.com/Honkonx/wine-mice/joystick"
)

type Objects struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json" short:"f"`
}

// Run is called by Kong when the objects command is executed.
func (o *Objects) Run() error {
	return writeObjects(os.Stdout, o.Format)
}

func objectTable() apitypes.ObjectsResponse {
	resp := apitypes.ObjectsResponse{DataSize: joystick.StandardFormat().DataSize}
	joystick.EnumerateObjects(joystick.KindAll, func(inst joystick.ObjectInstance) bool {
		resp.Objects = append(resp.Objects, apitypes.Object{
			Name:     inst.Name,
			Kind:     inst.Kind.String(),
			Instance: inst.Instance,
			Offset:   inst.Offset,
			Type:     inst.Type,
			Flags:    uint32(inst.Flags),
		})
		return true
	})
	return resp
}

func writeObjects(w io.Writer, format string) error {
	table := objectTable()
	var (
		data []byte
		err  error
	)
	switch format {
	case "", "json":
		data, err = json.MarshalIndent(table, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(table)
	case "toml":
		data, err = toml.Marshal(table)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode objects: %w", err)
	}
	_, err = w.Write(data)
	return err
}
