// Package cli implements the command-line interface for atlas-packer.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/woozymasta/atlas-packer/internal/vars"
)

// Root defines global CLI flags.
type Root struct{}

// CmdVersion prints build metadata.
type CmdVersion struct{}

// Execute runs the version command.
func (c *CmdVersion) Execute(args []string) error {
	vars.Print()
	return nil
}

// Run parses arguments and executes the selected command.
func Run(args []string) error {
	var root Root

	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])

	prog := parser.Name
	if _, err := parser.AddCommand(
		"pack",
		"Pack images into atlas pages + JSON sidecar",
		fmt.Sprintf(
			`Pack a directory of images into PNG atlas pages and a JSON description.

Examples:
  %s pack ./sprites -g 2
  %s pack ./sprites ./out -W 512 -H 512 -R
  %s pack ./sprites -r distance -s short -2`,
			prog, prog, prog,
		),
		&CmdPack{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"query",
		"Compare packing variants and report efficiency",
		fmt.Sprintf(
			`Try every sort/rule/rotation combination and rank the results.

Examples:
  %s query ./sprites
  %s query ./sprites -g 2 -W 1024 -H 1024`,
			prog, prog,
		),
		&CmdQuery{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"unpack",
		"Extract images from an atlas + sidecar pair",
		fmt.Sprintf(
			`Crop every sidecar entry back out of its page.

Examples:
  %s unpack ui.json
  %s unpack ui.json -O ./extracted --force`,
			prog, prog,
		),
		&CmdUnpack{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"build",
		"Build projects from .atlas-packer.yaml",
		fmt.Sprintf(
			`Run multiple pack jobs from a config file.

Examples:
  %s build ./my-atlas-config.yaml
  %s build --project ui --project icons`,
			prog, prog,
		),
		&CmdBuild{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"version",
		"Print build metadata",
		fmt.Sprintf(
			`Show build information.

Examples:
  %s version`,
			prog,
		),
		&CmdVersion{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)

	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
