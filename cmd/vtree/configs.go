package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/vtree/codec"
	"github.com/signadot/vtree/typeset"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='output with color'"`
	Compact bool `cli:"name=c aliases=compact desc='output json on one line'"`
	Verbose bool `cli:"name=v desc='log model changes to stderr'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Types *typeset.Set

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) typesOpt(_ *cli.Context, v string) (any, error) {
	s, err := typeset.ByName(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Types = s
	return s, nil
}

// format gives the format of the input file, which -j and -y override.
func (cfg *MainConfig) format(file string) codec.Format {
	switch {
	case cfg.J:
		return codec.JSON
	case cfg.Y:
		return codec.YAML
	case file == "" || file == "-":
		return codec.JSON
	}
	return codec.FormatOf(file)
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []codec.EncodeOption {
	return []codec.EncodeOption{
		codec.Compact(cfg.Compact),
		codec.Color(cfg.colorize(w)),
	}
}

type ViewConfig struct {
	*MainConfig

	Depth int `cli:"name=d aliases=depth desc='maximum depth to print (default all)'"`
	View  *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type FindConfig struct {
	*MainConfig

	Long bool `cli:"name=l desc='also print the type and value of each match'"`
	Find *cli.Command
}

type EditConfig struct {
	*MainConfig

	Script     string `cli:"name=s desc='the edit script'"`
	ScriptFile string `cli:"name=f desc='read the edit script from a file'"`
	Diff       bool   `cli:"name=diff desc='print a diff instead of the result'"`

	Edit *cli.Command
}
