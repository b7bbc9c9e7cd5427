package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/vtree/codec"
	"github.com/signadot/vtree/edit"
)

func editDoc(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		cfg.Edit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	script, err := cfg.script()
	if err != nil {
		return err
	}
	s, err := edit.Parse(script)
	if err != nil {
		return err
	}
	m, err := loadModel(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	f := cfg.outFormat(args)
	// diffs are computed on uncolored text
	before, err := codec.Encode(f, m.Value())
	if err != nil {
		return err
	}
	if err := s.Apply(m); err != nil {
		return err
	}
	if !cfg.Diff {
		return codec.Write(cc.Out, f, m.Value(), cfg.encOpts(cc.Out)...)
	}
	after, err := codec.Encode(f, m.Value())
	if err != nil {
		return err
	}
	return writeDiff(cc.Out, string(before), string(after), cfg.colorize(cc.Out))
}

func (cfg *EditConfig) script() ([]byte, error) {
	switch {
	case cfg.Script != "" && cfg.ScriptFile != "":
		return nil, fmt.Errorf("%w: -s and -f are exclusive", cli.ErrUsage)
	case cfg.Script != "":
		return []byte(cfg.Script), nil
	case cfg.ScriptFile != "":
		d, err := os.ReadFile(cfg.ScriptFile)
		if err != nil {
			return nil, fmt.Errorf("could not read script: %w", err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: edit requires -s or -f", cli.ErrUsage)
}

// writeDiff writes a line diff of a and b, each line prefixed with '-',
// '+' or ' '.
func writeDiff(w io.Writer, a, b string, colors bool) error {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	del, ins := color.New(color.FgRed), color.New(color.FgGreen)
	for _, c := range []*color.Color{del, ins} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for _, d := range diffs {
		prefix, c := " ", (*color.Color)(nil)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", ins
		}
		for _, line := range strings.SplitAfter(strings.TrimSuffix(d.Text, "\n"), "\n") {
			line = prefix + strings.TrimSuffix(line, "\n")
			if c != nil {
				line = c.Sprint(line)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
