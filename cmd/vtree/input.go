package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/vtree/codec"
	"github.com/signadot/vtree/model"
	"github.com/signadot/vtree/value"
)

// readDoc reads the document in file, or stdin for "-".
func readDoc(cfg *MainConfig, cc *cli.Context, file string) (*value.Value, error) {
	var r io.Reader
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	v, err := codec.Read(r, cfg.format(file))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return v, nil
}

// loadModel reads the document named by the optional trailing argument
// into a new model.
func loadModel(cfg *MainConfig, cc *cli.Context, args []string) (*model.Model, error) {
	file := "-"
	switch len(args) {
	case 0:
	case 1:
		file = args[0]
	default:
		return nil, fmt.Errorf("%w: at most one file, got %v", cli.ErrUsage, args)
	}
	v, err := readDoc(cfg, cc, file)
	if err != nil {
		return nil, err
	}
	log := newLog(os.Stderr, cfg.Verbose)
	opts := []model.Option{model.WithLogger(log)}
	if cfg.Types != nil {
		opts = append(opts, model.WithTypes(cfg.Types))
	}
	if cfg.Verbose {
		opts = append(opts, model.WithObserver(model.LogObserver{Logger: log}))
	}
	m := model.New(opts...)
	m.Load(v)
	return m, nil
}

// outFormat is the format results are written in: the input format unless
// -j or -y says otherwise.
func (cfg *MainConfig) outFormat(args []string) codec.Format {
	if len(args) == 0 {
		return cfg.format("-")
	}
	return cfg.format(args[len(args)-1])
}
