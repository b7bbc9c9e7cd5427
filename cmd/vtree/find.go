package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/vtree/model"
	"github.com/signadot/vtree/query"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	m, err := loadModel(cfg.MainConfig, cc, args[1:])
	if err != nil {
		return err
	}
	nodes, err := query.Select(m.Root(), q)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		path := n.KPath()
		if path == "" {
			path = "."
		}
		line := path
		if cfg.Long {
			line = fmt.Sprintf("%s\t%s", path, cell(m.Data(n, model.TypeColumn, model.DisplayRole)))
			if v := m.Data(n, model.ValueColumn, model.DisplayRole); v != nil {
				line += "\t" + cell(v)
			}
		}
		if _, err := fmt.Fprintln(cc.Out, line); err != nil {
			return err
		}
	}
	if len(nodes) == 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
