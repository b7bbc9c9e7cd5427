package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/vtree/codec"
	"github.com/signadot/vtree/tree"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	path := args[0]
	args = args[1:]
	m, err := loadModel(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	var nodes []*tree.Node
	if strings.Contains(path, "*") {
		nodes, err = m.Root().Select(path)
	} else {
		var n *tree.Node
		n, err = m.Resolve(path)
		nodes = []*tree.Node{n}
	}
	if err != nil {
		return fmt.Errorf("error getting %s: %w", path, err)
	}
	f := cfg.outFormat(args)
	for i, n := range nodes {
		if i > 0 && f == codec.YAML {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := codec.Write(cc.Out, f, n.Value(), cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", n.KPath(), err)
		}
	}
	return nil
}
