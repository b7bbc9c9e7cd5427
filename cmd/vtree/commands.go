package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "types",
			Description: "type names: kinds, json, yaml",
			Type:        cli.NamedFuncOpt(cfg.typesOpt, "(set)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "vtree").
		WithSynopsis("vtree [opts] command [opts]").
		WithDescription("vtree browses and edits JSON and YAML documents as key/value/type trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vtreeMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			FindCommand(cfg),
			EditCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [file]").
		WithDescription("print a document as a tree of keys, values and types").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <kpath> [file]").
		WithDescription("print the subtrees at a path, which may contain * wildcards").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find [opts] <expr> [file]").
		WithDescription(findDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

const findDescription = `find prints the paths of nodes matching an expression.

The expression is evaluated for every node and sees

  Key       the key under an object, "" otherwise
  Kind      null, bool, number, string, array or object
  Value     the value as plain data
  Path      the path of the node
  Row       the row under the parent, -1 for the root
  Depth     0 for the root
  Children  the number of children
  IsRoot    whether the node is the root
  Has(k)    whether the node is an object with key k
  Get(p)    the plain data at path p below the node, or nil

for example 'Kind == "number" && Value > 10'.`

func EditCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EditConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("edit").
		WithAliases("e").
		WithSynopsis("edit [-s script | -f scriptfile] [-diff] [file]").
		WithDescription(editDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return editDoc(cfg, cc, args)
		})
	cfg.Edit = cmd
	return cmd
}

const editDescription = `edit applies an edit script and prints the result.

A script is a JSON array of operations in the style of JSON Patch:

  [{"op": "add", "path": "/items/-", "value": 1},
   {"op": "rename", "path": "/old", "value": "new"},
   {"op": "retype", "path": "/n", "value": "string"}]

Besides add, remove, replace, move, copy and test, edit supports rename,
which changes the key of an object entry, and retype, which converts a node
to a type named in the type set chosen with -types. Retypes which lose
information need "force": true.

Adding or moving onto an existing key is an error.`
