package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/vtree/model"
	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/value"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	m, err := loadModel(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	return writeTree(cc.Out, m, cfg.Depth, newPalette(cfg.colorize(cc.Out)))
}

type palette struct {
	header, key, item, typ *color.Color
	kinds                  map[value.Type]*color.Color
}

func newPalette(on bool) *palette {
	p := &palette{
		header: color.New(color.Bold, color.Underline),
		key:    color.New(color.FgBlue),
		item:   color.New(color.Faint),
		typ:    color.New(color.FgHiBlack),
		kinds: map[value.Type]*color.Color{
			value.NullType:   color.New(color.FgMagenta),
			value.BoolType:   color.New(color.FgYellow),
			value.NumberType: color.New(color.FgCyan),
			value.StringType: color.New(color.FgGreen),
		},
	}
	for _, c := range append([]*color.Color{p.header, p.key, p.item, p.typ}, mapValues(p.kinds)...) {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func mapValues(m map[value.Type]*color.Color) []*color.Color {
	res := make([]*color.Color, 0, len(m))
	for _, c := range m {
		res = append(res, c)
	}
	return res
}

type viewRow struct {
	key, val, typ string
	keyC, valC    *color.Color
}

// writeTree prints the rows of m below the root, children indented under
// their parent, in aligned key, value and type columns. maxDepth < 0 means
// no limit.
func writeTree(w io.Writer, m *model.Model, maxDepth int, p *palette) error {
	rows := []viewRow{{
		key:  m.Header(model.KeyColumn),
		val:  m.Header(model.ValueColumn),
		typ:  m.Header(model.TypeColumn),
		keyC: p.header,
		valC: p.header,
	}}
	var walk func(parent *tree.Node, depth int) error
	walk = func(parent *tree.Node, depth int) error {
		if maxDepth >= 0 && depth > maxDepth {
			return nil
		}
		for i := range m.RowCount(parent) {
			n, err := m.Index(parent, i)
			if err != nil {
				return err
			}
			r := viewRow{
				key:  strings.Repeat("  ", depth-1) + cell(m.Data(n, model.KeyColumn, model.DisplayRole)),
				val:  valueCell(m, n),
				typ:  cell(m.Data(n, model.TypeColumn, model.DisplayRole)),
				keyC: p.key,
				valC: p.kinds[n.Type()],
			}
			if n.Parent().IsArray() {
				r.keyC = p.item
			}
			rows = append(rows, r)
			if err := walk(n, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(nil, 1); err != nil {
		return err
	}
	keyW, valW := 0, 0
	for _, r := range rows {
		keyW = max(keyW, utf8.RuneCountInString(r.key))
		valW = max(valW, utf8.RuneCountInString(r.val))
	}
	for i, r := range rows {
		typC := p.typ
		if i == 0 {
			typC = p.header
		}
		val := pad(r.val, valW)
		if r.valC != nil {
			val = r.valC.Sprint(val)
		}
		_, err := fmt.Fprintf(w, "%s  %s  %s\n", r.keyC.Sprint(pad(r.key, keyW)), val, typC.Sprint(r.typ))
		if err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func valueCell(m *model.Model, n *tree.Node) string {
	if n.Type() == value.NullType {
		return "null"
	}
	return cell(m.Data(n, model.ValueColumn, model.DisplayRole))
}

// cell renders the data of a model cell.
func cell(x any) string {
	switch y := x.(type) {
	case nil:
		return ""
	case string:
		return y
	case bool:
		return strconv.FormatBool(y)
	case float64:
		if y == math.Trunc(y) && math.Abs(y) < 1e21 {
			return strconv.FormatFloat(y, 'f', -1, 64)
		}
		return strconv.FormatFloat(y, 'g', -1, 64)
	}
	return fmt.Sprint(x)
}
