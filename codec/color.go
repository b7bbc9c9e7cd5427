package codec

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

func escape(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", attr)
}

func property(attr color.Attribute) func() *printer.Property {
	return func() *printer.Property {
		return &printer.Property{
			Prefix: escape(attr),
			Suffix: escape(color.Reset),
		}
	}
}

func colorYAML(d []byte) []byte {
	p := printer.Printer{
		MapKey: property(color.FgHiCyan),
		Anchor: property(color.FgHiYellow),
		Alias:  property(color.FgHiYellow),
		Bool:   property(color.FgHiMagenta),
		String: property(color.FgHiGreen),
		Number: property(color.FgHiMagenta),
	}
	res := p.PrintTokens(lexer.Tokenize(string(d)))
	if len(res) == 0 || res[len(res)-1] != '\n' {
		res += "\n"
	}
	return []byte(res)
}
