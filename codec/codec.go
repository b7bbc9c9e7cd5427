// Package codec reads and writes value trees as JSON or YAML.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/vtree/value"
	"github.com/tidwall/pretty"
)

var ErrFormat = errors.New("unknown format")

type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%w %q", ErrFormat, s)
}

// FormatOf guesses the format of a file from its extension, defaulting to
// JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

func Decode(f Format, d []byte) (*value.Value, error) {
	switch f {
	case JSON:
		v, err := value.FromJSON(d)
		if err != nil {
			return nil, err
		}
		return v, nil
	case YAML:
		if len(bytes.TrimSpace(d)) == 0 {
			return value.Null(), nil
		}
		var x any
		if err := yaml.Unmarshal(d, &x); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return value.FromAny(x)
	}
	return nil, fmt.Errorf("%w %s", ErrFormat, f)
}

func Read(r io.Reader, f Format) (*value.Value, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(f, d)
}

type encodeOpts struct {
	compact bool
	color   bool
}

type EncodeOption func(*encodeOpts)

// Compact writes JSON on a single line. It has no effect on YAML.
func Compact(c bool) EncodeOption {
	return func(o *encodeOpts) { o.compact = c }
}

// Color adds terminal color escapes.
func Color(c bool) EncodeOption {
	return func(o *encodeOpts) { o.color = c }
}

// Encode renders v. Output always ends with a newline.
func Encode(f Format, v *value.Value, opts ...EncodeOption) ([]byte, error) {
	o := &encodeOpts{}
	for _, opt := range opts {
		opt(o)
	}
	switch f {
	case JSON:
		d, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		if o.compact {
			d = append(d, '\n')
		} else {
			d = pretty.PrettyOptions(d, &pretty.Options{Width: 80, Indent: "  "})
		}
		if o.color {
			d = pretty.Color(d, pretty.TerminalStyle)
		}
		return d, nil
	case YAML:
		d, err := yaml.Marshal(toYAML(v))
		if err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		if o.color {
			d = colorYAML(d)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w %s", ErrFormat, f)
}

func Write(w io.Writer, f Format, v *value.Value, opts ...EncodeOption) error {
	d, err := Encode(f, v, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// toYAML converts v to data the yaml encoder writes in v's key order.
func toYAML(v *value.Value) any {
	switch v.Type {
	case value.NullType:
		return nil
	case value.BoolType:
		return v.Bool
	case value.NumberType:
		if v.Number == math.Trunc(v.Number) && math.Abs(v.Number) < 1<<53 {
			return int64(v.Number)
		}
		return v.Number
	case value.StringType:
		return v.String
	case value.ArrayType:
		res := make([]any, len(v.Values))
		for i, elt := range v.Values {
			res[i] = toYAML(elt)
		}
		return res
	case value.ObjectType:
		res := make(yaml.MapSlice, len(v.Fields))
		for i, field := range v.Fields {
			res[i] = yaml.MapItem{Key: field, Value: toYAML(v.Values[i])}
		}
		return res
	}
	panic("impossible production")
}
