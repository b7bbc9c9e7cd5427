package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/vtree/value"
)

const doc = `{"a":[1,2.5,"x",true,null],"b":{"c":{},"d":[]},"e":"12","f":-3}`

func TestJSONRoundTrip(t *testing.T) {
	v, err := Decode(JSON, []byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	d, err := Encode(JSON, v, Compact(true))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(d); got != doc+"\n" {
		t.Errorf("got %s", got)
	}
	d, err = Encode(JSON, v)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(d, []byte("\n  \"b\": {")) {
		t.Errorf("not indented:\n%s", d)
	}
	back, err := Decode(JSON, d)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(v, back) {
		t.Errorf("got %s, want %s", back.GoString(), v.GoString())
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	v, err := Decode(JSON, []byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	d, err := Encode(YAML, v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(YAML, d)
	if err != nil {
		t.Fatalf("%v in\n%s", err, d)
	}
	if !value.Equal(v, back) {
		t.Errorf("got %s, want %s\nyaml:\n%s", back.GoString(), v.GoString(), d)
	}
}

func TestDecodeYAML(t *testing.T) {
	src := "z: 1\na:\n  - x\n  - true\nn: null\n"
	v, err := Decode(YAML, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	d, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got := string(d); got != `{"a":["x",true],"n":null,"z":1}` {
		t.Errorf("got %s", got)
	}
	empty, err := Decode(YAML, nil)
	if err != nil || empty.Type != value.NullType {
		t.Errorf("empty document: %v, %v", empty, err)
	}
	if _, err := Decode(YAML, []byte("a: [")); err == nil {
		t.Error("expected yaml error")
	}
}

func TestDecodeJSONError(t *testing.T) {
	if _, err := Decode(JSON, []byte(`{"a":`)); !errors.Is(err, value.ErrJSON) {
		t.Errorf("got %v", err)
	}
}

func TestColor(t *testing.T) {
	v := value.FromMap(map[string]*value.Value{"k": value.FromString("v")})
	for _, f := range []Format{JSON, YAML} {
		d, err := Encode(f, v, Color(true))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(d, []byte("\x1b[")) {
			t.Errorf("%s: no color in %q", f, d)
		}
		if !strings.HasSuffix(string(d), "\n") {
			t.Errorf("%s: no trailing newline", f)
		}
	}
}

func TestFormats(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
		err  error
	}{
		{"json", JSON, nil},
		{"YAML", YAML, nil},
		{"yml", YAML, nil},
		{"toml", 0, ErrFormat},
	} {
		got, err := ParseFormat(tt.in)
		if !errors.Is(err, tt.err) || got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, %v", tt.in, got, err)
		}
	}
	if FormatOf("x/y.yml") != YAML || FormatOf("y.json") != JSON || FormatOf("-") != JSON {
		t.Error("FormatOf")
	}
}

func TestReadWrite(t *testing.T) {
	v, err := Read(strings.NewReader("[1, 2]"), YAML)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := Write(buf, JSON, v, Compact(true)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[1,2]\n" {
		t.Errorf("got %q", buf.String())
	}
}
