package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/luamap/format"
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/parse"
)

func sample() *ir.Node {
	return ir.NewTable().
		SetField("type", ir.FromString("num")).
		SetField("val", ir.FromInt(37))
}

func TestLua(t *testing.T) {
	seq := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
	sparse := ir.NewTable()
	_ = sparse.SetIndex(2, ir.FromBool(true))
	sparse.SetField("n", ir.FromInt(2))
	odd := ir.NewTable().
		SetField("a b", ir.FromString("x\"y\n")).
		SetField("end", ir.FromFloat(0.5))
	cases := []struct {
		name string
		in   *ir.Node
		want string
	}{
		{"enum", sample(), `{type = "num", val = 37}`},
		{"sequence", seq, `{1, 2}`},
		{"index", sparse, `{[2] = true, n = 2}`},
		{"quoted keys", odd, `{["a b"] = "x\"y\n", ["end"] = 0.5}`},
		{"empty", ir.NewTable(), `{}`},
		{"nil", ir.Nil(), `nil`},
		{"control", ir.FromString("a\x01b"), `"a\001b"`},
		{"inf", ir.FromFloat(math.Inf(-1)), `-1/0`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MustString(c.in); got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

func TestLuaNested(t *testing.T) {
	node := ir.NewTable().
		SetField("name", ir.FromString("p")).
		SetField("points", ir.FromSlice([]*ir.Node{
			ir.FromSlice([]*ir.Node{ir.FromInt(0), ir.FromInt(0)}),
			ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
		}))
	want := `{
  name = "p",
  points = {
    {0, 0},
    {1, 2},
  },
}`
	if got := MustString(node); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if got := MustString(node, EncodeWire(true)); got != `{name = "p", points = {{0, 0}, {1, 2}}}` {
		t.Errorf("wire: got %s", got)
	}
}

func TestJSON(t *testing.T) {
	node := sample().SetField("list", ir.FromSlice([]*ir.Node{ir.FromFloat(1), ir.FromString("<b>")}))
	want := `{
  "type": "num",
  "val": 37,
  "list": [
    1.0,
    "<b>"
  ]
}`
	got := MustString(node, EncodeFormat(format.JSONFormat))
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	wire := MustString(sample(), EncodeFormat(format.JSONFormat), EncodeWire(true))
	if wire != `{"type":"num","val":37}` {
		t.Errorf("wire: got %s", wire)
	}
	err := Encode(ir.FromFloat(math.NaN()), &bytes.Buffer{}, EncodeFormat(format.JSONFormat))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestYAML(t *testing.T) {
	got := MustString(sample(), EncodeFormat(format.YAMLFormat))
	if got != "type: num\nval: 37" {
		t.Errorf("got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inner := ir.NewTable()
	_ = inner.SetIndex(3, ir.FromString("three"))
	node := sample().
		SetField("nested", ir.NewTable().SetField("ok", ir.FromBool(false))).
		SetField("seq", ir.FromSlice([]*ir.Node{ir.FromFloat(2.5), ir.FromString("s")})).
		SetField("sparse", inner).
		SetField("with space", ir.FromString("tab\there"))
	for _, f := range format.AllFormats() {
		buf := &bytes.Buffer{}
		if err := Encode(node, buf, EncodeFormat(f)); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		back, err := parse.Parse(buf.Bytes(), parse.ParseFormat(f))
		if err != nil {
			t.Fatalf("%s: %v\n%s", f, err, buf)
		}
		if !ir.Equal(node, back) {
			t.Errorf("%s: round trip changed the table:\n%s", f, buf)
		}
	}
}

func TestColors(t *testing.T) {
	c := NewColors()
	got := MustString(sample(), EncodeColors(c))
	if !strings.Contains(got, "type") || !strings.Contains(got, "37") {
		t.Errorf("got %q", got)
	}
	if c.Get(ir.TableType, FieldColor) == nil || c.Get(ir.NilType, FieldColor)("x") != "x" {
		t.Error("unexpected colors")
	}
}
