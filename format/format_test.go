package format

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != f {
			t.Errorf("%s: got %s", f, got)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromExt(t *testing.T) {
	cases := map[string]Format{
		"a.lua":      LuaFormat,
		"dir/b.YAML": YAMLFormat,
		"c.yml":      YAMLFormat,
		"d.json":     JSONFormat,
	}
	for name, want := range cases {
		got, ok := FromExt(name)
		if !ok || got != want {
			t.Errorf("%s: got %s %t", name, got, ok)
		}
	}
	if _, ok := FromExt("e.txt"); ok {
		t.Error("e.txt has a format")
	}
}

func TestSuffixFromExt(t *testing.T) {
	for _, f := range AllFormats() {
		got, ok := FromExt("x" + f.Suffix())
		if !ok || got != f {
			t.Errorf("%s: suffix %q maps to %s", f, f.Suffix(), got)
		}
	}
	if Format(7).Suffix() != "" {
		t.Error("invalid format has a suffix")
	}
}

func TestText(t *testing.T) {
	var got []string
	for _, s := range []string{"l", "y", "j"} {
		var f Format
		if err := f.UnmarshalText([]byte(s)); err != nil {
			t.Fatal(err)
		}
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, string(d))
	}
	if diff := cmp.Diff([]string{"lua", "yaml", "json"}, got); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
	if _, err := Format(-1).MarshalText(); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}
