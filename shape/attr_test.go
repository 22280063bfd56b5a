package shape

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAttrs(t *testing.T) {
	tests := []struct {
		name  string
		group string
		want  []Attr
	}{
		{"empty", "", []Attr{}},
		{"flag", "array", []Attr{{Name: "array", Kind: FlagValue, Raw: "array"}}},
		{
			"single quoted",
			"tag='type', content='val'",
			[]Attr{
				{Name: "tag", Kind: StringValue, Str: "type", Raw: "tag='type'"},
				{Name: "content", Kind: StringValue, Str: "val", Raw: "content='val'"},
			},
		},
		{
			"double quoted with spaces",
			`tag = "a, b"`,
			[]Attr{{Name: "tag", Kind: StringValue, Str: "a, b", Raw: `tag = "a, b"`}},
		},
		{
			"escaped quote",
			`key="say \"hi\""`,
			[]Attr{{Name: "key", Kind: StringValue, Str: `say "hi"`, Raw: `key="say \"hi\""`}},
		},
		{"index", "index=2", []Attr{{Name: "index", Kind: IntValue, Int: 2, Raw: "index=2"}}},
		{"bare", "tag=type", []Attr{{Name: "tag", Kind: BareValue, Str: "type", Raw: "tag=type"}}},
		{"trailing comma", "array,", []Attr{{Name: "array", Kind: FlagValue, Raw: "array"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAttrs(tt.group)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAttrs(%q) (-want +got):\n%s", tt.group, diff)
			}
		})
	}
}

func TestParseAttrsSyntaxErrors(t *testing.T) {
	for _, group := range []string{
		"tag='type",
		`tag="type`,
		"tag=",
		"=x",
		"2x=1",
		"tag='a'b",
		"ta g=1",
	} {
		t.Run(group, func(t *testing.T) {
			_, err := ParseAttrs(group)
			if !errors.Is(err, errAttrSyntax) {
				t.Errorf("ParseAttrs(%q) error = %v", group, err)
			}
		})
	}
}
