package tablediff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/parse"
)

func mustParse(t *testing.T, src string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func lines(cs []Change) []string {
	res := make([]string, len(cs))
	for i, c := range cs {
		res[i] = c.String()
	}
	return res
}

func TestDiff(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"equal", `{a = 1, b = {2}}`, `{a = 1, b = {2}}`, []string{}},
		{"reordered", `{a = 1, b = 2}`, `{b = 2, a = 1}`, []string{}},
		{"numeric", `{a = 1}`, `{a = 1.0}`, []string{}},
		{"added", `{a = 1}`, `{a = 1, b = "x"}`, []string{`+ $.b = "x"`}},
		{"removed", `{a = 1, b = true}`, `{a = 1}`, []string{`- $.b = true`}},
		{"changed", `{a = 1}`, `{a = "1"}`, []string{`~ $.a: 1 -> "1"`}},
		{"nested", `{p = {x = 1, y = 2}}`, `{p = {x = 1, y = 3}}`, []string{`~ $.p.y: 2 -> 3`}},
		{"index", `{1, 2}`, `{1, 2, 3}`, []string{`+ $[3] = 3`}},
		{"index and string", `{[1] = "a"}`, `{["1"] = "a"}`, []string{`- $[1] = "a"`, `+ $.1 = "a"`}},
		{"moved and changed", `{a = 1, b = 2}`, `{b = 2, a = 5}`, []string{`~ $.a: 1 -> 5`}},
		{"table replaced", `{a = {}}`, `{a = 4}`, []string{`~ $.a: {} -> 4`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := lines(Diff(mustParse(t, c.from), mustParse(t, c.to)))
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
