package ir

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected bool
	}{
		{"int float", FromInt(37), FromFloat(37), true},
		{"ints", FromInt(37), FromInt(38), false},
		{"strings", FromString("a"), FromString("a"), true},
		{"number string", FromInt(1), FromString("1"), false},
		{"nils", nil, Nil(), true},
		{"nil bool", nil, FromBool(false), false},
		{
			"order insensitive",
			NewTable().SetField("a", FromInt(1)).SetField("b", FromInt(2)),
			NewTable().SetField("b", FromInt(2)).SetField("a", FromInt(1)),
			true,
		},
		{
			"missing key",
			NewTable().SetField("a", FromInt(1)),
			NewTable().SetField("b", FromInt(1)),
			false,
		},
		{
			"nested",
			NewTable().SetField("a", FromSlice([]*Node{FromBool(true)})),
			NewTable().SetField("a", FromSlice([]*Node{FromBool(true)})),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		{"nil first", Nil(), FromBool(false), -1},
		{"numbers", FromInt(2), FromFloat(2.5), -1},
		{"strings", FromString("b"), FromString("a"), 1},
		{"number before string", FromInt(9), FromString("1"), -1},
		{"bools", FromBool(true), FromBool(true), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %d, want %d", got, tt.expected)
			}
		})
	}
}
