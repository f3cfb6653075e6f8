package student

import "testing"

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "empty", value: "", want: false},
		{name: "all classes", value: "Abcd123@", want: true},
		{name: "no upper", value: "abcd123@", want: false},
		{name: "no lower", value: "ABCD123@", want: false},
		{name: "no digit", value: "Abcdefg@", want: false},
		{name: "no symbol", value: "abcd1234", want: false},
		{name: "too short", value: "Abc1@", want: false},
		{name: "unlisted symbol only", value: "Abcd123~", want: false},
		{name: "classes in any order", value: "@123abcdA", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStrongPassword(tt.value); got != tt.want {
				t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsMarks(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "integer", value: "85", want: true},
		{name: "one decimal", value: "85.5", want: true},
		{name: "two decimals", value: "85.50", want: true},
		{name: "three decimals", value: "85.555", want: false},
		{name: "letters", value: "abc", want: false},
		{name: "empty", value: "", want: false},
		{name: "trailing dot", value: "85.", want: false},
		{name: "negative", value: "-85", want: false},
		{name: "surrounding space trimmed", value: " 85.5 ", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarks(tt.value); got != tt.want {
				t.Errorf("IsMarks(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		exactLen int
		want     bool
	}{
		{name: "phone", value: "9876543210", exactLen: 10, want: true},
		{name: "too short", value: "98765", exactLen: 10, want: false},
		{name: "too long", value: "98765432100", exactLen: 10, want: false},
		{name: "non-digit", value: "98765-3210", exactLen: 10, want: false},
		{name: "empty", value: "", exactLen: 10, want: false},
		{name: "any length", value: "42", exactLen: 0, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNumeric(tt.value, tt.exactLen); got != tt.want {
				t.Errorf("IsNumeric(%q, %d) = %v, want %v", tt.value, tt.exactLen, got, tt.want)
			}
		})
	}
}

func TestIsName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "plain", value: "Asha Kumawat", want: true},
		{name: "digits", value: "Asha2", want: false},
		{name: "punctuation", value: "O'Neil", want: false},
		{name: "empty", value: "", want: false},
		{name: "spaces only", value: "   ", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsName(tt.value); got != tt.want {
				t.Errorf("IsName(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
