package workshop

import "testing"

func TestExtractID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123"},
		{"  123  ", "123"},
		{"https://x.example/item?id=987&foo=1", "987"},
		{"https://x.example/item?foo=1&id=987", "987"},
		{"https://x.example/item/555", "555"},
		{"https://x.example/item/v555a", "555"},
		{"garbage", "garbage"},
		{"", ""},
	}

	for _, test := range tests {
		result := ExtractID(test.input)
		if result != test.expected {
			t.Errorf("ExtractID(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
