package model

import "testing"

func TestDeriveName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/home/user/pets/fox.webp", "fox"},
		{"/home/user/pets/fox.dance.gif", "fox.dance"},
		{"relative/CAT.PNG", "CAT"},
		{"noext", "noext"},
		{"", "Unknown"},
	}

	for _, test := range tests {
		result := DeriveName(test.path)
		if result != test.expected {
			t.Errorf("DeriveName(%q) = %q, expected %q", test.path, result, test.expected)
		}
	}
}

func TestIsSupportedMedia(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"fox.png", true},
		{"fox.PNG", true},
		{"fox.apng", true},
		{"fox.webp", true},
		{"fox.gif", true},
		{"fox.mp4", false},
		{"fox", false},
		{"fox.png.txt", false},
	}

	for _, test := range tests {
		result := IsSupportedMedia(test.path)
		if result != test.expected {
			t.Errorf("IsSupportedMedia(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestIsValidMediaFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"a.PNG", true},
		{"c.apng", true},
		{".hidden.png", false},
		{"ds_store", false},
		{"DS_Store", false},
		{"b.mp4", false},
	}

	for _, test := range tests {
		result := IsValidMediaFile(test.name)
		if result != test.expected {
			t.Errorf("IsValidMediaFile(%q) = %v, expected %v", test.name, result, test.expected)
		}
	}
}

func TestCharacter_ScaledSize(t *testing.T) {
	c := &Character{Scale: 2.0}
	if got := c.ScaledSize(); got != 640 {
		t.Errorf("ScaledSize() with scale 2.0 = %v, expected 640", got)
	}

	// Zero scale falls back to the default.
	c = &Character{}
	if got := c.ScaledSize(); got != BaseRenderSize {
		t.Errorf("ScaledSize() with zero scale = %v, expected %v", got, BaseRenderSize)
	}
}
