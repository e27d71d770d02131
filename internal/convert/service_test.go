package convert

import (
	"strings"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/media/fox.apng", "/media/fox.webp"},
		{"/media/fox.dance.apng", "/media/fox.dance.webp"},
		{"rel/cat.APNG", "rel/cat.webp"},
	}

	for _, test := range tests {
		result := OutputPath(test.input)
		if result != test.expected {
			t.Errorf("OutputPath(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestStartConvert_MissingInput(t *testing.T) {
	service := NewService(nil)

	_, err := service.StartConvert("/nonexistent/fox.apng")
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStopConvert_UnknownTask(t *testing.T) {
	service := NewService(nil)

	if err := service.StopConvert("convert-unknown"); err == nil {
		t.Error("expected error for unknown task ID")
	}
}

func TestGetTask_Unknown(t *testing.T) {
	service := NewService(nil)

	if _, exists := service.GetTask("convert-unknown"); exists {
		t.Error("expected no task for unknown ID")
	}
}

func TestGenerateTaskID_Prefix(t *testing.T) {
	id := generateTaskID()
	if !strings.HasPrefix(id, TaskIDPrefix) {
		t.Errorf("task ID %q should start with %q", id, TaskIDPrefix)
	}

	if id == generateTaskID() {
		t.Error("consecutive task IDs should differ")
	}
}

var _ Converter = (*Service)(nil)
