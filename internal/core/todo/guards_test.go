package todo

import (
	"errors"
	"testing"
)

func TestCanCreateTodo(t *testing.T) {
	tests := []struct {
		title   string
		allowed bool
	}{
		{"Buy milk", true},
		{"  padded  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}
	for _, tt := range tests {
		result := CanCreateTodo(tt.title)
		if result.Allowed != tt.allowed {
			t.Errorf("CanCreateTodo(%q).Allowed = %v, want %v", tt.title, result.Allowed, tt.allowed)
		}
		if !tt.allowed {
			if err := result.Error(); !errors.Is(err, ErrValidation) {
				t.Errorf("CanCreateTodo(%q).Error() = %v, want ErrValidation", tt.title, err)
			}
		}
	}
}
