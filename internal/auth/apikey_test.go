package auth

import "testing"

func TestAPIKeyGate_CheckAccess(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		supplied string
		want     bool
	}{
		{name: "exact match", secret: "EXAM2024-KEY-5678", supplied: "EXAM2024-KEY-5678", want: true},
		{name: "missing key", secret: "EXAM2024-KEY-5678", supplied: "", want: false},
		{name: "wrong key", secret: "EXAM2024-KEY-5678", supplied: "nope", want: false},
		{name: "case differs", secret: "EXAM2024-KEY-5678", supplied: "exam2024-key-5678", want: false},
		{name: "prefix only", secret: "EXAM2024-KEY-5678", supplied: "EXAM2024", want: false},
		{name: "trailing space", secret: "EXAM2024-KEY-5678", supplied: "EXAM2024-KEY-5678 ", want: false},
		{name: "empty secret denies empty key", secret: "", supplied: "", want: false},
		{name: "empty secret denies any key", secret: "", supplied: "anything", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAPIKeyGate(tt.secret).CheckAccess(tt.supplied); got != tt.want {
				t.Errorf("CheckAccess(%q) = %v, want %v", tt.supplied, got, tt.want)
			}
		})
	}
}
