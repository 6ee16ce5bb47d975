package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already canonical",
			raw:  "09123456789",
			want: "09123456789",
		},
		{
			name: "international with plus",
			raw:  "+989123456789",
			want: "09123456789",
		},
		{
			name: "international without plus",
			raw:  "989123456789",
			want: "09123456789",
		},
		{
			name: "bare ten digits",
			raw:  "9123456789",
			want: "09123456789",
		},
		{
			name: "spaces and dashes stripped",
			raw:  "0912 345-67 89",
			want: "09123456789",
		},
		{
			name: "country code with separators",
			raw:  "+98 912 345 6789",
			want: "09123456789",
		},
		{
			name: "too short stays as is",
			raw:  "12345",
			want: "12345",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"09123456789", "+989123456789", "9123456789", "12345", ""}
	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "raw=%q", raw)
	}
}

func TestNormalize_EquivalentForms(t *testing.T) {
	want := Normalize("09123456789")
	for _, raw := range []string{"+989123456789", "989123456789", "9123456789"} {
		assert.Equal(t, want, Normalize(raw), "raw=%q", raw)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"09123456789", true},
		{"09000000000", true},
		{"9123456789", false},   // 10 цифр
		{"091234567890", false}, // 12 цифр
		{"08123456789", false},  // не "09"
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValid(tt.phone), "phone=%q", tt.phone)
	}
}
