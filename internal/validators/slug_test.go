package validators

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Main Street Salon", "main-street-salon"},
		{"  Chez Marie!  ", "chez-marie"},
		{"already-a-slug", "already-a-slug"},
		{"Salon   2000", "salon-2000"},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"main-street", true},
		{"salon2000", true},
		{"Main-Street", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--dash", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidSlug(tt.in); got != tt.want {
			t.Errorf("IsValidSlug(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
