package core

import "testing"

func TestValidateColor(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{"valid lowercase", "#a1b2c3", "#000000", "#a1b2c3"},
		{"valid uppercase", "#ABCDEF", "#000000", "#ABCDEF"},
		{"missing hash", "a1b2c3f", "#000000", "#000000"},
		{"too short", "#abc", "#000000", "#000000"},
		{"too long", "#a1b2c3d", "#000000", "#000000"},
		{"non-hex digits", "#a1b2gz", "#000000", "#000000"},
		{"empty", "", "#000000", "#000000"},
		{"not a color at all", "notacolor", "#0d6efd", "#0d6efd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateColor(tc.input, tc.fallback); got != tc.want {
				t.Fatalf("ValidateColor(%q, %q) = %q, want %q", tc.input, tc.fallback, got, tc.want)
			}
		})
	}
}

func TestValidateAvatarURL(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{"empty resets to default", "", "/static/uploads/x.png", ""},
		{"uploaded path accepted", "/static/uploads/abc.png", "", "/static/uploads/abc.png"},
		{"external url keeps current", "http://evil.example/x.png", "/static/uploads/old.png", "/static/uploads/old.png"},
		{"relative escape keeps current", "../etc/passwd", "", ""},
		{"prefix without slash keeps current", "static/uploads/x.png", "/static/uploads/old.png", "/static/uploads/old.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateAvatarURL(tc.input, tc.current); got != tc.want {
				t.Fatalf("ValidateAvatarURL(%q, %q) = %q, want %q", tc.input, tc.current, got, tc.want)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	if got := ValidateDisplayName("  alice  ", "old"); got != "alice" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := ValidateDisplayName("   ", "old"); got != "old" {
		t.Fatalf("blank input should keep current, got %q", got)
	}
	if got := ValidateDisplayName("", "old"); got != "old" {
		t.Fatalf("empty input should keep current, got %q", got)
	}
}

func TestParticipantApplyLeavesOmittedFieldsUntouched(t *testing.T) {
	p := NewParticipant("c1", "alice")
	p.AvatarURL = "/static/uploads/a.png"

	p.Apply(ProfileUpdate{NameColor: strptr("#123456")})

	if p.NameColor != "#123456" {
		t.Fatalf("name color not applied: %+v", p)
	}
	if p.Username != "alice" || p.BubbleColor != DefaultBubbleColor || p.AvatarURL != "/static/uploads/a.png" {
		t.Fatalf("omitted fields mutated: %+v", p)
	}
}

func TestParticipantDefaults(t *testing.T) {
	p := NewParticipant("c1", "alice")
	if p.NameColor != "#0d6efd" || p.BubbleColor != "#f1f3f5" || p.AvatarURL != "" {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}
