package core

import "strings"

const (
	// DefaultNameColor is applied to new participants until they pick their own.
	DefaultNameColor = "#0d6efd"
	// DefaultBubbleColor is the default chat bubble background.
	DefaultBubbleColor = "#f1f3f5"
	// AvatarURLPrefix is the only path prefix accepted for avatar URLs.
	// It matches where the upload endpoint serves stored files from.
	AvatarURLPrefix = "/static/uploads/"
)

// Participant is the presence and profile record for one connection inside one room.
type Participant struct {
	ConnID      string
	Username    string
	NameColor   string
	BubbleColor string
	AvatarURL   string
}

// NewParticipant constructs a participant with default colors and no avatar.
func NewParticipant(connID, username string) *Participant {
	return &Participant{
		ConnID:      connID,
		Username:    username,
		NameColor:   DefaultNameColor,
		BubbleColor: DefaultBubbleColor,
	}
}

// ProfileUpdate carries the optional fields of an update_profile event.
// Nil means the field was not provided and must be left untouched.
type ProfileUpdate struct {
	Username    *string
	NameColor   *string
	BubbleColor *string
	AvatarURL   *string
}

// Apply validates and applies each provided field. Invalid values are
// replaced by the participant's current value, never partially accepted.
func (p *Participant) Apply(u ProfileUpdate) {
	if u.Username != nil {
		p.Username = ValidateDisplayName(*u.Username, p.Username)
	}
	if u.NameColor != nil {
		p.NameColor = ValidateColor(*u.NameColor, p.NameColor)
	}
	if u.BubbleColor != nil {
		p.BubbleColor = ValidateColor(*u.BubbleColor, p.BubbleColor)
	}
	if u.AvatarURL != nil {
		p.AvatarURL = ValidateAvatarURL(*u.AvatarURL, p.AvatarURL)
	}
}

// ValidateColor accepts only 7-character #RRGGBB strings (hex digits,
// case-insensitive). Anything else yields fallback unchanged.
func ValidateColor(input, fallback string) string {
	if len(input) != 7 || input[0] != '#' {
		return fallback
	}
	for _, c := range input[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return fallback
		}
	}
	return input
}

// ValidateAvatarURL accepts the empty string (default avatar) or a path under
// the upload prefix. Any other value keeps current, so a client cannot point
// an avatar at an arbitrary external URL.
func ValidateAvatarURL(input, current string) string {
	if input == "" {
		return ""
	}
	if strings.HasPrefix(input, AvatarURLPrefix) {
		return input
	}
	return current
}

// ValidateDisplayName trims input and keeps current when the result is empty.
func ValidateDisplayName(input, current string) string {
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		return trimmed
	}
	return current
}
