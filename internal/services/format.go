package services

import "strings"

const bullet = "• "

// IsBulletFormatted reports whether text already opens with a bullet marker.
func IsBulletFormatted(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "•") || strings.HasPrefix(t, "*")
}

// FormatAsBullets puts every non-blank line of text behind a bullet.
func FormatAsBullets(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, bullet+line)
	}
	return strings.Join(out, "\n")
}

// FormatCheckAndNormalize leaves bullet-formatted text alone and reshapes
// anything else. It never rejects input.
func FormatCheckAndNormalize(text string) string {
	if IsBulletFormatted(text) {
		return text
	}
	return FormatAsBullets(text)
}
