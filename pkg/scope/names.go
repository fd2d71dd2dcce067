package scope

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const fallbackArtifactName = "model"

// ArtifactName turns a structure identifier into a file stem that stays
// inside the output directory. The mapping is deterministic.
func ArtifactName(identifier string) string {
	normalized := norm.NFC.String(strings.TrimSpace(identifier))

	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case unicode.IsControl(r):
			return '_'
		default:
			return r
		}
	}, normalized)

	if strings.Trim(name, ".") == "" {
		return fallbackArtifactName
	}
	return name
}
