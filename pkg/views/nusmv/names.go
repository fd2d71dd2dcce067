package nusmv

import (
	"fmt"
	"strings"
)

// keywords that cannot be used as SMV identifiers
var keywords = map[string]bool{
	"MODULE": true, "VAR": true, "IVAR": true, "FROZENVAR": true, "DEFINE": true,
	"CONSTANTS": true, "ASSIGN": true, "INIT": true, "INVAR": true, "TRANS": true,
	"FAIRNESS": true, "JUSTICE": true, "COMPASSION": true, "SPEC": true,
	"CTLSPEC": true, "LTLSPEC": true, "INVARSPEC": true, "PSLSPEC": true,
	"COMPUTE": true, "NAME": true, "ISA": true, "process": true, "self": true,
	"next": true, "init": true, "case": true, "esac": true, "in": true,
	"mod": true, "union": true, "boolean": true, "integer": true, "real": true,
	"clock": true, "word": true, "array": true, "of": true, "TRUE": true,
	"FALSE": true, "count": true, "abs": true, "max": true, "min": true,
	"time": true, "state": true,
}

// namer hands out distinct SMV identifiers in call order
type namer struct {
	used map[string]bool
}

func newNamer() *namer {
	return &namer{used: map[string]bool{"state": true}}
}

// reserveVerbatim marks name as used and returns it unchanged
func (n *namer) reserveVerbatim(name string) string {
	n.used[name] = true
	return name
}

// unique sanitizes raw and makes it distinct from every name handed out so far
func (n *namer) unique(raw, prefix string) string {
	base := Sanitize(raw, prefix)
	name := base
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[name] = true
	return name
}

// Sanitize maps raw to a valid SMV identifier. Characters outside
// [A-Za-z0-9_] become underscores; names that start with a non letter or
// collide with a keyword get prefix.
func Sanitize(raw, prefix string) string {
	var sb strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	name := sb.String()

	if name == "" {
		return prefix
	}
	first := name[0]
	isLetter := (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_'
	if !isLetter || keywords[name] {
		return prefix + name
	}
	return name
}
