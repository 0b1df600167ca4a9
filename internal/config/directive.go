package config

import (
	"strings"
	"unicode"
)

// Directive is a single parsed mapgen comment directive such as
// `//go:mapgen:mappable with=dto.PersonDto`.
type Directive struct {
	Key  string
	Args map[string]string
}

// Arg returns the value of the named argument.
func (d Directive) Arg(name string) (string, bool) {
	v, ok := d.Args[name]
	return v, ok
}

// ParseDirective parses a comment carrying the given prefix. Arguments are
// whitespace or comma separated key=value pairs; surrounding quotes are trimmed.
// A bare argument without '=' is stored with an empty value.
func ParseDirective(comment, prefix string) (Directive, bool) {
	if !strings.HasPrefix(comment, prefix) {
		return Directive{}, false
	}
	body := strings.TrimSpace(strings.TrimPrefix(comment, prefix))
	if body == "" {
		return Directive{}, false
	}

	key, rest := body, ""
	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		key, rest = body[:i], body[i:]
	}
	d := Directive{Key: key, Args: make(map[string]string)}

	// `//go:mapgen:mappable=dto.PersonDto` is shorthand for with=.
	if k, v, ok := strings.Cut(key, "="); ok {
		d.Key = k
		d.Args["with"] = trimQuotes(v)
	}

	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, field := range fields {
		k, v, _ := strings.Cut(field, "=")
		d.Args[k] = trimQuotes(v)
	}
	return d, true
}

func trimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
