// Package diagnostic collects the non-fatal findings of a generation run.
package diagnostic

import (
	"fmt"
	"strings"
)

// Codes of the findings reported while building the mapping model.
const (
	CodeUnresolvedTarget = "unresolved-target"
	CodeDuplicatePrimary = "duplicate-primary"
	CodeDanglingField    = "dangling-field"
	CodeUnexportedType   = "unexported-type"
	CodeUnexportedField  = "unexported-field"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding.
	Code    string
	Message string
	// Type is the full name of the type the finding relates to.
	Type string
	// Position is the source position of the declaration, if known.
	Position string
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Position != "" {
		b.WriteString(d.Position)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%s [%s] %s", d.Severity, d.Code, d.Message)
	if d.Type != "" {
		fmt.Fprintf(&b, " (%s)", d.Type)
	}
	return b.String()
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

// Add appends a finding.
func (ds *Diagnostics) Add(severity Severity, code, message, typ, pos string) {
	*ds = append(*ds, Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Type:     typ,
		Position: pos,
	})
}

// ByCode returns the findings with the given code.
func (ds Diagnostics) ByCode(code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns the findings with warning severity.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// String joins all findings, one per line.
func (ds Diagnostics) String() string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n")
}
