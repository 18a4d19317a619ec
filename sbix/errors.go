package sbix

import "fmt"

// ErrorSeverity represents the severity level of a table decoding error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error which makes a glyph record unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates an error which may result in a wrong bitmap.
	SeverityMajor
	// SeverityMinor indicates an issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered while decoding a font table.
type FontError struct {
	Table    Tag           // The table where the error occurred (e.g., "sbix", "post")
	Section  string        // Specific section within the table (e.g., "strike 160")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Glyph    int           // glyph ID the error refers to, or -1
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Glyph >= 0 {
		return fmt.Sprintf("[%s] %s/%s glyph %d: %s", e.Severity, e.Table, e.Section, e.Glyph, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// FontWarning represents a non-critical issue encountered while decoding.
type FontWarning struct {
	Table Tag    // The table where the warning occurred
	Issue string // Human-readable description of the warning
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates errors and warnings during decoding.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, glyph int) {
	tracer().Errorf("%s/%s glyph %d: %s", table, section, glyph, issue)
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Glyph:    glyph,
	})
}

func (ec *errorCollector) addWarning(table Tag, issue string) {
	tracer().Infof("%s: %s", table, issue)
	ec.warnings = append(ec.warnings, FontWarning{
		Table: table,
		Issue: issue,
	})
}

func (ec *errorCollector) hasCriticalErrors() bool {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
