package extract

import (
	"fmt"
	"log/slog"
)

// Diagnostic records one row or entity the extractor skipped.
type Diagnostic struct {
	Dialect string
	Table   int
	Row     int
	Reason  string
	Raw     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s table %d row %d: %s (%q)", d.Dialect, d.Table, d.Row, d.Reason, d.Raw)
}

// Diagnostics collects what extraction skipped and why. A nil *Diagnostics
// discards everything, so callers that do not care can pass nil.
type Diagnostics struct {
	logger  *slog.Logger
	entries []Diagnostic
}

// NewDiagnostics returns a sink that also logs each entry at warn level when
// logger is not nil.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

func (d *Diagnostics) add(entry Diagnostic) {
	if d == nil {
		return
	}
	d.entries = append(d.entries, entry)
	if d.logger != nil {
		d.logger.Warn("skipped row",
			slog.String("dialect", entry.Dialect),
			slog.Int("table", entry.Table),
			slog.Int("row", entry.Row),
			slog.String("reason", entry.Reason),
			slog.String("raw", entry.Raw),
		)
	}
}

// Entries returns the collected diagnostics in the order they were recorded.
func (d *Diagnostics) Entries() []Diagnostic {
	if d == nil {
		return nil
	}
	return append([]Diagnostic(nil), d.entries...)
}

func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// rowLogger binds dialect and position so extractors can report with one call.
type rowLogger struct {
	diags   *Diagnostics
	dialect string
	table   int
	row     int
}

func (d *Diagnostics) at(dialect string, table, row int) rowLogger {
	return rowLogger{diags: d, dialect: dialect, table: table, row: row}
}

func (l rowLogger) skip(raw string, format string, args ...any) {
	l.diags.add(Diagnostic{
		Dialect: l.dialect,
		Table:   l.table,
		Row:     l.row,
		Reason:  fmt.Sprintf(format, args...),
		Raw:     raw,
	})
}
