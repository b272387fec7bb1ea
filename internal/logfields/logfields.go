package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build.id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyRef        = "ref"
	KeySection    = "section"
	KeyDocType    = "doc_type"
	KeyCount      = "count"
	KeyDirective  = "directive"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Ref(r string) slog.Attr          { return slog.String(KeyRef, r) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func DocType(t string) slog.Attr      { return slog.String(KeyDocType, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Directive(name string) slog.Attr { return slog.String(KeyDirective, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
