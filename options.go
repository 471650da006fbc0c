package tabfile

import "slices"

// Option keys recognized by readers and writers. [FilterOptions] trims a
// candidate set down to the keys a given format accepts.
const (
	OptionHeaders   = "headers"   // bool: first record is a header row (csv, tsv)
	OptionDelimiter = "delimiter" // rune or string: field delimiter (csv)
	OptionSheet     = "sheet"     // string: worksheet name (xlsx)
)

// Options carries format-specific load and export parameters. Callers may
// pass a superset covering several formats; keys a format does not accept
// are dropped, never rejected.
type Options map[string]any

// Bool returns the value for key, or def when absent or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// String returns the value for key, or def when absent or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Rune returns the first rune of the value for key, which may be a rune or
// a string, or def when absent or empty.
func (o Options) Rune(key string, def rune) rune {
	switch v := o[key].(type) {
	case rune:
		return v
	case string:
		if v != "" {
			return []rune(v)[0]
		}
	}
	return def
}

// FilterOptions returns the subset of opts that format f accepts. Unknown
// keys are dropped silently. [Load] and [Dataset.Write] filter internally,
// so callers never need to pre-filter.
func FilterOptions(f Format, opts Options) Options {
	out := make(Options, len(opts))
	info, ok := lookup(f)
	if !ok {
		return out
	}
	for key, v := range opts {
		if slices.Contains(info.options, key) {
			out[key] = v
		}
	}
	return out
}
