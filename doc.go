// Package tabfile reads and writes tabular data files in many formats.
//
// The central type is [Dataset]: ordered rows of cells with an optional
// header row. [Load] parses raw content into a Dataset, sniffing the format
// from the content when none is given, and [Dataset.Write] or
// [Dataset.Marshal] export it again:
//
//	d, err := tabfile.Load(data, "", nil)
//	if err != nil { ... }
//	out, err := d.Marshal(tabfile.XLSX, nil)
//
// # Formats
//
// The format catalog is fixed. CSV, TSV, JSON, JSONL, YAML, HTML, XLSX,
// ODS, and DBF support both import and export. XLS is import only. CLI,
// DF, Jira, LaTeX, Markdown, and RST are export-only renderings. Use
// [Format.CanImport] and [Format.CanExport] to query a format, and
// [Formats] for the full list.
//
// # Format Detection
//
// [FormatForPath] maps a file extension through the catalog. [Sniff]
// inspects raw content: binary container magics first (ZIP for XLSX and
// ODS, OLE for XLS, the DBF header), then a bounded text gate, then the
// text formats in a fixed precedence order (JSON, HTML, YAML, JSONL, TSV,
// CSV). Extension beats sniffing; an explicit format beats both.
//
// # Options
//
// [Options] carries format-specific parameters: [OptionHeaders] for CSV and
// TSV, [OptionDelimiter] for CSV, [OptionSheet] for XLSX. Callers may pass
// one superset for all formats; [FilterOptions] intersects it with what the
// target format accepts and drops the rest silently.
//
// # Cells
//
// Cell values are nil, string, bool, int64, or float64. Formats that carry
// type information (JSON, JSONL, YAML, ODS, DBF) produce and consume typed
// cells; grid formats (CSV, TSV, XLSX, XLS, HTML) work in strings. Text
// renderings stringify cells the same way everywhere: booleans as true and
// false, floats without exponents, nil as the empty string.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnknownFormat] — unrecognized format name or unsniffable content
//   - [ErrImportUnsupported] — format has no reader
//   - [ErrExportUnsupported] — format has no writer
//   - [ErrInvalidDimensions] — row or header width mismatch
package tabfile
