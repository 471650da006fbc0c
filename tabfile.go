package tabfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnknownFormat     = errors.New("unknown format")
	ErrImportUnsupported = errors.New("import not supported")
	ErrExportUnsupported = errors.New("export not supported")
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// Format identifies a tabular file format.
type Format string

const (
	CLI      Format = "cli"
	CSV      Format = "csv"
	DBF      Format = "dbf"
	DF       Format = "df"
	HTML     Format = "html"
	Jira     Format = "jira"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	LaTeX    Format = "latex"
	Markdown Format = "markdown"
	ODS      Format = "ods"
	RST      Format = "rst"
	TSV      Format = "tsv"
	XLS      Format = "xls"
	XLSX     Format = "xlsx"
	YAML     Format = "yaml"
)

// formatInfo is one registry entry: how a format is recognized and which
// operations and options it supports. A nil read or write func means the
// format cannot be imported or exported; a nil detect func means it cannot
// be sniffed from content.
type formatInfo struct {
	format     Format
	extensions []string
	binary     bool
	options    []string
	read       func(data []byte, opts Options) (*Dataset, error)
	write      func(w io.Writer, d *Dataset, opts Options) error
	detect     func(data []byte) bool
}

// registry is the fixed format catalog, in identifier order. It is built
// once and never mutated.
var registry = []formatInfo{
	{format: CLI, write: writeCLI},
	{format: CSV, extensions: []string{".csv"}, options: []string{OptionHeaders, OptionDelimiter}, read: readCSV, write: writeCSV, detect: detectCSV},
	{format: DBF, extensions: []string{".dbf"}, binary: true, read: readDBF, write: writeDBF, detect: detectDBF},
	{format: DF, write: writeDF},
	{format: HTML, extensions: []string{".html", ".htm"}, read: readHTML, write: writeHTML, detect: detectHTML},
	{format: Jira, write: writeJira},
	{format: JSON, extensions: []string{".json"}, read: readJSON, write: writeJSON, detect: detectJSON},
	{format: JSONL, extensions: []string{".jsonl", ".ndjson"}, read: readJSONL, write: writeJSONL, detect: detectJSONL},
	{format: LaTeX, extensions: []string{".tex"}, write: writeLaTeX},
	{format: Markdown, extensions: []string{".md"}, write: writeMarkdown},
	{format: ODS, extensions: []string{".ods"}, binary: true, read: readODS, write: writeODS, detect: detectODS},
	{format: RST, extensions: []string{".rst"}, write: writeRST},
	{format: TSV, extensions: []string{".tsv"}, options: []string{OptionHeaders}, read: readTSV, write: writeTSV, detect: detectTSV},
	{format: XLS, extensions: []string{".xls"}, binary: true, read: readXLS, detect: detectXLS},
	{format: XLSX, extensions: []string{".xlsx"}, binary: true, options: []string{OptionSheet}, read: readXLSX, write: writeXLSX, detect: detectXLSX},
	{format: YAML, extensions: []string{".yaml", ".yml"}, read: readYAML, write: writeYAML, detect: detectYAML},
}

func lookup(f Format) (formatInfo, bool) {
	for _, info := range registry {
		if info.format == f {
			return info, true
		}
	}
	return formatInfo{}, false
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Binary reports whether f is a binary container rather than text.
func (f Format) Binary() bool {
	info, _ := lookup(f)
	return info.binary
}

// CanImport reports whether f has a reader.
func (f Format) CanImport() bool {
	info, _ := lookup(f)
	return info.read != nil
}

// CanExport reports whether f has a writer.
func (f Format) CanExport() bool {
	info, _ := lookup(f)
	return info.write != nil
}

// Extensions returns the file extensions mapped to f, dot included.
func (f Format) Extensions() []string {
	info, _ := lookup(f)
	out := make([]string, len(info.extensions))
	copy(out, info.extensions)
	return out
}

// Formats returns all registered formats in identifier order.
func Formats() []Format {
	out := make([]Format, len(registry))
	for i, info := range registry {
		out[i] = info.format
	}
	return out
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(s)
	for _, info := range registry {
		if string(info.format) == name {
			return info.format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Load parses raw content into a Dataset. When f is empty the format is
// sniffed from the content. Options the format does not accept are dropped;
// codec errors surface unmodified.
func Load(data []byte, f Format, opts Options) (*Dataset, error) {
	if f == "" {
		var err error
		if f, err = Sniff(data); err != nil {
			return nil, err
		}
	}
	info, ok := lookup(f)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if info.read == nil {
		return nil, fmt.Errorf("%w: %q", ErrImportUnsupported, f)
	}
	return info.read(data, FilterOptions(f, opts))
}

// Write exports the dataset to w in format f. Options the format does not
// accept are dropped.
func (d *Dataset) Write(w io.Writer, f Format, opts Options) error {
	info, ok := lookup(f)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if info.write == nil {
		return fmt.Errorf("%w: %q", ErrExportUnsupported, f)
	}
	return info.write(w, d, FilterOptions(f, opts))
}

// Marshal exports the dataset in format f and returns the bytes.
func (d *Dataset) Marshal(f Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
