package tabfile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// FormatForPath maps a file extension to its registered format. It returns
// "" when the extension is unknown.
func FormatForPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	for _, info := range registry {
		for _, e := range info.extensions {
			if e == ext {
				return info.format
			}
		}
	}
	return ""
}

// Sniffing policy: binary container magics are checked first, then a bounded
// window decides whether the content is text at all, then the text formats
// are tried in fixed precedence order. The first match wins.
var (
	sniffBinaryOrder = []Format{XLSX, ODS, XLS, DBF}
	sniffTextOrder   = []Format{JSON, HTML, YAML, JSONL, TSV, CSV}
)

// sniffWindow bounds how much content the text gate inspects, the same
// window net/http.DetectContentType uses.
const sniffWindow = 512

// sniffBinaryRatio is the fraction of control bytes above which content is
// treated as binary. Best-effort policy, not a contract.
const sniffBinaryRatio = 0.30

// Sniff infers the format of raw content. It returns ErrUnknownFormat when
// nothing matches.
func Sniff(data []byte) (Format, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty content", ErrUnknownFormat)
	}
	for _, f := range sniffBinaryOrder {
		info, _ := lookup(f)
		if info.detect(data) {
			return f, nil
		}
	}
	if looksBinary(data) {
		return "", fmt.Errorf("%w: content is not text", ErrUnknownFormat)
	}
	for _, f := range sniffTextOrder {
		info, _ := lookup(f)
		if info.detect(data) {
			return f, nil
		}
	}
	return "", ErrUnknownFormat
}

// looksBinary reports whether the leading window of data contains a NUL
// byte or too many control bytes to be text.
func looksBinary(data []byte) bool {
	window := data
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	control := 0
	for _, b := range window {
		switch {
		case b == 0x00:
			return true
		case b < 0x20 && b != '\t' && b != '\n' && b != '\r':
			control++
		case b == 0x7f:
			control++
		}
	}
	return float64(control) > sniffBinaryRatio*float64(len(window))
}

// zipContains reports whether data is a ZIP archive holding the named file.
func zipContains(data []byte, name string) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}
