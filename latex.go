package tabfile

import (
	"fmt"
	"io"
	"strings"
)

// writeLaTeX renders a booktabs table inside a table environment.
func writeLaTeX(w io.Writer, d *Dataset, _ Options) error {
	var sb strings.Builder
	sb.WriteString("\\begin{table}[!htbp]\n")
	sb.WriteString("  \\centering\n")
	fmt.Fprintf(&sb, "  \\begin{tabular}{%s}\n", strings.Repeat("l", max(d.Width(), 1)))
	sb.WriteString("    \\toprule\n")
	if len(d.headers) > 0 {
		sb.WriteString("      " + latexRow(d.headers) + "\n")
		sb.WriteString("    \\midrule\n")
	}
	for _, rec := range d.Records() {
		sb.WriteString("      " + latexRow(rec) + "\n")
	}
	sb.WriteString("    \\bottomrule\n")
	sb.WriteString("  \\end{tabular}\n")
	sb.WriteString("\\end{table}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func latexRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = latexEscape(cell)
	}
	return strings.Join(escaped, " & ") + ` \\`
}

// latexEscape escapes TeX special characters.
func latexEscape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&', '%', '$', '#', '_', '{', '}':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '~':
			sb.WriteString(`\textasciitilde{}`)
		case '^':
			sb.WriteString(`\textasciicircum{}`)
		case '\\':
			sb.WriteString(`\textbackslash{}`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
