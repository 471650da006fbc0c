package tabfile_test

import (
	"bytes"
	"testing"

	"github.com/bjaus/tabfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fixtures: five-row sample table ---

func fiveRows(t *testing.T) *tabfile.Dataset {
	t.Helper()
	d := tabfile.New("Username", "Identifier", "First name", "Last name")
	rows := [][]any{
		{"booker12", int64(9012), "Rachel", "Booker"},
		{"grey07", int64(2070), "Laura", "Grey"},
		{"johnson81", int64(4081), "Craig", "Johnson"},
		{"jenkins46", int64(9346), "Mary", "Jenkins"},
		{"smith79", int64(5079), "Jamie", "Smith"},
	}
	for _, row := range rows {
		require.NoError(t, d.Append(row))
	}
	return d
}

func marshal(t *testing.T, d *tabfile.Dataset, f tabfile.Format) []byte {
	t.Helper()
	data, err := d.Marshal(f, nil)
	require.NoError(t, err)
	return data
}

const cliGolden = `Username |Identifier|First name|Last name
---------|----------|----------|---------
booker12 |9012      |Rachel    |Booker
grey07   |2070      |Laura     |Grey
johnson81|4081      |Craig     |Johnson
jenkins46|9346      |Mary      |Jenkins
smith79  |5079      |Jamie     |Smith
`

const csvGolden = `Username,Identifier,First name,Last name
booker12,9012,Rachel,Booker
grey07,2070,Laura,Grey
johnson81,4081,Craig,Johnson
jenkins46,9346,Mary,Jenkins
smith79,5079,Jamie,Smith
`

const tsvGolden = "Username\tIdentifier\tFirst name\tLast name\n" +
	"booker12\t9012\tRachel\tBooker\n" +
	"grey07\t2070\tLaura\tGrey\n" +
	"johnson81\t4081\tCraig\tJohnson\n" +
	"jenkins46\t9346\tMary\tJenkins\n" +
	"smith79\t5079\tJamie\tSmith\n"

const jsonGolden = `[{"Username": "booker12", "Identifier": 9012, "First name": "Rachel", "Last name": "Booker"}, ` +
	`{"Username": "grey07", "Identifier": 2070, "First name": "Laura", "Last name": "Grey"}, ` +
	`{"Username": "johnson81", "Identifier": 4081, "First name": "Craig", "Last name": "Johnson"}, ` +
	`{"Username": "jenkins46", "Identifier": 9346, "First name": "Mary", "Last name": "Jenkins"}, ` +
	`{"Username": "smith79", "Identifier": 5079, "First name": "Jamie", "Last name": "Smith"}]` + "\n"

const jsonlGolden = `{"Username": "booker12", "Identifier": 9012, "First name": "Rachel", "Last name": "Booker"}
{"Username": "grey07", "Identifier": 2070, "First name": "Laura", "Last name": "Grey"}
{"Username": "johnson81", "Identifier": 4081, "First name": "Craig", "Last name": "Johnson"}
{"Username": "jenkins46", "Identifier": 9346, "First name": "Mary", "Last name": "Jenkins"}
{"Username": "smith79", "Identifier": 5079, "First name": "Jamie", "Last name": "Smith"}
`

const yamlGolden = `- Username: booker12
  Identifier: 9012
  First name: Rachel
  Last name: Booker
- Username: grey07
  Identifier: 2070
  First name: Laura
  Last name: Grey
- Username: johnson81
  Identifier: 4081
  First name: Craig
  Last name: Johnson
- Username: jenkins46
  Identifier: 9346
  First name: Mary
  Last name: Jenkins
- Username: smith79
  Identifier: 5079
  First name: Jamie
  Last name: Smith
`

const markdownGolden = `| Username  | Identifier | First name | Last name |
| --------- | ---------- | ---------- | --------- |
| booker12  | 9012       | Rachel     | Booker    |
| grey07    | 2070       | Laura      | Grey      |
| johnson81 | 4081       | Craig      | Johnson   |
| jenkins46 | 9346       | Mary       | Jenkins   |
| smith79   | 5079       | Jamie      | Smith     |
`

const latexGolden = `\begin{table}[!htbp]
  \centering
  \begin{tabular}{llll}
    \toprule
      Username & Identifier & First name & Last name \\
    \midrule
      booker12 & 9012 & Rachel & Booker \\
      grey07 & 2070 & Laura & Grey \\
      johnson81 & 4081 & Craig & Johnson \\
      jenkins46 & 9346 & Mary & Jenkins \\
      smith79 & 5079 & Jamie & Smith \\
    \bottomrule
  \end{tabular}
\end{table}
`

const rstGolden = `=========  ==========  ==========  =========
Username   Identifier  First name  Last name
=========  ==========  ==========  =========
booker12   9012        Rachel      Booker
grey07     2070        Laura       Grey
johnson81  4081        Craig       Johnson
jenkins46  9346        Mary        Jenkins
smith79    5079        Jamie       Smith
=========  ==========  ==========  =========
`

const jiraGolden = `||Username||Identifier||First name||Last name||
|booker12|9012|Rachel|Booker|
|grey07|2070|Laura|Grey|
|johnson81|4081|Craig|Johnson|
|jenkins46|9346|Mary|Jenkins|
|smith79|5079|Jamie|Smith|
`

const dfGolden = `    Username  Identifier  First name  Last name
0   booker12        9012      Rachel     Booker
1     grey07        2070       Laura       Grey
2  johnson81        4081       Craig    Johnson
3  jenkins46        9346        Mary    Jenkins
4    smith79        5079       Jamie      Smith
`

const htmlGolden = `<table>
  <thead>
    <tr>
      <th>Username</th>
      <th>Identifier</th>
      <th>First name</th>
      <th>Last name</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>booker12</td>
      <td>9012</td>
      <td>Rachel</td>
      <td>Booker</td>
    </tr>
    <tr>
      <td>grey07</td>
      <td>2070</td>
      <td>Laura</td>
      <td>Grey</td>
    </tr>
    <tr>
      <td>johnson81</td>
      <td>4081</td>
      <td>Craig</td>
      <td>Johnson</td>
    </tr>
    <tr>
      <td>jenkins46</td>
      <td>9346</td>
      <td>Mary</td>
      <td>Jenkins</td>
    </tr>
    <tr>
      <td>smith79</td>
      <td>5079</td>
      <td>Jamie</td>
      <td>Smith</td>
    </tr>
  </tbody>
</table>
`

// ============================================================
// Tests
// ============================================================

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    tabfile.Format
		wantErr require.ErrorAssertionFunc
	}{
		"csv":       {input: "csv", want: tabfile.CSV, wantErr: require.NoError},
		"tsv":       {input: "tsv", want: tabfile.TSV, wantErr: require.NoError},
		"json":      {input: "json", want: tabfile.JSON, wantErr: require.NoError},
		"jsonl":     {input: "jsonl", want: tabfile.JSONL, wantErr: require.NoError},
		"yaml":      {input: "yaml", want: tabfile.YAML, wantErr: require.NoError},
		"xlsx":      {input: "xlsx", want: tabfile.XLSX, wantErr: require.NoError},
		"xls":       {input: "xls", want: tabfile.XLS, wantErr: require.NoError},
		"ods":       {input: "ods", want: tabfile.ODS, wantErr: require.NoError},
		"dbf":       {input: "dbf", want: tabfile.DBF, wantErr: require.NoError},
		"html":      {input: "html", want: tabfile.HTML, wantErr: require.NoError},
		"latex":     {input: "latex", want: tabfile.LaTeX, wantErr: require.NoError},
		"cli":       {input: "cli", want: tabfile.CLI, wantErr: require.NoError},
		"df":        {input: "df", want: tabfile.DF, wantErr: require.NoError},
		"uppercase": {input: "CSV", want: tabfile.CSV, wantErr: require.NoError},
		"mixedcase": {input: "LaTeX", want: tabfile.LaTeX, wantErr: require.NoError},
		"unknown":   {input: "parquet", want: "", wantErr: require.Error},
		"empty":     {input: "", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tabfile.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatUnknownError(t *testing.T) {
	t.Parallel()
	_, err := tabfile.ParseFormat("parquet")
	require.ErrorIs(t, err, tabfile.ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"parquet"`)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := tabfile.Formats()
	assert.Equal(t, []tabfile.Format{
		tabfile.CLI, tabfile.CSV, tabfile.DBF, tabfile.DF,
		tabfile.HTML, tabfile.Jira, tabfile.JSON, tabfile.JSONL,
		tabfile.LaTeX, tabfile.Markdown, tabfile.ODS, tabfile.RST,
		tabfile.TSV, tabfile.XLS, tabfile.XLSX, tabfile.YAML,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, tabfile.CLI, tabfile.Formats()[0])
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "csv", tabfile.CSV.String())
	assert.Equal(t, "latex", tabfile.LaTeX.String())
}

func TestFormatCapabilities(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format    tabfile.Format
		binary    bool
		canImport bool
		canExport bool
	}{
		"csv":      {format: tabfile.CSV, canImport: true, canExport: true},
		"tsv":      {format: tabfile.TSV, canImport: true, canExport: true},
		"json":     {format: tabfile.JSON, canImport: true, canExport: true},
		"jsonl":    {format: tabfile.JSONL, canImport: true, canExport: true},
		"yaml":     {format: tabfile.YAML, canImport: true, canExport: true},
		"html":     {format: tabfile.HTML, canImport: true, canExport: true},
		"xlsx":     {format: tabfile.XLSX, binary: true, canImport: true, canExport: true},
		"ods":      {format: tabfile.ODS, binary: true, canImport: true, canExport: true},
		"dbf":      {format: tabfile.DBF, binary: true, canImport: true, canExport: true},
		"xls":      {format: tabfile.XLS, binary: true, canImport: true},
		"cli":      {format: tabfile.CLI, canExport: true},
		"df":       {format: tabfile.DF, canExport: true},
		"jira":     {format: tabfile.Jira, canExport: true},
		"latex":    {format: tabfile.LaTeX, canExport: true},
		"markdown": {format: tabfile.Markdown, canExport: true},
		"rst":      {format: tabfile.RST, canExport: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.binary, tt.format.Binary())
			assert.Equal(t, tt.canImport, tt.format.CanImport())
			assert.Equal(t, tt.canExport, tt.format.CanExport())
		})
	}
}

func TestFormatExtensions(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{".csv"}, tabfile.CSV.Extensions())
	assert.Equal(t, []string{".html", ".htm"}, tabfile.HTML.Extensions())
	assert.Equal(t, []string{".jsonl", ".ndjson"}, tabfile.JSONL.Extensions())
	assert.Equal(t, []string{".yaml", ".yml"}, tabfile.YAML.Extensions())
	assert.Empty(t, tabfile.CLI.Extensions())
}

// --- Options ---

func TestFilterOptions(t *testing.T) {
	t.Parallel()
	all := tabfile.Options{
		tabfile.OptionHeaders:   false,
		tabfile.OptionDelimiter: ";",
		tabfile.OptionSheet:     "Data",
	}
	tests := map[string]struct {
		format tabfile.Format
		want   tabfile.Options
	}{
		"csv keeps headers and delimiter": {
			format: tabfile.CSV,
			want:   tabfile.Options{tabfile.OptionHeaders: false, tabfile.OptionDelimiter: ";"},
		},
		"tsv keeps headers only": {
			format: tabfile.TSV,
			want:   tabfile.Options{tabfile.OptionHeaders: false},
		},
		"xlsx keeps sheet only": {
			format: tabfile.XLSX,
			want:   tabfile.Options{tabfile.OptionSheet: "Data"},
		},
		"json takes nothing": {
			format: tabfile.JSON,
			want:   tabfile.Options{},
		},
		"unknown format takes nothing": {
			format: tabfile.Format("parquet"),
			want:   tabfile.Options{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tabfile.FilterOptions(tt.format, all))
		})
	}
}

func TestOptionsAccessors(t *testing.T) {
	t.Parallel()
	opts := tabfile.Options{
		"flag":  true,
		"name":  "Sheet2",
		"comma": ";",
	}
	assert.True(t, opts.Bool("flag", false))
	assert.True(t, opts.Bool("missing", true))
	assert.Equal(t, "Sheet2", opts.String("name", "x"))
	assert.Equal(t, "x", opts.String("missing", "x"))
	assert.Equal(t, ';', opts.Rune("comma", ','))
	assert.Equal(t, ',', opts.Rune("missing", ','))
	// Wrong-typed values fall back to the default.
	assert.False(t, tabfile.Options{"flag": "yes"}.Bool("flag", false))
}

// --- Load ---

func TestLoadSniffsWhenFormatEmpty(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte(csvGolden), "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Username", "Identifier", "First name", "Last name"}, d.Headers())
	assert.Equal(t, 5, d.Height())
}

func TestLoadUnknownFormat(t *testing.T) {
	t.Parallel()
	_, err := tabfile.Load([]byte("a,b\n1,2\n"), tabfile.Format("parquet"), nil)
	require.ErrorIs(t, err, tabfile.ErrUnknownFormat)
}

func TestLoadImportUnsupported(t *testing.T) {
	t.Parallel()
	for _, f := range []tabfile.Format{
		tabfile.CLI, tabfile.DF, tabfile.Jira,
		tabfile.LaTeX, tabfile.Markdown, tabfile.RST,
	} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			_, err := tabfile.Load([]byte("anything"), f, nil)
			require.ErrorIs(t, err, tabfile.ErrImportUnsupported)
		})
	}
}

func TestLoadDropsForeignOptions(t *testing.T) {
	t.Parallel()
	// A sheet option means nothing to the csv reader and must not reach it.
	d, err := tabfile.Load([]byte(csvGolden), tabfile.CSV, tabfile.Options{
		tabfile.OptionSheet: "Data",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, d.Height())
}

// --- Write ---

func TestWriteExportUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := fiveRows(t).Write(&buf, tabfile.XLS, nil)
	require.ErrorIs(t, err, tabfile.ErrExportUnsupported)
	assert.Zero(t, buf.Len())
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := fiveRows(t).Write(&buf, tabfile.Format("parquet"), nil)
	require.ErrorIs(t, err, tabfile.ErrUnknownFormat)
}

func TestMarshal(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format tabfile.Format
		want   string
	}{
		"cli":      {format: tabfile.CLI, want: cliGolden},
		"csv":      {format: tabfile.CSV, want: csvGolden},
		"tsv":      {format: tabfile.TSV, want: tsvGolden},
		"json":     {format: tabfile.JSON, want: jsonGolden},
		"jsonl":    {format: tabfile.JSONL, want: jsonlGolden},
		"yaml":     {format: tabfile.YAML, want: yamlGolden},
		"markdown": {format: tabfile.Markdown, want: markdownGolden},
		"latex":    {format: tabfile.LaTeX, want: latexGolden},
		"rst":      {format: tabfile.RST, want: rstGolden},
		"jira":     {format: tabfile.Jira, want: jiraGolden},
		"df":       {format: tabfile.DF, want: dfGolden},
		"html":     {format: tabfile.HTML, want: htmlGolden},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := marshal(t, fiveRows(t), tt.format)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalEmptyDataset(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format tabfile.Format
		want   string
	}{
		"cli":   {format: tabfile.CLI, want: ""},
		"df":    {format: tabfile.DF, want: ""},
		"rst":   {format: tabfile.RST, want: ""},
		"json":  {format: tabfile.JSON, want: "[]\n"},
		"jsonl": {format: tabfile.JSONL, want: ""},
		"yaml":  {format: tabfile.YAML, want: "[]\n"},
		"csv":   {format: tabfile.CSV, want: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := marshal(t, tabfile.New(), tt.format)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalHeadersOnly(t *testing.T) {
	t.Parallel()
	d := tabfile.New("a", "b")
	assert.Equal(t, "a,b\n", string(marshal(t, d, tabfile.CSV)))
	assert.Equal(t, "a|b\n-|-\n", string(marshal(t, d, tabfile.CLI)))
}

// --- CSV ---

func TestReadCSVDelimiterOption(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte("a;b\n1;2\n"), tabfile.CSV, tabfile.Options{
		tabfile.OptionDelimiter: ";",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Headers())
	assert.Equal(t, [][]string{{"1", "2"}}, d.Records())
}

func TestWriteCSVDelimiterOption(t *testing.T) {
	t.Parallel()
	d := tabfile.New("a", "b")
	require.NoError(t, d.AppendRecord([]string{"1", "2"}))
	data, err := d.Marshal(tabfile.CSV, tabfile.Options{tabfile.OptionDelimiter: ";"})
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n", string(data))
}

func TestReadCSVNoHeaders(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte("1,2\n3,4\n"), tabfile.CSV, tabfile.Options{
		tabfile.OptionHeaders: false,
	})
	require.NoError(t, err)
	assert.Nil(t, d.Headers())
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, d.Records())
}

func TestReadCSVRaggedRows(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte("a,b,c\n1,2\n3\n"), tabfile.CSV, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", ""}, {"3", "", ""}}, d.Records())
}

func TestWriteCSVQuoting(t *testing.T) {
	t.Parallel()
	d := tabfile.New("name", "note")
	require.NoError(t, d.AppendRecord([]string{"a,b", `say "hi"`}))
	data, err := d.Marshal(tabfile.CSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "name,note\n\"a,b\",\"say \"\"hi\"\"\"\n", string(data))
}

// --- JSON ---

func TestReadJSONObjects(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte(jsonGolden), tabfile.JSON, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Username", "Identifier", "First name", "Last name"}, d.Headers())
	// Numbers come back typed, not stringified.
	assert.Equal(t, int64(9012), d.Row(0)[1])
	assert.Equal(t, "booker12", d.Row(0)[0])
}

func TestReadJSONArrays(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte(`[["a", 1, true], ["b", 2.5, null]]`), tabfile.JSON, nil)
	require.NoError(t, err)
	assert.Nil(t, d.Headers())
	assert.Equal(t, []any{"a", int64(1), true}, d.Row(0))
	assert.Equal(t, []any{"b", 2.5, nil}, d.Row(1))
}

func TestReadJSONMissingKeys(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte(`[{"a": 1, "b": 2}, {"a": 3}]`), tabfile.JSON, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Headers())
	assert.Equal(t, []any{int64(3), nil}, d.Row(1))
}

func TestReadJSONTopLevelObject(t *testing.T) {
	t.Parallel()
	_, err := tabfile.Load([]byte(`{"a": 1}`), tabfile.JSON, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-level array")
}

func TestWriteJSONHeaderless(t *testing.T) {
	t.Parallel()
	d := tabfile.New()
	require.NoError(t, d.Append([]any{"a", int64(1)}))
	require.NoError(t, d.Append([]any{"b", int64(2)}))
	data, err := d.Marshal(tabfile.JSON, nil)
	require.NoError(t, err)
	assert.Equal(t, `[["a",1], ["b",2]]`+"\n", string(data))
}

// --- JSONL ---

func TestReadJSONLSkipsBlankLines(t *testing.T) {
	t.Parallel()
	input := "{\"a\": 1}\n\n{\"a\": 2}\n"
	d, err := tabfile.Load([]byte(input), tabfile.JSONL, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, d.Headers())
	assert.Equal(t, 2, d.Height())
}

func TestReadJSONLBadLine(t *testing.T) {
	t.Parallel()
	_, err := tabfile.Load([]byte("{\"a\": 1}\nnot json\n"), tabfile.JSONL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsonl:")
}

// --- YAML ---

func TestReadYAMLSequenceRows(t *testing.T) {
	t.Parallel()
	input := "- [a, 1]\n- [b, 2]\n"
	d, err := tabfile.Load([]byte(input), tabfile.YAML, nil)
	require.NoError(t, err)
	assert.Nil(t, d.Headers())
	assert.Equal(t, []any{"a", int64(1)}, d.Row(0))
}

func TestReadYAMLMissingKeys(t *testing.T) {
	t.Parallel()
	input := "- a: 1\n  b: 2\n- a: 3\n"
	d, err := tabfile.Load([]byte(input), tabfile.YAML, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Headers())
	assert.Equal(t, []any{int64(3), nil}, d.Row(1))
}

func TestReadYAMLTopLevelMapping(t *testing.T) {
	t.Parallel()
	_, err := tabfile.Load([]byte("a: 1\n"), tabfile.YAML, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-level sequence")
}

func TestReadYAMLEmptyDocument(t *testing.T) {
	t.Parallel()
	d, err := tabfile.Load([]byte("\n"), tabfile.YAML, nil)
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.Nil(t, d.Headers())
}

// --- HTML ---

func TestReadHTMLNoTable(t *testing.T) {
	t.Parallel()
	_, err := tabfile.Load([]byte("<p>hello</p>"), tabfile.HTML, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table")
}

func TestReadHTMLFirstTableOnly(t *testing.T) {
	t.Parallel()
	input := `
<table><tr><th>a</th></tr><tr><td>1</td></tr></table>
<table><tr><td>ignored</td></tr></table>`
	d, err := tabfile.Load([]byte(input), tabfile.HTML, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, d.Headers())
	assert.Equal(t, [][]string{{"1"}}, d.Records())
}

func TestReadHTMLHeaderless(t *testing.T) {
	t.Parallel()
	input := "<table><tr><td>1</td><td>2</td></tr></table>"
	d, err := tabfile.Load([]byte(input), tabfile.HTML, nil)
	require.NoError(t, err)
	assert.Nil(t, d.Headers())
	assert.Equal(t, [][]string{{"1", "2"}}, d.Records())
}

func TestReadHTMLDecodesEntities(t *testing.T) {
	t.Parallel()
	input := "<table><tr><td>a &amp; b</td></tr></table>"
	d, err := tabfile.Load([]byte(input), tabfile.HTML, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a & b"}}, d.Records())
}

func TestWriteHTMLEscapes(t *testing.T) {
	t.Parallel()
	d := tabfile.New("x")
	require.NoError(t, d.AppendRecord([]string{"<b> & co"}))
	data, err := d.Marshal(tabfile.HTML, nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<td>&lt;b&gt; &amp; co</td>")
}

// --- LaTeX ---

func TestWriteLaTeXEscapesSpecials(t *testing.T) {
	t.Parallel()
	d := tabfile.New("pct")
	require.NoError(t, d.AppendRecord([]string{"50%_done & more"}))
	data, err := d.Marshal(tabfile.LaTeX, nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), `50\%\_done \& more`)
}

// --- Round trips ---

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for _, f := range []tabfile.Format{
		tabfile.CSV, tabfile.TSV, tabfile.JSON, tabfile.JSONL,
		tabfile.YAML, tabfile.HTML, tabfile.XLSX, tabfile.ODS,
	} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			d := fiveRows(t)
			got, err := tabfile.Load(marshal(t, d, f), f, nil)
			require.NoError(t, err)
			assert.Equal(t, d.Headers(), got.Headers())
			assert.Equal(t, d.Records(), got.Records())
		})
	}
}

func TestRoundTripJSONBytes(t *testing.T) {
	t.Parallel()
	// Loading the canonical output and re-marshaling reproduces it exactly.
	d, err := tabfile.Load([]byte(jsonGolden), tabfile.JSON, nil)
	require.NoError(t, err)
	assert.Equal(t, jsonGolden, string(marshal(t, d, tabfile.JSON)))
}

func TestRoundTripKeepsTypes(t *testing.T) {
	t.Parallel()
	d := tabfile.New("s", "i", "f", "b", "n")
	require.NoError(t, d.Append([]any{"x", int64(7), 2.5, true, nil}))
	for _, f := range []tabfile.Format{tabfile.JSON, tabfile.JSONL, tabfile.YAML, tabfile.ODS} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			got, err := tabfile.Load(marshal(t, d, f), f, nil)
			require.NoError(t, err)
			assert.Equal(t, []any{"x", int64(7), 2.5, true, nil}, got.Row(0))
		})
	}
}

func TestRoundTripHeaderlessCSV(t *testing.T) {
	t.Parallel()
	d := tabfile.New()
	require.NoError(t, d.AppendRecord([]string{"1", "2"}))
	require.NoError(t, d.AppendRecord([]string{"3", "4"}))
	data := marshal(t, d, tabfile.CSV)
	assert.Equal(t, "1,2\n3,4\n", string(data))
	got, err := tabfile.Load(data, tabfile.CSV, tabfile.Options{tabfile.OptionHeaders: false})
	require.NoError(t, err)
	assert.Nil(t, got.Headers())
	assert.Equal(t, d.Records(), got.Records())
}
