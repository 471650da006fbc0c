// Command tabfile converts tabular data files between formats.
//
// With an outfile the converted data is written there and a summary line is
// printed. Without one the result goes to standard output, either in the
// requested format or pretty-printed as a table.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bjaus/tabfile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors that exit with code 2 instead of 1.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "tabfile: %v\n", err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			return 2
		}
		return 1
	}
	return 0
}

type options struct {
	list      bool
	outFormat string
	inFormat  string
	noHeaders bool
	delimiter string
	sheet     string
	verbose   bool
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "tabfile [flags] <infile> [outfile]",
		Short: "Convert tabular data files between formats",
		Long: `Convert tabular data files between formats.

If no outfile is given the result is printed instead, either in the
requested format, or pretty-printed as a table.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, args, &opts)
		},
	}
	cmd.SetVersionTemplate("tabfile {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list the available file formats and exit")
	cmd.Flags().StringVarP(&opts.outFormat, "format", "t", "", "output format (default: the outfile extension)")
	cmd.Flags().StringVar(&opts.inFormat, "from", "", "input format (default: the infile extension, then content sniffing)")
	cmd.Flags().BoolVar(&opts.noHeaders, "no-headers", false, "treat CSV/TSV input as having no header row")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet name for XLSX input and output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolP("version", "V", false, "version for tabfile")
	return cmd
}

func execute(cmd *cobra.Command, args []string, opts *options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	if opts.list {
		if len(args) > 0 {
			return usageErrorf("cannot combine --list with file names")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Available formats:", strings.Join(formatNames(), " "))
		return nil
	}
	if len(args) == 0 {
		return usageErrorf("no input file given")
	}
	infile := args[0]
	outfile := ""
	if len(args) == 2 {
		outfile = args[1]
	}

	outFormat, err := parseFormatFlag(opts.outFormat)
	if err != nil {
		return err
	}
	inFormat, err := parseFormatFlag(opts.inFormat)
	if err != nil {
		return err
	}
	if _, err := os.Stat(infile); err != nil {
		return usageErrorf("input file %s does not exist", infile)
	}

	data, err := os.ReadFile(infile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", infile, err)
	}
	if inFormat == "" {
		inFormat = tabfile.FormatForPath(infile)
	}
	if inFormat == "" {
		if inFormat, err = tabfile.Sniff(data); err != nil {
			return fmt.Errorf("cannot determine format of %s: %w", infile, err)
		}
	}
	logger.Debug("input resolved", "file", infile, "format", inFormat)

	convOpts := tabfile.Options{
		tabfile.OptionHeaders:   !opts.noHeaders,
		tabfile.OptionDelimiter: opts.delimiter,
	}
	if opts.sheet != "" {
		convOpts[tabfile.OptionSheet] = opts.sheet
	}
	d, err := tabfile.Load(data, inFormat, convOpts)
	if err != nil {
		return fmt.Errorf("loading %s: %w", infile, err)
	}
	if d.Empty() {
		return fmt.Errorf("no data was loaded from %s", infile)
	}
	logger.Debug("dataset loaded", "records", d.Height(), "columns", d.Width())

	switch {
	case outfile != "":
		return saveFile(cmd, d, outfile, outFormat, convOpts)
	case outFormat != "":
		return exportStdout(cmd, d, outFormat, convOpts)
	default:
		return d.Write(cmd.OutOrStdout(), tabfile.CLI, nil)
	}
}

func saveFile(cmd *cobra.Command, d *tabfile.Dataset, outfile string, f tabfile.Format, opts tabfile.Options) error {
	if f == "" {
		f = tabfile.FormatForPath(outfile)
	}
	if f == "" {
		return fmt.Errorf("unable to detect output format for %s", outfile)
	}
	data, err := d.Marshal(f, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outfile, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outfile, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved '%s', %d records (%s)\n", outfile, d.Height(), f)
	return nil
}

func exportStdout(cmd *cobra.Command, d *tabfile.Dataset, f tabfile.Format, opts tabfile.Options) error {
	if f.Binary() && writerIsTerminal(cmd.OutOrStdout()) {
		return fmt.Errorf("format %s is binary, not printing to console", f)
	}
	return d.Write(cmd.OutOrStdout(), f, opts)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseFormatFlag(name string) (tabfile.Format, error) {
	if name == "" {
		return "", nil
	}
	f, err := tabfile.ParseFormat(name)
	if err != nil {
		return "", usageErrorf("invalid format %q, use one of: %s", name, strings.Join(formatNames(), " "))
	}
	return f, nil
}

func formatNames() []string {
	formats := tabfile.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
