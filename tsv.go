package tabfile

import "io"

func readTSV(data []byte, opts Options) (*Dataset, error) {
	return readDelimited(data, '\t', opts.Bool(OptionHeaders, true))
}

func writeTSV(w io.Writer, d *Dataset, _ Options) error {
	return writeDelimited(w, d, '\t')
}

func detectTSV(data []byte) bool {
	return detectDelimited(data, '\t')
}
