// Package parsererror defines typed errors for the outer boundary of the
// analyzer. The parsing and correlation core itself never fails on content;
// these errors cover file IO and export failures only.
package parsererror

import "fmt"

// InvalidFormatError indicates input that cannot be analyzed at all, such as
// an empty file or a binary blob with no text lines.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// ExportError wraps a failure while writing records or transactions to an
// output file.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s to '%s': %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
