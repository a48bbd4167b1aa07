package render

import (
	"slices"

	"github.com/matzehuels/clothsim/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatDOT}

// ValidateFormat returns an INVALID_FORMAT error for unknown formats.
// Format names are case-sensitive.
func ValidateFormat(f string) error {
	if !slices.Contains(Formats, f) {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %v)", f, Formats)
	}
	return nil
}

// ValidateFormats validates each format in turn.
func ValidateFormats(fs []string) error {
	for _, f := range fs {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
