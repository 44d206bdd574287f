package bookgen

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ValidatePDF runs a structural check over a produced PDF artifact.
// Opt-in: normal runs treat artifact existence as the success signal.
func ValidatePDF(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return nil
}
