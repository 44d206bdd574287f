// Package dateutil provides date formatting for generated documents.
package dateutil

import "time"

// longFormat renders dates like "March 03, 2024", the human-readable form
// used on cover pages and combined-document headers.
const longFormat = "January 02, 2006"

// FormatLong formats t in the long human-readable form.
func FormatLong(t time.Time) string {
	return t.Format(longFormat)
}
