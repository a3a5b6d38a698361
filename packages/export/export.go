package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MehmetMelik/steq/packages/model"
)

// ErrUnknownFormat is returned for a format outside Formats().
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the rendered client.
type Format string

const (
	FormatCurl   Format = "curl"
	FormatWget   Format = "wget"
	FormatFetch  Format = "fetch"
	FormatHTTPie Format = "httpie"
)

// Formats returns the supported formats in display order.
func Formats() []Format {
	return []Format{FormatCurl, FormatWget, FormatFetch, FormatHTTPie}
}

// ParseFormat parses a format name, ignoring case and surrounding space.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFormat, s, formatList())
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ExportRequest renders input in the given format. Rendering never fails for
// a known format.
func ExportRequest(input model.ExportRequestInput, format Format) (string, error) {
	switch format {
	case FormatCurl:
		return exportAsCurl(input), nil
	case FormatWget:
		return exportAsWget(input), nil
	case FormatFetch:
		return exportAsFetch(input), nil
	case FormatHTTPie:
		return exportAsHTTPie(input), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
