package boxscore

import "fmt"

// MalformedPageError reports a fetched page missing a structural block the
// parser requires. The crawl driver skips the offending game and keeps going.
type MalformedPageError struct {
	URL   string
	Block string
}

func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page %s: missing %s block", e.URL, e.Block)
}
