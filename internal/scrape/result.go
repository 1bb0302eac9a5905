package scrape

import "fmt"

// Status is the per-URL outcome written to the log.
type Status int

const (
	StatusSuccess Status = iota
	StatusContentMissing
	StatusNetwork
	StatusGeneral
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusContentMissing:
		return "Failed: Content Missing"
	case StatusNetwork:
		return "Failed: Network/HTTP Error"
	case StatusGeneral:
		return "Failed: General Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Request is one input row: an identifier that names the artifact and the
// page to fetch.
type Request struct {
	ID  string
	URL string
}

// Result is produced exactly once per Request.
type Result struct {
	ID     string
	URL    string
	Title  string
	Body   string
	Status Status
	// Detail holds the underlying error message for network and general failures.
	Detail string
	// Tier names the extraction strategy that produced Body, if any.
	Tier         string
	ArtifactPath string
}

// StatusText renders Status with its detail, e.g.
// "Failed: Network/HTTP Error - 404 Not Found for url: ...".
func (r Result) StatusText() string {
	if r.Detail != "" && (r.Status == StatusNetwork || r.Status == StatusGeneral) {
		return r.Status.String() + " - " + r.Detail
	}
	return r.Status.String()
}

// Content is the artifact text. It is never empty: even with an empty title
// and body the separator remains.
func (r Result) Content() string {
	return r.Title + "\n\n" + r.Body
}

// OK reports whether the article was scraped successfully.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// errorTitle builds the placeholder title used when nothing was extracted.
func errorTitle(kind, detail string) string {
	return fmt.Sprintf("ERROR: %s Issue - %s", kind, detail)
}
