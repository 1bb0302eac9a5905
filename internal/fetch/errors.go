package fetch

import "fmt"

// Kind classifies why a fetch produced no markup.
type Kind int

const (
	// KindNetwork covers unusable URLs, transport failures and non-2xx
	// responses.
	KindNetwork Kind = iota + 1
	// KindGeneral covers charset decoding failures and recovered panics.
	KindGeneral
)

// String returns the label used in error titles and log statuses.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network/HTTP"
	case KindGeneral:
		return "General"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the only error type returned by Client.Fetch.
type Error struct {
	Kind Kind
	URL  string
	// StatusCode is set when the server answered with a non-2xx status.
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

func networkError(rawURL string, err error) *Error {
	return &Error{Kind: KindNetwork, URL: rawURL, Detail: err.Error(), Err: err}
}

func generalError(rawURL string, err error) *Error {
	return &Error{Kind: KindGeneral, URL: rawURL, Detail: err.Error(), Err: err}
}
