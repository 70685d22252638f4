package models

import "fmt"

// OutcomeKind classifies the completion of one fetch
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeNotFound
	OutcomeOtherError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeOtherError:
		return "other_error"
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

// FetchOutcome is the result of a single request to the analysis API.
// Body is only set for OutcomeSuccess.
type FetchOutcome struct {
	Kind       OutcomeKind
	StatusCode int
	Body       []byte
	Cause      error
}

// Success wraps a 200 response body
func Success(body []byte) FetchOutcome {
	return FetchOutcome{Kind: OutcomeSuccess, StatusCode: 200, Body: body}
}

// Empty marks a successful response the availability guard rejected
func Empty() FetchOutcome {
	return FetchOutcome{Kind: OutcomeEmpty, StatusCode: 200}
}

// NotFound marks a 404 response
func NotFound() FetchOutcome {
	return FetchOutcome{Kind: OutcomeNotFound, StatusCode: 404}
}

// OtherError marks any other failure; status is 0 for transport errors
func OtherError(status int, cause error) FetchOutcome {
	return FetchOutcome{Kind: OutcomeOtherError, StatusCode: status, Cause: cause}
}

// Err maps the outcome onto the error taxonomy; nil for OutcomeSuccess
func (o FetchOutcome) Err() error {
	switch o.Kind {
	case OutcomeEmpty:
		return ErrEmptyDataset
	case OutcomeNotFound:
		return ErrNotFound
	case OutcomeOtherError:
		if o.Cause != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, o.Cause)
		}
		return fmt.Errorf("%w: status %d", ErrUpstream, o.StatusCode)
	}
	return nil
}
