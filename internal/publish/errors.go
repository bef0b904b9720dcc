package publish

import (
	"errors"
	"fmt"

	"github.com/clarawendel/artisan-market/internal/market"
)

// Kind classifies a publish flow failure. Raw transport errors never
// leave this package; they are wrapped into one of these.
type Kind string

const (
	KindValidation            Kind = "validation"
	KindAuthorizationDenied   Kind = "authorization_denied"
	KindTokenExchangeFailed   Kind = "token_exchange_failed"
	KindGenerationUnavailable Kind = "generation_unavailable"
	KindPartialFailure        Kind = "publish_partial_failure"
	KindTotalFailure          Kind = "publish_total_failure"
)

type Error struct {
	Kind     Kind
	Platform market.Platform
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Platform, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, platform market.Platform, err error) *Error {
	return &Error{Kind: kind, Platform: platform, Message: err.Error(), Err: err}
}

// KindOf extracts the failure kind, or "" for non-flow errors.
func KindOf(err error) Kind {
	var flowErr *Error
	if errors.As(err, &flowErr) {
		return flowErr.Kind
	}
	return ""
}
