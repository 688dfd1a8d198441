package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/poe2genie/internal/llm"
)

// Kind classifies assistant failures.
type Kind string

const (
	KindNotConfigured      Kind = "not_configured"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindRateLimited        Kind = "rate_limited"
	KindBilling            Kind = "billing"
	KindProvider           Kind = "provider"
	KindUnknown            Kind = "unknown"
	KindCanceled           Kind = "canceled"
)

// User-facing messages. They are returned to HTTP clients verbatim.
const (
	MsgNotConfigured = "OpenAI API key not configured. Please add OPENAI_API_KEY to your environment variables."
	MsgInvalidKey    = "Invalid API key. Please check your OpenAI API key configuration."
	MsgRateLimited   = "Rate limit exceeded. Please wait a few minutes before trying again."
	MsgPayment       = "Payment required. Please add payment method to your OpenAI account."
	MsgForbidden     = "Access denied. Please check your OpenAI account permissions."
	MsgCanceled      = "Request canceled."
	MsgNoResponse    = "No response from AI"
)

// Error is the only error type Ask returns.
type Error struct {
	Kind    Kind
	Status  int // upstream HTTP status, when there was one
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func notConfigured(envVar string) *Error {
	msg := MsgNotConfigured
	if envVar != "" && envVar != "OPENAI_API_KEY" {
		msg = fmt.Sprintf("API key not configured. Please add %s to your environment variables.", envVar)
	}
	return &Error{Kind: KindNotConfigured, Message: msg}
}

// classify maps a provider error onto the taxonomy.
func classify(ctx context.Context, err error) *Error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindCanceled, Message: MsgCanceled, Err: err}
	}

	var se *llm.StatusError
	if errors.As(err, &se) {
		e := &Error{Status: se.Code, Err: err}
		switch se.Code {
		case 401:
			e.Kind, e.Message = KindInvalidCredentials, MsgInvalidKey
		case 429:
			e.Kind, e.Message = KindRateLimited, MsgRateLimited
		case 402:
			e.Kind, e.Message = KindBilling, MsgPayment
		case 403:
			e.Kind, e.Message = KindBilling, MsgForbidden
		default:
			e.Kind, e.Message = KindProvider, fmt.Sprintf("OpenAI API error: %d", se.Code)
		}
		return e
	}

	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}
