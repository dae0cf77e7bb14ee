package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    // ErrInvalidFormat is used when caller-supplied text cannot be parsed (dates, enums).
    ErrInvalidFormat = errors.New("invalid_format")
    // ErrInfra marks failures of the underlying store.
    ErrInfra = errors.New("infra")
)

// Kind classifies an Error so callers can branch without matching message text.
type Kind int

const (
    KindInfra Kind = iota
    KindNotFound
    KindInvalidFormat
)

// Code is the stable machine-readable name of the kind.
func (k Kind) Code() string {
    switch k {
    case KindNotFound:
        return "NOT_FOUND"
    case KindInvalidFormat:
        return "INVALID_FORMAT"
    default:
        return "INTERNAL"
    }
}

func (k Kind) sentinel() error {
    switch k {
    case KindNotFound:
        return ErrNotFound
    case KindInvalidFormat:
        return ErrInvalidFormat
    default:
        return ErrInfra
    }
}

// Error carries a fixed human-readable message alongside its kind.
// Err optionally holds the underlying cause (e.g. a driver error).
type Error struct {
    Kind Kind
    Msg  string
    Err  error
}

func (e *Error) Error() string { return e.Msg }

// Is matches the kind's sentinel so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool { return target == e.Kind.sentinel() }

func (e *Error) Unwrap() error { return e.Err }

// Extensions is picked up by the GraphQL executor and rendered under errors[].extensions.
func (e *Error) Extensions() map[string]interface{} {
    return map[string]interface{}{"code": e.Kind.Code()}
}

func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Msg: msg} }
func InvalidFormat(msg string) *Error { return &Error{Kind: KindInvalidFormat, Msg: msg} }

// Infra wraps a store failure. The message stays generic; the cause is kept for logging.
func Infra(err error) *Error {
    return &Error{Kind: KindInfra, Msg: "internal error", Err: err}
}

// KindOf reports the kind of err. Errors outside this package count as infra.
func KindOf(err error) Kind {
    var e *Error
    if errors.As(err, &e) {
        return e.Kind
    }
    switch {
    case errors.Is(err, ErrNotFound):
        return KindNotFound
    case errors.Is(err, ErrInvalidFormat):
        return KindInvalidFormat
    }
    return KindInfra
}
