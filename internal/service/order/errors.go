package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation error")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

type Kind string

const (
	KindNotFound      Kind = "NotFound"
	KindAuthorization Kind = "Authorization"
	KindConflict      Kind = "Conflict"
	KindValidation    Kind = "ValidationError"
	KindInternal      Kind = "Internal"
)

// Error carries the failure kind together with the offending order and vendor.
// It unwraps to one of the package sentinels.
type Error struct {
	Kind     Kind
	OrderID  string
	VendorID string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.OrderID != "" {
		fmt.Fprintf(&b, " (order %s", e.OrderID)
		if e.VendorID != "" {
			fmt.Fprintf(&b, ", vendor %s", e.VendorID)
		}
		b.WriteString(")")
	} else if e.VendorID != "" {
		fmt.Fprintf(&b, " (vendor %s)", e.VendorID)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf maps an error chain to its kind, unknown errors are Internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrOrderNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrOrderAlreadyExists):
		return KindConflict
	default:
		return KindInternal
	}
}

func newError(sentinel error, orderID, vendorID, detail string) *Error {
	err := sentinel
	if detail != "" {
		err = fmt.Errorf("%w: %s", sentinel, detail)
	}
	return &Error{
		Kind:     KindOf(sentinel),
		OrderID:  orderID,
		VendorID: vendorID,
		Err:      err,
	}
}

// wrapError attaches order context to a store error, keeping its chain.
func wrapError(err error, orderID, vendorID string) error {
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	kind := KindOf(err)
	if kind == KindInternal {
		return err
	}
	return &Error{
		Kind:     kind,
		OrderID:  orderID,
		VendorID: vendorID,
		Err:      err,
	}
}
