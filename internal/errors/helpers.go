package errors

import (
	"errors"
)

// As is errors.As for *Error targets
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error in the chain. Context
// cancellation maps to Canceled or DeadlineExceeded, anything else uncoded
// is Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if code, ok := contextCode(err); ok {
		return code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error
func GetMeta(err error) map[string]any {
	var e *Error
	if err != nil && errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the user facing message, or err.Error() for plain errors
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HasCode reports whether err is classified as code
func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound reports a not found error
func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

// IsInvalidArgument reports an invalid argument error
func IsInvalidArgument(err error) bool { return HasCode(err, CodeInvalidArgument) }

// IsAlreadyExists reports an already exists error
func IsAlreadyExists(err error) bool { return HasCode(err, CodeAlreadyExists) }

// IsPermissionDenied reports a permission denied error
func IsPermissionDenied(err error) bool { return HasCode(err, CodePermissionDenied) }

// IsUnauthenticated reports an unauthenticated error
func IsUnauthenticated(err error) bool { return HasCode(err, CodeUnauthenticated) }

// IsFailedPrecondition reports a failed precondition error
func IsFailedPrecondition(err error) bool { return HasCode(err, CodeFailedPrecondition) }

// IsInternal reports an internal error
func IsInternal(err error) bool { return HasCode(err, CodeInternal) }

// IsUnavailable reports an unavailable error
func IsUnavailable(err error) bool { return HasCode(err, CodeUnavailable) }

// IsDataLoss reports a data loss error
func IsDataLoss(err error) bool { return HasCode(err, CodeDataLoss) }
