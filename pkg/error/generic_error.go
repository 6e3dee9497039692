package error

// GenericError is implemented by all typed errors in this package so the
// recovery middleware can map them to an HTTP status and machine code.
type GenericError interface {
	error
	ErrCode() string
	StatusCode() int
}
