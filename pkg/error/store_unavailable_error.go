package error

import "net/http"

// StoreUnavailableError surfaces backing-store failures directly. No retry is
// attempted internally; retry policy belongs to the caller.
type StoreUnavailableError string

func (err StoreUnavailableError) Error() string {
	return string(err)
}

func (err StoreUnavailableError) ErrCode() string {
	return "STORE_UNAVAILABLE"
}

func (err StoreUnavailableError) StatusCode() int {
	return http.StatusServiceUnavailable
}
