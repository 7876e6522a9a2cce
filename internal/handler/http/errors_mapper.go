package http

import (
	"errors"
	"net/http"

	"github.com/mintid/mintid/internal/service"
	"github.com/mintid/mintid/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongCredentials:    http.StatusUnauthorized,
	service.ErrProfileInactive:     http.StatusForbidden,
	service.ErrTokenIsInvalid:      http.StatusUnauthorized,
	service.ErrUnknownRole:         http.StatusBadRequest,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrProfileNotFound:       http.StatusNotFound,
	store.ErrProfileInactive:       http.StatusForbidden,
	store.ErrAmbiguousProfile:      http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err. Client errors carry
// the sentinel's message; server-side failures answer with the bare status
// text so wrapped driver detail never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
