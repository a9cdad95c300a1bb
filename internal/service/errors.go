package service

import (
	"errors"
	"time"

	"github.com/objectifs/objectifs/internal/apperr"
)

// storeErr turns a repository error into an application error: the
// repository's not-found sentinel becomes a 404 with msg, anything else is a
// persistence failure.
func storeErr(err, notFound error, msg string) error {
	if notFound != nil && errors.Is(err, notFound) {
		return apperr.NotFound(msg)
	}
	return apperr.Database(err)
}

// clockOrNow lets services run on an injected clock in tests.
func clockOrNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
