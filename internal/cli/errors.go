package cli

import (
	"errors"
	"fmt"
	"strconv"

	"deskfolio/internal/content"
	"deskfolio/internal/store"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// photoErr turns a missing photo from either backend into a notFoundError.
func photoErr(id int, err error) error {
	var apiErr *content.APIError
	if errors.Is(err, store.ErrNotFound) || (errors.As(err, &apiErr) && apiErr.Status == 404) {
		return errNotFound("photo", strconv.Itoa(id))
	}
	return err
}
