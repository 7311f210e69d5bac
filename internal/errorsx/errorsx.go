// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package errorsx

import (
	"github.com/pkg/errors"
)

// StackTracer is implemented by errors which carry a stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// WithStack mutates err to include a stack trace unless it already carries one.
// This is in contrast to errors.WithStack which wraps unconditionally and
// therefore buries the original trace on re-wrap.
func WithStack(err error) error {
	if e, ok := err.(StackTracer); ok && len(e.StackTrace()) > 0 {
		return err
	}

	return errors.WithStack(err)
}
