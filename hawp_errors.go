/*
 * hawp_errors.go, part of gohawp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package hawp

import (
	"errors"
	"slices"
	"strings"
)

//Sentinel errors. Errors returned by this library and its sub-packages wrap
//one of these when the caller may want to test for the condition with errors.Is.
var (
	//ErrNonFinite signals a NaN or Inf produced during propagation.
	ErrNonFinite = errors.New("non-finite value")
	//ErrDimension signals inconsistent dimensions when building a packet or a potential.
	ErrDimension = errors.New("dimension mismatch")
	//ErrSingularFrame signals a parameter set whose Q matrix can't be inverted.
	ErrSingularFrame = errors.New("singular Q matrix")
)

//Error is the error type for the library. The Decorate method allows to add
//and retrieve info from the error, without changing its type or wrapping it
//around something else.
type Error struct {
	message  string
	deco     []string
	critical bool
	wrapped  error
}

//NewError returns an Error with the message msg, decorated with the caller's name.
//wrapped can be nil.
func NewError(msg, caller string, critical bool, wrapped error) Error {
	return Error{message: msg, deco: []string{caller}, critical: critical, wrapped: wrapped}
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if len(err.deco) == 0 {
		return "goHawp: " + err.message
	}
	return "goHawp: " + err.message + " (" + strings.Join(err.deco, " <- ") + ")"
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. If passed an empty string, it just returns the
//current decorations. The slice is copied first, so copies of an Error never
//share decorations.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(slices.Clone(err.deco), dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the sentinel error wrapped, if any.
func (err Error) Unwrap() error { return err.wrapped }

//ErrDecorate decorates err with the caller's name if err is an Error (or a *Error), and
//returns it. Other errors, including those that only wrap an Error, are returned unchanged.
func ErrDecorate(err error, caller string) error {
	switch e := err.(type) {
	case Error:
		e.Decorate(caller)
		return e
	case *Error:
		e.Decorate(caller)
		return e
	}
	return err
}
