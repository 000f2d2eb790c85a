/*
 * errors.go, part of godyno.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package dyno

import "fmt"

//This error scheme predates the "wrapping" error system of Go (i.e. the "%w" directive and
//the errors package). Kept for compatibility with the rest of the library family.

// Error is the interface for errors that all packages in this library implement. The Decorate
// method allows to add and retrieve info from the error, without changing its type or wrapping
// it around something else. Each Decorate call returns the current decoration slice, which
// should contain the names of the functions in the calling stack, plus, for each, any relevant
// extra information in the format "FunctionName: Extra info". If passed an empty string,
// Decorate just returns the current value without adding anything.
type Error interface {
	Error() string
	Decorate(string) []string
}

// Kinder is implemented by errors that carry one of the dynophore error kinds, so callers can
// branch on the kind without matching strings.
type Kinder interface {
	Error
	Kind() string
}

// The error kinds of the library. Every failure while loading or querying a dynophore is one
// of these.
const (
	//DataNotFound: the dynophore directory, or a file the on-disk schema requires, is absent.
	DataNotFound = "DataNotFound"
	//MalformedData: a file could be read but not understood, or the per-frame series in the
	//aggregate don't share one length.
	MalformedData = "MalformedData"
	//UnknownSelection: a query referenced a superfeature or environmental partner that is not
	//part of the dynophore.
	UnknownSelection = "UnknownSelection"
)

// DataError is the concrete error type for the dyno package. It fulfills dyno.Error and
// dyno.Kinder.
type DataError struct {
	message  string
	filename string //the implicated file, or empty string if none.
	kind     string
	deco     []string
	critical bool
}

func (err DataError) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("dynophore %s error: %s", err.kind, err.message)
	}
	return fmt.Sprintf("dynophore %s error in %s: %s", err.kind, err.filename, err.message)
}

//Decorate adds new information to the error
func (err DataError) Decorate(deco string) []string {
	//Even though this method does not use a pointer receiver, and tries to alter the
	//receiver, it works, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns the error kind (DataNotFound, MalformedData or UnknownSelection)
func (err DataError) Kind() string { return err.kind }

//FileName returns the file implicated in the error, or an empty string
func (err DataError) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err DataError) Critical() bool { return err.critical }

//IsNotFound returns true if err carries the DataNotFound kind
func IsNotFound(err error) bool { return kindIs(err, DataNotFound) }

//IsMalformed returns true if err carries the MalformedData kind
func IsMalformed(err error) bool { return kindIs(err, MalformedData) }

//IsUnknownSelection returns true if err carries the UnknownSelection kind
func IsUnknownSelection(err error) bool { return kindIs(err, UnknownSelection) }

func kindIs(err error, kind string) bool {
	k, ok := err.(Kinder)
	return ok && k.Kind() == kind
}

//errDecorate is a helper that asserts that the error implements dyno.Error and decorates it
//with the caller's name before returning it. Used with a non-dyno.Error error, it will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
