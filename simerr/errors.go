// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package simerr implements the typed error kinds returned across the
// simulation driver boundary. Invariant and Numeric failures are fatal:
// internal code raises them with Fatal (a panic carrying an *Error) and the
// driver's Recover converts that panic back into a normal returned error, the
// same shape chk.Panic/recover gives gofem's main.go, but without letting the
// panic itself escape past the driver.
package simerr

import "github.com/cpmech/gosl/io"

// Kind classifies why the simulation stopped or a step failed
type Kind int

// error kinds
const (
	ConfigError Kind = iota
	IOError
	Invariant
	Numeric
	LogicError
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case IOError:
		return "IOError"
	case Invariant:
		return "Invariant"
	case Numeric:
		return "Numeric"
	case LogicError:
		return "LogicError"
	}
	return "Unknown"
}

// Fatal reports whether this kind always terminates the run
func (k Kind) Fatal() bool {
	return k == Invariant || k == Numeric
}

// Error is the concrete error type returned (or, for fatal kinds, panicked
// and recovered) across the driver boundary.
type Error struct {
	Kind      Kind
	Step      int    // time step at which the failure was detected, -1 if n/a
	Detail    string // human-readable diagnostic
	Offenders []int  // offending indices (bead/spring/filament ids), may be nil
}

// Error implements the error interface
func (e *Error) Error() string {
	if len(e.Offenders) > 0 {
		return io.Sf("%v at step %d: %s (offenders=%v)", e.Kind, e.Step, e.Detail, e.Offenders)
	}
	return io.Sf("%v at step %d: %s", e.Kind, e.Step, e.Detail)
}

// New builds a non-fatal *Error (ConfigError, IOError, LogicError)
func New(kind Kind, step int, detail string, offenders ...int) *Error {
	return &Error{Kind: kind, Step: step, Detail: detail, Offenders: offenders}
}

// Fatal panics with an *Error of the given (necessarily fatal) kind; callers
// deep in the simulation use this for invariant violations and non-finite
// numbers, where returning an error up every call frame would be unwieldy.
// Recover (below) is the only place this panic may be caught.
func Fatal(kind Kind, step int, detail string, offenders ...int) {
	panic(&Error{Kind: kind, Step: step, Detail: detail, Offenders: offenders})
}

// Recover is deferred at the driver boundary (ensemble.Network.Step and the
// cmd/afines run function). It turns a panic raised by Fatal into a returned
// error via *errOut; panics of any other kind are re-raised unchanged.
func Recover(errOut *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*errOut = e
		return
	}
	panic(r)
}
