// Package smt requires cgo and a system Z3 installation (libz3 +
// z3.h) to build. Every file in this package other than this one is
// compiled only under the cgo build tag, mirroring the pattern used by the retrieved
// reference binding this package is grounded on.
package smt
