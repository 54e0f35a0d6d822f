// Package sevenzip drives an external 7z executable.
//
// The archive codec is never linked in; every operation is a subprocess:
//
//	add:  7z a -t7z -mx=N -bd -y -spd -- <archive> <inputs...>
//	test: 7z t -bd -spd -- <archive>
//	list: 7z l -slt -spd -- <archive>
//
// Build the argument slices with the functions in builder.go, run them
// with [Executor], and parse technical listings with [ParseListing].
// [Client] ties the three together. Exit codes and stderr are mapped to
// [*ExitError] values with a human-readable meaning.
package sevenzip
