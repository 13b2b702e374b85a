package region

import "errors"

var (
	// ErrIncompleteAddress indicates the geocoder response lacked a usable
	// city or prefecture name. Absorbed by the fallback chain.
	ErrIncompleteAddress = errors.New("incomplete address")
	// ErrNoMatch indicates the catalog contained no entry for the address.
	ErrNoMatch = errors.New("no catalog match")
	// ErrNoFallback indicates the offline table is empty. Cannot happen with
	// the built-in table; only reachable with a custom empty table.
	ErrNoFallback = errors.New("fallback table is empty")
)
