package repository

import "errors"

// ErrDuplicateMatch is returned by MatchRepository.Create when a row for
// the same match id already exists. The confirm flow treats it as a
// benign outcome of the check-then-insert race, not a failure.
var ErrDuplicateMatch = errors.New("match already exists")

// ErrDuplicateEmail is returned by AccountRepository.Create when the
// email is already registered. Signup pre-checks, but two concurrent
// signups can both pass the check; the unique key settles it.
var ErrDuplicateEmail = errors.New("email already registered")
