package suggest

import "errors"

var (
	// ErrInvalidTerm is returned by Insert when a term is empty after normalization.
	ErrInvalidTerm = errors.New("invalid term")

	// ErrInvalidScore is returned by Insert for a NaN or infinite score.
	ErrInvalidScore = errors.New("invalid score")

	// ErrCorruptIndex is the panic value for a trie item that breaks the index invariants.
	ErrCorruptIndex = errors.New("corrupt completion index")
)
