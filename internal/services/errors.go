package services

import "errors"

// Hard-failure categories surfaced to callers. Handlers map these to HTTP
// statuses; everything else is wrapped and treated as internal.
var (
	// ErrNoResumesFound means the caller has no matchable resumes, so a
	// matching run has nothing to compute. Distinct from a run that found
	// zero matches.
	ErrNoResumesFound = errors.New("no resumes found for user")

	// ErrNoJobOffersFound means there are no job offers at all.
	ErrNoJobOffersFound = errors.New("no job offers found")

	// ErrNoMatchesFound means application generation was requested before
	// any matching run produced results for the caller.
	ErrNoMatchesFound = errors.New("no matches found for user")

	// ErrUnsupportedFormat rejects uploads that are not PDF documents.
	ErrUnsupportedFormat = errors.New("unsupported document format, only PDF is accepted")

	// ErrEmbeddingUnavailable wraps any failure of the external embedding
	// capability: unreachable, rate limited, or malformed response.
	ErrEmbeddingUnavailable = errors.New("embedding capability unavailable")
)
