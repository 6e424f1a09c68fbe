package recommender

import (
	"errors"
	"fmt"
)

// Reason codes attached to an empty RecommendationResult. These are for the
// presentation layer to act on (ask the user for more ratings, loosen
// filters); they are not Go errors because the pipeline handled them.
const (
	ReasonInsufficientRatings = "INSUFFICIENT_RATINGS"
	ReasonEmptyCandidateSet   = "EMPTY_CANDIDATE_SET"
)

// ConfigError reports an invalid feature weight table, either the default at
// process start or a per-request override. It indicates a build/deploy or
// caller defect and must not be converted into an empty result.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// InsufficientRatingsError is returned by ValidateRatings when the user has
// not rated enough series. Recoverable: the caller should collect more input.
type InsufficientRatingsError struct {
	Likes int
	Total int
}

func (e *InsufficientRatingsError) Error() string {
	if e.Likes < MinLikes {
		return fmt.Sprintf("need at least %d likes (got %d)", MinLikes, e.Likes)
	}
	return fmt.Sprintf("need at least %d total ratings (got %d)", MinTotalRatings, e.Total)
}

func IsInsufficientRatings(err error) bool {
	var ie *InsufficientRatingsError
	return errors.As(err, &ie)
}
