package transform

import (
	"fmt"
	"sort"

	"github.com/careerkit/cvforge/internal/types"
)

// Error represents an error during profile transformation
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// sortAndRank orders experiences by descending pertinence score and
// reassigns ordre_affichage as a contiguous 1-based rank. The sort is
// stable: equal scores keep their original relative order.
func sortAndRank(experiences []types.ExperienceOptimized) {
	sort.SliceStable(experiences, func(i, j int) bool {
		return experiences[i].PertinenceScore > experiences[j].PertinenceScore
	})
	for i := range experiences {
		experiences[i].OrdreAffichage = i + 1
	}
}
