// Package selection parses the operator's free-text menu input into an
// ordered set of target indices.
package selection

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmpty is returned when the operator submits no tokens at all. Callers
// abort the run without changes and without treating it as a failure.
var ErrEmpty = errors.New("empty selection")

// Parse interprets input as a selection over n targets numbered 1..n.
//
// Tokens may be separated by spaces, commas, or both. The literal "all"
// selects every target. Unknown or out-of-range tokens are returned in
// unknown for the caller to warn about; they never abort the run. The
// returned indices are 1-based, deduplicated, and sorted ascending so that
// execution always follows the declared target order, regardless of the
// order the operator typed them in.
func Parse(input string, n int) (indices []int, unknown []string, err error) {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil, nil, ErrEmpty
	}

	seen := make(map[int]bool)
	for _, tok := range tokens {
		if strings.EqualFold(tok, "all") {
			for i := 1; i <= n; i++ {
				seen[i] = true
			}
			continue
		}
		idx, convErr := strconv.Atoi(tok)
		if convErr != nil || idx < 1 || idx > n {
			unknown = append(unknown, tok)
			continue
		}
		seen[idx] = true
	}

	indices = make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	if len(indices) == 0 && len(unknown) > 0 {
		// Every token was bogus; report them but treat the run as empty.
		return nil, unknown, ErrEmpty
	}
	return indices, unknown, nil
}
