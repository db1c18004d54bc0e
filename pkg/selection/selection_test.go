package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	const n = 7

	tests := []struct {
		name        string
		input       string
		want        []int
		wantUnknown []string
	}{
		{
			name:  "space separated",
			input: "1 3 5",
			want:  []int{1, 3, 5},
		},
		{
			name:  "comma separated",
			input: "1,3,5",
			want:  []int{1, 3, 5},
		},
		{
			name:  "mixed separators",
			input: "1, 3 5",
			want:  []int{1, 3, 5},
		},
		{
			name:  "all selects every target in declared order",
			input: "all",
			want:  []int{1, 2, 3, 4, 5, 6, 7},
		},
		{
			name:  "input order does not change execution order",
			input: "5,1,3",
			want:  []int{1, 3, 5},
		},
		{
			name:  "duplicates collapse",
			input: "2 2,2",
			want:  []int{2},
		},
		{
			name:        "unknown index warns and continues",
			input:       "1 99",
			want:        []int{1},
			wantUnknown: []string{"99"},
		},
		{
			name:        "non-numeric token warns and continues",
			input:       "1 banana 4",
			want:        []int{1, 4},
			wantUnknown: []string{"banana"},
		},
		{
			name:        "zero is out of range",
			input:       "0 2",
			want:        []int{2},
			wantUnknown: []string{"0"},
		},
		{
			name:  "all combined with indices",
			input: "all 3",
			want:  []int{1, 2, 3, 4, 5, 6, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unknown, err := Parse(tt.input, n)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("indices mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", ",,,", " , "} {
		_, _, err := Parse(input, 7)
		assert.ErrorIs(t, err, ErrEmpty, "input %q", input)
	}
}

func TestParseAllTokensUnknown(t *testing.T) {
	indices, unknown, err := Parse("99 banana", 7)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, indices)
	assert.Equal(t, []string{"99", "banana"}, unknown)
}
