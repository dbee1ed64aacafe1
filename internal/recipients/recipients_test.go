package recipients

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "comma separated with noise",
			input:    "a@x.com, b@y.com,,  c@z.com ",
			expected: []string{"a@x.com", "b@y.com", "c@z.com"},
		},
		{
			name:     "single address",
			input:    "a@x.com",
			expected: []string{"a@x.com"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "only separators and whitespace",
			input:    " , ,, ",
			expected: nil,
		},
		{
			name:     "duplicates are kept",
			input:    "a@x.com,a@x.com",
			expected: []string{"a@x.com", "a@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromText(tt.input))
		})
	}
}

func TestFromCSV(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		expected []string
		wantErr  error
	}{
		{
			name:     "uppercase Email column",
			csv:      "Name,Email\nAlice,alice@x.com\nBob,bob@y.com\n",
			expected: []string{"alice@x.com", "bob@y.com"},
		},
		{
			name:     "lowercase email column with blank rows",
			csv:      "name,email\nAlice,alice@x.com\nNobody,\nBob,bob@y.com\n",
			expected: []string{"alice@x.com", "bob@y.com"},
		},
		{
			name:     "duplicates removed first-seen order",
			csv:      "Email\nb@y.com\na@x.com\nb@y.com\n",
			expected: []string{"b@y.com", "a@x.com"},
		},
		{
			name:    "missing email column",
			csv:     "Name,Phone\nAlice,555-0123\n",
			wantErr: ErrMissingEmailColumn,
		},
		{
			name:     "short rows are skipped",
			csv:      "Name,Email\nAlice,alice@x.com\nshortrow\n",
			expected: []string{"alice@x.com"},
		},
		{
			name:     "header only",
			csv:      "Email\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails, err := FromCSV(strings.NewReader(tt.csv))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, emails)
		})
	}
}

func TestFromCSV_EmptyFile(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read csv header")
}
