package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Draft
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"subject": "Hello", "body": "<p>Hi there</p>"}`,
			want: Draft{Subject: "Hello", Body: "<p>Hi there</p>"},
		},
		{
			name: "json fenced",
			raw:  "```json\n{\"subject\": \"Hello\", \"body\": \"<p>Hi</p>\"}\n```",
			want: Draft{Subject: "Hello", Body: "<p>Hi</p>"},
		},
		{
			name: "bare fence",
			raw:  "```\n{\"subject\": \"Hello\", \"body\": \"<p>Hi</p>\"}\n```",
			want: Draft{Subject: "Hello", Body: "<p>Hi</p>"},
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  {\"subject\": \"S\", \"body\": \"B\"}  \n",
			want: Draft{Subject: "S", Body: "B"},
		},
		{
			name:    "not json",
			raw:     "Sure! Here is your email: subject Hello",
			wantErr: true,
		},
		{
			name:    "missing body",
			raw:     `{"subject": "Hello"}`,
			wantErr: true,
		},
		{
			name:    "missing subject",
			raw:     `{"body": "<p>Hi</p>"}`,
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := parseDraft(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				var genErr *GenerationError
				assert.ErrorAs(t, err, &genErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, draft)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Run("without context", func(t *testing.T) {
		prompt := buildPrompt("write a follow-up email", "")
		assert.Contains(t, prompt, "write a follow-up email")
		assert.NotContains(t, prompt, "Additional Context")
	})

	t.Run("with context", func(t *testing.T) {
		prompt := buildPrompt("write a cover letter", "10 years of Go experience")
		assert.Contains(t, prompt, "write a cover letter")
		assert.Contains(t, prompt, "Additional Context")
		assert.Contains(t, prompt, "10 years of Go experience")
	})
}

func TestNewGenerator_MissingAPIKey(t *testing.T) {
	_, err := NewGenerator(t.Context(), &Config{}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}
