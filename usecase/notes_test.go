package usecase

import (
	"strings"
	"testing"

	"main/dto"
	"main/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateNote(t *testing.T) {
	svc := &NotesService{}

	tests := []struct {
		name        string
		title       string
		content     string
		contentType string
		tags        []string
		wantErr     bool
	}{
		{"valid plain note", "Groceries", "milk, eggs", model.ContentTypePlain, nil, false},
		{"valid markdown note", "Readme", "# hi", model.ContentTypeMarkdown, []string{"docs"}, false},
		{"empty content type accepted", "Note", "body", "", nil, false},
		{"missing title", "", "body", "", nil, true},
		{"whitespace title", "   ", "body", "", nil, true},
		{"missing content", "Note", "", "", nil, true},
		{"title too long", strings.Repeat("a", 201), "body", "", nil, true},
		{"content too long", "Note", strings.Repeat("a", 50001), "", nil, true},
		{"unknown content type", "Note", "body", "html", nil, true},
		{"too many tags", "Note", "body", "", make([]string, 11), true},
		{"ten tags allowed", "Note", "body", "", make([]string, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.validateNote(tt.title, tt.content, tt.contentType, tt.tags)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListViewsHideLockedContent(t *testing.T) {
	notes := []*model.Note{
		{ID: "locked", IsPrivate: true, Content: "the hidden body", PasswordHint: "pet name"},
		{ID: "open", Content: "plain body"},
	}

	responses := dto.ToNoteResponses(redactPrivateContent(notes))

	// The locked note is listed but its body only travels via Unlock.
	assert.Empty(t, responses[0].Content)
	assert.Equal(t, "pet name", responses[0].PasswordHint)
	assert.True(t, responses[0].IsPrivate)
	assert.Equal(t, "plain body", responses[1].Content)
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" work ", "", "  ", "home", "\ttodo\n"})
	assert.Equal(t, []string{"work", "home", "todo"}, got)

	assert.Empty(t, normalizeTags(nil))
	assert.Empty(t, normalizeTags([]string{"", "  "}))
}
