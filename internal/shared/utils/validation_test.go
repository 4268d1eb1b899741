package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		required bool
		wantErr  bool
	}{
		{name: "simple", id: "hello-world", required: true},
		{name: "underscore", id: "notes_2", required: true},
		{name: "empty required", id: "", required: true, wantErr: true},
		{name: "empty optional", id: "", required: false},
		{name: "space", id: "hello world", required: true, wantErr: true},
		{name: "path", id: "../etc", required: true, wantErr: true},
		{name: "too long", id: strings.Repeat("a", MaxIDLength+1), required: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id, "id", tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle(""))
	assert.NoError(t, ValidateTitle("archived.tar.gz"))
	assert.Error(t, ValidateTitle("bad\x00title"))
	assert.Error(t, ValidateTitle(strings.Repeat("x", MaxTitleLength+1)))
}

func TestValidateIcon(t *testing.T) {
	assert.NoError(t, ValidateIcon(""))
	assert.NoError(t, ValidateIcon("/icons/folder.png"))
	assert.NoError(t, ValidateIcon("https://example.com/a.png"))
	assert.Error(t, ValidateIcon("javascript:alert(1)"))
	assert.Error(t, ValidateIcon("/icons/a.png\" onerror=\"x"))
}

func TestValidateMessageSize(t *testing.T) {
	assert.NoError(t, ValidateMessageSize([]byte("{}"), 0))
	assert.NoError(t, ValidateMessageSize(make([]byte, 10), 10))
	assert.Error(t, ValidateMessageSize(make([]byte, 11), 10))
	assert.Error(t, ValidateMessageSize(make([]byte, MaxMessageSize+1), 0))
}
