package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://github.com/torvalds/linux", true},
		{"https://github.com/torvalds/linux/", true},
		{"https://github.com/torvalds/linux.git", true},
		{"http://github.com/owner/repo", true},
		{"git@github.com:owner/repo.git", true},
		{"  https://github.com/owner/repo  ", true},
		{"https://github.com/owner", false},
		{"https://gitlab.com/owner/repo", false},
		{"https://github.com/owner/repo/tree/main", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateURL(tt.url), "url %q", tt.url)
	}
}

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://github.com/owner/repo", "https://github.com/owner/repo"},
		{"https://github.com/owner/repo/", "https://github.com/owner/repo"},
		{"https://github.com/owner/repo.git", "https://github.com/owner/repo"},
		{"http://github.com/owner/repo", "https://github.com/owner/repo"},
		{"  https://github.com/owner/repo  ", "https://github.com/owner/repo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeURL(tt.in))
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url, want string
	}{
		{"https://github.com/torvalds/linux", "torvalds_linux"},
		{"https://github.com/owner/repo.git", "owner_repo"},
		{"git@github.com:owner/repo.git", "owner_repo"},
	}
	for _, tt := range tests {
		got, err := RepoName(tt.url)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := RepoName("https://github.com/owner")
	assert.Error(t, err)
}
