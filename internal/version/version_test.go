package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"unknown commit", "dev", "unknown", "dev"},
		{"empty commit", "1.2.0", "", "1.2.0"},
		{"short commit", "1.2.0", "abc12", "1.2.0 (abc12)"},
		{"long commit", "1.2.0", "0123456789abcdef", "1.2.0 (0123456)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldCommit := Version, Commit
			defer func() { Version, Commit = oldVersion, oldCommit }()

			Version, Commit = tt.version, tt.commit
			assert.Equal(t, tt.want, String())
		})
	}
}
