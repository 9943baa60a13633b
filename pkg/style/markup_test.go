package style_test

import (
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "action message",
			in:   "  - Symlinking <comment>vendor/acme/pkg/dist/lib.js</comment> to <comment>public/js/lib.js</comment>",
			want: "  - Symlinking vendor/acme/pkg/dist/lib.js to public/js/lib.js",
		},
		{
			name: "nested tags",
			in:   "<error>Could not copy <comment>dist</comment></error>",
			want: "Could not copy dist",
		},
		{
			name: "unknown tags stay",
			in:   "<foo>bar</foo>",
			want: "<foo>bar</foo>",
		},
		{
			name: "multiline content",
			in:   "<error>Error: copy action on acme/pkg : \nboom</error>",
			want: "Error: copy action on acme/pkg : \nboom",
		},
		{
			name: "no tags",
			in:   "plain",
			want: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, style.Strip(tt.in))
		})
	}
}

func TestRender(t *testing.T) {
	out := style.Render("Removing <comment>var/cache</comment>.")
	assert.Contains(t, out, "var/cache")
	assert.NotContains(t, out, "<comment>")
	assert.NotContains(t, out, "</comment>")
}

func TestAddStyle(t *testing.T) {
	p := style.NewMarkupParser()
	p.AddStyle("pkg", lipgloss.NewStyle())

	assert.Equal(t, "acme/pkg", p.Strip("<pkg>acme/pkg</pkg>"))
	assert.Equal(t, "acme/pkg", p.Render("<pkg>acme/pkg</pkg>"))
}
