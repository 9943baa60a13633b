package cli

import (
	"embed"
	"os"

	"github.com/arthur-debert/pkgactions/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installTopics adds "help <topic>" backed by the embedded topic files
func installTopics(rootCmd *cobra.Command) {
	var renderer topics.Renderer = topics.NewGlamourRenderer()
	if !stdoutIsTerminal() || os.Getenv("NO_COLOR") != "" {
		renderer = topics.NewPlainGlamourRenderer()
	}

	m, err := topics.Load(topicFiles, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	topics.Install(rootCmd, m)
}
