package output_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/output"
	"github.com/arthur-debert/pkgactions/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestConsole_PlainText(t *testing.T) {
	var out, errOut bytes.Buffer
	console := output.NewConsole(&out, &errOut, ui.FormatText)

	console.Info("  - Copying <comment>vendor/acme/pkg/.env</comment> to <comment>.env</comment>.")
	console.Warning(" Skipping extra folder action : chmod, method does not exist.")
	console.Error("Error: copy action on acme/pkg : \nboom")

	assert.Equal(t, "  - Copying vendor/acme/pkg/.env to .env.\n", out.String())
	assert.Equal(t,
		" Skipping extra folder action : chmod, method does not exist.\nError: copy action on acme/pkg : \nboom\n",
		errOut.String())
}

func TestConsole_AutoOnBufferIsText(t *testing.T) {
	var out bytes.Buffer
	console := output.NewConsole(&out, &out, ui.FormatAuto)
	assert.Equal(t, ui.FormatText, console.Format())
}

func TestConsole_TerminalRendersTags(t *testing.T) {
	var out bytes.Buffer
	console := output.NewConsole(&out, &out, ui.FormatTerminal)

	console.Info("<comment>public/js</comment>")
	assert.Contains(t, out.String(), "public/js")
	assert.NotContains(t, out.String(), "<comment>")
}

func TestBuffer(t *testing.T) {
	buf := output.NewBuffer()
	buf.Info("  - Removing file <comment>var/log</comment>.")
	buf.Warning("careful")
	buf.Error("<error>broken</error>")

	assert.Equal(t, []output.Line{
		{Level: output.LevelInfo, Text: "  - Removing file var/log."},
		{Level: output.LevelWarning, Text: "careful"},
		{Level: output.LevelError, Text: "broken"},
	}, buf.Lines())
	assert.Equal(t, []string{"careful"}, buf.Messages(output.LevelWarning))
	assert.Equal(t, "  - Removing file var/log.\ncareful\nbroken", buf.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", output.LevelInfo.String())
	assert.Equal(t, "warning", output.LevelWarning.String())
	assert.Equal(t, "error", output.LevelError.String())
	assert.Equal(t, "unknown", output.Level(9).String())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		output.Discard.Info("x")
		output.Discard.Warning("x")
		output.Discard.Error("x")
	})
}
