package model

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

type sceneRenderedMsg struct {
	key     renderKey
	content string
}

func renderSceneCmd(k renderKey, markdown, style string) tea.Cmd {
	return func() tea.Msg {
		s, err := glamourRender(markdown, style, k.width)
		if err != nil {
			log.Println("error rendering with Glamour:", err)
			return errMsg{err}
		}
		return sceneRenderedMsg{key: k, content: s}
	}
}

// glamourRender renders scene text for a page width columns wide. style is
// "auto" or anything glamour.WithStylePath accepts.
func glamourRender(markdown, style string, width int) (string, error) {
	var gs glamour.TermRendererOption
	if style == "" || style == "auto" {
		gs = glamour.WithAutoStyle()
	} else {
		gs = glamour.WithStylePath(style)
	}

	r, err := glamour.NewTermRenderer(gs, glamour.WithWordWrap(max(0, width)))
	if err != nil {
		return "", err
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}

	// trim lines
	lines := strings.Split(out, "\n")

	var content string
	for i, s := range lines {
		content += strings.TrimSpace(s)

		// don't add an artificial newline after the last split
		if i+1 < len(lines) {
			content += "\n"
		}
	}

	return strings.Trim(content, "\n"), nil
}
