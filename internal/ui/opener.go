package ui

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Opener launches result URLs in an external program
type Opener struct {
	command string
	goos    string
}

// NewOpener creates an opener. An empty command selects the platform default.
func NewOpener(command string) *Opener {
	return &Opener{command: strings.TrimSpace(command), goos: runtime.GOOS}
}

// Command builds the process that opens rawURL
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("not an http(s) URL: %q", rawURL)
	}
	target := u.String()

	if o.command != "" {
		fields := strings.Fields(o.command)
		return exec.Command(fields[0], append(fields[1:], target)...), nil
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return exec.Command("xdg-open", target), nil
	}
}

// Open returns a command that runs the opener with the terminal released
func (o *Opener) Open(rawURL string) tea.Cmd {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return func() tea.Msg { return openedMsg{url: rawURL, err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return openedMsg{url: rawURL, err: err}
	})
}
