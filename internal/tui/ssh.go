package tui

import (
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

type SSHConfig struct {
	Host        string
	Port        string
	HostKeyPath string
}

// NewSSHServer builds a wish server that serves the decision dashboard to
// any SSH client. The caller owns ListenAndServe and Shutdown.
func NewSSHServer(cfg SSHConfig, decisions DecisionQuerier) (*ssh.Server, error) {
	return wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(teaHandler(decisions)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
}

func teaHandler(decisions DecisionQuerier) bm.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()

		model := NewAppModel(Services{
			Decisions: decisions,
			Username:  s.User(),
		})
		model.SetSize(pty.Window.Width, pty.Window.Height)

		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
