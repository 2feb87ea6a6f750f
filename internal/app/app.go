package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/home"
	"github.com/abhisek/flashquiz/internal/screens/setpicker"
	"github.com/abhisek/flashquiz/internal/screens/welcome"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// Options holds the dependencies the app needs.
type Options struct {
	Deps *screen.Deps

	// UserLabel is shown in the header; empty means signed out.
	UserLabel string

	// InitialSetID skips the welcome splash and opens the set picker
	// loading this set.
	InitialSetID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	status  string
	initial string
	deps    *screen.Deps
	width   int
	height  int
}

// newAppModel creates an AppModel starting at the welcome splash, or at
// home when a set was requested on the command line.
func newAppModel(opts Options) AppModel {
	status := opts.UserLabel
	if status == "" {
		status = "signed out"
	}

	var root screen.Screen
	if opts.InitialSetID != "" {
		root = home.New(opts.Deps)
	} else {
		root = welcome.New(func() screen.Screen { return home.New(opts.Deps) }, status)
	}
	return AppModel{
		router:  router.New(root),
		status:  status,
		initial: opts.InitialSetID,
		deps:    opts.Deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.initial == "" {
		return cmd
	}
	picker := setpicker.New(m.deps, m.initial)
	return tea.Batch(cmd, func() tea.Msg {
		return router.PushScreenMsg{Screen: picker}
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if c, ok := m.router.Active().(screen.Closer); ok {
				c.Close()
			}
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
