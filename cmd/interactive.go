package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/pixelstash/pkg/compression"
	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle
	modeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

// previewLimit bounds how much recovered text the browser shows.
const previewLimit = 400

type fileItem struct {
	path  string
	name  string
	isDir bool
}

type model struct {
	path      string
	files     []fileItem
	cursor    int
	mode      int // index into stego.Modes()
	status    string
	failed    bool
	password  textinput.Model
	editing   bool
	quitting  bool
	extractFn func(path string, mode stego.Mode, password string) (string, error)
}

func initialModel(dir string) model {
	pw := textinput.New()
	pw.Placeholder = "password (layered mode)"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.SetValue(os.Getenv(PasswordEnv))

	m := model{
		path:      dir,
		password:  pw,
		status:    "Navigate: ↑/↓ | Enter: Open / Extract | m: Mode | p: Password | q: Quit",
		extractFn: extractPreview,
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status, m.failed = "Error reading directory", true
		return
	}

	m.files = []fileItem{{name: "..", isDir: true, path: filepath.Dir(m.path)}}
	for _, e := range entries {
		if e.IsDir() || imageio.IsPNG(e.Name()) {
			m.files = append(m.files, fileItem{
				name:  e.Name(),
				isDir: e.IsDir(),
				path:  filepath.Join(m.path, e.Name()),
			})
		}
	}
	m.cursor = 0
}

func (m model) currentMode() stego.Mode {
	return stego.Modes()[m.mode]
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "enter", "esc":
				m.editing = false
				m.password.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.password, cmd = m.password.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}

		case "m":
			m.mode = (m.mode + 1) % len(stego.Modes())

		case "p":
			m.editing = true
			return m, m.password.Focus()

		case "enter":
			if len(m.files) == 0 {
				return m, nil
			}
			selected := m.files[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.loadFiles()
				return m, nil
			}
			m.status, m.failed = "Extracting "+selected.name+"...", false
			return m, m.extract(selected.path)
		}

	case resultMsg:
		m.status, m.failed = msg.text, msg.failed
	}

	return m, nil
}

type resultMsg struct {
	text   string
	failed bool
}

func (m model) extract(path string) tea.Cmd {
	mode, password, fn := m.currentMode(), m.password.Value(), m.extractFn
	return func() tea.Msg {
		text, err := fn(path, mode, password)
		if err != nil {
			return resultMsg{text: fmt.Sprintf("could not recover data: %v", err), failed: true}
		}
		return resultMsg{text: text}
	}
}

// extractPreview recovers the payload of path and renders it for display.
func extractPreview(path string, mode stego.Mode, password string) (string, error) {
	s, err := stego.New(stego.Config{Mode: mode, Password: password})
	if err != nil {
		return "", err
	}
	img, err := imageio.Load(path)
	if err != nil {
		return "", err
	}
	streams, err := recoverStreams(img.Pix, s, compression.Noop{})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range streams {
		if len(streams) > 1 {
			fmt.Fprintf(&b, "[%d] ", i+1)
		}
		text := string(p)
		if len(text) > previewLimit {
			text = text[:previewLimit] + "…"
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var s strings.Builder
	fmt.Fprintf(&s, "Directory: %s\n", m.path)
	fmt.Fprintf(&s, "Mode: %s   Password: %s\n\n", modeStyle.Render(string(m.currentMode())), m.password.View())

	for i, file := range m.files {
		if m.cursor == i {
			s.WriteString(cursorStyle.Render(">"))
		} else {
			s.WriteString(" ")
		}

		line := file.name
		if file.isDir {
			line = "[DIR] " + file.name
		}
		s.WriteString(" " + line + "\n")
	}

	status := m.status
	if m.failed {
		status = errorStyle.Render(status)
	}
	fmt.Fprintf(&s, "\n%s\n", status)
	return docStyle.Render(s.String())
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive [directory]",
	Short: "Interactive terminal UI for browsing and extracting stego images",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if dir, err = filepath.Abs(args[0]); err != nil {
				return err
			}
		}
		p := tea.NewProgram(initialModel(dir))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
