package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/pixelstash/pkg/stego"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func browserIn(t *testing.T) (model, string) {
	t.Helper()
	t.Setenv(PasswordEnv, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carrier.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album"), 0o755))
	return initialModel(dir), dir
}

func TestBrowserListsPNGsAndDirs(t *testing.T) {
	m, _ := browserIn(t)

	var names []string
	for _, f := range m.files {
		names = append(names, f.name)
	}
	assert.ElementsMatch(t, []string{"..", "album", "carrier.png"}, names)
}

func TestBrowserCyclesModes(t *testing.T) {
	m, _ := browserIn(t)
	assert.Equal(t, stego.ModeLSB, m.currentMode())

	for _, want := range []stego.Mode{stego.ModeSplit, stego.ModeHSV, stego.ModeLayered, stego.ModeLSB} {
		next, _ := m.Update(key("m"))
		m = next.(model)
		assert.Equal(t, want, m.currentMode())
	}
}

func TestBrowserPasswordEntry(t *testing.T) {
	m, _ := browserIn(t)

	next, _ := m.Update(key("p"))
	m = next.(model)
	require.True(t, m.editing)

	for _, r := range "pw" {
		next, _ = m.Update(key(string(r)))
		m = next.(model)
	}
	// "m" while typing is text, not a mode switch.
	next, _ = m.Update(key("m"))
	m = next.(model)
	assert.Equal(t, stego.ModeLSB, m.currentMode())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	assert.False(t, m.editing)
	assert.Equal(t, "pwm", m.password.Value())
}

func TestBrowserExtractsSelection(t *testing.T) {
	m, dir := browserIn(t)

	var gotPath, gotPassword string
	var gotMode stego.Mode
	m.extractFn = func(path string, mode stego.Mode, password string) (string, error) {
		gotPath, gotMode, gotPassword = path, mode, password
		return "hidden text", nil
	}
	m.password.SetValue("secret")

	for i, f := range m.files {
		if f.name == "carrier.png" {
			m.cursor = i
		}
	}
	next, cmd := m.Update(key("m"))
	m = next.(model)
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(model)
	assert.Equal(t, filepath.Join(dir, "carrier.png"), gotPath)
	assert.Equal(t, stego.ModeSplit, gotMode)
	assert.Equal(t, "secret", gotPassword)
	assert.Equal(t, "hidden text", m.status)
	assert.False(t, m.failed)
	assert.Contains(t, m.View(), "hidden text")
}

func TestBrowserReportsFailure(t *testing.T) {
	m, _ := browserIn(t)
	m.extractFn = func(string, stego.Mode, string) (string, error) {
		return "", errors.New("bad carrier")
	}

	msg := m.extract("x.png")()
	next, _ := m.Update(msg)
	m = next.(model)
	assert.True(t, m.failed)
	assert.Contains(t, m.status, "could not recover data")
}

func TestBrowserOpensDirectory(t *testing.T) {
	m, dir := browserIn(t)
	for i, f := range m.files {
		if f.name == "album" {
			m.cursor = i
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	assert.Equal(t, filepath.Join(dir, "album"), m.path)
	assert.Len(t, m.files, 1, "only the parent entry")
}
