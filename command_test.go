// FILE: lixenwraith/petmaster/command_test.go
package petmaster

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	player   bool
	messages []string
}

func (s *fakeSender) SendMessage(msg string) { s.messages = append(s.messages, msg) }
func (s *fakeSender) IsPlayer() bool         { return s.player }

func startedDispatcher(t *testing.T) (*Dispatcher, *Manager, string) {
	t.Helper()
	dir := t.TempDir()
	m, _, _ := newTestManager(t, dir, fullRegistry)
	_, err := m.Start(context.Background())
	require.NoError(t, err)
	return NewDispatcher(RootCommand, m), m, dir
}

func TestDispatch(t *testing.T) {
	misused := ChatHeader + "Misused command. Please type /petm."

	t.Run("ForeignLabelIsNotHandled", func(t *testing.T) {
		d, _, _ := startedDispatcher(t)
		s := &fakeSender{}
		assert.False(t, d.Dispatch(s, "other", []string{"help"}))
		assert.Empty(t, s.messages)
	})

	t.Run("NoArgumentsShowsHelp", func(t *testing.T) {
		d, _, _ := startedDispatcher(t)
		s := &fakeSender{}
		assert.True(t, d.Dispatch(s, "PETM", nil))
		require.NotEmpty(t, s.messages)
		assert.Equal(t, ChatHeader+PluginName+" "+Version, s.messages[0])
		assert.Contains(t, s.messages, ChatHeader+"/petm reload > Reload the plugin's configuration.")
		assert.NotContains(t, s.messages, misused)
	})

	t.Run("HelpTipOnlyForPlayers", func(t *testing.T) {
		d, _, _ := startedDispatcher(t)
		console, player := &fakeSender{}, &fakeSender{player: true}
		d.Dispatch(console, RootCommand, []string{"help"})
		d.Dispatch(player, RootCommand, []string{"help"})
		assert.Len(t, player.messages, len(console.messages)+1)
	})

	t.Run("MisusedCommand", func(t *testing.T) {
		d, _, _ := startedDispatcher(t)
		tests := []struct {
			name string
			args []string
		}{
			{"unknown", []string{"fly"}},
			{"help with arguments", []string{"help", "extra"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := &fakeSender{}
				assert.True(t, d.Dispatch(s, RootCommand, tt.args))
				assert.Equal(t, []string{misused}, s.messages)
			})
		}
	})

	t.Run("MisusedTextComesFromDocument", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "lang.yml"), "misused-command: \"Nope.\"\n")
		m, _, _ := newTestManager(t, dir, fullRegistry)
		_, err := m.Start(context.Background())
		require.NoError(t, err)

		s := &fakeSender{}
		NewDispatcher(RootCommand, m).Dispatch(s, RootCommand, []string{"bogus"})
		assert.Equal(t, []string{ChatHeader + "Nope."}, s.messages)
	})

	t.Run("PlayerOnlyFromConsole", func(t *testing.T) {
		d, _, _ := startedDispatcher(t)
		var ran int
		d.Register(Command{Name: "Free", PlayerOnly: true, Run: func(Sender, []string) { ran++ }})

		console := &fakeSender{}
		d.Dispatch(console, RootCommand, []string{"free"})
		assert.Equal(t, []string{misused}, console.messages)
		assert.Zero(t, ran)

		d.Dispatch(&fakeSender{player: true}, RootCommand, []string{"FREE"})
		assert.Equal(t, 1, ran)
		assert.Equal(t, []string{"help", "info", "reload", "disable", "enable", "free"}, d.Commands())
	})

	t.Run("DisableAndEnable", func(t *testing.T) {
		d, m, _ := startedDispatcher(t)
		s := &fakeSender{}

		d.Dispatch(s, RootCommand, []string{"disable"})
		assert.False(t, m.Enabled())
		d.Dispatch(s, RootCommand, []string{"enable"})
		assert.True(t, m.Enabled())
		assert.Equal(t, []string{
			ChatHeader + "PetMaster disabled till next reload or /petm enable.",
			ChatHeader + "PetMaster enabled.",
		}, s.messages)
	})

	t.Run("Reload", func(t *testing.T) {
		d, m, dir := startedDispatcher(t)
		m.SetEnabled(false)

		s := &fakeSender{}
		d.Dispatch(s, RootCommand, []string{"reload"})
		assert.Equal(t, []string{ChatHeader + "Configuration successfully reloaded."}, s.messages)
		assert.True(t, m.Enabled())

		writeFile(t, filepath.Join(dir, "config.yml"), "freePetPrice: -1\n")
		s = &fakeSender{}
		d.Dispatch(s, RootCommand, []string{"reload"})
		assert.Equal(t, []string{ChatHeader + "Errors while reloading configuration. Please view logs for more details."}, s.messages)
	})

	t.Run("Info", func(t *testing.T) {
		d, _, _ := startedDispatcher(t)
		s := &fakeSender{}
		d.Dispatch(s, RootCommand, []string{"info"})
		require.Len(t, s.messages, 5)
		assert.Equal(t, ChatHeader+"Name: "+PluginName, s.messages[0])
		assert.Equal(t, ChatHeader+"Author: "+Author, s.messages[3])
	})
}
