// FILE: lixenwraith/petmaster/command.go
package petmaster

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Plugin identity shown by the info command and compared by the update checker.
const (
	PluginName  = "PetMaster"
	Version     = "1.6.2"
	Author      = "DarkPyves"
	Website     = "https://github.com/PyvesB/PetMaster"
	RootCommand = "petm"
)

// ChatHeader prefixes every message sent to a command sender.
const ChatHeader = "[♞] "

// Text document keys used by the built-in commands.
const (
	MsgMisusedCommand   = "misused-command"
	MsgReloadSucceeded  = "configuration-successfully-reloaded"
	MsgReloadFailed     = "configuration-reload-failed"
	MsgPluginEnabled    = "petmaster-enabled"
	MsgPluginDisabled   = "petmaster-disabled"
	MsgTip              = "petmaster-tip"
	msgCommandPrefix    = "petmaster-command-"
	defaultMisusedReply = "Misused command. Please type /petm."
)

// Sender is whoever typed a command: the console or a player.
type Sender interface {
	SendMessage(msg string)
	IsPlayer() bool
}

// Command is one subcommand of the root command.
type Command struct {
	Name string
	// PlayerOnly commands are treated as unknown when sent from the console.
	PlayerOnly bool
	Run        func(s Sender, args []string)
}

// Dispatcher maps subcommand literals to handlers.
type Dispatcher struct {
	root string
	m    *Manager

	mu       sync.RWMutex
	commands map[string]Command
	order    []string
}

// NewDispatcher registers help, info, reload, disable and enable for root.
// The host adds its own commands with Register.
func NewDispatcher(root string, m *Manager) *Dispatcher {
	d := &Dispatcher{
		root:     root,
		m:        m,
		commands: make(map[string]Command),
	}
	d.Register(Command{Name: "help", Run: d.help})
	d.Register(Command{Name: "info", Run: d.info})
	d.Register(Command{Name: "reload", Run: d.reload})
	d.Register(Command{Name: "disable", Run: d.setState(false)})
	d.Register(Command{Name: "enable", Run: d.setState(true)})
	return d
}

// Register adds or replaces a subcommand. Names are case-insensitive.
func (d *Dispatcher) Register(cmd Command) {
	name := strings.ToLower(cmd.Name)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.commands[name]; !exists {
		d.order = append(d.order, name)
	}
	d.commands[name] = cmd
}

// Dispatch runs the subcommand named by args[0].
// It returns false only when label is not the root command. No arguments means help;
// anything unknown gets the misused-command message from the text document.
func (d *Dispatcher) Dispatch(s Sender, label string, args []string) bool {
	if !strings.EqualFold(label, d.root) {
		return false
	}

	if len(args) == 0 {
		d.help(s, nil)
		return true
	}

	name := strings.ToLower(args[0])
	d.mu.RLock()
	cmd, ok := d.commands[name]
	d.mu.RUnlock()

	switch {
	case !ok,
		cmd.PlayerOnly && !s.IsPlayer(),
		name == "help" && len(args) > 1:
		s.SendMessage(ChatHeader + d.m.Text().Get(MsgMisusedCommand, defaultMisusedReply))
	default:
		cmd.Run(s, args)
	}
	return true
}

// Commands returns the registered subcommand names in registration order.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.order...)
}

func (d *Dispatcher) help(s Sender, _ []string) {
	text := d.m.Text()
	s.SendMessage(fmt.Sprintf("%s%s %s", ChatHeader, PluginName, Version))
	for _, name := range d.Commands() {
		if name == "help" {
			continue
		}
		d.mu.RLock()
		cmd := d.commands[name]
		d.mu.RUnlock()
		if cmd.PlayerOnly && !s.IsPlayer() {
			continue
		}
		desc := text.Get(msgCommandPrefix+name, "")
		s.SendMessage(fmt.Sprintf("%s/%s %s > %s", ChatHeader, d.root, name, desc))
	}
	if tip := text.Get(MsgTip, ""); tip != "" && s.IsPlayer() {
		s.SendMessage(ChatHeader + tip)
	}
}

func (d *Dispatcher) info(s Sender, _ []string) {
	text := d.m.Text()
	lines := []struct{ key, fallback, value string }{
		{"version-command-name", "Name:", PluginName},
		{"version-command-version", "Version:", Version},
		{"version-command-website", "Website:", Website},
		{"version-command-author", "Author:", Author},
		{"version-command-description", "Description:", text.Get("version-command-description-details", "")},
	}
	for _, l := range lines {
		s.SendMessage(fmt.Sprintf("%s%s %s", ChatHeader, text.Get(l.key, l.fallback), l.value))
	}
}

func (d *Dispatcher) reload(s Sender, _ []string) {
	rep, err := d.m.Reload(context.Background())
	// Text is read after the reload so the reply uses the fresh language file
	text := d.m.Text()
	if err != nil || rep == nil || rep.State != StateReady {
		s.SendMessage(ChatHeader + text.Get(MsgReloadFailed, "Errors while reloading configuration. Please view logs for more details."))
		return
	}
	s.SendMessage(ChatHeader + text.Get(MsgReloadSucceeded, "Configuration successfully reloaded."))
}

func (d *Dispatcher) setState(enabled bool) func(Sender, []string) {
	return func(s Sender, _ []string) {
		d.m.SetEnabled(enabled)
		if enabled {
			s.SendMessage(ChatHeader + d.m.Text().Get(MsgPluginEnabled, "PetMaster enabled."))
			return
		}
		s.SendMessage(ChatHeader + d.m.Text().Get(MsgPluginDisabled, "PetMaster disabled till next reload or /petm enable."))
	}
}
