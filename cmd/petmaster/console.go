// FILE: lixenwraith/petmaster/cmd/petmaster/console.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/petmaster"
)

// consoleHost stops the process when the lifecycle disables the plugin.
type consoleHost struct {
	stop   context.CancelFunc
	logger *zap.Logger
}

func newConsoleHost(stop context.CancelFunc, logger *zap.Logger) *consoleHost {
	return &consoleHost{stop: stop, logger: logger}
}

func (h *consoleHost) Disable(reason error) {
	h.logger.Error("PetMaster has been disabled.", zap.Error(reason))
	h.stop()
}

// consoleSender writes command replies to the terminal.
type consoleSender struct {
	w io.Writer
}

func (s consoleSender) SendMessage(msg string) {
	fmt.Fprintln(s.w, msg)
}

func (s consoleSender) IsPlayer() bool {
	return false
}

// serve keeps the documents watched, runs the update check and reads commands
// such as "petm reload" from stdin until the context ends or stdin closes.
func serve(ctx context.Context, m *petmaster.Manager, opts options, logger *zap.Logger) error {
	m.AutoReload()
	defer m.StopAutoReload()

	updates := petmaster.NewUpdateChecker(petmaster.UpdateOptions{
		URL:    opts.UpdateURL,
		Logger: logger.Named("update"),
	})
	if m.Settings().CheckForUpdate {
		updates.Start(ctx)
	}

	go func() {
		for rep := range m.Watch() {
			logger.Info("Documents reloaded after a change on disk", zap.String("state", rep.State.String()))
		}
	}()

	d := petmaster.NewDispatcher(petmaster.RootCommand, m)
	sender := consoleSender{w: os.Stdout}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
			if len(fields) == 0 {
				continue
			}
			if !d.Dispatch(sender, fields[0], fields[1:]) {
				sender.SendMessage(fmt.Sprintf("Unknown command %q. Try %s help.", fields[0], petmaster.RootCommand))
			}
		}
	}
}
