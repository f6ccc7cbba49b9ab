// FILE: lixenwraith/petmaster/watch.go
package petmaster

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// WatchOptions configures automatic reloading on document changes.
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to coalesce rapid edits into one reload
	Debounce time.Duration

	// MaxWatchers limits concurrent Watch channels
	MaxWatchers int

	// ReloadTimeout bounds the wait for a triggered reload
	ReloadTimeout time.Duration
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:  DefaultPollInterval,
		Debounce:      DefaultDebounce,
		MaxWatchers:   DefaultMaxWatchers,
		ReloadTimeout: DefaultReloadTimeout,
	}
}

type fileState struct {
	exists  bool
	modTime time.Time
	size    int64
}

// watcher polls the published document paths and reloads the Manager on change
type watcher struct {
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	opts             WatchOptions
	logger           *zap.Logger
	files            map[string]fileState
	watching         atomic.Bool
	reloadInProgress atomic.Bool
	subscribers      map[int64]chan *Report
	subscriberID     atomic.Int64
	debounceTimer    *time.Timer
}

// AutoReload reloads the Manager whenever one of its documents changes on disk.
func (m *Manager) AutoReload() {
	m.AutoReloadWithOptions(DefaultWatchOptions())
}

// AutoReloadWithOptions is AutoReload with custom options. It is a no-op when already running.
func (m *Manager) AutoReloadWithOptions(opts WatchOptions) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = DefaultReloadTimeout
	}

	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		ctx:         ctx,
		cancel:      cancel,
		opts:        opts,
		logger:      m.logger.Named("watch"),
		files:       make(map[string]fileState),
		subscribers: make(map[int64]chan *Report),
	}
	for _, path := range m.watchedPaths() {
		w.files[path] = statFile(path)
	}
	m.watcher = w

	go w.watchLoop(m)
}

// StopAutoReload stops the watcher and closes every Watch channel.
func (m *Manager) StopAutoReload() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher != nil {
		m.watcher.stop()
		m.watcher = nil
	}
}

// Watch returns a channel receiving the report of every automatic reload,
// starting the watcher with default options if needed.
// The channel is closed by StopAutoReload. Reports are dropped when the channel is full.
func (m *Manager) Watch() <-chan *Report {
	return m.WatchWithOptions(DefaultWatchOptions())
}

// WatchWithOptions is Watch with custom options, used only when the watcher is not yet running.
func (m *Manager) WatchWithOptions(opts WatchOptions) <-chan *Report {
	m.AutoReloadWithOptions(opts)

	m.watchMu.Lock()
	w := m.watcher
	m.watchMu.Unlock()

	if w == nil {
		ch := make(chan *Report)
		close(ch)
		return ch
	}
	return w.subscribe()
}

// IsWatching returns true if auto reload is running
func (m *Manager) IsWatching() bool {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	return m.watcher != nil && m.watcher.watching.Load()
}

// WatcherCount returns the number of active Watch channels
func (m *Manager) WatcherCount() int {
	m.watchMu.Lock()
	w := m.watcher
	m.watchMu.Unlock()

	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subscribers)
}

// watchedPaths follows the last published snapshot, so a renamed language file is picked up.
func (m *Manager) watchedPaths() []string {
	snap := m.snapshot.Load()
	if snap == nil {
		return []string{m.SettingsPath()}
	}
	paths := []string{snap.SettingsPath}
	if snap.TextPath != "" && snap.TextPath != snap.SettingsPath {
		paths = append(paths, snap.TextPath)
	}
	return paths
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, modTime: info.ModTime(), size: info.Size()}
}

func (w *watcher) watchLoop(m *Manager) {
	if !w.watching.CompareAndSwap(false, true) {
		return
	}
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkAndReload(m)
		}
	}
}

// checkAndReload compares every watched file against its last seen state
func (w *watcher) checkAndReload(m *Manager) {
	paths := m.watchedPaths()
	seen := make(map[string]bool, len(paths))
	changed := false

	for _, path := range paths {
		seen[path] = true
		current := statFile(path)
		last, tracked := w.files[path]
		w.files[path] = current
		if !tracked {
			// Newly published path; its content was just loaded
			continue
		}
		if current.exists != last.exists || !current.modTime.Equal(last.modTime) || current.size != last.size {
			w.logger.Debug("Document changed on disk", zap.String("path", path))
			changed = true
		}
	}
	for path := range w.files {
		if !seen[path] {
			delete(w.files, path)
		}
	}

	if !changed {
		return
	}

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
		w.performReload(m)
	})
	w.mu.Unlock()
}

// performReload runs Manager.Reload and fans the report out to subscribers
func (w *watcher) performReload(m *Manager) {
	if !w.reloadInProgress.CompareAndSwap(false, true) {
		return
	}
	defer w.reloadInProgress.Store(false)

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.ReloadTimeout)
	defer cancel()

	type result struct {
		rep *Report
		err error
	}
	done := make(chan result, 1)
	go func() {
		rep, err := m.Reload(ctx)
		done <- result{rep, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			w.logger.Error("Automatic reload failed", zap.Error(res.err))
		}
		if res.rep != nil {
			w.notify(res.rep)
		}
	case <-ctx.Done():
		w.logger.Warn("Automatic reload did not finish in time", zap.Duration("timeout", w.opts.ReloadTimeout))
	}
}

// subscribe creates a new subscriber channel
func (w *watcher) subscribe() <-chan *Report {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.subscribers) >= w.opts.MaxWatchers || w.ctx.Err() != nil {
		ch := make(chan *Report)
		close(ch)
		return ch
	}

	ch := make(chan *Report, watchBuffer)
	id := w.subscriberID.Add(1)
	w.subscribers[id] = ch

	go func() {
		<-w.ctx.Done()
		w.mu.Lock()
		delete(w.subscribers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// notify sends rep to every subscriber without blocking
func (w *watcher) notify(rep *Report) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- rep:
		default:
		}
	}
}

// stop terminates the watcher
func (w *watcher) stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	// Wait for the watch loop to exit
	for i := 0; i < int(shutdownPollCycles) && w.watching.Load(); i++ {
		time.Sleep(SpinWaitInterval)
	}
}
