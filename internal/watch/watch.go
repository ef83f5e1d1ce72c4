// Package watch reports working tree changes, debounced, so the diff can be
// refreshed.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before a
// refresh is signalled.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a repository's working tree recursively.
type Watcher struct {
	root     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	logger   *zap.Logger

	changes   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts watching root. Every directory below it is watched, plus the
// .git directory itself for index and HEAD updates.
func New(root string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		fs:       fw,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Join(root, ".git")); err != nil {
		logger.Debug("not watching .git", zap.Error(err))
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes delivers one value per burst of relevant changes. Bursts that
// arrive while a value is still unread are merged into it.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Debug("watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && relevant(w.root, ev.Name) {
					if err := w.addRecursive(ev.Name); err != nil {
						w.logger.Debug("watch new directory", zap.String("path", ev.Name), zap.Error(err))
					}
				}
			}
			if ev.Op == fsnotify.Chmod || !relevant(w.root, ev.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch error", zap.Error(err))
				continue
			}
			// Events were dropped, so refresh without waiting.
			fire = nil
			w.signal()
		case <-fire:
			fire = nil
			w.signal()
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// relevant reports whether a change at path should refresh the diff.
// Changes inside .git only count for the index and HEAD.
func relevant(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)
	if rel != ".git" && !strings.HasPrefix(rel, ".git/") {
		return true
	}
	return rel == ".git/index" || rel == ".git/HEAD"
}
