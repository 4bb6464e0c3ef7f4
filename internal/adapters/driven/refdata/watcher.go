package refdata

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/jyotish/internal/logger"
)

// debounce collapses the burst of events editors emit for one save.
const debounce = 100 * time.Millisecond

// Watcher reloads a Store when its override file changes.
type Watcher struct {
	// Reloads receives the result of every reload attempt.
	Reloads <-chan error

	reloads chan error
	done    chan struct{}
	store   *Store
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for a store with an override file.
func NewWatcher(store *Store) (*Watcher, error) {
	if store.Path() == "" {
		return nil, errors.New("reference store has no override file to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan error, 8)
	return &Watcher{
		Reloads: ch,
		reloads: ch,
		done:    make(chan struct{}),
		store:   store,
		watcher: fw,
	}, nil
}

// Start begins watching. The directory is watched rather than the file
// so that editors which replace the file on save are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.store.Path())); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.store.Path() {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if pending.IsZero() || now.Sub(pending) < debounce {
				continue
			}
			pending = time.Time{}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("reference watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	err := w.store.Reload()
	if err != nil {
		logger.Warn("Reference reload failed, keeping previous tables: %v", err)
	} else {
		logger.Info("Reference data reloaded from %s", w.store.Path())
	}
	select {
	case w.reloads <- err:
	default:
	}
}
