package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// editors often write a file in several steps
const settleWindow = 100 * time.Millisecond

type ChangeKind uint8

const (
	SpecChanged ChangeKind = iota
	ScriptChanged
)

// Change is one edited prefab file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher streams prefab edits from one or more directories. Changes and
// Errors are closed once the watcher has stopped.
type Watcher struct {
	Changes chan Change
	Errors  chan error

	fsw       *fsnotify.Watcher
	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		fsw:     fsw,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) loop() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.stopped)
	}()

	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.stop:
			return

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			kind, ok := Classify(ev.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if prev, dup := seen[ev.Name]; dup && now.Sub(prev) < settleWindow {
				continue
			}
			seen[ev.Name] = now

			select {
			case w.Changes <- Change{Path: ev.Name, Kind: kind}:
			case <-w.stop:
				return
			}
		}
	}
}

// Classify reports what kind of prefab file path names, if any.
func Classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SpecChanged, true
	case ".tengo":
		return ScriptChanged, true
	}
	return 0, false
}
