package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must stay quiet before its change is
// reported. Editors often write a file in several steps.
const settleDelay = 100 * time.Millisecond

// Change is one settled edit to a content file.
type Change struct {
	Path    string
	Script  bool
	Removed bool
}

// Stages reports whether the change can alter the stage list.
func (c Change) Stages() bool {
	return !c.Script && AffectsStages(c.Path)
}

// Watcher reports edited spec and script files under a set of
// directories. Changes arrive on Changes in path order once each file has
// settled.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, ok := classify(ev)
			if !ok {
				continue
			}
			pending[change.Path] = change
			settle.Reset(settleDelay)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-settle.C:
			if !w.flush(pending) {
				return
			}
			clear(pending)

		case <-w.stop:
			return
		}
	}
}

// flush delivers pending changes in path order. It reports false when the
// watcher was closed mid-delivery.
func (w *Watcher) flush(pending map[string]Change) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		select {
		case w.Changes <- pending[p]:
		case <-w.stop:
			return false
		}
	}
	return true
}

func classify(ev fsnotify.Event) (Change, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return Change{}, false
	}
	script := isScriptFile(ev.Name)
	if !script && !isSpecFile(ev.Name) {
		return Change{}, false
	}
	return Change{
		Path:    ev.Name,
		Script:  script,
		Removed: ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename),
	}, true
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
