package game

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/skyraid/prefabs"
)

// WatchContent reloads specs and movement scripts from dir while the
// session runs. Stage changes take effect from the next stage load.
func (s *Session) WatchContent(dir string) error {
	prefabs.SetDir(dir)
	dirs := []string{dir}
	if info, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(dir, "scripts"))
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.watcher = w
	log.Printf("session: watching %s for content changes", dir)
	return nil
}

func (s *Session) pollReload() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-s.watcher.Changes:
			if !ok {
				s.watcher = nil
				return
			}
			s.reload(change)
		case err, ok := <-s.watcher.Errors:
			if ok {
				log.Printf("session: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (s *Session) reload(change prefabs.Change) {
	name := filepath.Base(change.Path)
	if change.Script {
		s.movement.Invalidate()
		log.Printf("session: reloaded script %s", name)
		return
	}
	if change.Removed {
		log.Printf("session: %s removed, falling back to built-in content", name)
	}

	content, err := prefabs.LoadContent()
	if err != nil {
		log.Printf("session: reload %s: %v", name, err)
		return
	}
	if errs := content.Validate(); len(errs) > 0 {
		log.Printf("session: reload %s: %v", name, errors.Join(errs...))
	}
	s.content = content
	if change.Stages() {
		s.director.SetStages(content.Stages)
	}
	log.Printf("session: reloaded %s", name)
}
