package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ancientlore/yearbook/virtual"
	"github.com/fsnotify/fsnotify"
)

// rebuilder is the part of the site that watch drives.
type rebuilder interface {
	ReloadTemplates() error
	Rebuild() (*virtual.Site, error)
}

// watch rebuilds the site whenever files under root change. Events are
// collected for the given quiet period so that saving many files triggers a
// single build. It returns once the watcher is running.
func watch(ctx context.Context, root string, site rebuilder, quiet time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	err = addDirs(w, root)
	if err != nil {
		w.Close()
		return fmt.Errorf("watch: %w", err)
	}
	go runWatcher(ctx, w, root, site, quiet)
	return nil
}

// addDirs watches root and every folder below it, skipping hidden ones.
func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

// watchCreated adds a watch on a newly created folder and its subfolders.
// A folder that cannot be watched is logged, since edits below it would
// otherwise go unnoticed.
func watchCreated(w *fsnotify.Watcher, name string) {
	err := addDirs(w, name)
	if err != nil {
		log.Printf("watch: %s", err)
	}
}

func runWatcher(ctx context.Context, w *fsnotify.Watcher, root string, site rebuilder, quiet time.Duration) {
	defer w.Close()
	var (
		timer     *time.Timer
		fire      <-chan time.Time
		templates bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}
			if ev.Has(fsnotify.Create) {
				watchCreated(w, ev.Name)
			}
			if rel, err := filepath.Rel(root, ev.Name); err == nil && strings.HasPrefix(filepath.ToSlash(rel), "template/") {
				templates = true
			}
			if timer == nil {
				timer = time.NewTimer(quiet)
			} else {
				timer.Reset(quiet)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %s", err)
		case <-fire:
			fire = nil
			if templates {
				templates = false
				if err := site.ReloadTemplates(); err != nil {
					log.Printf("watch: %s", err)
				}
			}
			if _, err := site.Rebuild(); err != nil {
				log.Printf("watch: keeping previous site: %s", err)
			}
		}
	}
}
