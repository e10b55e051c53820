package main

import (
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// sourceChangedMsg reports that the file behind the current image changed
// on disk.
type sourceChangedMsg struct {
	path string
}

// imageWatcher follows the source image file so the preview is redrawn
// when it is edited elsewhere.
type imageWatcher struct {
	w    *fsnotify.Watcher
	path string
}

func newImageWatcher() *imageWatcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("file watching disabled: %v", err)
		return &imageWatcher{}
	}
	return &imageWatcher{w: w}
}

// Watch switches the watch to path. The directory is watched rather than
// the file so editors that replace the file are still seen.
func (iw *imageWatcher) Watch(path string) {
	if iw == nil || iw.w == nil {
		return
	}
	if iw.path != "" {
		if err := iw.w.Remove(filepath.Dir(iw.path)); err != nil {
			log.Printf("unwatch %s: %v", iw.path, err)
		}
	}
	iw.path = ""
	if !isLocalRef(path) {
		return
	}
	abs, err := expandPath(path)
	if err != nil {
		return
	}
	if err := iw.w.Add(filepath.Dir(abs)); err != nil {
		log.Printf("watch %s: %v", abs, err)
		return
	}
	iw.path = abs
}

// Start forwards relevant events to p until the watcher is closed.
func (iw *imageWatcher) Start(p *tea.Program) {
	if iw == nil || iw.w == nil {
		return
	}
	go func() {
		for {
			select {
			case event, ok := <-iw.w.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					p.Send(sourceChangedMsg{path: event.Name})
				}
			case err, ok := <-iw.w.Errors:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()
}

func (iw *imageWatcher) Close() {
	if iw != nil && iw.w != nil {
		iw.w.Close()
	}
}
