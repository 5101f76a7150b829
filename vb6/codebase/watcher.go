package codebase

import (
	"os"
	"time"
)

// FileWatcher polls the project's sources and keeps the codebase in step
// with the disk. OnChange, when set, is called with each path that was
// rescanned or removed.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	OnChange     func(path string, info *FileInfo)
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	interval := c.project.Config.Scan.PollInterval.Duration
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Poll()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll runs one pass: new or modified files are rescanned, vanished ones
// removed. It is not safe to call concurrently with a running watcher.
func (w *FileWatcher) Poll() {
	paths, err := w.codebase.project.Sources()
	if err != nil {
		log.Warningf("watch: %s", err)
		return
	}

	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true

		stat, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := w.modTimes[path]
		if known && !stat.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = stat.ModTime()
		info, err := w.codebase.ScanFile(path)
		if err != nil {
			log.Errorf("%s", err)
			continue
		}
		log.Debugf("rescanned %s", path)
		w.notify(path, info)
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			log.Debugf("removed %s", path)
			w.notify(path, nil)
		}
	}
}

func (w *FileWatcher) notify(path string, info *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, info)
	}
}
