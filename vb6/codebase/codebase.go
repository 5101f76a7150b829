// Package codebase keeps the parsed state of every VB6 source file of a
// project and serves it to editors over the Language Server Protocol.
package codebase

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/vbt/project"
	"github.com/dhamidi/vbt/vb6/cst"
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/header"
	"github.com/dhamidi/vbt/vb6/source"
)

var log = commonlog.GetLogger("vbt.codebase")

type Codebase struct {
	mu       sync.RWMutex
	project  *project.Project
	suppress []diag.Category
	files    map[string]*FileInfo
}

// FileInfo is the result of analyzing one file. Content is the decoded
// UTF-8 text all offsets refer to.
type FileInfo struct {
	Path        string
	Content     []byte
	Lines       *source.LineIndex
	Tree        *cst.Tree
	Header      *header.ClassHeader
	Form        *header.FormHeader
	Symbols     []Symbol
	Diagnostics []diag.Diagnostic
}

func New(p *project.Project) *Codebase {
	suppress, err := p.Config.SuppressedCategories()
	if err != nil {
		log.Warningf("ignoring suppressed categories: %s", err)
	}
	return &Codebase{
		project:  p,
		suppress: suppress,
		files:    make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// ScanAll analyzes every source file of the project, at most
// scan.concurrency at a time. Files that cannot be read are logged and
// skipped; only a failure to list the sources or a cancelled context is
// returned.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := c.project.Sources()
	if err != nil {
		return err
	}
	log.Infof("scanning %d files under %s", len(paths), c.project.RootDir)

	limit := c.project.Config.Scan.Concurrency
	if limit < 1 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.ScanFile(path); err != nil {
				log.Errorf("%s", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ScanFile reads path from disk and analyzes it.
func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	content, converted, err := source.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if converted {
		log.Debugf("%s: decoded as windows-1252", path)
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile analyzes content as the current text of path, replacing what
// was known about it.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := Analyze(path, content, c.suppress...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns all analyzed files ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Diagnostics returns the diagnostics of all files ordered by path.
func (c *Codebase) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range c.Files() {
		out = append(out, f.Diagnostics...)
	}
	return out
}

// FindSymbol looks up a module-level declaration by name in every file.
// Names compare case-insensitively, as VB does.
func (c *Codebase) FindSymbol(name string) (*FileInfo, Symbol, bool) {
	for _, f := range c.Files() {
		for _, sym := range f.Symbols {
			if strings.EqualFold(sym.Name, name) {
				return f, sym, true
			}
		}
	}
	return nil, Symbol{}, false
}

// Analyze parses content as a file named path. Class modules and form-like
// files additionally get their header read, whose diagnostics come first.
func Analyze(path string, content []byte, suppress ...diag.Category) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
		Lines:   source.NewLineIndex(path, content),
	}

	var ds []diag.Diagnostic
	if kind, ok := header.KindForFile(path); ok {
		c := source.NewCursor(path, content)
		switch kind {
		case header.KindClass:
			h := header.ParseClassHeader(c)
			if v, ok := h.Get(); ok {
				info.Header = &v
			}
			ds = append(ds, h.Diagnostics()...)
		case header.KindForm:
			h := header.ParseFormHeader(c)
			if v, ok := h.Get(); ok {
				info.Form = &v
			}
			ds = append(ds, h.Diagnostics()...)
		}
	}

	tree := cst.ParseSource(path, content)
	info.Tree = tree.Value()
	info.Symbols = Symbols(info.Tree)
	ds = append(ds, tree.Diagnostics()...)

	info.Diagnostics = diag.Filter(ds, suppress...)
	return info
}
