package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
	"github.com/dhamidi/vbt/vb6/vbp"
)

// ConfigFile is the name of the project file looked up by LoadFrom.
const ConfigFile = "vbt.toml"

// Project is a directory tree of VB6 sources with its configuration.
type Project struct {
	RootDir string
	// ConfigPath is empty when no vbt.toml was found and defaults apply.
	ConfigPath string
	Config     Config
}

// Config holds the contents of vbt.toml.
type Config struct {
	Source      SourceConfig      `toml:"source"`
	Output      OutputConfig      `toml:"output"`
	Scan        ScanConfig        `toml:"scan"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type SourceConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	// Project names a .vbp file, relative to the root, whose members are the
	// sources. When empty a single .vbp in the root is used if there is one.
	Project string `toml:"project"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type ScanConfig struct {
	Concurrency  int      `toml:"concurrency"`
	PollInterval Duration `toml:"poll_interval"`
}

type DiagnosticsConfig struct {
	Suppress []string `toml:"suppress"`
}

// Duration wraps time.Duration for TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultExtensions are the VB6 file kinds that contain code.
var DefaultExtensions = []string{".bas", ".cls", ".frm", ".ctl", ".dsr", ".pag"}

func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Scan: ScanConfig{
			Concurrency:  8,
			PollInterval: Duration{time.Second},
		},
	}
}

// Load looks for a project starting in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom looks for vbt.toml in dir and its parents. The directory holding
// the file becomes the project root. Without a file, dir is the root and
// the defaults apply.
func LoadFrom(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}

	for d := abs; ; d = filepath.Dir(d) {
		path := filepath.Join(d, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			cfg, err := ReadConfig(path)
			if err != nil {
				return nil, err
			}
			return &Project{RootDir: d, ConfigPath: path, Config: cfg}, nil
		}
		if filepath.Dir(d) == d {
			break
		}
	}

	return &Project{RootDir: abs, Config: DefaultConfig()}, nil
}

// ReadConfig decodes path over the defaults. Keys the config does not know
// are an error so that typos do not go unnoticed.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return errors.Errorf("output.format must be text or json, got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	if c.Scan.Concurrency < 1 {
		return errors.Errorf("scan.concurrency must be positive, got %d", c.Scan.Concurrency)
	}
	if c.Scan.PollInterval.Duration <= 0 {
		return errors.Errorf("scan.poll_interval must be positive, got %s", c.Scan.PollInterval)
	}
	if _, err := c.SuppressedCategories(); err != nil {
		return err
	}
	return nil
}

// SuppressedCategories resolves diagnostics.suppress to categories.
func (c Config) SuppressedCategories() ([]diag.Category, error) {
	var out []diag.Category
	for _, name := range c.Diagnostics.Suppress {
		cat, ok := diag.LookupCategory(name)
		if !ok {
			return nil, errors.Errorf("unknown diagnostic category %q", name)
		}
		out = append(out, cat)
	}
	return out, nil
}

// IsSource reports whether path has one of the configured extensions.
// Extensions compare case-insensitively.
func (c Config) IsSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Source.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether a directory should be skipped. Hidden
// directories are always skipped.
func (c Config) IsExcluded(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	for _, pattern := range c.Source.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Sources returns the source files of the project in lexical order. When
// the project has a .vbp file those are its members; otherwise every file
// under the root with a source extension.
func (p *Project) Sources() ([]string, error) {
	vbpPath, err := p.ProjectFile()
	if err != nil {
		return nil, err
	}
	if vbpPath != "" {
		return p.members(vbpPath)
	}

	var files []string
	err = filepath.WalkDir(p.RootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.RootDir && p.Config.IsExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.Config.IsSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", p.RootDir)
	}
	sort.Strings(files)
	return files, nil
}

// ProjectFile returns the .vbp file that lists the project's sources, or ""
// when there is none. Several .vbp files in the root without a
// source.project setting leave the choice open and also return "".
func (p *Project) ProjectFile() (string, error) {
	if p.Config.Source.Project != "" {
		path := p.Config.Source.Project
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.RootDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(err, "source.project")
		}
		return path, nil
	}
	matches, err := filepath.Glob(filepath.Join(p.RootDir, "*.[vV][bB][pP]"))
	if err != nil {
		return "", errors.Wrapf(err, "look for project file in %s", p.RootDir)
	}
	if len(matches) != 1 {
		return "", nil
	}
	return matches[0], nil
}

// ReadProjectFile parses a .vbp file.
func ReadProjectFile(path string) (diag.Outcome[vbp.Project], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diag.Outcome[vbp.Project]{}, errors.Wrapf(err, "read %s", path)
	}
	text, _, err := source.Decode(data)
	if err != nil {
		return diag.Outcome[vbp.Project]{}, errors.Wrapf(err, "decode %s", path)
	}
	return vbp.Parse(source.NewCursor(path, text)), nil
}

// members resolves the members of a .vbp against its directory. Members
// without a configured source extension are left out; a member that does
// not exist is an error.
func (p *Project) members(vbpPath string) ([]string, error) {
	out, err := ReadProjectFile(vbpPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(vbpPath)
	seen := map[string]bool{}
	var files []string
	for _, m := range out.Value().Members() {
		path := filepath.FromSlash(strings.ReplaceAll(m, `\`, "/"))
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if seen[path] || !p.Config.IsSource(path) {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "%s lists %s", vbpPath, m)
		}
		seen[path] = true
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// Rel returns path relative to the project root, or path itself when it
// lies outside.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.RootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
