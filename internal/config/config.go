// internal/config/config.go
//
// This package handles configuration and the .ams directory structure.
// A project that runs `ams` gets a .ams/ folder holding config.yaml and logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/accessmodes/internal/accessmode"
	"github.com/kingrea/accessmodes/internal/render"
)

const (
	// AMSDir is the name of the directory we create in each project
	AMSDir = ".ams"

	defaultFormat          = render.FormatList
	defaultFeedbackSeconds = 2
)

const defaultProjectConfigYAML = `# ams project configuration
version: 1

# Selection the interactive form starts with.
# content: text, image, audio, video
# accommodations: altText, audioTranscript, captions, descTranscript, audioDescription
defaults:
  content: []
  accommodations: []

output:
  # list, meta, json or yaml
  format: list
  # Drop accommodations that cannot apply to the selected content.
  prune: true

clipboard:
  enabled: true
  feedback_seconds: 2

log:
  enabled: true
  # Relative paths resolve against the project directory.
  # path: .ams/logs/journal.log
`

// SelectionConfig is a content/accommodation selection by tag name.
type SelectionConfig struct {
	Content        []string `yaml:"content"`
	Accommodations []string `yaml:"accommodations"`
}

// OutputConfig captures rendering preferences.
type OutputConfig struct {
	Format string `yaml:"format"`
	Prune  *bool  `yaml:"prune,omitempty"`
}

// ClipboardConfig controls the copy actions of the interactive form.
type ClipboardConfig struct {
	Enabled         *bool `yaml:"enabled,omitempty"`
	FeedbackSeconds int   `yaml:"feedback_seconds,omitempty"`
}

// LogConfig controls the evaluation journal.
type LogConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// ProjectConfig models .ams/config.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Defaults  SelectionConfig `yaml:"defaults"`
	Output    OutputConfig    `yaml:"output"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Log       LogConfig       `yaml:"log"`
}

// envOverrides are read from the process environment after the file.
type envOverrides struct {
	Format            string `env:"AMS_FORMAT"`
	LogDisabled       bool   `env:"AMS_LOG_DISABLED"`
	ClipboardDisabled bool   `env:"AMS_CLIPBOARD_DISABLED"`
}

// Config holds the runtime configuration for ams.
type Config struct {
	// ProjectDir is the directory where the user ran `ams` from
	ProjectDir string

	// AMSProjectDir is ProjectDir/.ams
	AMSProjectDir string

	Project ProjectConfig
}

// InitDir creates the .ams directory structure and a default config file in
// the given project directory. Existing files are left alone.
func InitDir(projectDir string) error {
	amsDir := filepath.Join(projectDir, AMSDir)
	if err := os.MkdirAll(filepath.Join(amsDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure ams dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(amsDir, "config.yaml"))
}

// Load reads .ams/config.yaml (if present) on top of the defaults, then
// applies environment overrides.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:    projectDir,
		AMSProjectDir: filepath.Join(projectDir, AMSDir),
		Project:       defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.AMSProjectDir, "config.yaml")
}

// LogPath returns the journal location. Relative paths resolve against the
// project directory.
func (c *Config) LogPath() string {
	if path := resolvePath(c.ProjectDir, c.Project.Log.Path); path != "" {
		return path
	}
	return filepath.Join(c.AMSProjectDir, "logs", "journal.log")
}

// LogEnabled reports whether evaluations should be journaled.
func (c *Config) LogEnabled() bool {
	return boolOr(c.Project.Log.Enabled, true)
}

// ClipboardEnabled reports whether copy actions are offered.
func (c *Config) ClipboardEnabled() bool {
	return boolOr(c.Project.Clipboard.Enabled, true)
}

// FeedbackDuration is how long copy feedback stays on screen.
func (c *Config) FeedbackDuration() time.Duration {
	return time.Duration(c.Project.Clipboard.FeedbackSeconds) * time.Second
}

// Format returns the configured output format.
func (c *Config) Format() render.Format {
	return render.Format(c.Project.Output.Format)
}

// Prune reports whether inapplicable accommodations are dropped before
// evaluation.
func (c *Config) Prune() bool {
	return boolOr(c.Project.Output.Prune, true)
}

// DefaultSelection returns the configured starting selection as flags.
func (c *Config) DefaultSelection() (accessmode.ContentFlags, accessmode.AccommodationFlags) {
	content, _ := accessmode.ParseContent(c.Project.Defaults.Content)
	acc, _ := accessmode.ParseAccommodations(c.Project.Defaults.Accommodations)
	return content, acc
}

// SetDefaultSelection updates the starting selection and persists it back to
// .ams/config.yaml.
func (c *Config) SetDefaultSelection(content accessmode.ContentFlags, acc accessmode.AccommodationFlags) error {
	c.Project.Defaults.Content = nonNil(content.Strings())
	c.Project.Defaults.Accommodations = nonNil(acc.Strings())
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	if format := strings.TrimSpace(overrides.Format); format != "" {
		parsed, err := render.ParseFormat(format)
		if err != nil {
			return fmt.Errorf("config: AMS_FORMAT: %w", err)
		}
		c.Project.Output.Format = string(parsed)
	}
	if overrides.LogDisabled {
		c.Project.Log.Enabled = boolPtr(false)
	}
	if overrides.ClipboardDisabled {
		c.Project.Clipboard.Enabled = boolPtr(false)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Defaults: SelectionConfig{
			Content:        []string{},
			Accommodations: []string{},
		},
		Output: OutputConfig{
			Format: string(defaultFormat),
		},
		Clipboard: ClipboardConfig{
			FeedbackSeconds: defaultFeedbackSeconds,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Defaults.Content == nil {
		pc.Defaults.Content = []string{}
	}
	if pc.Defaults.Accommodations == nil {
		pc.Defaults.Accommodations = []string{}
	}
	if strings.TrimSpace(pc.Output.Format) == "" {
		pc.Output.Format = string(defaultFormat)
	}
	if pc.Clipboard.FeedbackSeconds == 0 {
		pc.Clipboard.FeedbackSeconds = defaultFeedbackSeconds
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Defaults.Content = trimAll(pc.Defaults.Content)
	pc.Defaults.Accommodations = trimAll(pc.Defaults.Accommodations)
	pc.Output.Format = strings.ToLower(strings.TrimSpace(pc.Output.Format))
	pc.Log.Path = strings.TrimSpace(pc.Log.Path)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for i, tag := range pc.Defaults.Content {
		if _, ignored := accessmode.ParseContent([]string{tag}); len(ignored) > 0 {
			return fmt.Errorf("defaults.content[%d]: unknown content format %q", i, tag)
		}
	}
	for i, tag := range pc.Defaults.Accommodations {
		if _, ignored := accessmode.ParseAccommodations([]string{tag}); len(ignored) > 0 {
			return fmt.Errorf("defaults.accommodations[%d]: unknown accommodation %q", i, tag)
		}
	}
	if _, err := render.ParseFormat(pc.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if pc.Clipboard.FeedbackSeconds < 0 {
		return fmt.Errorf("clipboard.feedback_seconds must not be negative")
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.AMSProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure ams dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func boolPtr(v bool) *bool {
	return &v
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
