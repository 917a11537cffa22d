package pitch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pkt.systems/pitch/internal/frontmatter"
)

// ConfigFileEnv names the environment variable pointing at the
// configuration file.
const ConfigFileEnv = "PITCH_CONFIGURATION_FILE"

// HeadingStyle is the presentation of one heading level.
type HeadingStyle struct {
	Prefix string
	Style  Style
}

// Config is the resolved presentation configuration.
type Config struct {
	// Title is shown in the presentation frame.
	Title string

	// PageBreak splits the document into pages.
	PageBreak BreakCondition

	// DefaultStyle is the base style for body text.
	DefaultStyle Style

	// Headings holds prefix and style per level; index 0 is level 1.
	Headings [6]HeadingStyle

	// Bullet marks unordered list items.
	Bullet rune

	// FrontMatterDelimiter marks the configuration block in the
	// presentation source. Only the file configuration can change it.
	FrontMatterDelimiter string

	// Commands are dispatched on presentation lifecycle events.
	Commands Commands
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := &Config{
		Title:                "Presentation",
		PageBreak:            BreakCondition{Type: BreakThematic},
		Bullet:               '•',
		FrontMatterDelimiter: frontmatter.DefaultDelimiter,
	}
	for level := 1; level <= 6; level++ {
		cfg.Headings[level-1] = HeadingStyle{
			Prefix: strings.Repeat("#", level) + " ",
			Style:  Style{Mod: ModBold},
		}
	}
	cfg.Headings[0].Style = Style{Mod: ModBold | ModUnderline}
	return cfg
}

// Heading returns the style for a heading level between 1 and 6.
func (c *Config) Heading(level int) (HeadingStyle, error) {
	if level < 1 || level > 6 {
		return HeadingStyle{}, fmt.Errorf("unexpected heading level %d", level)
	}
	return c.Headings[level-1], nil
}

// LoadConfig builds the configuration from defaults plus the file named by
// ConfigFileEnv, when set.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	path := os.Getenv(ConfigFileEnv)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	frag, err := ParseFragment(data)
	if err != nil {
		return nil, fmt.Errorf("parse configuration %s: %w", path, err)
	}
	if err := cfg.Apply(frag); err != nil {
		return nil, fmt.Errorf("configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Fragment is a partial configuration, from the configuration file or from
// presentation front matter. Absent fields leave the configuration
// untouched.
type Fragment struct {
	Title                *string             `yaml:"title"`
	PageBreak            *BreakSpec          `yaml:"page_break"`
	DefaultStyle         *StyleSpec          `yaml:"default_style"`
	Headings             map[int]HeadingSpec `yaml:"headings"`
	Bullet               *string             `yaml:"bullet"`
	FrontMatterDelimiter *string             `yaml:"front_matter_delimiter"`
	Commands             *CommandsSpec       `yaml:"commands"`
}

// BreakSpec is the YAML form of a break condition.
type BreakSpec struct {
	Type  string `yaml:"type"`
	Level int    `yaml:"level"`
}

// StyleSpec is the YAML form of a style.
type StyleSpec struct {
	FG            string `yaml:"fg"`
	BG            string `yaml:"bg"`
	Bold          bool   `yaml:"bold"`
	Italic        bool   `yaml:"italic"`
	Underline     bool   `yaml:"underline"`
	Dim           bool   `yaml:"dim"`
	Strikethrough bool   `yaml:"strikethrough"`
}

// HeadingSpec is the YAML form of one heading level.
type HeadingSpec struct {
	Prefix *string    `yaml:"prefix"`
	Style  *StyleSpec `yaml:"style"`
}

// CommandsSpec is the YAML form of lifecycle commands.
type CommandsSpec struct {
	Initialize *Command `yaml:"initialize"`
}

// ParseFragment decodes a YAML configuration fragment.
func ParseFragment(data []byte) (Fragment, error) {
	var frag Fragment
	if err := yaml.Unmarshal(data, &frag); err != nil {
		return Fragment{}, err
	}
	return frag, nil
}

// Apply merges frag over c. All problems in the fragment are reported
// together; c is only modified when the fragment is valid.
func (c *Config) Apply(frag Fragment) error {
	var errs error
	next := *c

	if frag.Title != nil {
		next.Title = *frag.Title
	}
	if frag.PageBreak != nil {
		cond, err := frag.PageBreak.condition()
		if err != nil {
			errs = multierr.Append(errs, err)
		} else {
			next.PageBreak = cond
		}
	}
	if frag.DefaultStyle != nil {
		style, err := frag.DefaultStyle.style()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("default_style: %w", err))
		} else {
			next.DefaultStyle = style
		}
	}
	for level, spec := range frag.Headings {
		if level < 1 || level > 6 {
			errs = multierr.Append(errs, fmt.Errorf("headings: level %d outside 1-6", level))
			continue
		}
		target := &next.Headings[level-1]
		if spec.Prefix != nil {
			target.Prefix = *spec.Prefix
		}
		if spec.Style != nil {
			style, err := spec.Style.style()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("headings: level %d: %w", level, err))
				continue
			}
			target.Style = style
		}
	}
	if frag.Bullet != nil {
		runes := []rune(*frag.Bullet)
		if len(runes) != 1 {
			errs = multierr.Append(errs, fmt.Errorf("bullet: want a single character, got %q", *frag.Bullet))
		} else {
			next.Bullet = runes[0]
		}
	}
	if frag.FrontMatterDelimiter != nil {
		if strings.TrimSpace(*frag.FrontMatterDelimiter) == "" {
			errs = multierr.Append(errs, fmt.Errorf("front_matter_delimiter: empty"))
		} else {
			next.FrontMatterDelimiter = *frag.FrontMatterDelimiter
		}
	}
	if frag.Commands != nil {
		if frag.Commands.Initialize != nil {
			if err := frag.Commands.Initialize.validate(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("commands.initialize: %w", err))
			} else {
				next.Commands.Initialize = frag.Commands.Initialize
			}
		}
	}

	if errs != nil {
		return errs
	}
	*c = next
	return nil
}

func (s BreakSpec) condition() (BreakCondition, error) {
	switch s.Type {
	case "thematic_break":
		return BreakCondition{Type: BreakThematic}, nil
	case "heading":
		if s.Level < 1 || s.Level > 6 {
			return BreakCondition{}, fmt.Errorf("page_break: heading level %d outside 1-6", s.Level)
		}
		return BreakCondition{Type: BreakHeading, Level: s.Level}, nil
	default:
		return BreakCondition{}, fmt.Errorf("page_break: unknown type %q", s.Type)
	}
}

func (s StyleSpec) style() (Style, error) {
	var style Style
	var errs error
	if s.FG != "" {
		c := tcell.GetColor(s.FG)
		if !c.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("unknown color %q", s.FG))
		}
		style.FG = c
	}
	if s.BG != "" {
		c := tcell.GetColor(s.BG)
		if !c.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("unknown color %q", s.BG))
		}
		style.BG = c
	}
	if s.Bold {
		style.Mod |= ModBold
	}
	if s.Italic {
		style.Mod |= ModItalic
	}
	if s.Underline {
		style.Mod |= ModUnderline
	}
	if s.Dim {
		style.Mod |= ModDim
	}
	if s.Strikethrough {
		style.Mod |= ModStrikethrough
	}
	return style, errs
}

// Commands holds the external commands dispatched on lifecycle events.
// Dispatch failures are logged and never abort the presentation.
type Commands struct {
	Initialize *Command
}

// RunInitialize dispatches the initialize command, if configured, after the
// presentation has been loaded.
func (c Commands) RunInitialize(logger *zap.Logger, path string) {
	c.dispatch(logger, path, c.Initialize, func(string) (string, bool) {
		return "", false
	})
}

func (c Commands) dispatch(logger *zap.Logger, path string, command *Command, replacements func(string) (string, bool)) {
	if command == nil {
		return
	}
	cwd := filepath.Dir(path)
	absolute, err := filepath.Abs(path)
	if err != nil {
		logger.Warn("resolve presentation path", zap.String("path", path), zap.Error(err))
		return
	}
	err = command.Execute(cwd, func(key string) (string, bool) {
		if key == "presentation.path" {
			return absolute, true
		}
		return replacements(key)
	})
	if err != nil {
		logger.Warn("dispatch command",
			zap.String("binary", command.Binary),
			zap.Error(err))
		return
	}
	logger.Info("dispatched command", zap.String("binary", command.Binary))
}

// Command describes an external command to execute.
type Command struct {
	Binary    string   `yaml:"binary"`
	Arguments []string `yaml:"arguments"`
}

func (c Command) validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("empty binary")
	}
	return nil
}

// Execute runs the command in cwd with every argument interpolated and
// blocks until it finishes.
func (c Command) Execute(cwd string, replacements func(string) (string, bool)) error {
	args := make([]string, len(c.Arguments))
	for i, argument := range c.Arguments {
		args[i] = Interpolate(argument, replacements)
	}
	cmd := exec.Command(c.Binary, args...)
	cmd.Dir = cwd
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("execute %s: %w", c.Binary, err)
	}
	return nil
}

// Interpolate replaces every "${key}" token for which replacements returns
// a value. Tokens without a replacement are kept as written.
func Interpolate(s string, replacements func(string) (string, bool)) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			break
		}
		end += start
		key := s[start+2 : end]
		b.WriteString(s[:start])
		if value, ok := replacements(key); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}
