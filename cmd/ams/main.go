// cmd/ams/main.go
//
// This is the entry point for the ams CLI.
// Running `ams` with no command opens the interactive form; `ams eval` and
// `ams check` answer the same questions non-interactively for scripts.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/accessmodes/internal/accessmode"
	"github.com/kingrea/accessmodes/internal/config"
	"github.com/kingrea/accessmodes/internal/logbook"
	"github.com/kingrea/accessmodes/internal/render"
	"github.com/kingrea/accessmodes/internal/tui"
)

const version = "0.1.0"

var errNotSufficient = errors.New("not sufficient")

// cli defines the command-line interface for ams.
type cli struct {
	Dir string `name:"dir" short:"C" help:"Project directory holding .ams/" type:"path" default:"."`

	Form    FormCmd    `cmd:"" default:"1" help:"Open the interactive form (default)"`
	Eval    EvalCmd    `cmd:"" help:"Print accessModeSufficient sets for a selection"`
	Check   CheckCmd   `cmd:"" help:"Test whether one mode combination is sufficient"`
	Init    InitCmd    `cmd:"" help:"Create .ams/ with a default config"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// runContext is bound into every command's Run method.
type runContext struct {
	dir    string
	out    io.Writer
	errOut io.Writer
}

// Selection is shared by commands that take content and accommodation flags.
type Selection struct {
	Content        []string `short:"c" sep:"," help:"Content formats: text, image, audio, video"`
	Accommodations []string `name:"accommodation" short:"a" sep:"," help:"Accommodations: altText, audioTranscript, captions, descTranscript, audioDescription"`
	NoPrune        bool     `name:"no-prune" help:"Keep accommodations that cannot apply to the selected content"`
}

func (s Selection) flags(rc *runContext, cfg *config.Config, book *logbook.Logbook) (accessmode.ContentFlags, accessmode.AccommodationFlags) {
	content, ignored := accessmode.ParseContent(s.Content)
	for _, tag := range ignored {
		fmt.Fprintf(rc.errOut, "warning: ignoring unknown content format %q\n", tag)
		book.Warn("Ignored unknown content format %q", tag)
	}
	acc, ignored := accessmode.ParseAccommodations(s.Accommodations)
	for _, tag := range ignored {
		fmt.Fprintf(rc.errOut, "warning: ignoring unknown accommodation %q\n", tag)
		book.Warn("Ignored unknown accommodation %q", tag)
	}
	if cfg.Prune() && !s.NoPrune {
		if dropped := acc &^ acc.Applicable(content); !dropped.IsEmpty() {
			fmt.Fprintf(rc.errOut, "warning: dropping accommodations that do not apply: %s\n", dropped)
			book.Info("Pruned accommodations %s", dropped)
			acc = acc.Applicable(content)
		}
	}
	return content, acc
}

// EvalCmd prints the accessModeSufficient sets for a selection.
type EvalCmd struct {
	Selection `embed:""`
	Format  string `short:"f" help:"Output format: list, meta, json, yaml (default from config)"`
	Explain bool   `help:"Also print the minimal sets before expansion"`
}

func (c *EvalCmd) Run(rc *runContext) error {
	cfg, err := config.Load(rc.dir)
	if err != nil {
		return err
	}
	book := openLogbook(cfg, false)
	content, acc := c.flags(rc, cfg, book)

	format := cfg.Format()
	if strings.TrimSpace(c.Format) != "" {
		if format, err = render.ParseFormat(c.Format); err != nil {
			return err
		}
	}

	eval := accessmode.Analyze(content, acc)
	out, err := render.Render(format, eval)
	if err != nil {
		return err
	}
	if c.Explain {
		var sufficient []accessmode.ModeSet
		for _, candidate := range accessmode.Candidates() {
			if accessmode.Sufficient(candidate, content, acc) {
				sufficient = append(sufficient, candidate)
			}
		}
		if !content.IsEmpty() {
			fmt.Fprintf(rc.out, "sufficient: %s\n", bracketed(sufficient))
		}
		fmt.Fprintf(rc.out, "minimal: %s\n", bracketed(eval.Minimal))
	}
	fmt.Fprintln(rc.out, out)
	book.Info("eval content=%s accommodations=%s -> %d sets", content, acc, len(eval.Sets))
	return nil
}

// CheckCmd tests a single mode combination.
type CheckCmd struct {
	Modes []string `arg:"" help:"Access modes, space or comma separated: textual, visual, auditory"`
	Selection `embed:""`
}

func (c *CheckCmd) Run(rc *runContext) error {
	cfg, err := config.Load(rc.dir)
	if err != nil {
		return err
	}
	book := openLogbook(cfg, false)

	var set accessmode.ModeSet
	for _, arg := range c.Modes {
		// Accept "textual,visual" as written in an accessModeSufficient value.
		for _, name := range strings.Split(arg, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			mode, ok := accessmode.ParseMode(name)
			if !ok {
				return fmt.Errorf("unknown access mode %q", strings.TrimSpace(name))
			}
			set = set.With(mode)
		}
	}
	if set.IsEmpty() {
		return fmt.Errorf("at least one access mode is required")
	}
	content, acc := c.flags(rc, cfg, book)

	ok := accessmode.Sufficient(set, content, acc)
	book.Info("check [%s] content=%s accommodations=%s -> %t", set, content, acc, ok)
	if !ok {
		fmt.Fprintf(rc.out, "[%s] is not sufficient\n", set)
		return errNotSufficient
	}
	fmt.Fprintf(rc.out, "[%s] is sufficient\n", set)
	return nil
}

// InitCmd creates the project directory and default config.
type InitCmd struct{}

func (c *InitCmd) Run(rc *runContext) error {
	if err := config.InitDir(rc.dir); err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "Initialized %s\n", filepath.Join(rc.dir, config.AMSDir, "config.yaml"))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(rc *runContext) error {
	fmt.Fprintf(rc.out, "ams %s\n", version)
	return nil
}

// FormCmd runs the interactive form.
type FormCmd struct{}

func (c *FormCmd) Run(rc *runContext) error {
	if err := config.InitDir(rc.dir); err != nil {
		return fmt.Errorf("initializing %s: %w", config.AMSDir, err)
	}
	cfg, err := config.Load(rc.dir)
	if err != nil {
		return err
	}
	book := openLogbook(cfg, true)

	// Use alternate screen buffer (like vim does)
	p := tea.NewProgram(tui.NewApp(cfg, tui.WithLogbook(book)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}

func bracketed(sets []accessmode.ModeSet) string {
	parts := make([]string, len(sets))
	for i, set := range sets {
		parts[i] = "[" + set.String() + "]"
	}
	return strings.Join(parts, " ")
}

// openLogbook returns nil (a no-op logbook) when logging is off. Without
// create, it only journals into projects that already have a .ams directory.
func openLogbook(cfg *config.Config, create bool) *logbook.Logbook {
	if !cfg.LogEnabled() {
		return nil
	}
	if !create {
		if _, err := os.Stat(cfg.AMSProjectDir); err != nil {
			return nil
		}
	}
	book, err := logbook.New(cfg.LogPath())
	if err != nil {
		return nil
	}
	return book
}

func newParser(grammar *cli) (*kong.Kong, error) {
	return kong.New(grammar,
		kong.Name("ams"),
		kong.Description("Work out schema.org accessModeSufficient sets for a publication"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
}

func main() {
	var grammar cli
	parser, err := newParser(&grammar)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run(&runContext{dir: grammar.Dir, out: os.Stdout, errOut: os.Stderr})
	if errors.Is(err, errNotSufficient) {
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
