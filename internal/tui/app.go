// internal/tui/app.go
//
// This is the interactive form for ams. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: the current selection and its evaluation
// 2. Update: toggles, copy actions and timers change the model
// 3. View: checkboxes on the left, accessModeSufficient output on the right
//
// Every toggle re-runs the evaluation, so the output always matches the boxes.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/accessmodes/internal/accessmode"
	"github.com/kingrea/accessmodes/internal/config"
	"github.com/kingrea/accessmodes/internal/logbook"
	"github.com/kingrea/accessmodes/internal/render"
)

const (
	feedbackCopied = "Copied!"
	feedbackFailed = "Copy failed"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Italic(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

type rowKind int

const (
	rowContent rowKind = iota
	rowAccommodation
)

// formRow is one checkbox on the form.
type formRow struct {
	kind    rowKind
	content accessmode.ContentFlags
	acc     accessmode.AccommodationFlags
	label   string
	needs   string
}

var formRows = []formRow{
	{kind: rowContent, content: accessmode.Text, label: "Text"},
	{kind: rowContent, content: accessmode.Image, label: "Images"},
	{kind: rowContent, content: accessmode.Audio, label: "Audio"},
	{kind: rowContent, content: accessmode.Video, label: "Video"},
	{kind: rowAccommodation, acc: accessmode.AltText, label: "Alt text", needs: "images"},
	{kind: rowAccommodation, acc: accessmode.AudioTranscript, label: "Audio transcript", needs: "audio or video"},
	{kind: rowAccommodation, acc: accessmode.Captions, label: "Captions", needs: "video"},
	{kind: rowAccommodation, acc: accessmode.DescTranscript, label: "Descriptive transcript", needs: "video"},
	{kind: rowAccommodation, acc: accessmode.AudioDescription, label: "Audio description", needs: "video"},
}

// Copier places text on the system clipboard.
type Copier func(text string) error

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithCopier overrides the clipboard writer.
func WithCopier(copier Copier) AppOption {
	return func(a *App) {
		if copier != nil {
			a.copier = copier
		}
	}
}

// WithLogbook journals every evaluation and copy to the given logbook.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

type clearFeedbackMsg struct {
	seq int
}

// App is the form model.
type App struct {
	config  *config.Config
	logbook *logbook.Logbook
	copier  Copier
	keys    keyMap
	help    help.Model

	cursor  int
	content accessmode.ContentFlags
	acc     accessmode.AccommodationFlags
	eval    accessmode.Evaluation

	feedback    string
	feedbackErr bool
	feedbackSeq int
	feedbackTTL time.Duration
	statusMsg   string

	width  int
	height int
}

// NewApp creates the form, starting from the configured default selection.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	content, acc := cfg.DefaultSelection()
	app := &App{
		config:      cfg,
		copier:      clipboard.WriteAll,
		keys:        defaultKeyMap(),
		help:        help.New(),
		content:     content,
		acc:         acc.Applicable(content),
		feedbackTTL: cfg.FeedbackDuration(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if !cfg.ClipboardEnabled() {
		app.copier = nil
	}
	app.logInfo("Session opened · content=%s accommodations=%s", flagList(app.content.Strings()), flagList(app.acc.Strings()))
	app.evaluate()
	return app
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case clearFeedbackMsg:
		if msg.seq == a.feedbackSeq {
			a.feedback = ""
			a.feedbackErr = false
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.logInfo("Session closed")
			return a, tea.Quit
		case key.Matches(msg, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, a.keys.Down):
			if a.cursor < len(formRows)-1 {
				a.cursor++
			}
		case key.Matches(msg, a.keys.Toggle):
			a.toggle(a.cursor)
		case key.Matches(msg, a.keys.CopyResults):
			return a, a.copyOutput(render.FormatList)
		case key.Matches(msg, a.keys.CopyMeta):
			return a, a.copyOutput(render.FormatMeta)
		case key.Matches(msg, a.keys.Save):
			a.saveDefaults()
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	}
	return a, nil
}

// Evaluation returns the evaluation for the current selection.
func (a *App) Evaluation() accessmode.Evaluation {
	return a.eval
}

func (a *App) enabled(row formRow) bool {
	if row.kind == rowContent {
		return true
	}
	return accessmode.EnabledAccommodations(a.content).Has(row.acc)
}

func (a *App) checked(row formRow) bool {
	if row.kind == rowContent {
		return a.content.Has(row.content)
	}
	return a.acc.Has(row.acc)
}

// toggle flips a checkbox. Accommodations that cannot apply to the current
// content stay unchecked and refuse to toggle.
func (a *App) toggle(idx int) {
	if idx < 0 || idx >= len(formRows) {
		return
	}
	row := formRows[idx]
	a.statusMsg = ""
	switch row.kind {
	case rowContent:
		a.content ^= row.content
		a.acc = a.acc.Applicable(a.content)
	case rowAccommodation:
		if !a.enabled(row) {
			a.statusMsg = fmt.Sprintf("%s needs %s content", row.label, row.needs)
			return
		}
		a.acc ^= row.acc
	}
	a.evaluate()
}

func (a *App) evaluate() {
	a.eval = accessmode.Analyze(a.content, a.acc)
	canCopy := a.copier != nil && !a.eval.IsEmpty()
	a.keys.CopyResults.SetEnabled(canCopy)
	a.keys.CopyMeta.SetEnabled(canCopy)
	a.logInfo("Evaluated content=%s accommodations=%s -> %d sets",
		flagList(a.content.Strings()), flagList(a.acc.Strings()), len(a.eval.Sets))
}

func (a *App) copyOutput(format render.Format) tea.Cmd {
	if a.copier == nil || a.eval.IsEmpty() {
		return nil
	}
	text, err := render.Render(format, a.eval)
	if err == nil {
		err = a.copier(text)
	}
	if err != nil {
		a.feedback = feedbackFailed
		a.feedbackErr = true
		a.logError("Copy %s output failed: %v", format, err)
	} else {
		a.feedback = feedbackCopied
		a.feedbackErr = false
		a.logInfo("Copied %s output (%d sets)", format, len(a.eval.Sets))
	}
	a.feedbackSeq++
	seq := a.feedbackSeq
	return tea.Tick(a.feedbackTTL, func(time.Time) tea.Msg {
		return clearFeedbackMsg{seq: seq}
	})
}

func (a *App) saveDefaults() {
	if err := a.config.SetDefaultSelection(a.content, a.acc); err != nil {
		a.statusMsg = fmt.Sprintf("Could not save defaults: %v", err)
		a.logError("Save defaults failed: %v", err)
		return
	}
	a.statusMsg = "Saved selection as default"
	a.logInfo("Saved default selection content=%s accommodations=%s",
		flagList(a.content.Strings()), flagList(a.acc.Strings()))
}

// View renders the current state to a string.
func (a *App) View() string {
	title := titleStyle.Render("⬡ accessModeSufficient")
	left := panelStyle.Render(a.renderForm())
	right := panelStyle.Render(a.renderOutput())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var footer []string
	if a.feedback != "" {
		style := okStyle
		if a.feedbackErr {
			style = errStyle
		}
		footer = append(footer, style.Render(a.feedback))
	}
	if a.statusMsg != "" {
		footer = append(footer, statusStyle.Render(a.statusMsg))
	}
	if activity := a.recentActivity(); activity != "" {
		footer = append(footer, statusStyle.Render(activity))
	}
	footer = append(footer, a.help.View(a.keys))
	return lipgloss.JoinVertical(lipgloss.Left, title, body, strings.Join(footer, "\n"))
}

func (a *App) renderForm() string {
	var lines []string
	lines = append(lines, headingStyle.Render("Content formats"))
	for idx, row := range formRows {
		if idx > 0 && row.kind != formRows[idx-1].kind {
			lines = append(lines, "", headingStyle.Render("Accommodations"))
		}
		lines = append(lines, a.renderRow(idx, row))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderRow(idx int, row formRow) string {
	pointer := "  "
	if idx == a.cursor {
		pointer = cursorStyle.Render("> ")
	}
	if !a.enabled(row) {
		return pointer + disabledStyle.Render(fmt.Sprintf("[-] %s (needs %s)", row.label, row.needs))
	}
	box := "[ ]"
	if a.checked(row) {
		box = checkedStyle.Render("[x]")
	}
	return pointer + box + " " + row.label
}

func (a *App) renderOutput() string {
	lines := []string{headingStyle.Render("Results")}
	if msg, empty := render.EmptyMessage(a.eval); empty {
		lines = append(lines, emptyStyle.Render(msg), "", headingStyle.Render("Meta tags"), emptyStyle.Render(msg))
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		valueStyle.Render(render.ListLiteral(a.eval.Sets)),
		"",
		headingStyle.Render("Meta tags"),
		valueStyle.Render(render.MetaTags(a.eval.Sets)),
	)
	return strings.Join(lines, "\n")
}

// recentActivity summarizes the journal: file name, entry count and the last
// entry.
func (a *App) recentActivity() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(1)
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("LOG · %s (%d) · %s", filepath.Base(a.logbook.Path()), total, lines[0])
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

func flagList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
