package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/accessmodes/internal/config"
)

// runCLI parses args with the real grammar and runs the selected command.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var grammar cli
	parser, err := newParser(&grammar)
	if err != nil {
		t.Fatalf("new parser: %v", err)
	}
	ctx, err := parser.Parse(append([]string{"-C", t.TempDir()}, args...))
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	var out, errOut bytes.Buffer
	err = ctx.Run(&runContext{dir: grammar.Dir, out: &out, errOut: &errOut})
	return out.String(), errOut.String(), err
}

func newRunContext(t *testing.T) (*runContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	return &runContext{dir: t.TempDir(), out: &out, errOut: &errOut}, &out, &errOut
}

func TestEvalPrintsMetaTags(t *testing.T) {
	rc, out, _ := newRunContext(t)
	cmd := &EvalCmd{
		Selection: Selection{Content: []string{"video"}, Accommodations: []string{"captions", "descTranscript"}},
		Format:    "meta",
	}
	if err := cmd.Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := strings.Join([]string{
		`<meta property="schema:accessModeSufficient">textual</meta>`,
		`<meta property="schema:accessModeSufficient">textual, visual</meta>`,
		`<meta property="schema:accessModeSufficient">textual, auditory</meta>`,
		`<meta property="schema:accessModeSufficient">visual</meta>`,
		`<meta property="schema:accessModeSufficient">visual, auditory</meta>`,
	}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestEvalExplainAndEmptyContent(t *testing.T) {
	rc, out, _ := newRunContext(t)
	cmd := &EvalCmd{Selection: Selection{Content: []string{"I"}, Accommodations: []string{"altText"}}, Explain: true}
	if err := cmd.Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := "sufficient: [textual] [visual] [textual, visual] [textual, auditory] [visual, auditory] [textual, visual, auditory]\n" +
		"minimal: [textual] [visual]\n" +
		"[\"textual\"]\n[\"textual\", \"visual\"]\n[\"visual\"]\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}

	rc, out, _ = newRunContext(t)
	if err := (&EvalCmd{}).Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.Contains(out.String(), "Select at least one content format type.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestEvalPrunesAndWarns(t *testing.T) {
	rc, out, errOut := newRunContext(t)
	cmd := &EvalCmd{
		Selection: Selection{Content: []string{"audio", "braille"}, Accommodations: []string{"altText", "audioTranscript"}},
		Format:    "json",
	}
	if err := cmd.Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != `[["textual"],["textual","auditory"],["auditory"]]` {
		t.Fatalf("output = %s", got)
	}
	if !strings.Contains(errOut.String(), `"braille"`) || !strings.Contains(errOut.String(), "altText") {
		t.Fatalf("warnings = %q", errOut.String())
	}

	// Same sets without pruning, but no prune warning.
	rc, out, errOut = newRunContext(t)
	cmd.NoPrune = true
	if err := cmd.Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != `[["textual"],["textual","auditory"],["auditory"]]` {
		t.Fatalf("output = %s", got)
	}
	if strings.Contains(errOut.String(), "dropping") {
		t.Fatalf("unexpected prune warning: %q", errOut.String())
	}
}

func TestEvalRejectsUnknownFormat(t *testing.T) {
	rc, _, _ := newRunContext(t)
	cmd := &EvalCmd{Selection: Selection{Content: []string{"text"}}, Format: "html"}
	if err := cmd.Run(rc); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCheck(t *testing.T) {
	rc, out, _ := newRunContext(t)
	cmd := &CheckCmd{Modes: []string{"textual"}, Selection: Selection{Content: []string{"video"}, Accommodations: []string{"descTranscript"}}}
	if err := cmd.Run(rc); err != nil {
		t.Fatalf("check: %v", err)
	}
	if out.String() != "[textual] is sufficient\n" {
		t.Fatalf("output = %q", out.String())
	}

	rc, out, _ = newRunContext(t)
	cmd = &CheckCmd{Modes: []string{"auditory"}, Selection: Selection{Content: []string{"video"}, Accommodations: []string{"captions"}}}
	if err := cmd.Run(rc); !errors.Is(err, errNotSufficient) {
		t.Fatalf("err = %v, want errNotSufficient", err)
	}
	if out.String() != "[auditory] is not sufficient\n" {
		t.Fatalf("output = %q", out.String())
	}

	rc, _, _ = newRunContext(t)
	if err := (&CheckCmd{Modes: []string{"tactile"}}).Run(rc); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestInitThenEvalJournals(t *testing.T) {
	rc, _, _ := newRunContext(t)
	if err := (&InitCmd{}).Run(rc); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := (&EvalCmd{Selection: Selection{Content: []string{"text"}}}).Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(rc.dir, config.AMSDir, "logs", "journal.log"))
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if !strings.Contains(string(data), "eval content=text") {
		t.Fatalf("journal = %q", string(data))
	}
}

func TestEvalWithoutProjectDirDoesNotWrite(t *testing.T) {
	rc, _, _ := newRunContext(t)
	if err := (&EvalCmd{Selection: Selection{Content: []string{"text"}}}).Run(rc); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if _, err := os.Stat(filepath.Join(rc.dir, config.AMSDir)); !os.IsNotExist(err) {
		t.Fatalf("eval created %s: %v", config.AMSDir, err)
	}
}

func TestParsedEval(t *testing.T) {
	out, _, err := runCLI(t, "eval", "-c", "image", "-a", "altText", "-f", "json")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := strings.TrimSpace(out); got != `[["textual"],["textual","visual"],["visual"]]` {
		t.Fatalf("output = %s", got)
	}

	out, _, err = runCLI(t, "eval", "--content", "video,text", "--accommodation", "descTranscript", "--format", "list")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.HasPrefix(out, "[\"textual\"]\n") {
		t.Fatalf("output = %q", out)
	}
}

func TestParsedCheckAcceptsCommaAndSpaceSeparatedModes(t *testing.T) {
	for _, modes := range [][]string{
		{"textual,visual"},
		{"textual", "visual"},
		{"textual, visual"},
	} {
		args := append([]string{"check"}, modes...)
		args = append(args, "-c", "image")
		out, _, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("check %v: %v", modes, err)
		}
		if out != "[textual, visual] is sufficient\n" {
			t.Fatalf("check %v output = %q", modes, out)
		}
	}

	out, _, err := runCLI(t, "check", "textual,auditory", "-c", "image")
	if !errors.Is(err, errNotSufficient) {
		t.Fatalf("err = %v, want errNotSufficient", err)
	}
	if out != "[textual, auditory] is not sufficient\n" {
		t.Fatalf("output = %q", out)
	}

	if _, _, err := runCLI(t, "check", "textual,tactile", "-c", "text"); err == nil || !strings.Contains(err.Error(), `"tactile"`) {
		t.Fatalf("err = %v, want unknown mode tactile", err)
	}
}
