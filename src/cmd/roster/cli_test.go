package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"roster/src/cmd/roster/cmdutil"
	"roster/src/internal/config"
	"roster/src/internal/logging"
	"roster/src/internal/prompt"
	"roster/src/internal/table"
)

// Helper to execute a Cobra command and capture stdout/stderr
func execCmd(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// newTestRoot wires a fresh root command whose prompts are answered from answers.
func newTestRoot(t *testing.T, answers prompt.Static) *cobra.Command {
	t.Helper()
	old := *deps
	t.Cleanup(func() { *deps = old })
	*deps = cmdutil.Deps{
		Logger:   logging.Nop(),
		Prompter: func(*cobra.Command) prompt.Provider { return answers },
	}
	root := newRootCmd()
	root.AddCommand(newPrepCmd(), newAddCmd(), newSeedCmd(), newLookupCmd())
	return root
}

const sourceCSV = "Name,Badge_Num,Title_Description,Unit,Unit_Description\n\"Smith, John K. Jr.\",1234,Officer,Patrol,West Precinct\n"

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPrepRosterFlags(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.csv"), sourceCSV)
	out := filepath.Join(dir, "out.csv")

	root := newTestRoot(t, prompt.Static{})
	s, err := execCmd(root, "prep-roster", "-d", "2023-01-01", "-i", in, "-o", out, "--check")
	if err != nil {
		t.Fatalf("prep-roster: %v\n%s", err, s)
	}
	// punctuation is dropped by the split, so the rejoined name differs
	if !strings.Contains(s, "wrote "+out+" (1 rows)") || !strings.Contains(s, "name check: 1 of 1") ||
		!strings.Contains(s, `"Smith, John K. Jr." -> "Smith, John K Jr"`) {
		t.Fatalf("unexpected output: %q", s)
	}
	tb, err := table.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if tb.Get(0, "suffix") != "Jr" || tb.Get(0, "middle_name") != "K" || tb.Get(0, "date") != "2023-01-01" {
		t.Fatalf("unexpected row: %v %v", tb.Columns, tb.Rows)
	}
}

func TestPrepRosterCheckListsOnlyDifferingNames(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.csv"), "Name,Badge_Num\n\"Doe, Jane Q\",1\n\"Smith, John K. Jr.\",2\n")
	out := filepath.Join(dir, "out.csv")
	root := newTestRoot(t, prompt.Static{})
	s, err := execCmd(root, "prep-roster", "-d", "2023-01-01", "-i", in, "-o", out, "--check")
	if err != nil {
		t.Fatalf("prep-roster: %v\n%s", err, s)
	}
	if strings.Contains(s, `"Doe, Jane Q"`) {
		t.Fatalf("matching name should not be listed: %q", s)
	}
	if !strings.Contains(s, `"Smith, John K. Jr." -> "Smith, John K Jr"`) || !strings.Contains(s, "name check: 1 of 2 names differ") {
		t.Fatalf("unexpected check output: %q", s)
	}
}

func TestPrepRosterPromptsForMissingOptions(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.csv"), sourceCSV)
	out := filepath.Join(dir, "out.csv")
	root := newTestRoot(t, prompt.Static{"Date": "2023-01-01", "In csv": in, "Out csv": out})
	if s, err := execCmd(root, "prep-roster"); err != nil {
		t.Fatalf("prep-roster: %v\n%s", err, s)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestPrepRosterErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.csv"), "Name\nMadonna\n")
	out := filepath.Join(dir, "out.csv")

	root := newTestRoot(t, prompt.Static{})
	if _, err := execCmd(root, "prep-roster", "-d", "2023-01-01", "-i", in, "-o", out); err == nil || !strings.Contains(err.Error(), "malformed name") {
		t.Fatalf("want malformed name error, got %v", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Fatalf("output must not be written on error")
	}
	root = newTestRoot(t, prompt.Static{})
	if _, err := execCmd(root, "prep-roster", "-d", "01/02/2023", "-i", in, "-o", out); err == nil {
		t.Fatalf("want date error")
	}
	root = newTestRoot(t, prompt.Static{})
	if _, err := execCmd(root, "prep-roster", "-d", "2023-01-01", "-o", out); err == nil || !strings.Contains(err.Error(), "In csv is required") {
		t.Fatalf("want missing input error, got %v", err)
	}
}

func TestPrepRosterSpaceConventionFromConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.csv"), "Officer,Serial\nSmith John K,9\n")
	cfg := writeFile(t, filepath.Join(dir, "roster.yaml"), "convention: space\nrenames:\n  Officer: full_name\n")
	out := filepath.Join(dir, "out.csv")
	root := newTestRoot(t, prompt.Static{})
	if s, err := execCmd(root, "--config", cfg, "prep-roster", "-d", "2023-01-01", "-i", in, "-o", out); err != nil {
		t.Fatalf("prep-roster: %v\n%s", err, s)
	}
	tb, _ := table.Load(out)
	if tb.Get(0, "last_name") != "Smith" || tb.Get(0, "middle_name") != "K" || tb.Get(0, "badge") != "9" {
		t.Fatalf("unexpected row: %v %v", tb.Columns, tb.Rows)
	}
}

const histCSV = "badge,full_name,title,unit,unit_description,first_name,middle_name,last_name,date\n" +
	"1,\"Doe, Jane\",Officer,Patrol,West,Jane,,Doe,2022-01-01\n"

func TestAddToRosterAndSeed(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.csv"), sourceCSV)
	prepared := filepath.Join(dir, "inputs", "2023-01-01.csv")
	if err := os.MkdirAll(filepath.Dir(prepared), 0o755); err != nil {
		t.Fatal(err)
	}
	hist := writeFile(t, filepath.Join(dir, "hist.csv"), histCSV)

	root := newTestRoot(t, prompt.Static{})
	if s, err := execCmd(root, "prep-roster", "-d", "2023-01-01", "-i", in, "-o", prepared); err != nil {
		t.Fatalf("prep: %v\n%s", err, s)
	}
	root = newTestRoot(t, prompt.Static{})
	s, err := execCmd(root, "add-to-roster", "-H", hist, "--dir", filepath.Dir(prepared))
	if err != nil {
		t.Fatalf("add-to-roster: %v\n%s", err, s)
	}
	if !strings.Contains(s, "added 1 rows from "+prepared) || !strings.Contains(s, "wrote "+hist) {
		t.Fatalf("unexpected output: %q", s)
	}
	tb, err := table.Load(hist)
	if err != nil {
		t.Fatal(err)
	}
	if tb.Len() != 2 || tb.Has("suffix") || tb.Get(1, "last_name") != "Smith" {
		t.Fatalf("historical mismatch: %v %v", tb.Columns, tb.Rows)
	}

	db := filepath.Join(dir, "roster.db")
	root = newTestRoot(t, prompt.Static{})
	s, err = execCmd(root, "seed-roster", "-H", hist, "--db", db)
	if err != nil {
		t.Fatalf("seed-roster: %v\n%s", err, s)
	}
	if !strings.Contains(s, "seeded 2 officers (latest roster 2023-01-01)") {
		t.Fatalf("unexpected seed output: %q", s)
	}

	root = newTestRoot(t, prompt.Static{})
	s, err = execCmd(root, "lookup-officer", "--db", db)
	if err != nil {
		t.Fatalf("lookup-officer: %v\n%s", err, s)
	}
	cur, err := table.Read(strings.NewReader(s))
	if err != nil {
		t.Fatalf("lookup output is not csv: %v\n%s", err, s)
	}
	if cur.Len() != 1 || cur.Get(0, "badge") != "1234" || cur.Get(0, "date") != "2023-01-01" {
		t.Fatalf("current roster mismatch: %v", cur.Rows)
	}

	root = newTestRoot(t, prompt.Static{})
	s, err = execCmd(root, "lookup-officer", "--db", db, "-b", "1")
	if err != nil {
		t.Fatalf("lookup-officer --badge: %v\n%s", err, s)
	}
	hist1, err := table.Read(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	if hist1.Len() != 1 || hist1.Get(0, "last_name") != "Doe" {
		t.Fatalf("badge history mismatch: %v", hist1.Rows)
	}

	root = newTestRoot(t, prompt.Static{})
	if _, err := execCmd(root, "lookup-officer", "--db", db, "--badge", "999"); err == nil || !strings.Contains(err.Error(), "no officer with badge") {
		t.Fatalf("want unknown badge error, got %v", err)
	}
}

func TestAddToRosterPromptDefaultAndNoInputs(t *testing.T) {
	dir := t.TempDir()
	hist := writeFile(t, filepath.Join(dir, "hist.csv"), histCSV)
	root := newTestRoot(t, prompt.Static{})
	if _, err := execCmd(root, "add-to-roster", "-H", hist); err == nil || !strings.Contains(err.Error(), "no roster files") {
		t.Fatalf("want no inputs error, got %v", err)
	}
	extra := writeFile(t, filepath.Join(dir, "extra.csv"), histCSV)
	root = newTestRoot(t, prompt.Static{"Historical csv [" + config.DefaultHistoricalCSV + "]": hist})
	if s, err := execCmd(root, "add-to-roster", extra); err != nil {
		t.Fatalf("add-to-roster via prompt: %v\n%s", err, s)
	}
	tb, _ := table.Load(hist)
	if tb.Len() != 2 {
		t.Fatalf("want 2 rows, got %d", tb.Len())
	}
}

func TestAddToRosterRepeatedInputIsAppendedTwice(t *testing.T) {
	dir := t.TempDir()
	hist := writeFile(t, filepath.Join(dir, "hist.csv"), histCSV)
	extra := writeFile(t, filepath.Join(dir, "extra.csv"), histCSV)
	root := newTestRoot(t, prompt.Static{})
	s, err := execCmd(root, "add-to-roster", "-H", hist, extra, extra)
	if err != nil {
		t.Fatalf("add-to-roster: %v\n%s", err, s)
	}
	if strings.Count(s, "added 1 rows from "+extra) != 2 {
		t.Fatalf("want two appends: %q", s)
	}
	tb, err := table.Load(hist)
	if err != nil {
		t.Fatal(err)
	}
	if tb.Len() != 3 {
		t.Fatalf("want 3 rows, got %d", tb.Len())
	}
}

type recordingCommitter struct {
	paths []string
	msg   string
}

func (r *recordingCommitter) Commit(paths []string, message string) error {
	r.paths, r.msg = paths, message
	return nil
}

func TestAddToRosterCommit(t *testing.T) {
	dir := t.TempDir()
	hist := writeFile(t, filepath.Join(dir, "hist.csv"), histCSV)
	extra := writeFile(t, filepath.Join(dir, "extra.csv"), histCSV)
	root := newTestRoot(t, prompt.Static{})
	rc := &recordingCommitter{}
	pushed := false
	deps.Committer = func(push bool) cmdutil.Committer { pushed = push; return rc }
	if s, err := execCmd(root, "add-to-roster", "-H", hist, "--push", extra); err != nil {
		t.Fatalf("add-to-roster: %v\n%s", err, s)
	}
	if !pushed || len(rc.paths) != 1 || rc.paths[0] != hist || rc.msg != "roster: add extra.csv" {
		t.Fatalf("unexpected commit: push=%v %+v", pushed, rc)
	}
}
