package gitutil

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotRepo is returned when the working directory is not inside a git repository.
var ErrNotRepo = errors.New("not a git repository")

// Runner abstracts command execution for testability.
type Runner interface {
	Run(name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner runs commands in Dir (or the current directory when empty).
type ExecRunner struct{ Dir string }

// Run executes the named program with args and returns stdout, stderr, and error.
func (r ExecRunner) Run(name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = r.Dir
	var out, errB bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errB
	err := cmd.Run()
	return out.String(), errB.String(), err
}

// Committer records roster files in git after they are rewritten.
type Committer struct {
	Runner Runner
	// Push also pushes the commit, setting an upstream when none exists.
	Push bool
}

// NewCommitter returns a Committer backed by the git binary.
func NewCommitter(push bool) *Committer { return &Committer{Runner: ExecRunner{}, Push: push} }

// Commit stages paths and commits them with message. "Nothing to commit" is
// treated as success.
func (c *Committer) Commit(paths []string, message string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := c.add(paths); err != nil {
		return err
	}
	if noChange, err := c.commit(message); err != nil && !noChange {
		return err
	}
	if !c.Push {
		return nil
	}
	return c.pushWithFallback()
}

func (c *Committer) add(paths []string) error {
	args := append([]string{"add", "-A", "--"}, paths...)
	if _, stderr, err := c.Runner.Run("git", args...); err != nil {
		if strings.Contains(stderr, "not a git repository") {
			return fmt.Errorf("%w: %s", ErrNotRepo, strings.TrimSpace(stderr))
		}
		return fmt.Errorf("git add failed: %v: %s", err, stderr)
	}
	return nil
}

// commit returns noChange=true when git reports nothing to commit.
func (c *Committer) commit(message string) (noChange bool, err error) {
	stdout, stderr, runErr := c.Runner.Run("git", "commit", "-m", message)
	if runErr == nil {
		return false, nil
	}
	combined := stderr + stdout
	for _, s := range []string{"nothing to commit", "no changes added to commit", "working tree clean"} {
		if strings.Contains(combined, s) {
			return true, nil
		}
	}
	return false, fmt.Errorf("git commit failed: %v: %s%s", runErr, stderr, stdout)
}

// pushWithFallback runs `git push`, and when there is no upstream configured,
// it falls back to `git push -u origin <current-branch>`.
func (c *Committer) pushWithFallback() error {
	_, stderr, err := c.Runner.Run("git", "push")
	if err == nil {
		return nil
	}
	if !strings.Contains(stderr, "has no upstream branch") && !strings.Contains(stderr, "no configured push destination") {
		return fmt.Errorf("git push failed: %v: %s", err, stderr)
	}
	branch := "HEAD"
	if br, _, bErr := c.Runner.Run("git", "rev-parse", "--abbrev-ref", "HEAD"); bErr == nil && strings.TrimSpace(br) != "" {
		branch = strings.TrimSpace(br)
	}
	if _, stderr2, err2 := c.Runner.Run("git", "push", "-u", "origin", branch); err2 != nil {
		return fmt.Errorf("git push failed: %v: %s; fallback failed: %v: %s", err, stderr, err2, stderr2)
	}
	return nil
}
