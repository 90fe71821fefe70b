package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ErrNotRepo is returned when the data directory has not been initialised.
var ErrNotRepo = errors.New("not a git repository. Run 'quest init' first")

// ignored keeps logs and interrupted saves out of history.
const ignored = "*.log\n*.tmp.*\n"

func git(dir string, out io.Writer, args ...string) *exec.Cmd {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd
}

// IsRepo reports whether dir has a .git directory.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// InitRepo makes the data directory a git repository and, if remote is set,
// points origin at it.
func InitRepo(dir, remote string, out io.Writer) error {
	if !IsRepo(dir) {
		if err := git(dir, out, "init").Run(); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		ignorePath := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(ignorePath); os.IsNotExist(err) {
			if err := os.WriteFile(ignorePath, []byte(ignored), 0644); err != nil {
				return fmt.Errorf("writing .gitignore: %w", err)
			}
		}
	}

	if remote == "" {
		fmt.Fprintln(out, "No remote specified. Use --remote <url> to set one.")
		return nil
	}

	// Remove existing origin first (ignore error if doesn't exist)
	git(dir, io.Discard, "remote", "remove", "origin").Run()

	if err := git(dir, out, "remote", "add", "origin", remote).Run(); err != nil {
		return fmt.Errorf("setting remote: %w", err)
	}
	fmt.Fprintf(out, "Remote set to: %s\n", remote)
	return nil
}

// SyncRepo synchronizes the data directory with the remote.
// Strategy: commit local changes, rebase, fallback to merge, push.
func SyncRepo(dir string, out io.Writer) error {
	if !IsRepo(dir) {
		return ErrNotRepo
	}

	// 1. Stage and commit any uncommitted local changes
	fmt.Fprintln(out, "Staging changes...")
	git(dir, out, "add", "-A").Run()
	if err := git(dir, out, "diff", "--cached", "--quiet").Run(); err != nil {
		msg := "sync " + time.Now().Format("2006-01-02 15:04:05")
		git(dir, out, "commit", "-m", msg).Run()
	}

	// 2. Try pull --rebase
	fmt.Fprintln(out, "Pulling...")
	if err := git(dir, out, "pull", "--rebase").Run(); err != nil {
		// 3. Rebase failed, abort and try merge
		fmt.Fprintln(out, "Rebase failed, trying merge...")
		git(dir, out, "rebase", "--abort").Run()

		if err := git(dir, out, "pull", "--no-rebase").Run(); err != nil {
			git(dir, out, "merge", "--abort").Run()
			return fmt.Errorf("sync failed: could not rebase or merge. Resolve conflicts in %s manually", dir)
		}
	}

	fmt.Fprintln(out, "Pushing...")
	if err := git(dir, out, "push").Run(); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	fmt.Fprintln(out, "Sync complete.")
	return nil
}
