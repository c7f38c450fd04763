// Package tmux drives external tmux panes via exec. Each tmux-backed
// session owns one pane; panes are spawned detached in their own window
// and joined into the dashboard's window when displayed. Requires running
// inside tmux (TMUX env set) for anything beyond InsideTmux.
package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// InsideTmux reports whether the process runs inside a tmux client.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// SpawnPane starts command in a new detached window and returns the pane
// ID (e.g. %4). An empty command spawns the default shell. The pane stays
// in the background until shown with JoinPane.
func SpawnPane(workDir, command string) (paneID string, err error) {
	args := []string{"new-window", "-d", "-P", "-F", "#{pane_id}"}
	if workDir != "" {
		args = append(args, "-c", workDir)
	}
	if command != "" {
		args = append(args, command)
	}
	cmd := exec.Command("tmux", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux new-window: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// KillPane kills the pane with the given ID, terminating its session.
func KillPane(paneID string) error {
	cmd := exec.Command("tmux", "kill-pane", "-t", paneID)
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux kill-pane: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// HidePane moves the pane into its own background window, keeping the
// session running. The pane ID stays valid for a later JoinPane. Used
// when a session is displaced from a panel without being terminated.
func HidePane(paneID string) error {
	cmd := exec.Command("tmux", "break-pane", "-d", "-s", paneID)
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux break-pane: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// JoinPane joins the pane into the current window next to the dashboard
// pane. Focus stays on the dashboard.
func JoinPane(paneID string) error {
	cmd := exec.Command("tmux", "join-pane", "-d", "-s", paneID, "-t", ".")
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux join-pane: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// SelectPane gives input focus to the pane.
func SelectPane(paneID string) error {
	cmd := exec.Command("tmux", "select-pane", "-t", paneID)
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux select-pane: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// ListPaneIDs returns all live pane IDs across all tmux sessions and
// windows. Each ID looks like "%42". Feeds the session registry's
// liveness checker.
func ListPaneIDs() (map[string]bool, error) {
	cmd := exec.Command("tmux", "list-panes", "-a", "-F", "#{pane_id}")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w: %s", err, strings.TrimSpace(out.String()))
	}
	panes := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			panes[line] = true
		}
	}
	return panes, nil
}
