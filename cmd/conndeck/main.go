package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"conndeck/internal/session"
	"conndeck/internal/telemetry"
	"conndeck/internal/tmux"
	"conndeck/internal/ui"
)

func main() {
	ctx := context.Background()

	tel, err := telemetry.Setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry setup: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tel.Shutdown(shutdownCtx)
	}()

	// tmux pane liveness feeds session pruning; without tmux only local
	// sessions are available and pruning is a no-op.
	var liveness session.LivenessChecker
	if tmux.InsideTmux() {
		liveness = tmux.ListPaneIDs
	}
	sessions := session.New(liveness)

	model := ui.NewAppModel(sessions, tel).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
