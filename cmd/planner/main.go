package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"dayplan/internal/client"
	"dayplan/internal/model"
	"dayplan/internal/repository"
	"dayplan/internal/service"
	"dayplan/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("planner %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if os.Getenv("DEBUG") != "" {
		f, err := tea.LogToFile("dayplan_debug.log", "debug")
		if err == nil {
			defer f.Close()
		}
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening planner store: %v\n", err)
		os.Exit(1)
	}

	app := ui.NewApp(store)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running planner: %v\n", err)
		os.Exit(1)
	}
}

// openStore connects to the daemon named by PLANNER_URL, falling back to a
// local SQLite-backed document when the variable is unset.
func openStore() (ui.Store, error) {
	if url := strings.TrimSpace(os.Getenv("PLANNER_URL")); url != "" {
		return client.New(url), nil
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	db, err := repository.NewDB(dsn)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "planner"})
	logger.SetLevel(log.ErrorLevel) // the TUI owns the terminal

	repo := repository.NewDocumentRepository(db, model.DocumentKey)
	return service.NewPlannerService(repo, logger), nil
}
