package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so the logger writes to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true, Prefix: "qcanvas"})

	store, err := OpenSQLiteStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	library := NewLibrary(store)
	prefs, err := library.LoadPreferences()
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "err", err)
	}
	if prefs.Theme == "" {
		prefs.Theme = cfg.Theme
	}
	applyTheme(prefs.Theme)
	logger.Info("starting", "qubits", cfg.NumQubits, "shots", prefs.Shots, "db", cfg.DBPath)

	m := initialModel(cfg, library, prefs, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("tui exited", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
