// convospace - a terminal chat playground with a simulated AI assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/convospace/internal/cli"
	"github.com/jeranaias/convospace/internal/session"
	"github.com/jeranaias/convospace/internal/ui/chat"
	"github.com/jeranaias/convospace/internal/ui/components"
	"github.com/jeranaias/convospace/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(args))
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	case cli.CmdUnknown:
		cli.HandleUnknown(args)
	default:
		os.Exit(runTUI(args))
	}
}

// runTUI starts the full-screen interface and returns the exit status.
// It returns instead of exiting so deferred cleanup always runs.
func runTUI(args cli.Args) int {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Chat.DebugLog != "" {
		f, err := tea.LogToFile(cfg.Chat.DebugLog, "convospace")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = log.Default()
	}

	ctrl := session.NewController(session.Options{
		APIKey:     cfg.API.Key,
		ReplyDelay: cfg.ReplyDelayDuration(),
		Model:      cfg.DefaultModel,
		Logger:     logger,
	})
	defer ctrl.Close()

	m := NewModel(styles.NewTheme(cfg.UI.Theme), ctrl, chat.Options{
		ShowTimestamps: cfg.UI.ShowTimestamps,
		Logger:         logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running convospace: %v\n", err)
		return 1
	}
	return 0
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the current application screen.
type State int

const (
	StateLanding State = iota // Landing screen
	StateChat                 // Chat view
)

// Model is the root Bubble Tea model. It switches between the landing
// screen and the chat view; the chat view keeps its session across switches.
type Model struct {
	state   State
	landing components.Landing
	chat    chat.Model
	width   int
	height  int
}

// NewModel creates the root model on the landing screen.
func NewModel(theme *styles.Theme, ctrl *session.Controller, opts chat.Options) *Model {
	return &Model{
		state:   StateLanding,
		landing: components.NewLanding(theme),
		chat:    chat.New(ctrl, theme, opts),
	}
}

// State returns the active screen.
func (m *Model) State() State {
	return m.state
}

// Init initializes both screens. The chat view starts listening for replies
// right away so none are missed while the landing screen is shown.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.landing.Init(),
		m.chat.Init(),
	)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.landing.SetSize(msg.Width, msg.Height)
		return m, m.updateChat(msg)

	case components.StartChatMsg:
		m.state = StateChat
		return m, nil

	case chat.BackToLandingMsg:
		m.state = StateLanding
		return m, nil

	case tea.KeyMsg:
		if m.state == StateLanding {
			var cmd tea.Cmd
			m.landing, cmd = m.landing.Update(msg)
			return m, cmd
		}
		return m, m.updateChat(msg)
	}

	// Everything else (replies, ticks) belongs to the chat view, whichever
	// screen is showing.
	return m, m.updateChat(msg)
}

func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	newChat, cmd := m.chat.Update(msg)
	m.chat = newChat.(chat.Model)
	return cmd
}

// View renders the current state.
func (m *Model) View() string {
	switch m.state {
	case StateChat:
		return m.chat.View()
	default:
		return m.landing.View()
	}
}
