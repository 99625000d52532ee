// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - line-mode chat over the same session controller as the TUI.
//
// Interactive commands:
//
//	/model [name]   Show or switch model
//	/models         List known models
//	/clear          Clear the conversation
//	/history        Show the conversation
//	/export [fmt]   Save the conversation (md or json)
//	/help           Show commands
//	/quit           Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/convospace/internal/config"
	"github.com/jeranaias/convospace/internal/export"
	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/session"
	"github.com/jeranaias/convospace/internal/ui/components"
)

// errQuit ends the REPL loop normally.
var errQuit = errors.New("quit")

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads one line of input after printing prompt.
type LineReader interface {
	ReadInput(prompt string) (string, error)
}

// ChatCLI provides input history and line editing for the line-mode chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI and loads the saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation. Non-blank lines are
// added to the history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// Repl drives a session.Controller from line input.
type Repl struct {
	ctrl  *session.Controller
	in    LineReader
	out   io.Writer
	quiet bool

	// exportDir receives /export output.
	exportDir string

	// render formats assistant replies for display.
	render func(string) string
}

// NewRepl creates a REPL that renders replies as plain text.
func NewRepl(ctrl *session.Controller, in LineReader, out io.Writer, quiet bool) *Repl {
	return &Repl{
		ctrl:      ctrl,
		in:        in,
		out:       out,
		quiet:     quiet,
		exportDir: ".",
		render:    func(s string) string { return s },
	}
}

// HandleChatCommand runs the line-mode chat until /quit, ctrl+c or EOF.
func HandleChatCommand(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	ctrl := session.NewController(session.Options{
		APIKey:     cfg.API.Key,
		ReplyDelay: cfg.ReplyDelayDuration(),
		Model:      cfg.DefaultModel,
	})
	defer ctrl.Close()

	input := NewChatCLI()
	defer input.Close()

	repl := NewRepl(ctrl, input, os.Stdout, args.Quiet)
	if IsStdoutTTY() {
		repl.render = markdownRenderer(GetTerminalWidth())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return repl.Run(ctx)
}

// markdownRenderer returns a glamour-backed render function, or plain text
// if glamour cannot be initialized.
func markdownRenderer(width int) func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return func(s string) string { return s }
	}
	return func(s string) string {
		out, err := r.Render(s)
		if err != nil {
			return s
		}
		return strings.TrimRight(out, "\n")
	}
}

// Run reads lines until the user quits, input ends or ctx is cancelled.
func (r *Repl) Run(ctx context.Context) error {
	if !r.quiet {
		r.printWelcome()
	}

	for {
		line, err := r.in.ReadInput(PromptStyle.Render("you> "))
		if err != nil {
			// ctrl+c at the prompt, ctrl+d, or closed input
			fmt.Fprintln(r.out)
			r.printGoodbye()
			return nil
		}

		switch err := r.handleLine(ctx, line); {
		case errors.Is(err, errQuit):
			r.printGoodbye()
			return nil
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(r.out, WarningStyle.Render("[Cancelled]"))
			return nil
		case err != nil:
			fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
	}
}

// handleLine dispatches one line of input.
func (r *Repl) handleLine(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "/") {
		return r.handleSlashCommand(trimmed)
	}
	if strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit") {
		return errQuit
	}
	return r.send(ctx, line)
}

// send submits line and blocks until the reply arrives.
func (r *Repl) send(ctx context.Context, line string) error {
	if _, ok := r.ctrl.Submit(line); !ok {
		return errors.New("message not sent")
	}
	if !r.quiet {
		fmt.Fprintln(r.out, DimStyle.Render(components.ThinkingText))
	}

	select {
	case ev, ok := <-r.ctrl.Events():
		if !ok {
			return errQuit
		}
		r.printReply(ev.Message)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (r *Repl) handleSlashCommand(cmd string) error {
	parts := strings.Fields(cmd)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		r.printHelp()
	case "/model", "/m":
		if len(args) == 0 {
			fmt.Fprintln(r.out, renderField("Model:", model.DisplayName(r.ctrl.Model())))
			return nil
		}
		note := r.ctrl.SelectModel(strings.Join(args, " "))
		fmt.Fprintln(r.out, SuccessStyle.Render("[OK]")+" "+note)
	case "/models":
		r.printModels()
	case "/clear", "/c":
		r.ctrl.Reset()
		fmt.Fprintln(r.out, SuccessStyle.Render("[Conversation cleared]"))
	case "/history":
		r.printHistory()
	case "/export":
		format := "md"
		if len(args) > 0 {
			format = args[0]
		}
		return r.exportHistory(format)
	case "/quit", "/q", "/exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
	return nil
}

// =============================================================================
// DISPLAY
// =============================================================================

func (r *Repl) printWelcome() {
	fmt.Fprintln(r.out, TitleStyle.Render(components.LandingTitle))
	fmt.Fprintln(r.out, RenderSeparator(30))
	fmt.Fprintln(r.out, renderField("Model:", model.DisplayName(r.ctrl.Model())))
	fmt.Fprintln(r.out, renderField("Reply delay:", r.ctrl.ReplyDelay().String()))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, DimStyle.Render("Type a message and press Enter. Commands: /help, /quit"))
	fmt.Fprintln(r.out)
}

func (r *Repl) printHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/model [name]", "Show or switch model"},
		{"/models", "List known models"},
		{"/clear", "Clear the conversation"},
		{"/history", "Show the conversation"},
		{"/export [md|json]", "Save the conversation to a file"},
		{"/help", "Show this help"},
		{"/quit", "Exit"},
	}

	fmt.Fprintln(r.out, TitleStyle.Render("Available Commands"))
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s  %s\n",
			SuccessStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			DimStyle.Render(c.desc))
	}
	fmt.Fprintln(r.out, DimStyle.Render("Ctrl+C or Ctrl+D exits"))
}

func (r *Repl) printModels() {
	current := r.ctrl.Model()
	for _, m := range model.Models() {
		marker := "  "
		if m.ID == current {
			marker = "* "
		}
		fmt.Fprintf(r.out, "%s%-10s %s %s\n", marker, m.ID, m.Name, DimStyle.Render("("+m.Provider+")"))
	}
}

func (r *Repl) printHistory() {
	msgs := r.ctrl.Messages()
	if len(msgs) == 0 {
		fmt.Fprintln(r.out, DimStyle.Render("[No messages yet]"))
		return
	}
	for i, msg := range msgs {
		content := strings.ReplaceAll(msg.Preview(100), "\n", " ")
		fmt.Fprintf(r.out, "  %d. %s: %s\n", i+1, r.roleLabel(msg.Role), content)
	}
}

func (r *Repl) exportHistory(format string) error {
	if r.ctrl.Len() == 0 {
		fmt.Fprintln(r.out, DimStyle.Render("[No messages yet]"))
		return nil
	}
	t := export.NewTranscript(r.ctrl.Model(), r.ctrl.Messages())
	path, err := export.ExportFormat(t, format, &export.Options{
		OutputDir:         r.exportDir,
		IncludeTimestamps: true,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s exported to %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

func (r *Repl) printReply(msg model.Message) {
	fmt.Fprintln(r.out, r.roleLabel(msg.Role)+":")
	fmt.Fprintln(r.out, r.render(msg.Content))
	fmt.Fprintln(r.out)
}

func (r *Repl) roleLabel(role model.Role) string {
	if role == model.RoleUser {
		return UserStyle.Render(role.DisplayName())
	}
	return AssistantStyle.Render(role.DisplayName())
}

func (r *Repl) printGoodbye() {
	fmt.Fprintln(r.out, DimStyle.Render("Goodbye!"))
}
