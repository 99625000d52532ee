// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/convospace/internal/session"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{name: "no args", argv: nil, wantCmd: CmdTUI},
		{name: "tui", argv: []string{"tui"}, wantCmd: CmdTUI},
		{name: "chat", argv: []string{"chat"}, wantCmd: CmdChat},
		{name: "command is case-insensitive", argv: []string{"CHAT"}, wantCmd: CmdChat},
		{name: "version", argv: []string{"version"}, wantCmd: CmdVersion},
		{name: "version flag", argv: []string{"-v"}, wantCmd: CmdVersion},
		{name: "help", argv: []string{"help"}, wantCmd: CmdHelp},
		{name: "help flag wins", argv: []string{"chat", "--help"}, wantCmd: CmdHelp},
		{
			name:    "config default subcommand",
			argv:    []string{"config"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				require.Empty(t, a.Subcommand)
			},
		},
		{
			name:    "config path",
			argv:    []string{"config", "path"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "path", a.Subcommand)
			},
		},
		{
			name:    "flags before command",
			argv:    []string{"--model", "llama-3", "--delay", "2s", "-q", "chat"},
			wantCmd: CmdChat,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "llama-3", a.Model)
				require.Equal(t, "2s", a.Delay)
				require.True(t, a.Quiet)
			},
		},
		{
			name:    "equals form after command",
			argv:    []string{"chat", "--model=mistral", "--delay=250ms"},
			wantCmd: CmdChat,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "mistral", a.Model)
				require.Equal(t, "250ms", a.Delay)
			},
		},
		{
			name:    "unknown command",
			argv:    []string{"frobnicate", "x"},
			wantCmd: CmdUnknown,
			check: func(t *testing.T, a Args) {
				require.Equal(t, []string{"frobnicate", "x"}, a.Raw)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			require.Equal(t, tt.wantCmd, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

// =============================================================================
// REPL
// =============================================================================

// scriptReader feeds fixed lines, then reports EOF.
type scriptReader struct {
	lines []string
}

func (s *scriptReader) ReadInput(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newTestRepl(t *testing.T, delay time.Duration, lines ...string) (*Repl, *session.Controller, *bytes.Buffer) {
	t.Helper()
	ctrl := session.NewController(session.Options{ReplyDelay: delay})
	t.Cleanup(ctrl.Close)

	var out bytes.Buffer
	return NewRepl(ctrl, &scriptReader{lines: lines}, &out, true), ctrl, &out
}

func TestReplConversation(t *testing.T) {
	repl, ctrl, out := newTestRepl(t, 10*time.Millisecond,
		"Hello",
		"   ",
		"/history",
		"/quit",
		"never read",
	)

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	require.Contains(t, text, "API Key used: Missing.")
	require.Contains(t, text, "1. You: Hello")
	require.Contains(t, text, "2. AI: API Key used: Missing.")
	require.Contains(t, text, "Goodbye!")
	require.Equal(t, 2, ctrl.Len(), "blank line must not be sent")
}

func TestReplSlashCommands(t *testing.T) {
	repl, ctrl, out := newTestRepl(t, 10*time.Millisecond,
		"/model",
		"/model claude-3",
		"/models",
		"Hi",
		"/clear",
		"/history",
		"/bogus",
	)

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	require.Contains(t, text, "GPT-4o")
	require.Contains(t, text, "Switched to claude-3 model")
	require.Contains(t, text, "* claude-3")
	require.Contains(t, text, "[Conversation cleared]")
	require.Contains(t, text, "[No messages yet]")
	require.Contains(t, text, "unknown command: /bogus")
	require.Equal(t, "claude-3", ctrl.Model())
	require.Zero(t, ctrl.Len())
}

func TestReplExport(t *testing.T) {
	repl, _, out := newTestRepl(t, 10*time.Millisecond,
		"/export",
		"Hello",
		"/export json",
		"/export pdf",
	)
	repl.exportDir = t.TempDir()

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	require.Contains(t, text, "[No messages yet]")
	require.Contains(t, text, "unsupported export format: pdf")

	files, err := filepath.Glob(filepath.Join(repl.exportDir, "conversation_Hello_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Contains(t, text, files[0])
}

func TestReplExitWord(t *testing.T) {
	repl, ctrl, _ := newTestRepl(t, 10*time.Millisecond, "exit", "Hello")
	require.NoError(t, repl.Run(context.Background()))
	require.Zero(t, ctrl.Len())
}

func TestReplCancelWhileWaiting(t *testing.T) {
	repl, ctrl, out := newTestRepl(t, time.Hour, "Hello")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, repl.Run(ctx))
	require.Contains(t, out.String(), "[Cancelled]")
	require.Equal(t, 1, ctrl.Len())
}

func TestReplRendersReplies(t *testing.T) {
	repl, _, out := newTestRepl(t, 10*time.Millisecond, "Hello")
	repl.render = strings.ToUpper

	require.NoError(t, repl.Run(context.Background()))
	require.Contains(t, out.String(), "API KEY USED: MISSING.")
}

func TestReplWelcome(t *testing.T) {
	repl, _, out := newTestRepl(t, 10*time.Millisecond)
	repl.quiet = false

	require.NoError(t, repl.Run(context.Background()))
	require.Contains(t, out.String(), "AI Conversation Space")
	require.Contains(t, out.String(), "GPT-4o")
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// isolateConfig points the config directory at a temp HOME and clears
// every override.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"CONVOSPACE_API_KEY", "CONVOSPACE_MODEL", "CONVOSPACE_REPLY_DELAY",
		"CONVOSPACE_THEME", "CONVOSPACE_DEBUG_LOG",
	} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadConfigFlags(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig(Args{Model: "llama-3", Delay: "2s"})
	require.NoError(t, err)
	require.Equal(t, "llama-3", cfg.DefaultModel)
	require.Equal(t, 2*time.Second, cfg.ReplyDelayDuration())

	_, err = LoadConfig(Args{Model: "nope"})
	require.Error(t, err)

	_, err = LoadConfig(Args{Delay: "-1s"})
	require.Error(t, err)
}

func TestConfigInitShowPath(t *testing.T) {
	home := isolateConfig(t)
	wantPath := filepath.Join(home, ".convospace", "config.toml")

	var out bytes.Buffer
	require.NoError(t, HandleConfigCommand(Args{Subcommand: "path"}, &out))
	require.Contains(t, out.String(), wantPath)
	require.Contains(t, out.String(), "does not exist")

	out.Reset()
	require.NoError(t, HandleConfigCommand(Args{Subcommand: "init"}, &out))
	require.FileExists(t, wantPath)

	require.Error(t, HandleConfigCommand(Args{Subcommand: "init"}, &out), "init must not overwrite")

	out.Reset()
	require.NoError(t, HandleConfigCommand(Args{Subcommand: "path"}, &out))
	require.NotContains(t, out.String(), "does not exist")

	out.Reset()
	require.NoError(t, HandleConfigCommand(Args{}, &out))
	require.Contains(t, out.String(), "gpt-4o")
	require.Contains(t, out.String(), "(not set)")

	require.Error(t, HandleConfigCommand(Args{Subcommand: "bogus"}, &out))
}

func TestConfigShowMasksKey(t *testing.T) {
	isolateConfig(t)
	t.Setenv("CONVOSPACE_API_KEY", "sk-abcdef1234")

	var out bytes.Buffer
	require.NoError(t, HandleConfigCommand(Args{Subcommand: "show"}, &out))
	require.Contains(t, out.String(), "****1234")
	require.NotContains(t, out.String(), "sk-abcdef1234")
}

func TestMaskAPIKey(t *testing.T) {
	require.Equal(t, "(not set)", maskAPIKey(""))
	require.Equal(t, "****", maskAPIKey("abc"))
	require.Equal(t, "****wxyz", maskAPIKey("sk-wxyz"))
}
