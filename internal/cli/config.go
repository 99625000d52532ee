// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jeranaias/convospace/internal/config"
)

// LoadConfig loads the configuration, applies the --model and --delay
// overrides and validates the result.
func LoadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if args.Model != "" {
		cfg.DefaultModel = args.Model
	}
	if args.Delay != "" {
		cfg.Chat.ReplyDelay = args.Delay
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

// HandleConfigCommand runs "config show", "config path" or "config init",
// writing to w.
func HandleConfigCommand(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return showConfig(args, w)
	case "path":
		return showConfigPath(w)
	case "init":
		return initConfig(w)
	default:
		return fmt.Errorf("unknown config subcommand: %s", args.Subcommand)
	}
}

func showConfig(args Args, w io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, TitleStyle.Render("Configuration"))
	fmt.Fprintln(w, RenderSeparator(30))
	fmt.Fprintln(w, renderField("Model:", cfg.DefaultModel))
	fmt.Fprintln(w, renderField("Reply delay:", cfg.ReplyDelayDuration().String()))
	fmt.Fprintln(w, renderField("API key:", maskAPIKey(cfg.API.Key)))
	fmt.Fprintln(w, renderField("Theme:", cfg.UI.Theme))
	fmt.Fprintln(w, renderField("Timestamps:", strconv.FormatBool(cfg.UI.ShowTimestamps)))
	if cfg.Chat.DebugLog != "" {
		fmt.Fprintln(w, renderField("Debug log:", cfg.Chat.DebugLog))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, DimStyle.Render("Config file: "+path))
	return nil
}

func showConfigPath(w io.Writer) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(w, DimStyle.Render("(file does not exist; run 'convospace config init')"))
	}
	return nil
}

// initConfig writes the defaults. An existing file is left alone.
func initConfig(w io.Writer) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := config.Save(config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

// maskAPIKey hides all but the last four characters.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}
