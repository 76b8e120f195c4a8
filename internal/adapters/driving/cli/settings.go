package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the parse mode, parser limits, export options,
and HTTP API settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode <mode>",
	Short: "Set the default parse mode",
	Long: `Set the parse mode used when --mode is not given.

Available modes:
  headings   - A cell starts at every markdown heading
  paragraphs - A cell is a block separated by two or more blank lines`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsMode,
}

var settingsLimitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Set parser safety limits",
	Long: `Set the limits that bound the work done on one document. Only the
flags given are changed.`,
	Args: cobra.NoArgs,
	RunE: runSettingsLimits,
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Set export options",
	Long: `Set where annotated exports are written and whether they are
compressed with xz. Only the flags given are changed.`,
	Args: cobra.NoArgs,
	RunE: runSettingsExport,
}

func init() {
	settingsLimitsCmd.Flags().Int("max-bytes", 0, "documents larger than this become one preview cell")
	settingsLimitsCmd.Flags().Int("max-lines", 0, "lines segmented before the rest is dropped")
	settingsLimitsCmd.Flags().Int("max-cells", 0, "cells kept per document")
	settingsLimitsCmd.Flags().Int("preview-bytes", 0, "content kept in the preview cell")

	settingsExportCmd.Flags().Bool("compress", false, "write exports as .xz files")
	settingsExportCmd.Flags().String("dir", "", "directory for exports (empty = beside the document)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsLimitsCmd)
	settingsCmd.AddCommand(settingsExportCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettingsService() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Parser]")
	cmd.Printf("  Mode:          %s\n", settings.Parser.Mode)
	cmd.Printf("                 %s\n", settings.Parser.Mode.Description())
	cmd.Printf("  Max bytes:     %d\n", settings.Parser.Limits.MaxBytes)
	cmd.Printf("  Max lines:     %d\n", settings.Parser.Limits.MaxLines)
	cmd.Printf("  Max cells:     %d\n", settings.Parser.Limits.MaxCells)
	cmd.Printf("  Preview bytes: %d\n", settings.Parser.Limits.PreviewBytes)
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Compress:      %t\n", settings.Export.Compress)
	dir := settings.Export.Directory
	if dir == "" {
		dir = "(beside the document)"
	}
	cmd.Printf("  Directory:     %s\n", dir)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address:       %s\n", settings.Server.Addr)
	cmd.Printf("  Rate limit:    %g/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	mode, err := domain.ParseParseMode(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetDefaultMode(mode); err != nil {
		return fmt.Errorf("failed to save mode: %w", err)
	}

	cmd.Printf("Default parse mode set to %s\n", mode)
	return nil
}

func runSettingsLimits(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	limits := settings.Parser.Limits
	flags := map[string]*int{
		"max-bytes":     &limits.MaxBytes,
		"max-lines":     &limits.MaxLines,
		"max-cells":     &limits.MaxCells,
		"preview-bytes": &limits.PreviewBytes,
	}
	changed := false
	for name, field := range flags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetInt(name)
		if err != nil {
			return fmt.Errorf("getting %s flag: %w", name, err)
		}
		*field = v
		changed = true
	}
	if !changed {
		return errors.New("no limits given; use --max-bytes, --max-lines, --max-cells or --preview-bytes")
	}

	if err := settingsService.SetLimits(limits); err != nil {
		return fmt.Errorf("failed to save limits: %w", err)
	}

	cmd.Printf("Limits: %d bytes, %d lines, %d cells, %d preview bytes\n",
		limits.MaxBytes, limits.MaxLines, limits.MaxCells, limits.PreviewBytes)
	return nil
}

func runSettingsExport(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	export := settings.Export
	if cmd.Flags().Changed("compress") {
		if export.Compress, err = cmd.Flags().GetBool("compress"); err != nil {
			return fmt.Errorf("getting compress flag: %w", err)
		}
	}
	if cmd.Flags().Changed("dir") {
		if export.Directory, err = cmd.Flags().GetString("dir"); err != nil {
			return fmt.Errorf("getting dir flag: %w", err)
		}
	}

	if err := settingsService.SetExport(export); err != nil {
		return fmt.Errorf("failed to save export settings: %w", err)
	}

	cmd.Printf("Export compression: %t\n", export.Compress)
	if export.Directory != "" {
		cmd.Printf("Export directory:   %s\n", export.Directory)
	}
	return nil
}
