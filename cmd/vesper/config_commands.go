package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vesper/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}
			if err := config.WriteSample(target); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set drive.root_folder_id and the OAUTH_* environment variables before rendering.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(cmd.Flag("config").Value.String()))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults plus environment were used")
			}
			credentials := "not set"
			if cfg.ValidateCredentials() == nil {
				credentials = "set"
			}
			rows := [][]string{
				{"work_dir", cfg.WorkDir()},
				{"log_dir", cfg.LogDir()},
				{"root_folder_id", cfg.Drive.RootFolderID},
				{"oauth credentials", credentials},
				{"horizon_hours", fmt.Sprint(cfg.Render.HorizonHours)},
				{"target_duration_seconds", fmt.Sprint(cfg.Render.TargetDurationSeconds)},
				{"image_count", fmt.Sprint(cfg.Render.ImageCount)},
				{"frame_size", fmt.Sprintf("%dx%d@%d", cfg.Render.VideoWidth, cfg.Render.VideoHeight, cfg.Render.FrameRate)},
				{"music_gain", fmt.Sprint(cfg.Render.MusicGain)},
				{"ffmpeg", cfg.Tools.FFmpeg},
				{"ffprobe", cfg.Tools.FFprobe},
				{"log level", cfg.Logging.Level + " (" + cfg.Logging.Format + ")"},
			}
			fmt.Fprintln(out, renderRows(out, []string{"SETTING", "VALUE"}, rows))
			return nil
		},
	}
}
