// Package cli is the headless front-end. It drives the same catalog,
// download coordinator, poller and assembler as the desktop app, with a
// scheduler.Loop standing in for the UI thread.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/tubefx/internal/catalog"
	"github.com/ytget/tubefx/internal/config"
)

// Options are the command line flags
type Options struct {
	Resolution  string
	Bitrate     string
	Output      string
	List        bool
	CheckFFmpeg bool
	FFmpegPath  string
	LogLevel    string
	TempDir     string
	EnvFile     string
	JobProgress bool
}

// Deps replaces production collaborators in tests. Nil fields get the real
// YouTube extractor and playlist resolver.
type Deps struct {
	Extractor catalog.Extractor
	Playlists catalog.PlaylistResolver
}

// NewRootCommand builds the tubefx command
func NewRootCommand(version string, deps Deps) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "tubefx [url]",
		Short:         "Download the video and audio streams of a YouTube video and join them with ffmpeg",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(opts.EnvFile); err != nil {
				return err
			}
			env := config.FromEnv()
			applyEnv(cmd, opts, env)
			if err := (config.Env{LogLevel: opts.LogLevel, TempDir: opts.TempDir}).Validate(); err != nil {
				return err
			}

			r, err := newRunner(opts, deps, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer r.close()

			if opts.CheckFFmpeg {
				return r.checkFFmpeg(cmd.Context())
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return r.run(cmd.Context(), args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Resolution, "resolution", "r", "", `video label, e.g. "720p @ 30fps" or "None" (default: highest)`)
	flags.StringVarP(&opts.Bitrate, "bitrate", "b", "", `audio label, e.g. "128kbps" or "None" (default: highest)`)
	flags.StringVarP(&opts.Output, "output", "o", "", "output file (default: <title>.mp4 or <title>.m4a)")
	flags.BoolVarP(&opts.List, "list", "l", false, "list the available labels and exit")
	flags.BoolVar(&opts.CheckFFmpeg, "check-ffmpeg", false, "check that ffmpeg runs and exit")
	flags.StringVar(&opts.FFmpegPath, "ffmpeg", "", "ffmpeg executable (env "+config.EnvFFmpegPath+")")
	flags.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error (env "+config.EnvLogLevel+")")
	flags.StringVar(&opts.TempDir, "temp-dir", "", "parent of the per download temp directories (env "+config.EnvTempDir+")")
	flags.StringVar(&opts.EnvFile, "env-file", config.DefaultEnvFile, "dotenv file to load")
	flags.BoolVar(&opts.JobProgress, "job-progress", false, "report progress over both tracks instead of per track")

	return cmd
}

// applyEnv fills the flags the user did not set from the environment
func applyEnv(cmd *cobra.Command, opts *Options, env config.Env) {
	flags := cmd.Flags()
	if !flags.Changed("ffmpeg") {
		opts.FFmpegPath = env.FFmpegPath
	}
	if !flags.Changed("log-level") {
		opts.LogLevel = env.LogLevel
	}
	if !flags.Changed("temp-dir") {
		opts.TempDir = env.TempDir
	}
}

// Execute runs the command and prints a failure in red
func Execute(ctx context.Context, version string) int {
	cmd := NewRootCommand(version, Deps{})
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}
