package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/928799934/go-pngme/internal/command"
	"github.com/928799934/go-pngme/internal/config"
	"github.com/928799934/go-pngme/internal/logger"
	"github.com/928799934/go-pngme/internal/render"
)

type app struct {
	stdout, stderr io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	runner *command.Runner
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "pngme",
		Short: "Hide messages in PNG files",
		Long: `pngme stores text messages in PNG ancillary chunks and reads them back.

Chunk types are four ASCII letters. Use a lowercase first letter so that
image viewers ignore the chunk, for example "ruSt".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	a.addFlags(root.PersistentFlags())

	root.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.removeCmd(),
		a.printCmd(),
		a.inspectCmd(),
	)
	return root
}

func (a *app) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvPath+" or the user config dir)")
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "log each step to stderr")
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.verbose || cfg.Verbose {
		logger.SetLogger(logger.NewWriterLogger(a.stderr, "pngme: "))
	} else {
		logger.SetLogger(&logger.NoopLogger{})
	}
	a.runner = command.NewRunner(a.stdout, cfg.FileMode)
	return nil
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <file_path> <chunk_type> <message> [output_path]",
		Short: "Append a chunk holding a message",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ea := command.EncodeArgs{
				FilePath:  args[0],
				ChunkType: args[1],
				Message:   args[2],
			}
			if len(args) == 4 {
				ea.OutputPath = args[3]
			}
			return a.runner.Encode(ea)
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file_path> <chunk_type>",
		Short: "Print the message in the first chunk of a type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner.Decode(command.DecodeArgs{FilePath: args[0], ChunkType: args[1]})
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file_path> <chunk_type>",
		Short: "Remove the first chunk of a type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner.Remove(command.RemoveArgs{FilePath: args[0], ChunkType: args[1]})
		},
	}
}

func (a *app) printCmd() *cobra.Command {
	var skipBinary bool
	cmd := &cobra.Command{
		Use:   "print <file_path>",
		Short: "Print the data of every chunk as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner.Print(command.PrintArgs{
				FilePath:   args[0],
				SkipBinary: skipBinary || a.cfg.SkipBinary,
			})
		},
	}
	cmd.Flags().BoolVar(&skipBinary, "skip-binary", false, "skip chunks whose data is not UTF-8")
	return cmd
}

func (a *app) inspectCmd() *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "inspect <file_path>",
		Short: "List every chunk with its length, CRC and properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := a.cfg.Color
			if cmd.Flags().Changed("color") {
				mode = color
			}
			switch mode {
			case config.ColorAuto, config.ColorAlways, config.ColorNever:
			default:
				return fmt.Errorf("invalid --color %q: want auto, always or never", mode)
			}
			return a.runner.Inspect(command.InspectArgs{
				FilePath: args[0],
				Color:    render.ColorEnabled(mode, a.stdout),
			})
		},
	}
	cmd.Flags().StringVar(&color, "color", config.ColorAuto, "color output: auto, always or never")
	return cmd
}
