package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/agusx1211/glean/internal/chunk"
	"github.com/agusx1211/glean/internal/collect"
	"github.com/agusx1211/glean/internal/logging"
	"github.com/agusx1211/glean/internal/paths"
	"github.com/agusx1211/glean/internal/render"
	"github.com/agusx1211/glean/internal/transport"
)

var version = "dev"

type cliOptions struct {
	files          []string
	exclude        []string
	maxClipLength  int
	followSymlinks bool
	encoding       string
	debug          bool
	minifyPython   bool
	truncate       bool
	maxLength      int
	overrides      []string
	verbose        bool

	gitignore        bool
	profile          string
	printOutput      bool
	copyOutput       bool
	sshCopyOutput    bool
	setDefaultOutput string
	tcount           bool
	tcountModel      string
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glean [patterns...]",
		Short: "Glean gathers project files into one markdown document",
		Long: `Glean collects files and directories matched by glob patterns into a
single markdown document, one fenced section per file, and copies it to the
clipboard in labelled sections.

Words can optionally be truncated to the shortest length that keeps every
distinct word in the corpus distinguishable.

Examples:
  glean -f "src/**/*.go" -e vendor
  glean -f . -t -o "*.py:5" --print
  glean -f docs -m -v --ssh-copy`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.files, "files", "f", nil, "Files or directories to process (supports ** wildcards, repeatable)")
	f.StringArrayVarP(&opts.exclude, "exclude", "e", nil, "Additional exclusion pattern, matched anywhere in the path (repeatable)")
	f.IntVarP(&opts.maxClipLength, "max-clip-length", "x", chunk.DefaultMaxLength, "Maximum clipboard chunk length in characters")
	f.BoolVarP(&opts.followSymlinks, "follow-symlinks", "s", false, "Follow symbolic links to directories")
	f.StringVarP(&opts.encoding, "encoding", "c", "utf-8", "Default encoding when detection is not confident")
	f.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	f.BoolVarP(&opts.minifyPython, "minify-python", "m", false, "Strip comments and blank lines from Python files")
	f.BoolVarP(&opts.truncate, "truncate", "t", false, "Truncate words to the shortest length that keeps them distinct")
	f.IntVarP(&opts.maxLength, "max-length", "l", render.DefaultMaxLength, "Max word length considered for truncation")
	f.StringArrayVarP(&opts.overrides, "override-max-length", "o", nil, "PATTERN:LENGTH truncation override matched on the file name (repeatable)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Info-level logs plus a parameter preamble and summary in the output")

	f.BoolVar(&opts.gitignore, "gitignore", false, "Also exclude files ignored by ./.gitignore")
	f.StringVar(&opts.profile, "profile", "", "Profile from the .glean file to apply")
	f.BoolVar(&opts.printOutput, "print", false, "Print the document to stdout")
	f.BoolVar(&opts.copyOutput, "copy", false, "Copy the document to the system clipboard")
	f.BoolVar(&opts.sshCopyOutput, "ssh-copy", false, "Copy the document through the terminal (OSC 52), works over SSH")
	f.StringVar(&opts.setDefaultOutput, "set-default-output", "", "Persist the default output mode (print, copy, ssh-copy) in ~/.glean")
	f.BoolVar(&opts.tcount, "tcount", false, "Print a token count report instead of the document")
	f.StringVar(&opts.tcountModel, "tcount-model", defaultTokenModel, "Model whose tokenizer --tcount uses")

	return cmd
}

func run(cmd *cobra.Command, opts *cliOptions, args []string) error {
	start := time.Now()

	logger, err := logging.New(logging.LevelFromFlags(opts.verbose, opts.debug), version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer syncLogger(logger)

	if opts.setDefaultOutput != "" {
		path, err := writeHomeDefaultOutputMode(opts.setDefaultOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Default output mode set to %s in %s\n", opts.setDefaultOutput, path)
		if len(opts.files)+len(args) == 0 {
			return nil
		}
	}

	mode, err := selectOutputMode(opts, logger)
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	settings, err := readGleanFile(filepath.Join(wd, gleanFileName), opts.profile)
	if err != nil {
		return err
	}
	if opts.profile != "" && settings.profile != opts.profile {
		logger.Warn("Profile not found in config file",
			zap.String("profile", opts.profile),
			zap.Bool("hasProfiles", settings.hasProfiles),
			zap.String("applied", settings.profile))
	}

	runOpts, err := buildRunOptions(cmd, opts, args, settings, wd)
	if err != nil {
		return err
	}

	res, err := collect.Run(runOpts, logger)
	if err != nil {
		if errors.Is(err, paths.ErrNoPaths) {
			logger.Error("No files matched the provided patterns")
		}
		return err
	}
	text := res.Document.String()

	switch {
	case opts.tcount:
		counter, err := newTiktokenCounter(opts.tcountModel)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), buildTokenReport(text, res.Document.Spans(), opts.tcountModel, counter))
	case strings.TrimSpace(text) == "":
		logger.Info("No content generated after processing")
	default:
		deliver(cmd.OutOrStdout(), text, mode, opts.maxClipLength, logger)
	}

	logger.Info("Completed", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// buildRunOptions merges flags with the .glean settings. Explicit flags win
// over the config file, which wins over built-in defaults. A non-positive
// max length is passed on; the solver then finds no width and warns.
func buildRunOptions(cmd *cobra.Command, opts *cliOptions, args []string, settings *gleanSettings, wd string) (collect.Options, error) {
	flags := cmd.Flags()

	maxLength := opts.maxLength
	if !flags.Changed("max-length") && settings.maxLength > 0 {
		maxLength = settings.maxLength
	}
	if opts.maxClipLength <= 0 {
		return collect.Options{}, fmt.Errorf("--max-clip-length: %w", chunk.ErrInvalidLength)
	}

	enc := opts.encoding
	if !flags.Changed("encoding") && settings.encoding != "" {
		enc = settings.encoding
	}

	patterns := append(append([]string{}, opts.files...), args...)
	excludes := append(append([]string{}, settings.exclude...), opts.exclude...)
	// first matching override wins, so flags go first
	overrides := append(append([]string{}, opts.overrides...), settings.overrides...)

	return collect.Options{
		Patterns:       patterns,
		Excludes:       excludes,
		GitIgnore:      opts.gitignore,
		FollowSymlinks: opts.followSymlinks,
		Encoding:       enc,
		Truncate:       opts.truncate,
		MaxLength:      maxLength,
		Overrides:      overrides,
		MinifyPython:   opts.minifyPython,
		Verbose:        opts.verbose,
		WorkDir:        wd,
		Tool:           "glean",
		Args:           os.Args[1:],
	}, nil
}

func selectOutputMode(opts *cliOptions, logger *zap.Logger) (string, error) {
	homeMode, err := readHomeDefaultOutputMode()
	if err != nil {
		logger.Warn("Ignoring default output mode", zap.Error(err))
		homeMode = ""
	}
	return resolveOutputMode(homeMode, opts.printOutput, opts.copyOutput, opts.sshCopyOutput)
}

// deliver hands the document to the selected sink. Transport failures are
// logged only; if no clipboard exists at all the document is printed.
func deliver(stdout io.Writer, text, mode string, maxClipLength int, logger *zap.Logger) {
	if mode == outputModePrint {
		if err := (transport.WriterSink{W: stdout}).Write(text); err != nil {
			logger.Error("Failed to write output", zap.Error(err))
		}
		return
	}

	chunks, err := chunk.Split(text, maxClipLength)
	if err != nil {
		logger.Error("Failed to split output", zap.Error(err))
		return
	}

	var sink transport.Sink = transport.NewClipboardSink()
	if mode == outputModeSSHCopy {
		sink = transport.NewOSC52Sink()
	}

	delivered, err := transport.Deliver(chunks, sink, transport.NewPacer(os.Stdin, os.Stderr), logger)
	if err != nil && delivered == 0 && errors.Is(err, transport.ErrNoClipboard) {
		logger.Warn("Clipboard copying not supported, printing instead", zap.Error(err))
		if err := (transport.WriterSink{W: stdout}).Write(text); err != nil {
			logger.Error("Failed to write output", zap.Error(err))
		}
	}
}

// syncLogger flushes the logger when stderr can be synced. Terminals and
// pipes report "invalid argument" on sync, which is not worth surfacing.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", err)
		}
	}
}

func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func main() {
	if err := newRootCmd(&cliOptions{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
