package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/pitch"
	"pkt.systems/pitch/internal/syntax"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/pitch")
}

func main() {
	var (
		configPath  string
		widthFlag   int
		outPath     string
		logPath     string
		styleName   string
		showVersion bool
	)

	flags := pflag.NewFlagSet("pitch", pflag.ExitOnError)
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file (overrides $"+pitch.ConfigFileEnv+")")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&outPath, "output", "o", "", "Write ANSI output to a file instead of presenting")
	flags.StringVar(&logPath, "log", "", "Log file")
	flags.StringVar(&styleName, "style", "", "Syntax highlighting style")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: pitch [flags] presentation.md\n")
		fmt.Fprintln(os.Stderr, "\nUse \"-\" to read the presentation from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}
	args := flags.Args()
	if len(args) != 1 {
		flags.Usage()
		os.Exit(2)
	}
	input := args[0]

	logger, closeLog, err := buildLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer func() { _ = closeLog.Close() }()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	source, presentationPath, err := readInput(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}

	doc, err := pitch.ParseDocument(source, pitch.ParseOptions{
		FrontMatterDelimiter: cfg.FrontMatterDelimiter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}
	if doc.FrontMatter != nil {
		frag, err := pitch.ParseFragment(doc.FrontMatter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "front matter: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Apply(frag); err != nil {
			fmt.Fprintf(os.Stderr, "front matter: %v\n", err)
			os.Exit(1)
		}
	}

	if presentationPath != "" {
		cfg.Commands.RunInitialize(logger, presentationPath)
	}

	ctx := pitch.NewContext(cfg, syntax.New(styleName), logger)
	deck, err := pitch.Collect(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "transform: %v\n", err)
		os.Exit(1)
	}

	if outPath != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		writer, closeOut, err := resolveOutput(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open output: %v\n", err)
			os.Exit(1)
		}
		if closeOut != nil {
			defer func() { _ = closeOut.Close() }()
		}
		if err := deck.WriteANSI(writer, resolveWidth(widthFlag)); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := pitch.Present(cfg, deck); err != nil {
		fmt.Fprintf(os.Stderr, "present: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*pitch.Config, error) {
	if path == "" {
		return pitch.LoadConfig()
	}
	cfg := pitch.DefaultConfig()
	data, err := os.ReadFile(normalizePath(path))
	if err != nil {
		return nil, err
	}
	frag, err := pitch.ParseFragment(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(frag); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readInput returns the presentation source and, for file input, its path.
func readInput(arg string) ([]byte, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "", err
	}
	path := normalizePath(arg)
	data, err := os.ReadFile(path)
	return data, path, err
}

func buildLogger(path string) (*zap.Logger, io.Closer, error) {
	if path == "" {
		return zap.NewNop(), nil, nil
	}
	f, err := os.OpenFile(normalizePath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(f), zapcore.InfoLevel)
	return zap.New(core), f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
