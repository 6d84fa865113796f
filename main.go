package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/pyjson/internal/config"
	"github.com/mcncl/pyjson/internal/converter"
	"github.com/mcncl/pyjson/internal/errors"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent      int    `help:"Spaces per indentation level. 0 emits compact JSON." short:"n" default:"4"`
	Minify      bool   `help:"Treat input as JSON and remove all extraneous whitespace." short:"m"`
	Reformat    bool   `help:"Treat input as JSON and re-indent it without literal conversion." short:"r"`
	SortKeys    bool   `help:"Sort object keys alphabetically."`
	Keys        string `help:"Rewrite object keys: keep, camel, snake or pascal." default:"keep" enum:"keep,camel,snake,pascal"`
	Config      string `help:"Path to a config file. Defaults to the nearest .pyjson.yml." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("pyjson"),
		kong.Description("A tool to convert Python literals to JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("pyjson version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err == nil {
		err = run(&Context{Debug: CLI.Debug, Config: cfg})
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: pyjson --help\n")

		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: an explicit --config path,
// otherwise the nearest config file, merged with CLI overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Indent, CLI.SortKeys, CLI.Keys)
	if err != nil {
		return nil, errors.NewInputError("failed to load configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	conv := converter.New(ctx.Config)

	var out string
	var err error
	switch {
	case CLI.Minify:
		text, readErr := readInput()
		if readErr != nil {
			return readErr
		}
		out, err = conv.Minify(text)
	case CLI.Reformat:
		text, readErr := readInput()
		if readErr != nil {
			return readErr
		}
		out, err = conv.Reformat(text)
	default:
		if CLI.Input != "" {
			out, err = conv.ConvertFile(CLI.Input)
		} else {
			text, readErr := readInput()
			if readErr != nil {
				return readErr
			}
			out, err = conv.Convert(text)
		}
	}
	if err != nil {
		return err
	}

	return writeOutput(out, ctx.Config)
}

// readInput reads raw text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(data), nil
}

// writeOutput writes JSON text to file or stdout
func writeOutput(text string, cfg *config.Config) error {
	if CLI.Output != "" {
		if cfg.Output.TrailingNewline && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "JSON written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimRight(text, "\n"))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// literal and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "pyjson Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your Python literal below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	text := builder.String()
	if len(text) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing literal...")
	return text, nil
}
