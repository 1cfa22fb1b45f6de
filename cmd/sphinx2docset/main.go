// Command sphinx2docset mirrors a Sphinx documentation site into an offline
// docset bundle with a searchable symbol index.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docset"
	dshttp "github.com/fwojciec/docset/http"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvPrefix selects environment overrides of the site profile.
	EnvPrefix string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{EnvPrefix: defaultEnvPrefix}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sphinx2docset"),
		kong.Description("Mirror a Sphinx documentation site into an offline docset bundle"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"user_agent": dshttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return docset.Errorf(docset.EINVALID, "%v", err)
	}

	return cli.Run(ctx, m.EnvPrefix, stdout, stderr)
}

// errorMessage returns the message shown to the user for err.
func errorMessage(err error) string {
	if docset.ErrorCode(err) == docset.EINTERNAL {
		return err.Error()
	}
	return docset.ErrorMessage(err)
}
