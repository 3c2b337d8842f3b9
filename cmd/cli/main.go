package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/moneyrates/infra/initializer"
	"github.com/amirasaad/moneyrates/pkg/app"
	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/orchestrator"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	codeColor  = color.New(color.FgCyan, color.Bold)
	errorColor = color.New(color.FgRed)
)

const usage = `Usage: cli <command> [arguments]
Commands: symbols [query], convert <from> <to> <amount>, reset`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	cfg, err := config.Load(".env")
	if err != nil {
		_, _ = errorColor.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		_, _ = errorColor.Fprintln(os.Stderr, "Failed to initialize dependencies:", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)
	defer a.Close()

	if err := run(context.Background(), a, os.Args[1:], os.Stdout); err != nil {
		_, _ = errorColor.Fprintln(os.Stderr, err)
		a.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	switch cmd := args[0]; cmd {
	case "symbols":
		var (
			symbols []domain.Symbol
			err     error
		)
		if len(args) > 1 {
			query := strings.Join(args[1:], " ")
			// filtering reads the cache only
			if _, err = a.SymbolService.GetSymbols(ctx); err == nil {
				symbols, err = a.SymbolService.FilterSymbols(ctx, &query)
			}
		} else {
			symbols, err = a.SymbolService.GetSymbols(ctx)
		}
		if err != nil {
			return describe("Error listing symbols", err)
		}
		domain.SortByDescription(symbols)
		for _, s := range symbols {
			fmt.Fprintf(out, "%s\t%s\n", codeColor.Sprint(s.Code), s.Description)
		}
		return nil
	case "convert":
		if len(args) < 4 {
			return fmt.Errorf("usage: convert <from> <to> <amount>")
		}
		amount, err := domain.ParseAmount(args[3])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[3])
		}
		from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])
		result, err := a.ConversionService.Execute(ctx, from, to, amount)
		if err != nil {
			return describe("Error converting", err)
		}
		fmt.Fprintf(out, "%s %s = %s %s\n",
			amount.StringFixed(2), codeColor.Sprint(from),
			orchestrator.AmountView{Value: result}, codeColor.Sprint(to))
		return nil
	case "reset":
		if err := a.ResetService.Execute(ctx); err != nil {
			return describe("Error refreshing symbols", err)
		}
		n, err := a.Deps.Symbols.Count(ctx)
		if err != nil {
			return describe("Error counting symbols", err)
		}
		fmt.Fprintf(out, "Symbol cache refreshed: %d symbols\n", n)
		return nil
	default:
		return fmt.Errorf("unknown command: %s\n%s", cmd, usage)
	}
}

func describe(prefix string, err error) error {
	return fmt.Errorf("%s: %s: %w", prefix, orchestrator.NewErrorView(err).Title, err)
}
