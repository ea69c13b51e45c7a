package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe/internal/ai"
	"github.com/jaminalder/tictactoe/internal/app"
	"github.com/jaminalder/tictactoe/internal/cli"
	"github.com/jaminalder/tictactoe/internal/config"
	"github.com/jaminalder/tictactoe/internal/domain"
	"github.com/jaminalder/tictactoe/internal/logger"
	"github.com/jaminalder/tictactoe/internal/web"
)

const usage = `usage: tictactoe <command> [flags]

commands:
  serve   run the web front end
  play    play in the terminal
  hint    print the AI move for a board

environment:
`

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage, config.Usage())
		return errors.New("missing command")
	}

	conf, err := config.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "serve":
		return serve(ctx, conf, args[1:], stderr)
	case "play":
		return play(ctx, conf, args[1:], stdin, stdout, stderr)
	case "hint":
		return hint(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage, config.Usage())
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newSelector(seed uint64) *ai.Selector {
	if seed == 0 {
		return ai.Default()
	}
	return ai.NewSeeded(seed)
}

func serve(ctx context.Context, conf *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", conf.HTTPAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := logger.New(stderr, conf.LogLevel, conf.LogFormat)
	if err != nil {
		return err
	}

	svc := app.NewService(app.WithLogger(log), app.WithSelector(newSelector(conf.AISeed)))
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           web.NewServer(svc, web.WithLogger(log), web.WithTimeout(conf.RequestTimeout)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", *addr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func play(ctx context.Context, conf *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modeFlag := fs.String("mode", "", "ai or friend; empty shows a menu")
	logLevel := fs.String("log-level", zerolog.LevelWarnValue, "log level for game events")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var mode app.Mode
	if *modeFlag != "" {
		m, err := app.ParseMode(*modeFlag)
		if err != nil {
			return err
		}
		mode = m
	}

	log, err := logger.New(stderr, *logLevel, logger.FormatConsole)
	if err != nil {
		return err
	}
	svc := app.NewService(app.WithLogger(log), app.WithSelector(newSelector(conf.AISeed)))
	return cli.New(svc, stdin, stdout, mode).Run(ctx)
}

func hint(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	boardFlag := fs.String("board", "", `board rows separated by "/", e.g. "XO./.X./..O"`)
	sideFlag := fs.String("side", "O", "side to move: X or O")
	seed := fs.Uint64("seed", 0, "seed for the random rules; 0 picks one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := domain.ParseBoard(*boardFlag)
	if err != nil {
		return err
	}
	var side domain.Cell
	switch *sideFlag {
	case "X", "x":
		side = domain.X
	case "O", "o":
		side = domain.O
	default:
		return fmt.Errorf("side must be X or O, got %q", *sideFlag)
	}
	if b.Terminal() {
		return fmt.Errorf("board %s: %w", b.String(), domain.ErrGameOver)
	}

	d, ok := newSelector(*seed).Select(b, side)
	if !ok {
		return errors.New("no empty cell")
	}
	fmt.Fprintf(stdout, "%s\n%s plays row %d, column %d (%s)\n", cli.RenderBoard(b), side, d.Row+1, d.Col+1, d.Rule)
	return nil
}
