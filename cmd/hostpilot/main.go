package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tailored-agentic-units/hostpilot/kernel"
	"github.com/tailored-agentic-units/hostpilot/observability"
	"github.com/tailored-agentic-units/hostpilot/remote"
)

func main() {
	var (
		configFile   = flag.String("config", "", "Path to config JSON file")
		prompt       = flag.String("prompt", "", "One-shot prompt; omit for interactive mode")
		host         = flag.String("host", "", "Host address (overrides config)")
		user         = flag.String("user", "", "SSH user (overrides config)")
		notesPath    = flag.String("notes", "", "Path to host notes directory (overrides config)")
		observerName = flag.String("observer", "noop", "Observer for runtime events (noop, slog)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *host != "" {
		cfg.Remote.Host = *host
	}
	if *user != "" {
		cfg.Remote.User = *user
	}
	if *notesPath != "" {
		cfg.Memory.Path = *notesPath
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	observer, err := observability.GetObserver(*observerName)
	if err != nil {
		log.Fatalf("Failed to select observer: %v", err)
	}

	runtime, err := kernel.New(cfg,
		kernel.WithObserver(observer),
		kernel.WithReporter(newConsoleReporter(os.Stdout)),
	)
	if err != nil {
		log.Fatalf("Failed to create kernel runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Connecting to %s@%s:%d ...\n", cfg.Remote.User, cfg.Remote.Host, cfg.Remote.Port)
	if err := runtime.Remote().Connect(ctx); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer runtime.Remote().Close()
	fmt.Println("Connected.")

	if *prompt != "" {
		reply, err := runtime.Run(ctx, *prompt)
		if err != nil {
			log.Fatalf("Run failed: %v", err)
		}
		fmt.Println(reply)
		return
	}

	repl(ctx, runtime)
}

// loadConfig reads the config file when given, otherwise starts from
// defaults, then applies environment overrides.
func loadConfig(path string) (*kernel.Config, error) {
	var cfg *kernel.Config
	if path != "" {
		loaded, err := kernel.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		defaults := kernel.DefaultConfig()
		cfg = &defaults
	}

	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("HOSTPILOT_HOST"); v != "" {
		cfg.Remote.Host = v
	}
	if v := os.Getenv("HOSTPILOT_USER"); v != "" {
		cfg.Remote.User = v
	}
	if v := os.Getenv("HOSTPILOT_PASS"); v != "" {
		cfg.Remote.Password = v
	}

	return cfg, nil
}

func repl(ctx context.Context, runtime *kernel.Kernel) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	manager := remote.NewManager(runtime.Remote())

	fmt.Println("Type a request, /<operation> for a built-in, or quit/exit/bye to leave.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Println("Goodbye.")
			return
		}

		if strings.HasPrefix(input, "/") {
			dispatch(ctx, manager, input)
			continue
		}

		reply, err := runtime.Run(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}
}

// dispatch routes /<operation> [arg] input to the management operation set,
// bypassing the model.
func dispatch(ctx context.Context, manager *remote.Manager, input string) {
	op, arg, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")

	out, err := manager.Dispatch(ctx, remote.Operation(op), strings.TrimSpace(arg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Println(out)
}
