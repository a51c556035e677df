package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ops-triage/api"
	"ops-triage/examples"
	"ops-triage/history"
	"ops-triage/logger"
	"ops-triage/triage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	serve := flag.Bool("serve", false, "run the HTTP API instead of the interactive shell")
	filePath := flag.String("file", "", "triage a single incident file and exit")
	text := flag.String("text", "", "triage the given incident text and exit")
	flag.Parse()

	// .env is optional; config may reference its variables via ${VAR}
	godotenv.Load()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = DefaultConfig()
		} else {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	level := logger.ParseLevel(cfg.Logger.Level)
	var loggers []logger.Logger
	loggers = append(loggers, logger.NewConsole(level, cfg.Logger.Console.Color))
	if cfg.Logger.NDJSON.Enabled {
		ndjson, err := logger.NewNDJSON(cfg.Logger.NDJSON.Path, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to init ndjson logger: %v\n", err)
			os.Exit(1)
		}
		loggers = append(loggers, ndjson)
	}
	var log logger.Logger
	if len(loggers) == 1 {
		log = loggers[0]
	} else {
		log = logger.Multi(loggers...)
	}
	defer log.Close()

	rules := triage.DefaultRules()
	if cfg.Rules.Path != "" {
		rules, err = triage.LoadRules(cfg.Rules.Path)
		if err != nil {
			log.Error("rules.load_failed", logger.String("path", cfg.Rules.Path), logger.Err(err))
			os.Exit(1)
		}
		log.Info("rules.loaded", logger.String("path", cfg.Rules.Path))
	}

	engine := triage.NewEngine(rules, log)

	switch {
	case *text != "":
		runOnce(engine, *text)
	case *filePath != "":
		content, err := examples.Load(*filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		runOnce(engine, content)
	case *serve:
		runServer(cfg, engine, log)
	default:
		runShell(cfg, engine)
	}
}

// runOnce triages one report and prints the ticket as indented JSON.
func runOnce(engine *triage.Engine, text string) {
	ticket, err := engine.Triage(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "triage failed: %v\n", err)
		os.Exit(1)
	}
	printTicket(ticket)
}

func runServer(cfg *Config, engine *triage.Engine, log logger.Logger) {
	ring := history.NewRing(cfg.History.Size)

	authToken := cfg.API.AuthToken
	if authToken == "" {
		authToken = os.Getenv("TRIAGE_AUTH_TOKEN")
	}

	srv := api.NewServer(engine, ring, log, api.Config{
		AuthToken:    authToken,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              cfg.API.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	fatalCh := make(chan error, 1)
	go func() {
		log.Info("api.listening", logger.String("addr", cfg.API.Listen))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("api.listen_failed", logger.Err(err))
			fatalCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("api.shutdown", logger.String("signal", sig.String()))
	case <-fatalCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Shutdown(ctx)
	log.Info("api.stopped")
}

// runShell is the interactive menu: triage an example file, paste an
// incident, or exit.
func runShell(cfg *Config, engine *triage.Engine) {
	fmt.Println("Ops Triage — interactive shell")

	files, err := examples.List(cfg.Examples.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\nMenu:")
		fmt.Println("  1) Run triage on an example incident file")
		fmt.Println("  2) Paste an incident manually")
		fmt.Println("  3) Exit")
		fmt.Print("\nChoose an option: ")

		if !in.Scan() {
			return
		}
		switch strings.TrimSpace(in.Text()) {
		case "1":
			text, ok := chooseExample(in, files, cfg.Examples.Dir)
			if !ok {
				continue
			}
			shellTriage(engine, text)
		case "2":
			text := pasteIncident(in)
			shellTriage(engine, text)
		case "3":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid choice. Please select 1, 2, or 3.")
		}
	}
}

func shellTriage(engine *triage.Engine, text string) {
	ticket, err := engine.Triage(text)
	if err != nil {
		if errors.Is(err, triage.ErrInvalidInput) {
			fmt.Println("No input provided.")
			return
		}
		fmt.Fprintf(os.Stderr, "triage failed: %v\n", err)
		return
	}
	printTicket(ticket)
}

func chooseExample(in *bufio.Scanner, files []examples.File, dir string) (string, bool) {
	if len(files) == 0 {
		fmt.Printf("No example files found in: %s\n", dir)
		return "", false
	}

	fmt.Println("\nChoose an example:")
	for i, f := range files {
		fmt.Printf("  %d) %s\n", i+1, f.Name)
	}
	fmt.Print("\nEnter a number (or press Enter to cancel): ")

	if !in.Scan() {
		return "", false
	}
	choice := strings.TrimSpace(in.Text())
	if choice == "" {
		return "", false
	}
	idx, err := strconv.Atoi(choice)
	if err != nil {
		fmt.Println("Invalid input. Please enter a number.")
		return "", false
	}
	if idx < 1 || idx > len(files) {
		fmt.Println("Number out of range.")
		return "", false
	}

	text, err := examples.Load(files[idx-1].Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return "", false
	}
	return text, true
}

func pasteIncident(in *bufio.Scanner) string {
	fmt.Println("\nPaste an incident description. End with an empty line.")
	var lines []string
	for in.Scan() {
		line := in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func printTicket(ticket *triage.IncidentTicket) {
	out, err := json.MarshalIndent(ticket, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode ticket: %v\n", err)
		return
	}
	fmt.Println("\n--- TRIAGE OUTPUT ---")
	fmt.Println(string(out))
}
