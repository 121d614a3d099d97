package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/go-harden/botlimit/botlimit/service"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--service" {
		os.Exit(runServiceMode(args[1:]))
		return
	}

	os.Exit(Run(args))
}

func runServiceMode(args []string) int {
	_ = godotenv.Load() // optional .env supplies BOTLIMIT_* defaults

	flags, err := service.ParseDaemonFlags(args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error parsing service flags: %v\n", err)
		return 1
	}

	srv, err := service.NewServer(flags)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error creating service: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Service error: %v\n", err)
		return 1
	}
	return 0
}
