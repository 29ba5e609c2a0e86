package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HerbHall/gangway/internal/onboard"
)

// runOnboard onboards a single device from the command line and prints
// the result. Exit code 1 means the run failed; the failure reason is
// printed to stderr.
func runOnboard(args []string) {
	fs := flag.NewFlagSet("onboard", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	ip := fs.String("ip", "", "management IP address of the device (required)")
	site := fs.String("site", "", "site slug the device belongs to (required)")
	port := fs.Int("port", 0, "SSH port (default from config)")
	platform := fs.String("platform", "", "platform identifier; skips fingerprinting when set")
	role := fs.String("role", "", "device role slug (default from config)")
	username := fs.String("username", "", "device username (default from config)")
	password := fs.String("password", "", "device password (default from config)")
	timeout := fs.Duration("timeout", 0, "per-connection timeout (default from config)")
	_ = fs.Parse(args)

	a, err := bootstrap(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gangway: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	req := onboard.Request{
		IPAddress: *ip,
		Port:      *port,
		Timeout:   *timeout,
		Platform:  *platform,
		Role:      *role,
		Site:      *site,
		Username:  *username,
		Password:  *password,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	task, err := a.tasks.CreateTask(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gangway: record task: %v\n", err)
		os.Exit(1)
	}
	_ = a.tasks.MarkRunning(ctx, task.ID)

	start := time.Now()
	device, runErr := a.pipeline.Run(ctx, req)
	if runErr != nil {
		reason := onboard.ReasonOf(runErr)
		_ = a.tasks.MarkFailed(ctx, task.ID, reason, runErr.Error())
		fmt.Fprintf(os.Stderr, "onboarding failed (%s): %v\n", reason, runErr)
		os.Exit(1)
	}
	_ = a.tasks.MarkSucceeded(ctx, task.ID, device.ID)

	fmt.Printf("onboarded %s as device %d (%s) in %s\n",
		*ip, device.ID, device.Name, time.Since(start).Round(time.Millisecond))
}
