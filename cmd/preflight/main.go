// cmd/preflight/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sitewatch/sitewatch/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to site configuration")
	flag.Parse()

	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	f, err := config.Load(*configPath)
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("%s: %d site(s), default timeout %s", *configPath, len(f.Sites), f.Timeout()))

	for _, s := range f.SiteList() {
		if !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://") {
			warn(s.URL + " has no http(s) scheme; the probe will fail every round")
		}
	}

	if strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")) == "" {
		warn("SLACK_WEBHOOK_URL empty — transitions will only reach the log")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	if strings.TrimSpace(os.Getenv("KAFKA_BROKERS")) == "" {
		warn("KAFKA_BROKERS empty — transition events will not be published")
	} else {
		ok("KAFKA_BROKERS present")
	}

	if strings.TrimSpace(os.Getenv("API_ADDR")) == "" {
		warn("API_ADDR empty — status API disabled")
	} else {
		ok("API_ADDR=" + os.Getenv("API_ADDR"))
	}

	ok("preflight passed")
}
