// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	base := strings.TrimSpace(os.Getenv("RESIOT_BASE"))
	token := strings.TrimSpace(os.Getenv("RESIOT_TOKEN"))
	botToken := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	secret := strings.TrimSpace(os.Getenv("TELEGRAM_WEBHOOK_SECRET"))
	chats := strings.TrimSpace(os.Getenv("ALERT_CHAT_IDS"))
	driver := strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))
	apiAddr := strings.TrimSpace(os.Getenv("API_ADDR"))

	if base == "" {
		fail("RESIOT_BASE is empty (nothing to poll).")
	}
	if token == "" {
		fail("RESIOT_TOKEN is empty (poller will get 401s).")
	}

	if botToken == "" {
		warn("TELEGRAM_BOT_TOKEN empty — bot replies and alerts are disabled.")
	} else {
		ok("TELEGRAM_BOT_TOKEN present")
		if secret == "" {
			warn("TELEGRAM_WEBHOOK_SECRET empty — anyone can POST /webhook.")
		}
		if chats == "" {
			warn("ALERT_CHAT_IDS empty — transition alerts go nowhere.")
		} else if strings.Contains(chats, " ") {
			warn("ALERT_CHAT_IDS contains spaces; use comma-separated with no spaces, e.g. 100,-200")
		}
	}

	switch driver {
	case "", "memory":
		warn("STORAGE_DRIVER is memory — history is lost on restart.")
	case "fs":
		if strings.TrimSpace(os.Getenv("DATA_DIR")) == "" {
			warn("DATA_DIR empty; default in your app may be used.")
		}
		ok("STORAGE_DRIVER=fs")
	case "redis":
		if strings.TrimSpace(os.Getenv("REDIS_ADDR")) == "" {
			fail("STORAGE_DRIVER=redis but REDIS_ADDR is empty.")
		}
		ok("STORAGE_DRIVER=redis")
	case "gist":
		if strings.TrimSpace(os.Getenv("GIST_ID")) == "" || strings.TrimSpace(os.Getenv("GIST_TOKEN")) == "" {
			fail("STORAGE_DRIVER=gist needs GIST_ID and GIST_TOKEN.")
		}
		ok("STORAGE_DRIVER=gist")
	default:
		fail("unknown STORAGE_DRIVER: " + driver)
	}

	if apiAddr == "" {
		warn("API_ADDR is empty; default in your app may be used.")
	} else {
		ok("API_ADDR=" + apiAddr)
	}

	ok("preflight passed")
}
