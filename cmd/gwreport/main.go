package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Mirrors the /api/uptime response shape.
type uptimeResponse struct {
	Gateway     string  `json:"gateway"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	UpFraction  float64 `json:"up_fraction"`
	UpSeconds   float64 `json:"up_seconds"`
	DownSeconds float64 `json:"down_seconds"`
	Slots       []bool  `json:"slots"`
	Transitions []struct {
		At    string `json:"at"`
		State int    `json:"state"`
	} `json:"transitions"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	gw := ""
	days := "7"
	if len(os.Args) > 1 {
		gw = os.Args[1]
	}
	if len(os.Args) > 2 {
		days = os.Args[2]
	}
	if gw == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Gateway id: ")
		raw, _ := reader.ReadString('\n')
		gw = strings.TrimSpace(raw)
	}
	if gw == "" {
		fmt.Fprintln(os.Stderr, "usage: gwreport <gateway> [days]")
		os.Exit(1)
	}

	q := url.Values{}
	q.Set("gw", gw)
	q.Set("days", days)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(api + "/api/uptime?" + q.Encode())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, "API returned status:", resp.Status)
		os.Exit(1)
	}

	var rep uptimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		fmt.Fprintln(os.Stderr, "bad API response:", err)
		os.Exit(1)
	}

	fmt.Printf("Gateway:  %s\n", rep.Gateway)
	fmt.Printf("Window:   %s .. %s\n", rep.Start, rep.End)
	fmt.Printf("Online:   %.2f%% (up %s, down %s)\n",
		rep.UpFraction*100,
		time.Duration(rep.UpSeconds)*time.Second,
		time.Duration(rep.DownSeconds)*time.Second,
	)

	if len(rep.Slots) > 0 {
		var sb strings.Builder
		for _, up := range rep.Slots {
			if up {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		fmt.Printf("Raster:   %s\n", sb.String())
	}

	if len(rep.Transitions) > 0 {
		fmt.Println("Transitions:")
		for _, tr := range rep.Transitions {
			state := "DOWN"
			if tr.State == 1 {
				state = "UP"
			}
			fmt.Printf("  %s  %s\n", tr.At, state)
		}
	}
}
