// seed_history.go: standalone script that replays a file of sample inputs
// against the calculations API to populate history.
//
// Each non-blank line not starting with # holds numbers, optionally followed
// by "|" and the matching weights:
//
//	1 2 4
//	2 4 | 1 0.5
//
// Usage:
//
//	go run scripts/seed_history.go -file samples.txt -api http://localhost:8700
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/leylaiskandarli/average-squares/internal/parse"
)

type seedRequest struct {
	Numbers []float64 `json:"numbers"`
	Weights []float64 `json:"weights,omitempty"`
}

func main() {
	path := flag.String("file", "samples.txt", "path to the samples file")
	apiURL := flag.String("api", "http://localhost:8700", "squares API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print requests without posting")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open samples: %v", err)
	}
	defer f.Close()

	reqs, err := readSamples(f)
	if err != nil {
		log.Fatalf("read samples: %v", err)
	}
	log.Printf("parsed %d samples from %s", len(reqs), *path)

	if *dryRun {
		for i, r := range reqs {
			fmt.Printf("[%d] numbers=%v weights=%v\n", i+1, r.Numbers, r.Weights)
		}
		return
	}

	created, skipped := post(&http.Client{}, *apiURL, *clientID, reqs)
	log.Printf("done: %d created, %d skipped", created, skipped)
}

func readSamples(r io.Reader) ([]seedRequest, error) {
	var reqs []seedRequest
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := parseSample(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, scanner.Err()
}

func parseSample(line string) (seedRequest, error) {
	numbersPart, weightsPart, weighted := strings.Cut(line, "|")

	numbers, err := parse.Line(numbersPart)
	if err != nil {
		return seedRequest{}, err
	}
	req := seedRequest{Numbers: numbers}
	if weighted {
		if req.Weights, err = parse.Line(weightsPart); err != nil {
			return seedRequest{}, err
		}
	}
	return req, nil
}

func post(client *http.Client, apiURL, clientID string, reqs []seedRequest) (created, skipped int) {
	for i, r := range reqs {
		body, _ := json.Marshal(r)
		req, err := http.NewRequest("POST", apiURL+"/api/v1/calculations", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip sample %d: %v", i+1, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip sample %d: %v", i+1, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip sample %d: status %d", i+1, resp.StatusCode)
			skipped++
		}
	}
	return created, skipped
}
