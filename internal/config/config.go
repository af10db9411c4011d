package config

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"
)

const DefaultAPIURL = "https://api.github.com"

type AppConfig struct {
	RepoFile    string
	Days        int
	Token       string
	APIURL      string
	Output      string
	LogFile     string
	Concurrency int
	Debug       bool
}

func ParseConfig(c *cli.Context) (*AppConfig, error) {
	if c.NArg() < 1 {
		return nil, cli.ShowAppHelp(c)
	}

	cfg := &AppConfig{
		RepoFile:    c.Args().First(),
		Days:        c.Int("days"),
		Token:       c.String("token"),
		APIURL:      strings.TrimRight(c.String("api-url"), "/"),
		Output:      c.String("output"),
		LogFile:     c.String("log-file"),
		Concurrency: c.Int("concurrency"),
		Debug:       c.Bool("debug"),
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}

	return cfg, nil
}

// LoadRepoList reads a newline-delimited list of owner/name strings,
// skipping blank lines.
func LoadRepoList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading repository list: %w", err)
	}
	defer file.Close()

	var repos []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		repos = append(repos, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading repository list: %w", err)
	}

	return repos, nil
}
