// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	emojisearch "github.com/philocalyst/emoji-search"
	"github.com/philocalyst/emoji-search/config"
	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/dataset"
	"github.com/philocalyst/emoji-search/search"
	"github.com/urfave/cli/v2"
)

const profileKey = "profile"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	searchFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of emojis to print (default from profile)",
		},
		&cli.StringSliceFlag{
			Name:  "recent",
			Usage: "Recently searched query, most recent first (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "custom",
			Usage: "Extra keyword for an emoji as emoji=keyword (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "prefer",
			Usage: "Preferred emoji for a keyword as keyword=emoji (repeatable)",
		},
	}

	return &cli.App{
		Name:  "emoji-search",
		Usage: "Find emojis from free-text queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Path to a YAML profile",
				EnvVars: []string{config.EnvPrefix + "PROFILE"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (default from profile)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import the emoji dataset JSON files into the database",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Directory holding the dataset JSON files",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rewrite the dataset even if the database already holds it",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of emojis written per transaction",
						Value: 256,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 50 * time.Millisecond,
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not report progress",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search emojis as you type",
				ArgsUsage: "QUERY",
				Action:    searchCommand(false),
				Flags:     searchFlags,
			},
			{
				Name:      "best",
				Usage:     "Search emojis, forgiving word forms and function words",
				ArgsUsage: "QUERY",
				Action:    searchCommand(true),
				Flags:     searchFlags,
			},
			{
				Name:      "lookup",
				Usage:     "List the glossary emojis of a keyword",
				ArgsUsage: "KEYWORD",
				Action:    lookupCommand,
			},
			{
				Name:   "info",
				Usage:  "Show the dataset held by the database",
				Action: infoCommand,
			},
		},
	}
}

// setup loads the profile and installs the logger.
func setup(c *cli.Context) error {
	profile, err := config.Load(c.String("profile"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		profile.Logging.Level = c.String("log-level")
	}
	if c.IsSet("db") {
		profile.Database.Path = c.String("db")
	}

	level, err := config.ParseLevel(profile.Logging.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[profileKey] = profile
	return nil
}

func profileOf(c *cli.Context) *config.Profile {
	if p, ok := c.App.Metadata[profileKey].(*config.Profile); ok {
		return p
	}
	return config.Default()
}

func openEngine(profile *config.Profile) (*emojisearch.Engine, error) {
	engine, err := emojisearch.Open(profile.Database.Path, emojisearch.WithPoolSize(profile.Search.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()
	profile := profileOf(c)

	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	ds, err := dataset.LoadDir(c.String("data"))
	if err != nil {
		return err
	}

	engine, err := openEngine(profile)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []dataset.Option{
		dataset.WithBatchSize(c.Int("batch-size")),
		dataset.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		dataset.WithForce(c.Bool("force")),
	}
	if !c.Bool("quiet") {
		opts = append(opts, dataset.WithProgress(c.App.ErrWriter))
	}

	imported, err := engine.Import(ctx, ds, opts...)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if !imported {
		fmt.Fprintln(c.App.Writer, "Dataset already imported, nothing to do")
		return nil
	}

	info := engine.Info()
	fmt.Fprintf(c.App.Writer, "Imported %d emojis with %d keywords\n", info.Emojis, info.Keywords)
	return nil
}

func searchCommand(best bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		query := strings.Join(c.Args().Slice(), " ")
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("a query is required")
		}

		profile := profileOf(c)
		options, err := searchOptions(c, profile)
		if err != nil {
			return err
		}
		limit := profile.Search.Limit
		if c.IsSet("limit") {
			limit = c.Int("limit")
		}

		engine, err := openEngine(profile)
		if err != nil {
			return err
		}
		defer engine.Close()

		run := engine.Search
		if best {
			run = engine.SearchBestMatching
		}
		results, err := run(context.Background(), query, search.WithLimit(limit), search.WithOptions(options))
		if err != nil {
			return err
		}
		printEmojis(c, results)
		return nil
	}
}

func lookupCommand(c *cli.Context) error {
	keyword := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("a keyword is required")
	}

	engine, err := openEngine(profileOf(c))
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Lookup(keyword)
	if err != nil {
		return err
	}
	printEmojis(c, results)
	return nil
}

func infoCommand(c *cli.Context) error {
	engine, err := openEngine(profileOf(c))
	if err != nil {
		return err
	}
	defer engine.Close()

	info := engine.Info()
	if info == nil {
		fmt.Fprintln(c.App.Writer, "No dataset imported")
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Emojis:    %d\n", info.Emojis)
	fmt.Fprintf(c.App.Writer, "Keywords:  %d\n", info.Keywords)
	fmt.Fprintf(c.App.Writer, "Checksum:  %016x\n", uint64(info.Checksum))
	fmt.Fprintf(c.App.Writer, "Imported:  %s\n", info.ImportedAt.Format(time.RFC3339))
	return nil
}

// searchOptions merges the profile's personalization with the command flags.
// Flags add to the profile; a flag preference for a keyword wins.
func searchOptions(c *cli.Context, profile *config.Profile) (core.Options, error) {
	options := profile.Options()

	custom, err := parsePairs(c.StringSlice("custom"))
	if err != nil {
		return options, fmt.Errorf("invalid --custom: %w", err)
	}
	for _, pair := range custom {
		if options.CustomKeywords == nil {
			options.CustomKeywords = map[core.EntityID][]string{}
		}
		emoji := core.EntityID(pair[0])
		options.CustomKeywords[emoji] = append(options.CustomKeywords[emoji], pair[1])
	}

	prefer, err := parsePairs(c.StringSlice("prefer"))
	if err != nil {
		return options, fmt.Errorf("invalid --prefer: %w", err)
	}
	for _, pair := range prefer {
		if options.CustomPreferred == nil {
			options.CustomPreferred = map[string]core.EntityID{}
		}
		options.CustomPreferred[pair[0]] = core.EntityID(pair[1])
	}

	if recent := c.StringSlice("recent"); len(recent) > 0 {
		options.RecentlySearched = append(recent, options.RecentlySearched...)
	}
	return options, nil
}

// parsePairs splits each value at its first '=' into a non-empty left and
// right side.
func parsePairs(values []string) ([][2]string, error) {
	pairs := make([][2]string, 0, len(values))
	for _, v := range values {
		left, right, ok := strings.Cut(v, "=")
		if !ok || left == "" || right == "" {
			return nil, fmt.Errorf("%q is not of the form left=right", v)
		}
		pairs = append(pairs, [2]string{left, right})
	}
	return pairs, nil
}

func printEmojis(c *cli.Context, emojis []core.EntityID) {
	parts := make([]string, len(emojis))
	for i, e := range emojis {
		parts[i] = string(e)
	}
	fmt.Fprintln(c.App.Writer, strings.Join(parts, " "))
}
