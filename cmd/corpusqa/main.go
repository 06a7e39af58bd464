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

	"github.com/urfave/cli/v2"

	corpusqa "github.com/poiesic/corpusqa"
	"github.com/poiesic/corpusqa/ai"
	"github.com/poiesic/corpusqa/etl"
	"github.com/poiesic/corpusqa/etl/youtube"
	"github.com/poiesic/corpusqa/qa"
	"github.com/poiesic/corpusqa/splitter"
	"github.com/poiesic/corpusqa/storage"
)

func main() {
	app := &cli.App{
		Name:  "corpusqa",
		Usage: "Retrieval-augmented question answering over chaptered transcripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "etl",
				Usage:  "Extract chaptered documents from playlists into the document store",
				Action: etlCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the document store directory",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Playlist ID to extract (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection to insert documents into",
						Value: storage.DefaultCollection,
					},
					&cli.StringFlag{
						Name:  "metadata-url",
						Usage: "Base URL of the video metadata API",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Transcript language code",
						Value: "en",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent extraction workers",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per item",
						Value: 3,
					},
					&cli.Float64Flag{
						Name:  "backoff-coefficient",
						Usage: "Multiplier applied to the retry delay per attempt",
						Value: 2.0,
					},
					&cli.DurationFlag{
						Name:  "initial-delay",
						Usage: "Delay before the first retry",
						Value: 5 * time.Second,
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Build and persist a vector index over a collection",
				Action: indexCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the document store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection to index",
						Value: storage.DefaultCollection,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Index name",
						Value: storage.DefaultCollection,
					},
					&cli.StringFlag{
						Name:  "index-dir",
						Usage: "Directory persisted indexes live under",
						Value: ".",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Chunk token budget",
						Value: splitter.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Tokens repeated across chunk boundaries",
						Value: splitter.DefaultChunkOverlap,
					},
				),
			},
			{
				Name:   "drop",
				Usage:  "Drop a collection and all its documents",
				Action: dropCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the document store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection to drop",
						Value: storage.DefaultCollection,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question against a persisted index",
				Action:    askCommand,
				ArgsUsage: "QUESTION",
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the document store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Index name",
						Value: storage.DefaultCollection,
					},
					&cli.StringFlag{
						Name:  "index-dir",
						Usage: "Directory persisted indexes live under",
						Value: ".",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks retrieved per question",
						Value: qa.DefaultTopK,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags returns the flags shared by commands that reach the AI
// services.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "completion-host",
			Usage: "Completion service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Completion model name",
			Value: "qwen2.5:3b",
		},
		&cli.IntFlag{
			Name:  "max-tokens",
			Usage: "Output-token budget per completion",
			Value: 256,
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI services",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionHost(c.String("completion-host")),
		ai.WithCompletionModel(c.String("completion-model")),
		ai.WithMaxTokens(c.Int("max-tokens")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func etlCommand(c *cli.Context) error {
	ctx := context.Background()

	corpus, err := corpusqa.NewCorpus(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer corpus.Close()

	var clientOpts []youtube.ClientOption
	if c.String("metadata-url") != "" {
		clientOpts = append(clientOpts, youtube.WithMetadataURL(c.String("metadata-url")))
	}
	if c.String("language") != "" {
		clientOpts = append(clientOpts, youtube.WithLanguage(c.String("language")))
	}
	client := youtube.NewClient(clientOpts...)

	orchestratorOpts := []etl.Option{
		etl.WithRetryPolicy(c.Int("max-retries"), c.Float64("backoff-coefficient"), c.Duration("initial-delay")),
	}
	if c.Int("pool-size") > 0 {
		orchestratorOpts = append(orchestratorOpts, etl.WithPoolSize(c.Int("pool-size")))
	}

	services := &etl.Services{Listing: client, Transcripts: client, Chapters: client}
	stored, dropped, err := corpus.RunETL(ctx, c.StringSlice("playlist"), storage.ByName(c.String("collection")), services, orchestratorOpts...)
	if err != nil {
		return fmt.Errorf("etl failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d documents (%d items dropped)\n", stored, dropped)
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	split, err := splitter.NewSplitter(
		splitter.WithChunkSize(c.Int("chunk-size")),
		splitter.WithChunkOverlap(c.Int("chunk-overlap")),
	)
	if err != nil {
		return fmt.Errorf("failed to create splitter: %w", err)
	}

	corpus, err := corpusqa.NewCorpus(c.String("db"),
		corpusqa.WithAIConfig(aiConfig),
		corpusqa.WithToken(c.String("token")),
		corpusqa.WithIndexDir(c.String("index-dir")),
		corpusqa.WithSplitter(split),
	)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer corpus.Close()

	ix, err := corpus.BuildIndex(ctx, c.String("name"), storage.ByName(c.String("collection")))
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d chunks into %q\n", ix.Len(), ix.Name())
	return nil
}

func dropCommand(c *cli.Context) error {
	corpus, err := corpusqa.NewCorpus(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer corpus.Close()

	collection := c.String("collection")
	if err := corpus.DropCollection(context.Background(), storage.ByName(collection)); err != nil {
		return fmt.Errorf("drop failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Dropped collection %q\n", collection)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	corpus, err := corpusqa.NewCorpus(c.String("db"),
		corpusqa.WithAIConfig(aiConfig),
		corpusqa.WithToken(c.String("token")),
		corpusqa.WithIndexDir(c.String("index-dir")),
	)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer corpus.Close()

	answer, err := corpus.Ask(context.Background(), c.String("name"), question, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Printf("SOURCES: %s\n", strings.Join(answer.Sources, ", "))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
