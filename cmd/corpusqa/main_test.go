package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name: "corpusqa",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
			},
		},
		Before: setupLogger,
		Action: action,
	}
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := testApp(func(c *cli.Context) error { return nil })
				err := app.Run([]string{"corpusqa", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		app := testApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"corpusqa", "--log-level", "WaRn"})
		require.NoError(t, err)
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := testApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"corpusqa", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("alias -l", func(t *testing.T) {
		app := testApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		})
		err := app.Run([]string{"corpusqa", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestAskCommand_RequiresQuestion(t *testing.T) {
	app := &cli.App{
		Name: "corpusqa",
		Commands: []*cli.Command{
			{
				Name:   "ask",
				Action: askCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "name", Value: "corpus"},
					&cli.StringFlag{Name: "index-dir", Value: "."},
					&cli.IntFlag{Name: "top-k", Value: 3},
				),
			},
		},
	}

	err := app.Run([]string{"corpusqa", "ask", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question")
}

func TestAIConfigFromFlags_Defaults(t *testing.T) {
	app := &cli.App{
		Name:  "corpusqa",
		Flags: aiFlags(),
		Action: func(c *cli.Context) error {
			config, err := aiConfigFromFlags(c)
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:11434/v1", config.EmbeddingHost)
			assert.Equal(t, "embeddinggemma", config.EmbeddingModel)
			assert.Equal(t, 256, config.MaxTokens)
			return nil
		},
	}

	require.NoError(t, app.Run([]string{"corpusqa"}))
}
