// Command fetch is the Gamefeed fetch-and-inspect CLI.
//
// Usage:
//
//	gamefeed-fetch scores hockey baseball
//	gamefeed-fetch scores --wire snapshot.bin football
//	gamefeed-fetch teams basketball
//	gamefeed-fetch decode snapshot.bin
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/scorewire/gamefeed/internal/config"
	"github.com/scorewire/gamefeed/internal/feed"
	"github.com/scorewire/gamefeed/internal/provider/espn"
	"github.com/scorewire/gamefeed/internal/provider/nhl"
	"github.com/scorewire/gamefeed/internal/teams"
	"github.com/scorewire/gamefeed/pkg/gamestate"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "gamefeed-fetch",
		Short: "Gamefeed fetch-and-inspect CLI",
	}

	root.AddCommand(scoresCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(decodeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// scores command
// --------------------------------------------------------------------------

func scoresCmd() *cobra.Command {
	var wirePath string
	cmd := &cobra.Command{
		Use:   "scores [sport...]",
		Short: "Fetch current scores; defaults to every sport",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			sports, err := resolveSports(args)
			if err != nil {
				return err
			}

			espnClient := espn.NewClient(cfg.ESPNBaseURL, cfg.FeedRequestsPerMin, logger)
			nhlClient := nhl.NewClient(cfg.NHLBaseURL, logger)
			svc := feed.New(espnClient, nhlClient, cfg.CacheTTL, logger)

			scores, err := svc.Scores(ctx, sports)
			if err != nil {
				return err
			}

			if wirePath != "" {
				return writeWire(wirePath, sports, scores)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(scores)
		},
	}
	cmd.Flags().StringVar(&wirePath, "wire", "", "Write binary length-prefixed snapshot to this file instead of JSON")
	return cmd
}

func resolveSports(args []string) ([]gamestate.Sport, error) {
	if len(args) == 0 {
		return feed.AllSports(), nil
	}
	sports := make([]gamestate.Sport, 0, len(args))
	for _, id := range args {
		s, err := feed.ParseSport(id)
		if err != nil {
			return nil, err
		}
		sports = append(sports, s)
	}
	return sports, nil
}

// writeWire emits every game across the requested sports as a varint
// length-prefixed binary stream, the same framing the snapshot endpoint uses.
func writeWire(path string, sports []gamestate.Sport, scores map[string][]gamestate.Game) error {
	var buf []byte
	for _, sport := range sports {
		games := scores[feed.SportID(sport)]
		for i := range games {
			data, err := games[i].MarshalBinary()
			if err != nil {
				return fmt.Errorf("encode game %d: %w", games[i].GameID, err)
			}
			buf = protowire.AppendVarint(buf, uint64(len(data)))
			buf = append(buf, data...)
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(buf), path)
	return nil
}

// --------------------------------------------------------------------------
// teams command
// --------------------------------------------------------------------------

func teamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams <sport>",
		Short: "Print the team registry for a sport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sport, err := feed.ParseSport(args[0])
			if err != nil {
				return err
			}
			registry, ok := teams.ForSport(sport)
			if !ok {
				return fmt.Errorf("sport %q has no team registry", args[0])
			}
			list := make([]gamestate.Team, 0, len(registry))
			for _, t := range registry {
				list = append(list, t)
			}
			sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
}

// --------------------------------------------------------------------------
// decode command
// --------------------------------------------------------------------------

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a binary snapshot file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var games []gamestate.Game
			for len(raw) > 0 {
				size, n := protowire.ConsumeVarint(raw)
				if n < 0 {
					return fmt.Errorf("corrupt length prefix at game %d", len(games))
				}
				raw = raw[n:]
				if uint64(len(raw)) < size {
					return fmt.Errorf("truncated frame at game %d", len(games))
				}
				var g gamestate.Game
				if err := g.UnmarshalBinary(raw[:size]); err != nil {
					return fmt.Errorf("decode game %d: %w", len(games), err)
				}
				games = append(games, g)
				raw = raw[size:]
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(games)
		},
	}
}
