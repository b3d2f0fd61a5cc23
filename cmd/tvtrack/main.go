package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/drake/tvtrack/internal/adapter"
	"github.com/drake/tvtrack/internal/domain"
	"github.com/drake/tvtrack/internal/metadata"
	"github.com/drake/tvtrack/internal/stats"
	"github.com/drake/tvtrack/internal/store"
	"github.com/drake/tvtrack/internal/tracker"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `usage: tvtrack <command> [args]

commands:
  track <id> <name>            start tracking a series
  untrack <id>                 stop tracking a series
  watch <id> <season> <ep>     mark an episode watched (aired episodes only)
  watch <id> <season> <a>-<b>  mark an inclusive episode range watched
  unwatch <id> <season> <ep>   unmark an episode
  last <id>                    show the last-watched season and episode
  list                         list tracked series
  stats                        show collection totals
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("tvtrack %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting tvtrack", "version", Version)

	trackerStore, err := store.NewTrackerStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open tracking store: %w", err)
	}
	defer trackerStore.Close()

	httpc := &http.Client{Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second}
	resolver := metadata.NewClient(cfg.Catalog.URL, httpc, logger)

	trackerSvc := tracker.NewService(trackerStore, resolver, logger)
	statsSvc := stats.NewService(trackerStore, logger)

	ctx := context.Background()

	switch cmd := args[0]; cmd {
	case "track":
		if len(args) < 3 {
			return fmt.Errorf("usage: tvtrack track <id> <name>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		name := strings.Join(args[2:], " ")
		if err := trackerSvc.TrackSeries(domain.NewSeries(name, id)); err != nil {
			return err
		}
		fmt.Printf("tracking %q (%d)\n", name, id)
		return nil

	case "untrack":
		if len(args) != 2 {
			return fmt.Errorf("usage: tvtrack untrack <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := trackerSvc.UntrackSeries(id); err != nil {
			return err
		}
		fmt.Printf("untracked %d\n", id)
		return nil

	case "watch":
		if len(args) != 4 {
			return fmt.Errorf("usage: tvtrack watch <id> <season> <episode>[-<last>]")
		}
		return runWatch(ctx, trackerSvc, args[1:])

	case "unwatch":
		if len(args) != 4 {
			return fmt.Errorf("usage: tvtrack unwatch <id> <season> <episode>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		season, err := parseID(args[2])
		if err != nil {
			return err
		}
		episode, err := parseID(args[3])
		if err != nil {
			return err
		}
		return trackerSvc.RemoveEpisode(id, season, episode)

	case "last":
		if len(args) != 2 {
			return fmt.Errorf("usage: tvtrack last <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		season, episode, ok, err := statsSvc.LastWatched(id)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("nothing watched yet")
			return nil
		}
		fmt.Printf("S%02dE%02d\n", season, episode)
		return nil

	case "list":
		entries, err := trackerStore.GetIDsAndSeries()
		if err != nil {
			return err
		}
		for _, entry := range entries {
			series := entry.Series
			fmt.Printf("%s\t%s\t%d seasons, %d watched\n",
				entry.ID, series.Name, series.TotalSeasons(), series.TotalEpisodesWatched())
		}
		return nil

	case "stats":
		summary, err := statsSvc.Summarize()
		if err != nil {
			return err
		}
		fmt.Printf("series: %d\nseasons: %d\nepisodes watched: %d\n",
			summary.Series, summary.Seasons, summary.Episodes)
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runWatch(ctx context.Context, svc *tracker.Service, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	season, err := parseID(args[1])
	if err != nil {
		return err
	}

	if first, last, ok := parseRange(args[2]); ok {
		result, err := svc.AddEpisodes(ctx, id, season, first, last)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d added, %d already watched, %d unwatchable\n",
			result.Outcome(), result.NewlyAdded, result.AlreadyTracked, result.Unwatchable)
		return nil
	}

	episode, err := parseID(args[2])
	if err != nil {
		return err
	}
	added, err := svc.AddEpisode(ctx, id, season, episode)
	if err != nil {
		return err
	}
	if !added {
		fmt.Println("not added (already watched or not yet aired)")
	}
	return nil
}

func parseID(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return uint32(n), nil
}

// parseRange parses "a-b" into an inclusive range.
func parseRange(s string) (first, last uint32, ok bool) {
	a, b, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	firstN, err := parseID(a)
	if err != nil {
		return 0, 0, false
	}
	lastN, err := parseID(b)
	if err != nil {
		return 0, 0, false
	}
	return firstN, lastN, true
}
