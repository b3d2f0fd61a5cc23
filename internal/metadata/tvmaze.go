// Package metadata implements the episode catalog collaborator against
// the TVMaze API. The tracker consults it to resolve episodes and decide
// whether they have aired.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/drake/tvtrack/internal/domain"
)

// DefaultBaseURL is the public TVMaze API endpoint.
const DefaultBaseURL = "https://api.tvmaze.com"

var errEpisodeNotFound = errors.New("episode not found in catalog")

type tvmazeEpisode struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	Season   uint32 `json:"season"`
	Number   uint32 `json:"number"`
	Airstamp string `json:"airstamp"`
	Runtime  int    `json:"runtime"`
}

// Client resolves episode metadata from TVMaze. Implements
// domain.EpisodeResolver.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates a TVMaze client. An empty baseURL selects the public
// API; a nil httpc selects a client with a sane timeout.
func NewClient(baseURL string, httpc *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve looks up an episode by (season, number) within the series'
// catalog. A missing episode is (nil, nil), not an error.
func (c *Client) Resolve(ctx context.Context, seriesID, season, episode uint32) (*domain.EpisodeInfo, error) {
	u := fmt.Sprintf("%s/shows/%d/episodebynumber?season=%d&number=%d", c.baseURL, seriesID, season, episode)

	var ep tvmazeEpisode
	err := retry.Do(
		func() error { return c.doGET(ctx, u, &ep) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, errEpisodeNotFound)
		}),
	)
	if errors.Is(err, errEpisodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info := &domain.EpisodeInfo{
		ID:      ep.ID,
		Name:    ep.Name,
		Season:  ep.Season,
		Number:  ep.Number,
		Runtime: ep.Runtime,
	}
	if ep.Airstamp != "" {
		if airstamp, err := time.Parse(time.RFC3339, ep.Airstamp); err == nil {
			info.Airstamp = &airstamp
		} else {
			c.logger.Warn("unparseable airstamp", "seriesID", seriesID, "episode", ep.ID, "airstamp", ep.Airstamp)
		}
	}
	return info, nil
}

// Watchable reports whether the episode's air time has passed. An episode
// with no air time is undeterminable and reported as known=false.
func (c *Client) Watchable(info *domain.EpisodeInfo) (watchable, known bool) {
	if info == nil || info.Airstamp == nil {
		return false, false
	}
	return !info.Airstamp.After(c.now()), true
}

func (c *Client) doGET(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errEpisodeNotFound
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("tvmaze get %s failed: %s: %s", u, resp.Status, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
