package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Thirdegree/YouTubeSpamBot/automod/consumer"
	"github.com/Thirdegree/YouTubeSpamBot/automod/engine"
	"github.com/Thirdegree/YouTubeSpamBot/reddit"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	logger *slog.Logger
	loop   *consumer.RunLoop
}

type Config struct {
	AuthFile       string
	WikiConfigName string
	DryRun         bool
	Logger         *slog.Logger
}

// NewServer authenticates, loads the wiki policy, and wires up the run loop.
// A missing policy page is terminal here: the loader bootstraps a template
// and the operator must fill it in before the daemon can start.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	creds, err := reddit.ReadCredentials(config.AuthFile)
	if err != nil {
		return nil, err
	}
	client := reddit.NewClient(creds, logger)

	me, err := client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving authenticated account: %w", err)
	}

	// the bot account's own profile subreddit hosts the config page
	policy, err := engine.LoadPolicy(ctx, client, me, config.WikiConfigName)
	if err != nil {
		return nil, err
	}
	if len(policy.Subreddits) == 0 {
		return nil, fmt.Errorf("policy has no subreddits configured; fill in %s/wiki/%s", me, config.WikiConfigName)
	}
	logger.Info("loaded policy",
		"subreddits", policy.Subreddits,
		"targetRatio", policy.TargetRatio,
		"lookback", policy.Lookback,
		"whitelist", policy.UserWhitelist,
	)

	eng := &engine.Engine{
		Logger:  logger,
		History: client,
		Policy:  policy,
	}

	mux := consumer.NewMultiplexer(
		client.CommentStream(policy.Subreddits),
		client.SubmissionStream(policy.Subreddits),
	)

	loop := &consumer.RunLoop{
		Logger:   logger,
		Engine:   eng,
		Mod:      client,
		Mux:      mux,
		DryRun:   config.DryRun,
		IdleWait: 5 * time.Second,
	}

	return &Server{
		logger: logger,
		loop:   loop,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}
