package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Thirdegree/YouTubeSpamBot/automod/engine"
	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

// log a liveness heartbeat with the running item counter this often
const heartbeatEvery = 500

const defaultIdleWait = 5 * time.Second

// RunLoop pulls items off the multiplexer, runs each through the decision
// engine, and executes removals. Transient upstream failures are logged and
// stream consumption restarts with a bounded backoff; the loop only returns
// when the context is cancelled.
type RunLoop struct {
	Logger *slog.Logger
	Engine *engine.Engine
	Mod    reddit.Moderator
	Mux    *Multiplexer

	// DryRun computes and logs decisions but suppresses the mutating calls.
	DryRun bool

	// IdleWait is how long to sleep after a pass where no source offered an
	// item. Defaults to 5s.
	IdleWait time.Duration

	seen int64
}

func (rl *RunLoop) Run(ctx context.Context) error {
	var backoff int
	for {
		err := rl.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		streamRestarts.Inc()
		rl.Logger.Error("stream consumption failed, restarting", "err", err, "backoff", backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(sleepForBackoff(backoff)):
		}
		backoff++
	}
}

// consume is one stream-consumption session; it only returns on upstream
// failure or context cancellation.
func (rl *RunLoop) consume(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := rl.Mux.Poll(ctx)
		if err != nil {
			return fmt.Errorf("polling merged stream: %w", err)
		}
		if item == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(rl.idleWait()):
			}
			continue
		}

		if rl.seen%heartbeatEvery == 0 {
			rl.Logger.Info("have seen items", "count", rl.seen)
		}
		rl.seen++
		itemsSeen.Inc()

		dec, err := rl.Engine.Decide(ctx, item)
		if err != nil {
			if errors.Is(err, reddit.ErrUnknownKind) {
				// fatal to this decision only; the streams shouldn't emit these
				rl.Logger.Error("undecidable item", "item", item.Name, "err", err)
				decisionErrors.Inc()
				continue
			}
			return fmt.Errorf("deciding on %s: %w", item.Name, err)
		}
		if dec.Outcome != engine.OutcomeRemove {
			continue
		}

		if !rl.DryRun {
			if err := rl.Mod.Remove(ctx, item); err != nil {
				return fmt.Errorf("removing %s: %w", item.Name, err)
			}
			if err := rl.Mod.SendRemovalMessage(ctx, item, dec.Rationale); err != nil {
				return fmt.Errorf("sending removal message for %s: %w", item.Name, err)
			}
		}
		itemsRemoved.Inc()
		rl.Logger.Info("removed item",
			"item", item.Name,
			"kind", item.Kind,
			"author", item.Author,
			"subreddit", item.Subreddit,
			"ratio", dec.Ratio,
			"targetRatio", rl.Engine.Policy.TargetRatio,
			"examined", dec.Examined,
			"dryRun", rl.DryRun,
		)
	}
}

func (rl *RunLoop) idleWait() time.Duration {
	if rl.IdleWait > 0 {
		return rl.IdleWait
	}
	return defaultIdleWait
}

func sleepForBackoff(b int) time.Duration {
	if b == 0 {
		return time.Second
	}
	if b < 10 {
		return time.Duration(rand.Intn(1000))*time.Millisecond + time.Duration(b)*5*time.Second
	}
	return time.Minute
}
