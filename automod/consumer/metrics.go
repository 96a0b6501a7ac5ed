package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var itemsSeen = promauto.NewCounter(prometheus.CounterOpts{
	Name: "youtube_spam_bot_items_seen",
	Help: "Number of items pulled off the merged stream",
})

var itemsRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "youtube_spam_bot_items_removed",
	Help: "Number of items removed (or that would have been, in dry-run mode)",
})

var decisionErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "youtube_spam_bot_decision_errors",
	Help: "Number of items whose decision failed",
})

var streamRestarts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "youtube_spam_bot_stream_restarts",
	Help: "Number of times stream consumption was restarted after an upstream failure",
})
