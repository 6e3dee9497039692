package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HeartbeatsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_heartbeats_total",
		Help: "Heartbeats accepted by the presence store.",
	})

	HeartbeatsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_heartbeats_rejected_total",
		Help: "Heartbeats ignored by the monotonic last-write guard.",
	})

	DerivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "presence_derivations_total",
		Help: "Presence derivations served, by resulting status.",
	}, []string{"status"})

	TypingMarksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typing_marks_total",
		Help: "Typing marks recorded.",
	})

	UnreadIncrementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unread_increments_total",
		Help: "Per-member unread counter increments.",
	})

	WatermarkRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unread_watermark_rejections_total",
		Help: "markRead calls ignored because the watermark would regress.",
	})

	HeartbeatsSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_heartbeats_swept_total",
		Help: "Stale heartbeat rows removed by the background sweeper.",
	})
)
