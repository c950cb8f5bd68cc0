package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/voicechess/internal/boardcast"
	appcfg "github.com/park285/voicechess/internal/config"
	"github.com/park285/voicechess/internal/display"
	"github.com/park285/voicechess/internal/domain"
	"github.com/park285/voicechess/internal/game"
	"github.com/park285/voicechess/internal/msgcat"
	"github.com/park285/voicechess/internal/obslog"
	"github.com/park285/voicechess/internal/render"
	"github.com/park285/voicechess/internal/segmentws"
	"github.com/park285/voicechess/internal/session"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.ObslogOptions()); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		logger.Fatal("messages_load_failed", zap.String("dir", cfg.MessagesDir), zap.Error(err))
	}

	reducer := game.NewReducer(game.Options{ApplyOnPartial: cfg.ApplyOnPartial}, game.NewLogSink(logger, cat))
	sess := session.New(reducer, cfg.HistoryLimit)
	logger.Info("session_started",
		zap.String("session_id", sess.ID()),
		zap.Bool("apply_on_partial", cfg.ApplyOnPartial),
	)

	// Snapshot fan-out
	var publisher *boardcast.Publisher
	if cfg.RedisURL != "" {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := boardcast.Dial(dctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Fatal("redis_connect_failed", zap.Error(err))
		}
		publisher = boardcast.NewPublisher(rdb, cfg.SnapshotTTL(), cfg.HistoryLimit)
		sess.AddRenderer(publisher)
	}
	if cfg.DisplayBaseURL != "" {
		disp := display.NewClient(cfg.DisplayBaseURL,
			display.WithTimeout(cfg.DisplayTimeout()),
			display.WithRenderer(render.NewPNGRenderer(64), cat),
		)
		sess.AddRenderer(disp)
	}

	ws := segmentws.NewWebSocket(cfg.SegmentWSURL, cfg.WSMaxReconnect, time.Second)
	if cfg.SegmentAPIKey != "" {
		ws.SetHeaderProvider(func() map[string]string {
			return map[string]string{"X-Api-Key": cfg.SegmentAPIKey}
		})
	}
	ws.OnStateChange(func(state segmentws.WebSocketState) {
		logger.Info("segment_ws_state", zap.String("state", string(state)))
	})

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	// The reader goroutine delivers in order; reducing inline keeps it that way.
	ws.OnSegment(func(seg domain.Segment) {
		sess.HandleSegment(rootCtx, seg)
	})

	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		logger.Fatal("segment_ws_connect_failed", zap.String("url", cfg.SegmentWSURL), zap.Error(err))
	}
	cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown", zap.String("session_id", sess.ID()))

	stop()
	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	_ = ws.Close(sctx)
	if publisher != nil {
		_ = publisher.Close()
	}
}
