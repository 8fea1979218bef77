package animation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestProgress(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		duration time.Duration
		elapsed  time.Duration
		want     float64
	}{
		{"at anchor", 3 * time.Second, 0, 1},
		{"half way", 4 * time.Second, 2 * time.Second, 0.5},
		{"elapsed", 3 * time.Second, 5 * time.Second, 0},
		{"clock behind anchor", 3 * time.Second, -time.Second, 1},
		{"zero duration", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(anchor, tt.duration, anchor.Add(tt.elapsed)); got != tt.want {
				t.Errorf("Progress = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Progress(time.Time{}, time.Second, anchor); got != 0 {
		t.Errorf("Progress without anchor = %v", got)
	}
}

func TestCountdownDisplay(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 3},
		{100 * time.Millisecond, 3},
		{time.Second, 2},
		{1500 * time.Millisecond, 2},
		{2900 * time.Millisecond, 1},
		{10 * time.Second, 1},
	}
	for _, tt := range tests {
		if got := CountdownDisplay(anchor, 3*time.Second, anchor.Add(tt.elapsed)); got != tt.want {
			t.Errorf("elapsed %v: got %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestEngineFramesUntilStopped(t *testing.T) {
	var frames atomic.Int32
	engine := New(Config{FrameInterval: 5 * time.Millisecond}, func(time.Time) {
		frames.Add(1)
	})

	engine.Start(context.Background())
	if !engine.Running() {
		t.Fatal("engine not running after Start")
	}
	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if frames.Load() < 3 {
		t.Fatalf("frames = %d", frames.Load())
	}

	engine.Stop()
	engine.Stop()
	if engine.Running() {
		t.Error("engine running after Stop")
	}
	time.Sleep(20 * time.Millisecond)
	settled := frames.Load()
	time.Sleep(30 * time.Millisecond)
	if frames.Load() != settled {
		t.Error("frames delivered after Stop")
	}
}

func TestEngineRestartReplacesLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var frames atomic.Int32
	engine := New(Config{}, func(time.Time) { frames.Add(1) })
	if engine.config.FrameInterval != DefaultConfig().FrameInterval {
		t.Errorf("FrameInterval = %v", engine.config.FrameInterval)
	}
	engine.Start(ctx)
	engine.Start(ctx)
	engine.Stop()
}
