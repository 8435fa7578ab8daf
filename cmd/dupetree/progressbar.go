package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	dupetree "github.com/dupetree/dupetree/pkg"
)

// startProgress renders a live spinner on stderr fed by the pipeline
// counters. The returned stop function must be called once the pipeline
// has finished; it takes a final snapshot and finishes the bar.
func startProgress(stats *dupetree.Stats) (stop func()) {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionThrottle(120*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		var lastBytes int64
		lastAt := time.Now()

		for {
			select {
			case <-done:
				snap := stats.Snapshot()
				bar.Set64(snap.BytesRead)
				return
			case <-ticker.C:
				snap := stats.Snapshot()
				bar.Set64(snap.BytesRead)

				now := time.Now()
				rate := float64(snap.BytesRead-lastBytes) / now.Sub(lastAt).Seconds() / (1024 * 1024)
				lastBytes = snap.BytesRead
				lastAt = now

				bar.Describe(fmt.Sprintf("%d files, %d hashed, %.1f MB/s",
					snap.FilesDiscovered, snap.PartialHashed+snap.FullHashed, rate))
			}
		}
	}()

	return func() {
		close(done)
		<-finished
		bar.Finish()
	}
}
