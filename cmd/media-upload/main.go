// cmd/media-upload ingests a single file through the full upload pipeline
// without requiring the NATS daemon.
//
// Usage:
//   ./media-upload -input photo.jpg -watermark 3
//   ./media-upload -input clip.mp4
//   ./media-upload -input clip.mp4 -probe  # Show video metadata only
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ajur-media/fsnews.media/internal/config"
	"github.com/ajur-media/fsnews.media/internal/convert"
	"github.com/ajur-media/fsnews.media/internal/worker"
)

func main() {
	input := flag.String("input", "", "Input file path (required)")
	watermark := flag.Int("watermark", 0, "Watermark corner for photos (0=off, 1=TL, 2=TR, 3=BR, 4=BL)")
	probe := flag.Bool("probe", false, "Show video metadata only (don't upload)")
	timeout := flag.Int("timeout", 120, "Processing timeout in seconds")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Parse()

	if *input == "" {
		fmt.Println("Error: -input flag is required")
		flag.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(*input); err != nil {
		fmt.Fprintf(os.Stderr, "input file not found: %s\n", *input)
		os.Exit(1)
	}

	_ = godotenv.Load()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeout)*time.Second)
	defer cancel()

	if *probe {
		info, err := convert.NewProber(cfg.FFprobe).Probe(ctx, *input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Duration: %d seconds (%s)\n", info.Duration, convert.FormatTimestamp(info.Duration))
		fmt.Printf("Bitrate:  %d bit/s\n", info.Bitrate)
		return
	}

	dispatcher := worker.NewDispatcher(cfg, logger)

	start := time.Now()
	out, err := dispatcher.Upload(ctx, *input, *watermark)
	if err != nil {
		fmt.Fprintf(os.Stderr, "upload failed: %v\n", err)
		if out != nil && out.ErrorMessage != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", out.ErrorMessage)
		}
		os.Exit(1)
	}

	fmt.Printf("Stored as:  %s\n", out.GetString("filename"))
	fmt.Printf("Type:       %s (%s)\n", out.GetString("type"), out.GetString("mime"))
	fmt.Printf("Path:       %s\n", out.GetString("path"))
	fmt.Printf("Status:     %s\n", out.GetString("status"))
	fmt.Printf("Time:       %v\n", time.Since(start).Round(time.Millisecond))

	if thumbs := out.Thumbnails(); len(thumbs) > 0 {
		fmt.Println("Derivatives:")
		for _, t := range thumbs {
			fmt.Printf("  %-10s %dx%d  %s\n", t.SizeKey, t.Width, t.Height, t.Target)
		}
	}
	for _, msg := range out.Messages {
		fmt.Printf("Note: %s\n", msg)
	}
}
