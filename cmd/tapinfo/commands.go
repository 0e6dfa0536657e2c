package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-spectap/dsp/spectrum"
	"github.com/cwbudde/algo-spectap/dsp/window"
	"github.com/cwbudde/algo-spectap/internal/cpu"
	"github.com/cwbudde/algo-spectap/viz"
	"github.com/sirupsen/logrus"
)

func runLayout(e *env, args []string) error {
	fs := e.newFlagSet("layout")
	bindTap(fs, &e.cfg.Tap)
	bindInput(fs, &e.cfg.Input)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	layout, err := spectrum.NewLayout(float64(e.cfg.Input.SampleRate), e.cfg.Tap.Bands)
	if err != nil {
		return err
	}

	frame := float64(e.cfg.Tap.FrameSize)
	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tCenter [Hz]\tCoeff\tFFT Bin\n")
	fmt.Fprintf(tw, "----\t-----------\t-----\t-------\n")

	for i, c := range layout.Centers() {
		fmt.Fprintf(tw, "%d\t%.1f\t%.6f\t%.2f\n", i, c, layout.Coeffs()[i], c*frame/layout.SampleRate())
	}

	return tw.Flush()
}

func runTone(e *env, args []string) error {
	fs := e.newFlagSet("tone")
	bindTap(fs, &e.cfg.Tap)
	bindInput(fs, &e.cfg.Input)
	freq := fs.Float64("freq", 1000, "tone frequency in Hz")
	amp := fs.Float64("amp", 0.8, "tone amplitude in [0, 1]")
	seconds := fs.Float64("seconds", 1, "tone duration")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	rate := e.cfg.Input.SampleRate
	clock := newMediaClock(max(rate, 1))
	col := viz.NewCollector(clock.Now)

	p, err := e.newProcessor(col, viz.NewLimiter(e.cfg.Tap.MaxFPS), clock.Now)
	if err != nil {
		return err
	}
	p.SetPlaying(true)

	n := int(math.Round(*seconds * float64(rate)))
	pcm := encodePCM16(sine(*freq, float64(rate), *amp, n), e.cfg.Input.Channels)
	frameBytes := 2 * e.cfg.Input.Channels

	for len(pcm) > 0 {
		chunk := pcm[:min(e.cfg.Input.ChunkBytes, len(pcm))]
		pcm = pcm[len(chunk):]

		p.QueueInput(chunk)
		p.Output()
		clock.Advance(len(chunk) / frameBytes)
	}

	snap, ok := col.Last()
	if !ok {
		return errors.New("no levels published; input shorter than one frame?")
	}

	st := p.Stats()
	e.log.WithFields(logrus.Fields{
		"snapshots": col.Len(),
		"analyzed":  st.FramesAnalyzed,
		"skipped":   st.FramesSkipped,
	}).Info("tone processed")

	return printLevels(e.stdout, p.Layout().Centers(), snap.Levels)
}

func runPCM(e *env, args []string) error {
	fs := e.newFlagSet("pcm")
	bindTap(fs, &e.cfg.Tap)
	bindInput(fs, &e.cfg.Input)
	path := fs.String("file", "", "raw interleaved PCM file (required)")
	queue := fs.Int("queue", 4, "bus queue capacity")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *path == "" {
		fmt.Fprintln(e.stderr, "pcm: -file is required")
		return errUsage
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	clock := newMediaClock(max(e.cfg.Input.SampleRate, 1))
	limiter := viz.NewLimiter(e.cfg.Tap.MaxFPS)
	bus := viz.NewBus(limiter,
		viz.WithQueueSize(*queue),
		viz.WithBusClock(clock.Now),
		viz.WithBusLogger(e.log),
	)

	out := e.stdout
	origin := clock.Now()
	bus.Subscribe(func(snap viz.Envelope) {
		fmt.Fprintf(out, "%8.3fs |%s|\n", snap.At.Sub(origin).Seconds(), barRow(snap.Levels))
	})

	if err := bus.Start(); err != nil {
		return err
	}
	defer bus.Close()

	p, err := e.newProcessor(bus, limiter, clock.Now)
	if err != nil {
		return err
	}
	p.SetPlaying(true)

	frameBytes := max(p.Format().BytesPerFrame(), 1)
	buf := make([]byte, e.cfg.Input.ChunkBytes)
	passed := 0

	for {
		n, err := io.ReadFull(f, buf)
		if n > 0 {
			p.QueueInput(buf[:n])
			passed += len(p.Output())
			clock.Advance(n / frameBytes)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", *path, err)
		}
	}

	p.QueueEndOfStream()
	waitDelivered(bus, time.Second)

	st := p.Stats()
	bs := bus.Stats()
	e.log.WithFields(logrus.Fields{
		"bytes":      passed,
		"duration":   clock.Elapsed().String(),
		"analyzed":   st.FramesAnalyzed,
		"skipped":    st.FramesSkipped,
		"failures":   st.Failures,
		"published":  bs.Published,
		"throttled":  bs.Throttled,
		"dropped":    bs.Dropped,
		"delivered":  bs.Delivered,
		"ended":      p.IsEnded(),
		"active_tap": p.Active(),
	}).Info("pcm processed")

	return nil
}

// waitDelivered gives the delivery goroutine time to drain the queue.
func waitDelivered(bus *viz.Bus, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		st := bus.Stats()
		if st.Delivered >= st.Published {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func runCompare(e *env, args []string) error {
	fs := e.newFlagSet("compare")
	bindTap(fs, &e.cfg.Tap)
	bindInput(fs, &e.cfg.Input)
	freq := fs.Float64("freq", 4000, "tone frequency in Hz")
	amp := fs.Float64("amp", 1, "tone amplitude")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	win, err := window.ParseType(e.cfg.Tap.Window)
	if err != nil {
		return err
	}

	rate := float64(e.cfg.Input.SampleRate)
	layout, err := spectrum.NewLayout(rate, e.cfg.Tap.Bands)
	if err != nil {
		return err
	}

	ref, err := spectrum.NewReference(e.cfg.Tap.FrameSize, win)
	if err != nil {
		return err
	}

	frame := sine(*freq, rate, *amp, e.cfg.Tap.FrameSize)
	bankLevels := make([]float64, layout.Len())
	refLevels := make([]float64, layout.Len())

	if err := spectrum.NewBank(win).Analyze(frame, layout, bankLevels); err != nil {
		return fmt.Errorf("bank: %w", err)
	}

	if err := ref.Analyze(frame, layout, refLevels); err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tCenter [Hz]\tGoertzel\tFFT\tDiff\n")
	fmt.Fprintf(tw, "----\t-----------\t--------\t---\t----\n")

	for i, c := range layout.Centers() {
		fmt.Fprintf(tw, "%d\t%.1f\t%.4f\t%.4f\t%+.4f\n", i, c, bankLevels[i], refLevels[i], bankLevels[i]-refLevels[i])
	}

	return tw.Flush()
}

func runCPU(e *env, args []string) error {
	fs := e.newFlagSet("cpu")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f := cpu.Detect()
	fmt.Fprintf(e.stdout, "%s\n", f)
	fmt.Fprintf(e.stdout, "best: %s\n", f.Best())

	return nil
}

// printLevels renders one row per band with a bar proportional to its level.
func printLevels(w io.Writer, centers, levels []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tCenter [Hz]\tLevel\t\n")

	for i, v := range levels {
		c := math.NaN()
		if i < len(centers) {
			c = centers[i]
		}
		fmt.Fprintf(tw, "%d\t%.1f\t%.3f\t%s\n", i, c, v, bar(v, 40))
	}

	return tw.Flush()
}

func bar(level float64, width int) string {
	n := int(math.Round(math.Max(0, math.Min(1, level)) * float64(width)))
	return strings.Repeat("#", n) + strings.Repeat(" ", width-n)
}

var blocks = []rune(" .:-=+*#%@")

// barRow renders levels as one character per band.
func barRow(levels []float64) string {
	var sb strings.Builder
	for _, v := range levels {
		i := int(math.Round(math.Max(0, math.Min(1, v)) * float64(len(blocks)-1)))
		sb.WriteRune(blocks[i])
	}
	return sb.String()
}
