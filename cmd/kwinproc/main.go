package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"log"

	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	"github.com/shindogauge/knet"
)

// stationSummary is the per-file report written alongside each processed
// WIN32 stream: enough to triage a batch of recordings without re-running
// the DSP stack.
type stationSummary struct {
	StationCode      string    `json:"station_code"`
	SampleRate       uint16    `json:"sample_rate"`
	SecondBlocks     int       `json:"second_blocks"`
	ConsistentChans  bool      `json:"consistent_channels"`
	MinMaxChannels   []int     `json:"min_max_channels"`
	DuplicateSeconds int       `json:"duplicate_seconds"`
	PeakShindo       float64   `json:"peak_shindo"`
	PeakSVA          float64   `json:"peak_sva"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// process_win32 decodes a single .kwin file, runs the Shindo and LPGM
// pipelines over its first channel of each component, and writes a JSON
// summary report into outdir_uri, or next to the source file when
// outdir_uri is empty.
func process_win32(win_uri, outdir_uri string) error {
	log.Println("Processing WIN32:", win_uri)

	raw, err := os.ReadFile(win_uri)
	if err != nil {
		return err
	}

	dir, file := filepath.Split(win_uri)
	if outdir_uri == "" {
		outdir_uri = dir
	}

	log.Println("Decoding header and second blocks")
	data, err := knet.ParseWin32(raw)
	if err != nil {
		return err
	}

	summary := stationSummary{ProcessedAt: time.Now()}
	if data.StationInfo != nil {
		summary.StationCode = data.StationInfo.StationCode
		summary.SampleRate = data.StationInfo.SampleRate
	}
	summary.SecondBlocks = len(data.Seconds)

	log.Println("Computing QA summary")
	qa := data.QInfo()
	summary.ConsistentChans = qa.ConsistentChannels
	summary.MinMaxChannels = qa.MinMaxChannelCounts
	summary.DuplicateSeconds = len(qa.DuplicateTimestamps)

	log.Println("Running Shindo and LPGM pipelines")
	sample_rate := float64(summary.SampleRate)
	if sample_rate <= 0 {
		sample_rate = 100
	}
	dt := 1.0 / sample_rate

	shindo_filter := knet.NewDefaultRealtimeShindoFilter(dt, knet.Float64Ops{})
	lpgm := knet.NewDefaultRealtimeLPGMCalculator(sample_rate)

	var peak_v float64
	for _, sec := range data.Seconds {
		for _, ch := range sec.Channels {
			for _, sample := range ch.Data {
				v := shindo_filter.Update(float64(sample))
				if v > peak_v {
					peak_v = v
				}
			}
		}
		if len(sec.Channels) >= 3 {
			for i := range sec.Channels[0].Data {
				if i >= len(sec.Channels[1].Data) || i >= len(sec.Channels[2].Data) {
					break
				}
				accel := knet.Vec3{
					X: float32(sec.Channels[0].Data[i]),
					Y: float32(sec.Channels[1].Data[i]),
					Z: float32(sec.Channels[2].Data[i]),
				}
				lpgm.Update(accel)
			}
		}
	}
	summary.PeakShindo = knet.Intensity(peak_v)
	summary.PeakSVA = lpgm.MaxSVA()

	log.Println("Writing report")
	out_uri := filepath.Join(outdir_uri, file+"-report.json")
	f, err := os.Create(out_uri)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}

	log.Println("Finished WIN32:", win_uri)
	return nil
}

// process_win32_list submits every .kwin file under dir to a bounded
// worker pool, mirroring the teacher's convert_gsf_list batch command.
func process_win32_list(dir, outdir_uri string) error {
	log.Println("Searching dir:", dir)

	var items []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".kwin" {
			items = append(items, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Println("Number of WIN32 files to process:", len(items))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		item_uri := name
		pool.Submit(func() {
			if err := process_win32(item_uri, outdir_uri); err != nil {
				log.Println("Error processing", item_uri, ":", err)
			}
		})
	}

	return nil
}

func main() {
	app := &cli.App{
		Name:  "kwinproc",
		Usage: "Decode Kyoshin WIN32 strong-motion recordings and report Shindo/LPGM peaks",
		Commands: []*cli.Command{
			{
				Name: "process",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "win-uri",
						Usage: "Pathname to a WIN32 (.kwin) file.",
					},
					&cli.StringFlag{
						Name:  "outdir-uri",
						Usage: "Pathname to an output directory.",
					},
				},
				Action: func(cCtx *cli.Context) error {
					return process_win32(cCtx.String("win-uri"), cCtx.String("outdir-uri"))
				},
			},
			{
				Name: "process-dir",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Pathname to a directory containing WIN32 files.",
					},
					&cli.StringFlag{
						Name:  "outdir-uri",
						Usage: "Pathname to an output directory.",
					},
				},
				Action: func(cCtx *cli.Context) error {
					return process_win32_list(cCtx.String("dir"), cCtx.String("outdir-uri"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
