package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/wishtree/clock"
	"github.com/lixenwraith/wishtree/config"
	"github.com/lixenwraith/wishtree/engine"
	"github.com/lixenwraith/wishtree/scene"
	"github.com/lixenwraith/wishtree/status"
)

var (
	simTicks  int
	simWish   bool
	simMode   string
	simPhotos int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the scene headless and print final metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if f := setupLogging(debugLog); f != nil {
			defer f.Close()
		}
		tuning, _, err := loadTuning()
		if err != nil {
			return err
		}
		return simulate(cmd.OutOrStdout(), tuning, simOptions{
			ticks:  simTicks,
			wish:   simWish,
			mode:   simMode,
			photos: simPhotos,
		})
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 600, "Ticks to run")
	simulateCmd.Flags().BoolVar(&simWish, "wish", false, "Trigger a wish on the first tick")
	simulateCmd.Flags().StringVar(&simMode, "mode", "tree", "Starting mode: tree or galaxy")
	simulateCmd.Flags().IntVar(&simPhotos, "photos", 0, "Blank photos to upload before the run")
	rootCmd.AddCommand(simulateCmd)
}

type simOptions struct {
	ticks  int
	wish   bool
	mode   string
	photos int
}

// simulate runs a fixed number of ticks on a mock clock so output depends only on tuning and options
func simulate(w io.Writer, tuning config.Tuning, opt simOptions) error {
	kind, ok := scene.ParseModeKind(opt.mode)
	if !ok {
		return fmt.Errorf("unknown mode %q", opt.mode)
	}
	if opt.ticks < 0 {
		return fmt.Errorf("ticks must not be negative: %d", opt.ticks)
	}

	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	reg := status.NewRegistry()
	sc := engine.New(tuning, engine.WithClock(mock), engine.WithRegistry(reg))

	sc.Post(func(s *scene.Store) {
		for i := 0; i < opt.photos; i++ {
			mock.Advance(time.Millisecond)
			s.UploadPhoto(scene.ImageRef{Source: fmt.Sprintf("blank-%d", i)})
		}
		if kind == scene.KindGalaxy {
			s.SetMode(scene.Galaxy())
		}
		if opt.wish {
			s.TriggerWish()
		}
	})

	step := time.Second / time.Duration(sc.Tuning().Scene.TickRate)
	for i := 0; i < opt.ticks; i++ {
		mock.Advance(step)
		sc.Advance()
	}
	if opt.ticks == 0 {
		sc.Tick(0, 0)
	}

	for _, line := range reg.Lines() {
		fmt.Fprintln(w, line)
	}
	return nil
}
