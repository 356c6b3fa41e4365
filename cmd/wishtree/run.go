package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/wishtree/audio"
	"github.com/lixenwraith/wishtree/engine"
	"github.com/lixenwraith/wishtree/preview"
	"github.com/lixenwraith/wishtree/service"
	"github.com/lixenwraith/wishtree/status"
	"github.com/lixenwraith/wishtree/upload"
)

var (
	runFPS      int
	runGestures string
	runMute     bool
	runNoFeed   bool
	runInbox    string
)

var runCmd = &cobra.Command{
	Use:   "run [photo...]",
	Short: "Show the scene in the terminal",
	Long: `Show the scene in the terminal.

Controls:
  space   - Toggle tree / galaxy
  t / g   - Tree / galaxy
  n       - Focus next photo
  enter   - Select the focused or newest photo
  esc     - Leave focus
  w       - Make a wish
  arrows  - Orbit the camera
  + / -   - Zoom
  p       - Pause
  c       - Gesture capture on / off
  m       - Mute
  q       - Quit

Images dropped into the inbox directory join the gallery while the scene runs.`,
	RunE: runScene,
}

func init() {
	runCmd.Flags().IntVar(&runFPS, "fps", 0, "Tick rate, 0 keeps the tuning value")
	runCmd.Flags().StringVar(&runGestures, "gestures", "", "Gesture feed address, empty keeps the tuning value")
	runCmd.Flags().BoolVar(&runNoFeed, "no-gestures", false, "Start with gesture capture off")
	runCmd.Flags().StringVar(&runInbox, "inbox", "", "Directory watched for new photos, empty keeps the tuning value")
	runCmd.Flags().BoolVar(&runMute, "mute", false, "Start muted")
	rootCmd.AddCommand(runCmd)
}

func runScene(cmd *cobra.Command, args []string) error {
	if f := setupLogging(debugLog); f != nil {
		defer f.Close()
	}

	tuning, path, err := loadTuning()
	if err != nil {
		return err
	}
	if runFPS > 0 {
		tuning.Scene.TickRate = runFPS
	}
	if runGestures != "" {
		tuning.Gesture.FeedAddr = runGestures
	}
	if runInbox != "" {
		tuning.Upload.InboxDir = runInbox
	}
	tuning.Normalize()

	reg := status.NewRegistry()
	sc := engine.New(tuning, engine.WithRegistry(reg))

	uploader := upload.NewUploader(sc)
	for _, p := range args {
		if _, err := uploader.UploadFile(p); err != nil {
			fmt.Fprintf(os.Stderr, "wishtree: skipping %s: %v\n", p, err)
		}
	}

	sound := audio.NewSoundManager(tuning.Audio.Volume)
	sound.SetMuted(runMute)
	sc.OnWishPhase(sound.OnWishPhase)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	hub := service.NewHub()
	services := []service.Service{
		audioService(sound, tuning.Audio.Enabled),
		configService(path, sc),
		newGestureInput(tuning.Gesture.FeedAddr, sc, reg, !runNoFeed),
	}
	if tuning.Upload.InboxDir != "" {
		services = append(services, inboxService(upload.NewInbox(tuning.Upload.InboxDir, uploader, 0)))
	}
	for _, svc := range services {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}

	gestures := service.MustGet[*gestureInput](hub, "gesture")
	view := preview.New(screen, sc, preview.Toggles{
		Pause:    preview.ToggleFunc(sc.Clock().Toggle),
		Mute:     preview.ToggleFunc(sound.ToggleMute),
		Gestures: preview.ToggleFunc(gestures.Toggle),
		Muted:    sound.Muted,
		Capture:  gestures.Enabled,
	})
	loop := engine.NewLoop(sc, tuning.Scene.TickRate, view.Draw)
	loop.SetPanicHandler(func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\nwishtree crashed: %v\r\n%s\r\n", r, debug.Stack())
		os.Exit(1)
	})
	if err := hub.Register(loopService(loop)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hub.StartAll(ctx); err != nil {
		return err
	}
	err = view.Run(ctx)
	if stopErr := hub.StopAll(); stopErr != nil {
		log.Printf("[main] shutdown: %v", stopErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
