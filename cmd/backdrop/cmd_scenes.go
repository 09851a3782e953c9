package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/ebitenhost"
	"github.com/phanxgames/backdrop/termhost"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scriptPath string
	dryRun     bool
)

// listCmd prints the registered scenes
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// runCmd opens a window
var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Run a scene in a window",
	Long: `Run a scene in an Ebitengine window. Escape quits and Space pauses.

If no graphics device is available the failure is logged and the command
exits cleanly: the decoration is simply absent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

// termCmd previews a scene in the terminal
var termCmd = &cobra.Command{
	Use:   "term [scene]",
	Short: "Preview a scene in the terminal",
	Long:  `Preview a scene with colored glyphs. q, Escape or Ctrl-C quits; Space pauses.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTerminal,
}

// captureCmd plays a script and writes screenshots
var captureCmd = &cobra.Command{
	Use:   "capture --script file [scene]",
	Short: "Play a script against a scene and capture screenshots",
	Example: `  backdrop capture --script tour.json spear
  backdrop capture --script tour.yaml --dry-run --seed 7 matrix`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapture,
}

func runList(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tLAYERS\tVERTICES")
	for _, name := range backdrop.Scenes() {
		sc, err := backdrop.NewScene(name, backdrop.Options{Seed: cfg.Seed})
		if err != nil {
			return err
		}
		comp := sc.Composition()
		fmt.Fprintf(w, "%s\t%d\t%d\n", name, len(comp.Layers), comp.VertexCount())
	}
	return w.Flush()
}

// sceneFromArgs constructs the scene named by the first argument or the
// configured default.
func sceneFromArgs(args []string) (backdrop.Scene, error) {
	name := cfg.Scene
	if len(args) > 0 {
		name = args[0]
	}
	sc, err := backdrop.NewScene(name, backdrop.Options{Seed: cfg.Seed})
	if err != nil {
		return nil, err
	}
	logger.Debug("scene created", zap.String("scene", name), zap.Uint64("seed", cfg.Seed))
	return sc, nil
}

// runConfig maps the loaded config onto the window host.
func runConfig() (ebitenhost.RunConfig, error) {
	bg, err := backdrop.ParseHex(cfg.Render.Background)
	if err != nil {
		return ebitenhost.RunConfig{}, fmt.Errorf("render.background: %w", err)
	}
	return ebitenhost.RunConfig{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		TPS:           cfg.Render.TPS,
		Background:    bg,
		Opacity:       cfg.Render.Opacity,
		FadeIn:        cfg.Render.FadeIn,
		ShowFPS:       cfg.Render.ShowFPS,
		Debug:         cfg.Render.Debug,
		ScreenshotDir: cfg.Render.ScreenshotDir,
		Logger:        logger,
	}, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	sc, err := sceneFromArgs(args)
	if err != nil {
		return err
	}
	rc, err := runConfig()
	if err != nil {
		return err
	}
	return runHost(sc, rc)
}

// runHost runs the window host. A failure to start rendering is not fatal:
// the decoration is optional, so it is logged and the command succeeds.
func runHost(sc backdrop.Scene, rc ebitenhost.RunConfig) error {
	err := ebitenhost.Run(sc, rc)
	if errors.Is(err, ebitenhost.ErrRun) {
		logger.Warn("rendering unavailable; decoration disabled", zap.String("scene", sc.Name()), zap.Error(err))
		return nil
	}
	return err
}

func runTerminal(cmd *cobra.Command, args []string) error {
	sc, err := sceneFromArgs(args)
	if err != nil {
		return err
	}
	bg, err := backdrop.ParseHex(cfg.Render.Background)
	if err != nil {
		return fmt.Errorf("render.background: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	if cfg.Terminal.Mouse {
		screen.EnableMouse(tcell.MouseMotionEvents)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := termhost.New(screen, termhost.Options{
		FPS:        cfg.Terminal.FPS,
		Background: bg,
		Logger:     logger,
	})
	return host.Run(ctx, sc)
}

func runCapture(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	script, err := backdrop.LoadScript(data)
	if err != nil {
		return err
	}
	sc, err := sceneFromArgs(args)
	if err != nil {
		return err
	}

	if dryRun {
		return playDry(cmd.Context(), cmd, sc, script)
	}

	rc, err := runConfig()
	if err != nil {
		return err
	}
	rc.Script = script
	rc.ExitOnScriptDone = true
	rc.FadeIn = 0
	return runHost(sc, rc)
}

// playDry plays the script on a manual clock and prints each screenshot
// label it would have captured.
func playDry(ctx context.Context, cmd *cobra.Command, sc backdrop.Scene, script *backdrop.ScriptRunner) error {
	loop := backdrop.NewManualLoop()
	m := backdrop.Mount(loop, sc)
	defer m.Unmount()

	tps := cfg.Render.TPS
	if tps <= 0 {
		tps = 60
	}
	if err := script.Play(loop, 1/float64(tps)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, label := range loop.Screenshots() {
		fmt.Fprintln(out, label)
	}
	logger.Info("script played",
		zap.String("scene", sc.Name()),
		zap.Int("frames", m.Frames()),
		zap.Float64("elapsed", loop.Elapsed()),
		zap.Int("screenshots", len(loop.Screenshots())))
	return nil
}
