package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"

	"render2d/config"
	"render2d/core"
	"render2d/internal/opengl"
	"render2d/internal/reactable"
	"render2d/math"
	"render2d/renderer"
	"render2d/window"
)

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Window, GL and renderers ─────────────────────────────────────────────
	bus := reactable.NewBus()

	win, err := window.New(cfg.Window, bus, logger)
	if err != nil {
		return err
	}
	defer win.Destroy()

	gl, err := opengl.Init(logger)
	if err != nil {
		return err
	}
	// GPU objects are released while the context is still alive.
	defer bus.Shutdown()
	services, err := renderer.NewServices(gl, bus, logger)
	if err != nil {
		return err
	}
	r, err := renderer.New(services)
	if err != nil {
		return err
	}

	cfg.Batch.Publish(bus)
	width, height := win.FramebufferSize()
	bus.SetViewport(uint32(width), uint32(height))
	bus.ContextCreated()

	// ── Content ──────────────────────────────────────────────────────────────
	checkerTex, err := gl.UploadTexture("checker", checker(64,
		color.RGBA{R: 230, G: 230, B: 230, A: 255},
		color.RGBA{R: 60, G: 60, B: 70, A: 255}))
	if err != nil {
		return err
	}
	defer gl.DeleteTexture(checkerTex)

	atlas, err := DefaultAtlas(gl.UploadTexture)
	if err != nil {
		return err
	}
	defer gl.DeleteTexture(atlas.Atlas())

	dayNight := NewDayNight()
	overlay := &DebugOverlay{}

	var (
		dnKeyWasDown bool
		frameCount   int
		displayFPS   int
		elapsed      float32
		deltaTime    float32
		lastTime     = time.Now()
		fpsLastTime  = lastTime
	)

	logger.Info("demo running", "keys", "N=pause day/night  Esc=quit")
	for !win.ShouldClose() {
		win.PollEvents()

		if win.IsKeyPressed(glfw.KeyEscape) {
			win.Close()
		}
		// N key — pause/resume day/night cycle
		nDown := win.IsKeyPressed(glfw.KeyN)
		if nDown && !dnKeyWasDown {
			dayNight.Active = !dayNight.Active
			logger.Info("day/night toggled", "running", dayNight.Active)
		}
		dnKeyWasDown = nDown

		dayNight.Update(deltaTime)
		elapsed += deltaTime

		fbw, fbh := win.FramebufferSize()
		w, h := float32(fbw), float32(fbh)

		overlay.Clear()
		overlay.AddLine("FPS: %d", displayFPS)
		overlay.AddLine("Time: %s (%s)", dayNight.TimeOfDayStr(),
			map[bool]string{true: "running", false: "paused"}[dayNight.Active])
		overlay.AddLine("N=pause  Esc=quit")

		r.Batcher.Clear()
		r.Batcher.Begin()
		err := drawFrame(r, dayNight, overlay, atlas, checkerTex, w, h, elapsed)
		if endErr := r.Batcher.End(); endErr != nil {
			err = errors.Join(err, endErr)
		}
		if err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		win.SwapBuffers()

		frameCount++
		now := time.Now()
		deltaTime = float32(now.Sub(lastTime).Seconds())
		lastTime = now
		if now.Sub(fpsLastTime) >= time.Second {
			displayFPS = frameCount
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Window.Title, frameCount))
			frameCount = 0
			fpsLastTime = now
		}
	}

	logger.Info("exiting")
	return nil
}

// drawFrame queues the whole scene. Layers: sky -10, sprites 0, shapes 5,
// lines 6, overlay 100.
func drawFrame(
	r *renderer.Renderers,
	dayNight *DayNight,
	overlay *DebugOverlay,
	atlas *Atlas,
	sprite *core.Texture,
	w, h, t float32,
) error {
	if err := dayNight.Draw(r, w, h, -10); err != nil {
		return err
	}

	// ── Sprites: a ring of spinning, flipped checker tiles ──────────────────
	const sprites = 8
	center := math.NewVec2(w/2, h/2)
	for i := range sprites {
		a := t*0.5 + float32(i)*2*math32.Pi/sprites
		pos := center.Add(math.NewVec2(math32.Cos(a), math32.Sin(a)).Mul(h * 0.3))
		effects := core.EffectNone
		if i%2 == 1 {
			effects = core.EffectFlipHorizontal | core.EffectFlipVertical
		}
		err := r.Texture.RenderRegion(sprite, renderer.TextureParams{
			Src:     core.Rect{Width: 64, Height: 64},
			Dest:    core.Rect{X: pos.X, Y: pos.Y, Width: 64, Height: 64},
			Size:    0.75 + 0.25*math32.Sin(t+float32(i)),
			Angle:   t * 45,
			Effects: effects,
			Layer:   0,
		})
		if err != nil {
			return err
		}
	}

	// ── Shapes: solid gradient panel and an outlined rounded frame ──────────
	err := r.Rect.Render(renderer.RectShape{
		Position:      center,
		Width:         220,
		Height:        120,
		IsSolid:       true,
		CornerRadius:  core.CornerRadius{TopLeft: 30, BottomRight: 30},
		Gradient:      core.GradientHorizontal,
		GradientStart: core.ColorRGBA(255, 120, 40, 230),
		GradientStop:  core.ColorRGBA(120, 40, 255, 230),
	}, 5)
	if err != nil {
		return err
	}
	err = r.Rect.Render(renderer.RectShape{
		Position:        center,
		Width:           260,
		Height:          160,
		Color:           core.ColorWhite,
		BorderThickness: 4,
		CornerRadius:    core.UniformCornerRadius(16),
	}, 5)
	if err != nil {
		return err
	}

	// ── Lines: a sweeping fan under the panel ────────────────────────────────
	for i := 0; i < 12; i++ {
		a := t + float32(i)*math32.Pi/6
		end := center.Add(math.NewVec2(math32.Cos(a), math32.Sin(a)).Mul(h * 0.45))
		start := center.Lerp(end, 0.15)
		c := core.Color{R: 1, G: float32(i) / 12, B: 0.3, A: 0.8}
		if err := r.Line.RenderLine(start, end, c, 1+float32(i%3), 6); err != nil {
			return err
		}
	}

	if err := r.Font.Render(atlas, "render2d\nbatched OpenGL 2D", w/2-60, h-40, renderer.TextParams{
		Size:  1.5,
		Tint:  core.ColorYellow,
		Layer: 100,
	}); err != nil {
		return err
	}
	return overlay.Draw(r, atlas, 100)
}
