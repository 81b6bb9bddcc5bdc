// Package tui renders the listing page in a terminal and maps mouse drags and
// keys onto viewer and page operations.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/listing"
	"github.com/xkilldash9x/spinview/internal/viewer"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	// cellPixels converts a column of mouse travel into pointer units so a
	// terminal drag feels like a browser drag of the same physical length.
	cellPixels = 8.0

	inviteStep = 10
	monthStep  = 1
)

// Slider picks which estimate control the up and down keys move.
type Slider int

const (
	SliderInvites Slider = iota
	SliderMonths
)

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleSold    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHotspot = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleAccent  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// App drives one terminal session.
type App struct {
	screen tcell.Screen
	page   *listing.Page
	logger *zap.Logger

	slider  Slider
	pressed bool
	dirty   atomic.Bool
}

// New wraps an initialised screen. The caller owns the screen and must Fini it.
func New(screen tcell.Screen, page *listing.Page, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		screen: screen,
		page:   page,
		logger: logger.Named("tui"),
	}
	a.dirty.Store(true)
	page.OnChange(func() { a.dirty.Store(true) })
	page.Carousel().OnSelect = func(index int) {
		a.logger.Debug("Photo selected", zap.Int("index", index))
	}
	screen.EnableMouse()
	return a
}

// Slider reports the focused estimate control.
func (a *App) Slider() Slider { return a.slider }

// Run processes input and redraws until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// Screen finalised.
				return
			}
			eventChan <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !a.HandleEvent(ctx, ev) {
				a.logger.Debug("Quit requested")
				return nil
			}
		case <-ticker.C:
			if a.dirty.Swap(false) {
				a.Draw()
			}
		}
	}
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !a.handleKey(ctx, ev) {
			return false
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	a.dirty.Store(true)
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.page.Carousel().Prev()
	case tcell.KeyRight:
		a.page.Carousel().Next()
	case tcell.KeyTab:
		a.slider = (a.slider + 1) % 2
	case tcell.KeyUp:
		a.adjustSlider(1)
	case tcell.KeyDown:
		a.adjustSlider(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'v':
			if err := a.page.ToggleView(ctx); err != nil {
				a.logger.Error("Failed to switch view", zap.Error(err))
			}
		case ' ':
			if v := a.page.Viewer(); v != nil {
				v.Activate()
			}
		case 'r':
			if v := a.page.Viewer(); v != nil {
				v.Reset()
			}
		case 'h':
			if v := a.page.Viewer(); v != nil {
				v.ToggleHotspots()
			}
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			// Thumbnails past the end of the gallery are ignored.
			_ = a.page.Carousel().Select(int(ev.Rune() - '1'))
		}
	}
	return true
}

func (a *App) adjustSlider(dir int) {
	est := a.page.Estimator()
	if a.slider == SliderMonths {
		est.AdjustMonths(dir * monthStep)
		return
	}
	est.AdjustInvites(dir * inviteStep)
}

// handleMouse turns button 1 presses inside the media pane into pointer
// events. A press on a static, loaded viewer activates it; the drag starts
// with the next press.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	v := a.page.Viewer()
	if v == nil {
		a.pressed = false
		return
	}

	x, y := ev.Position()
	inside := a.mediaPane().contains(x, y)
	down := ev.Buttons()&tcell.Button1 != 0
	px, py := float64(x)*cellPixels, float64(y)*cellPixels

	switch {
	case down && !a.pressed:
		if !inside {
			return
		}
		a.pressed = true
		if v.Mode() == viewer.ModeStatic {
			v.Activate()
			return
		}
		v.PointerDown(viewer.SourceMouse, px, py)
	case down && a.pressed:
		if !inside {
			v.PointerLeave()
			return
		}
		v.PointerMove(px, py)
	case !down && a.pressed:
		a.pressed = false
		v.PointerUp()
	}
}

func (a *App) mediaPane() rect {
	w, h := a.screen.Size()
	return rect{x: 1, y: 4, w: max(w-2, 1), h: max(h-9, 1)}
}

// Draw renders the whole page.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	d := a.page.Details()

	drawText(a.screen, 1, 0, styleTitle, fmt.Sprintf("%d %s", d.Year, d.Model))
	if d.SoldOut {
		label := " SOLD OUT "
		drawText(a.screen, w-runewidth.StringWidth(label)-1, 0, styleSold, label)
	}
	drawText(a.screen, 1, 1, styleAccent, d.Price)
	drawText(a.screen, 1, 2, styleDim, strings.Join([]string{d.Mileage, d.FuelType, d.Transmission}, " · "))

	pane := a.mediaPane()
	drawBox(a.screen, rect{x: pane.x - 1, y: pane.y - 1, w: pane.w + 2, h: pane.h + 2})
	if v := a.page.Viewer(); v != nil {
		a.drawSpin(pane, v.State())
	} else {
		a.drawGallery(pane)
	}

	drawText(a.screen, 1, h-3, styleDefault, a.estimateLine())
	drawText(a.screen, 1, h-1, styleDim, helpLine)
	a.screen.Show()
}

const helpLine = "v view · space activate · r reset · h hotspots · ←/→/1-9 photos · tab/↑/↓ estimate · q quit"

func (a *App) drawGallery(pane rect) {
	c := a.page.Carousel()
	drawText(a.screen, pane.x+1, pane.y, styleTitle, fmt.Sprintf("%s of %d", c.Label(), c.Len()))
	drawText(a.screen, pane.x+1, pane.y+1, styleDim, truncate(c.Current(), pane.w-2))

	var dots strings.Builder
	for i := 0; i < c.Len(); i++ {
		if i == c.Index() {
			dots.WriteString("● ")
		} else {
			dots.WriteString("○ ")
		}
	}
	drawText(a.screen, pane.x+1, pane.y+pane.h-1, styleDefault, dots.String())
}

func (a *App) drawSpin(pane rect, st viewer.State) {
	drawText(a.screen, pane.x+1, pane.y, styleTitle, spinStatus(st))
	drawText(a.screen, pane.x+1, pane.y+1, styleDim, truncate(st.Locator, pane.w-2))
	if st.Mode == viewer.ModeRotating {
		ind := st.Indicator()
		drawText(a.screen, pane.x+pane.w-runewidth.StringWidth(ind)-1, pane.y+pane.h-1, styleDefault, ind)
	}

	for i, hs := range st.Hotspots {
		hx := pane.x + int(hs.X/100*float64(pane.w-1))
		hy := pane.y + int(hs.Y/100*float64(pane.h-1))
		a.screen.SetContent(hx, hy, '●', nil, styleHotspot)
		drawText(a.screen, pane.x+1, pane.y+pane.h-1-len(st.Hotspots)+i, styleHotspot,
			truncate(fmt.Sprintf("● %s: %s", hs.Title, hs.Description), pane.w/2))
	}
}

// spinStatus is the headline of the 360° pane.
func spinStatus(st viewer.State) string {
	switch {
	case !st.Ready:
		return fmt.Sprintf("Loading 360° view... %d/%d", st.Preload.Loaded+st.Preload.Failed, st.Preload.Total)
	case st.Mode == viewer.ModeStatic:
		return "Click or press space to activate 360° view"
	case st.Dragging:
		return "Rotating"
	default:
		return "Drag to rotate"
	}
}

func (a *App) estimateLine() string {
	est := a.page.Estimator()
	invites := fmt.Sprintf("Invites %d %s", est.Invites(), bar(est.InvitesPercent(), 10))
	months := fmt.Sprintf("Months %d %s", est.Months(), bar(est.MonthsPercent(), 10))
	if a.slider == SliderInvites {
		invites = "▸" + invites
	} else {
		months = "▸" + months
	}
	return fmt.Sprintf("%s  %s  Estimate %s", invites, months, est.FormatTotal())
}

func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func drawBox(s tcell.Screen, r rect) {
	for x := r.x + 1; x < r.x+r.w-1; x++ {
		s.SetContent(x, r.y, tcell.RuneHLine, nil, styleBorder)
		s.SetContent(x, r.y+r.h-1, tcell.RuneHLine, nil, styleBorder)
	}
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		s.SetContent(r.x, y, tcell.RuneVLine, nil, styleBorder)
		s.SetContent(r.x+r.w-1, y, tcell.RuneVLine, nil, styleBorder)
	}
	s.SetContent(r.x, r.y, tcell.RuneULCorner, nil, styleBorder)
	s.SetContent(r.x+r.w-1, r.y, tcell.RuneURCorner, nil, styleBorder)
	s.SetContent(r.x, r.y+r.h-1, tcell.RuneLLCorner, nil, styleBorder)
	s.SetContent(r.x+r.w-1, r.y+r.h-1, tcell.RuneLRCorner, nil, styleBorder)
}
