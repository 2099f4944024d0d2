package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/rts-engine/engine/ai"
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/maplib"
	"github.com/1siamBot/rts-engine/engine/scenario"
	"github.com/1siamBot/rts-engine/engine/sprites"
	"github.com/1siamBot/rts-engine/engine/unit"
	"github.com/1siamBot/rts-engine/engine/world"
)

var (
	terrainColors = map[maplib.TerrainType]color.RGBA{
		maplib.TerrainGrass:  {60, 110, 50, 255},
		maplib.TerrainDirt:   {110, 85, 55, 255},
		maplib.TerrainSand:   {190, 170, 110, 255},
		maplib.TerrainWater:  {40, 70, 140, 255},
		maplib.TerrainRock:   {100, 100, 100, 255},
		maplib.TerrainCliff:  {70, 60, 55, 255},
		maplib.TerrainRoad:   {140, 125, 100, 255},
		maplib.TerrainForest: {30, 80, 35, 255},
	}
	teamColors = map[core.Team]color.RGBA{
		core.TeamNeutral: {200, 200, 200, 255},
		core.TeamRed:     {220, 50, 50, 255},
		core.TeamBlue:    {60, 110, 230, 255},
		core.TeamGreen:   {60, 200, 80, 255},
	}
	sheetColors = map[string]color.RGBA{
		"swordsman": {170, 170, 180, 255},
		"spearman":  {150, 120, 80, 255},
		"archer":    {90, 140, 70, 255},
		"mage":      {130, 80, 170, 255},
		"cleric":    {230, 220, 160, 255},
		"fireball":  {250, 140, 30, 255},
		"arrow":     {220, 220, 220, 255},
	}
)

// Game implements ebiten.Game interface
type Game struct {
	cfg   config.Config
	loop  *world.Loop
	atlas *sprites.Atlas
	face  text.Face

	// images converted from the atlas on first use
	images map[image.Image]*ebiten.Image

	viewer core.Team
	alpha  float64
	over   bool
}

func NewGame(cfg config.Config, loop *world.Loop, atlas *sprites.Atlas, viewer core.Team) *Game {
	return &Game{
		cfg:    cfg,
		loop:   loop,
		atlas:  atlas,
		face:   text.NewGoXFace(basicfont.Face7x13),
		images: make(map[image.Image]*ebiten.Image),
		viewer: viewer,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.loop.State == world.LoopPlaying {
			g.loop.Pause()
		} else if !g.over {
			g.loop.Play()
		}
	}
	g.alpha = g.loop.Update()
	if !g.over && len(g.loop.World.TeamAlive()) <= 1 {
		g.over = true
		g.loop.Pause()
		g.loop.World.Logger().Printf("match over at tick %d", g.loop.CurrentTick())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 20, 255})
	w := g.loop.World

	g.drawTiles(screen, w.Tiles())
	for _, o := range w.Obstacles() {
		r := o.Rect()
		x, y := g.toScreen(r.Min)
		vector.DrawFilledRect(screen, x, y, float32(r.Size.W)*g.cell(), float32(r.Size.H)*g.cell(), color.RGBA{85, 80, 75, 255}, false)
	}
	for _, c := range w.Corpses() {
		g.drawFrame(screen, c.Frame(), c.TopLeft(), c.Size())
	}
	for _, it := range w.Items() {
		c := it.Centre()
		if !w.Visible(g.viewer, c) {
			continue
		}
		x, y := g.toScreen(c)
		vector.DrawFilledCircle(screen, x, y, float32(it.Size().W/2)*g.cell(), color.RGBA{240, 200, 40, 255}, false)
	}
	for _, u := range w.Units() {
		if u.Team() != g.viewer && !w.Visible(g.viewer, u.Centre()) {
			continue
		}
		g.drawUnit(screen, u)
	}
	for _, s := range w.Statics() {
		g.drawFrame(screen, s.Frame(), s.TopLeft(), s.Size())
	}
	for _, p := range w.Projectiles() {
		tl := lerp(p.PrevTopLeft(), p.TopLeft(), g.alpha)
		g.drawFrame(screen, p.Frame(), tl, p.Size())
	}
	g.drawFog(screen, w.Fog(g.viewer))
	g.drawHUD(screen)
}

func (g *Game) drawTiles(screen *ebiten.Image, tm *maplib.TileMap) {
	cell := g.cell()
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			c := terrainColors[tm.At(x, y).Terrain]
			vector.DrawFilledRect(screen, float32(x)*cell, float32(y)*cell, cell, cell, c, false)
		}
	}
}

func (g *Game) drawUnit(screen *ebiten.Image, u *unit.Unit) {
	tl := lerp(u.PrevTopLeft(), u.TopLeft(), g.alpha)
	size := u.Size()
	cell := g.cell()

	cx, cy := g.toScreen(tl.Add(geom.Pt(size.W/2, size.H/2)))
	r := float32(size.W/2) * cell
	vector.StrokeCircle(screen, cx, cy, r+2, 2, teamColors[u.Team()], false)
	g.drawFrame(screen, u.Frame(), tl, size)

	if u.Dead() {
		return
	}
	// Health bar
	bx, by := g.toScreen(tl)
	bw := float32(size.W) * cell
	vector.DrawFilledRect(screen, bx, by-6, bw, 4, color.RGBA{40, 0, 0, 255}, false)
	vector.DrawFilledRect(screen, bx, by-6, bw*float32(u.HealthPercent()), 4, color.RGBA{60, 220, 60, 255}, false)
	if u.Level() > 0 {
		g.drawText(screen, fmt.Sprintf("%d", u.Level()), float64(bx+bw+2), float64(by-10), color.White)
	}
}

// drawFrame scales an atlas frame over the rect at tl, or falls back to a
// plain circle when the atlas has nothing for it.
func (g *Game) drawFrame(screen *ebiten.Image, f sprites.Frame, tl geom.Point, size geom.Size) {
	src, ok := g.atlas.Image(f)
	if !ok {
		x, y := g.toScreen(tl.Add(geom.Pt(size.W/2, size.H/2)))
		vector.DrawFilledCircle(screen, x, y, float32(size.W/2)*g.cell(), sheetColors[f.Sheet], false)
		return
	}
	img, ok := g.images[src]
	if !ok {
		img = ebiten.NewImageFromImage(src)
		g.images[src] = img
	}
	b := img.Bounds()
	x, y := g.toScreen(tl)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size.W*float64(g.cell())/float64(b.Dx()), size.H*float64(g.cell())/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func (g *Game) drawFog(screen *ebiten.Image, fog *world.Fog) {
	if fog == nil || !g.cfg.FogOfWar {
		return
	}
	cell := g.cell()
	for y := 0; y < fog.Height; y++ {
		for x := 0; x < fog.Width; x++ {
			var a uint8
			switch fog.Grid[y*fog.Width+x] {
			case world.FogShroud:
				a = 230
			case world.FogExplored:
				a = 120
			default:
				continue
			}
			vector.DrawFilledRect(screen, float32(x)*cell, float32(y)*cell, cell, cell, color.RGBA{0, 0, 0, a}, false)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.loop.World
	alive := w.TeamAlive()
	status := "playing"
	switch {
	case g.over:
		status = "over"
	case g.loop.State != world.LoopPlaying:
		status = "paused"
	}
	hud := fmt.Sprintf("Tick: %d  TPS: %.0f  [%s]  red: %d  blue: %d",
		w.CurrentTick(), ebiten.ActualTPS(), status, alive[core.TeamRed], alive[core.TeamBlue])
	ebitenutil.DebugPrint(screen, hud)
	g.drawText(screen, "P: pause   viewing as "+g.viewer.String(), 8, float64(g.cfg.ScreenHeight-20), color.White)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}

func (g *Game) cell() float32 { return float32(g.cfg.TilePixels) }

// toScreen maps a world point to pixels. Tile (0, 0) is centred on the
// world origin, so the map starts half a tile up and left of it.
func (g *Game) toScreen(p geom.Point) (float32, float32) {
	c := g.cell()
	return float32(p.X+0.5) * c, float32(p.Y+0.5) * c
}

func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
}

// loadAtlas reads <dir>/<sheet>/<sequence>.png strips for every known sheet.
// Without a directory every sheet gets a one-frame placeholder.
func loadAtlas(dir string, cell, frameW int) (*sprites.Atlas, int, error) {
	atlas := sprites.NewAtlas(cell)
	loaded := 0
	for sheet, seqs := range sprites.DefaultCatalog() {
		for seq := range seqs {
			if dir == "" {
				ph := sprites.Placeholder(sheetColors[sheet], cell)
				if err := atlas.AddStrip(sheet, seq, geom.Down, ph, cell); err != nil {
					return nil, 0, err
				}
				continue
			}
			path := filepath.Join(dir, sheet, seq.String()+".png")
			err := atlas.LoadStrip(sheet, seq, geom.Down, path, frameW)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, 0, err
			}
			loaded++
		}
	}
	return atlas, loaded, nil
}

func main() {
	var (
		scenarioName = flag.String("scenario", "skirmish", "built-in scenario ("+strings.Join(scenario.Names(), ", ")+")")
		mapPath      = flag.String("map", "", "JSON map file")
		configPath   = flag.String("config", "", "JSON config file")
		spriteDir    = flag.String("sprites", "", "directory of <sheet>/<sequence>.png strips")
		frameW       = flag.Int("frame", 32, "frame width of sprite strips in pixels")
		seed         = flag.Int64("seed", 1, "AI random seed")
		viewTeam     = flag.Int("team", int(core.TeamRed), "team whose fog of war is shown")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	atlas, loaded, err := loadAtlas(*spriteDir, cfg.TilePixels, *frameW)
	if err != nil {
		log.Fatal(err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	opts := []world.Option{world.WithLogger(logger)}
	if loaded > 0 {
		opts = append(opts, world.WithSprites(atlas))
	}

	var w *world.World
	if *mapPath != "" {
		w, err = scenario.FromMap(*mapPath, cfg, opts...)
	} else {
		w, err = scenario.Build(*scenarioName, cfg, opts...)
	}
	if err != nil {
		log.Fatal(err)
	}
	logger.Printf("match %s: %d sprite strips loaded", w.MatchID(), loaded)

	loop := world.NewLoop(w, scenario.Controllers(w, ai.DiffMedium, *seed)...)
	loop.Play()

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("RTS Engine - " + w.Tiles().Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TicksPerSecond() * 3)

	if err := ebiten.RunGame(NewGame(cfg, loop, atlas, core.Team(*viewTeam))); err != nil {
		log.Fatal(err)
	}
}
