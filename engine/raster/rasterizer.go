package raster

import (
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// Projector maps world-space points to screen pixels.
// camera.Camera satisfies it.
type Projector interface {
	Project(mvp mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y, depth float32, ok bool)
}

// Rasterizer draws meshes into a Frame on the CPU.
// When configured with more than one worker the viewport is split into horizontal bands
// that are filled concurrently; bands never share pixels so no locking is needed per pixel.
type Rasterizer interface {
	// DrawMesh projects and fills every triangle of mesh inside viewport.
	// Triangles with any vertex the projector rejects are skipped.
	//
	// Parameters:
	//   - frame: the render target
	//   - viewport: the frame region the projection maps onto
	//   - proj: the projector used for every vertex
	//   - mvp: the model-view-projection matrix
	//   - mesh: the triangles to draw
	//   - base: the color scaled by each triangle's shade
	//
	// Returns:
	//   - int: the number of triangles that survived projection
	DrawMesh(frame *Frame, viewport image.Rectangle, proj Projector, mvp mgl32.Mat4, mesh Mesh, base color.RGBA) int

	// Bands returns the number of bands a viewport is split into.
	//
	// Returns:
	//   - int: band count, 1 when rendering inline
	Bands() int
}

type rasterizerImpl struct {
	mu      *sync.Mutex
	workers int
	pool    worker.DynamicWorkerPool
	taskID  int

	// scratch holds projected triangles between frames to avoid reallocating.
	scratch []screenTriangle
}

// screenTriangle is a triangle after projection, in frame pixel coordinates.
type screenTriangle struct {
	x    [3]float32
	y    [3]float32
	z    [3]float32
	c    color.RGBA
	minY int
	maxY int
}

var _ Rasterizer = &rasterizerImpl{}

// NewRasterizer creates a Rasterizer. With one worker (the default) bands are drawn on the
// calling goroutine and no pool is created.
//
// Parameters:
//   - options: functional options to configure the rasterizer
//
// Returns:
//   - Rasterizer: the newly created rasterizer
func NewRasterizer(options ...RasterizerOption) Rasterizer {
	r := &rasterizerImpl{
		mu:      &sync.Mutex{},
		workers: 1,
	}
	for _, option := range options {
		option(r)
	}
	if r.workers > 1 {
		// Workers are started once and reused for every frame's bands.
		r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
		log.Printf("[Raster] band workers: %d", r.workers)
	}
	return r
}

func (r *rasterizerImpl) Bands() int {
	return r.workers
}

func (r *rasterizerImpl) DrawMesh(frame *Frame, viewport image.Rectangle, proj Projector, mvp mgl32.Mat4, mesh Mesh, base color.RGBA) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	viewport = viewport.Intersect(frame.Image.Bounds())
	if viewport.Empty() {
		return 0
	}
	vw, vh := viewport.Dx(), viewport.Dy()
	ox, oy := float32(viewport.Min.X), float32(viewport.Min.Y)

	tris := r.scratch[:0]
	for _, t := range mesh.Triangles {
		var st screenTriangle
		ok := true
		for i, v := range [3]mgl32.Vec3{t.A, t.B, t.C} {
			x, y, z, vok := proj.Project(mvp, v, vw, vh)
			if !vok {
				ok = false
				break
			}
			st.x[i], st.y[i], st.z[i] = x+ox, y+oy, z
		}
		if !ok {
			continue
		}
		st.c = shadeColor(base, t.Shade)
		st.minY = int(min(st.y[0], st.y[1], st.y[2]))
		st.maxY = int(max(st.y[0], st.y[1], st.y[2])) + 1
		tris = append(tris, st)
	}
	r.scratch = tris

	bands := r.workers
	if bands <= 1 || r.pool == nil || vh < bands {
		fillBand(frame, viewport, tris)
		return len(tris)
	}

	// Per-frame barrier. The pool's workers stay alive, so wait on the bands themselves.
	var wg sync.WaitGroup
	bandHeight := (vh + bands - 1) / bands
	for b := 0; b < bands; b++ {
		band := viewport
		band.Min.Y = viewport.Min.Y + b*bandHeight
		band.Max.Y = min(band.Min.Y+bandHeight, viewport.Max.Y)
		if band.Empty() {
			continue
		}
		wg.Add(1)
		id := r.taskID
		r.taskID++
		r.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fillBand(frame, band, tris)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return len(tris)
}

// fillBand rasterizes every triangle clipped to clip using edge functions sampled at pixel
// centers. Winding is ignored so both faces are filled.
func fillBand(frame *Frame, clip image.Rectangle, tris []screenTriangle) {
	for i := range tris {
		t := &tris[i]
		if t.maxY <= clip.Min.Y || t.minY >= clip.Max.Y {
			continue
		}

		area := edge(t.x[0], t.y[0], t.x[1], t.y[1], t.x[2], t.y[2])
		if area == 0 {
			continue
		}

		x0 := max(int(min(t.x[0], t.x[1], t.x[2])), clip.Min.X)
		x1 := min(int(max(t.x[0], t.x[1], t.x[2]))+1, clip.Max.X)
		y0 := max(t.minY, clip.Min.Y)
		y1 := min(t.maxY, clip.Max.Y)

		inv := 1 / area
		for py := y0; py < y1; py++ {
			sy := float32(py) + 0.5
			for px := x0; px < x1; px++ {
				sx := float32(px) + 0.5
				w0 := edge(t.x[1], t.y[1], t.x[2], t.y[2], sx, sy) * inv
				w1 := edge(t.x[2], t.y[2], t.x[0], t.y[0], sx, sy) * inv
				w2 := edge(t.x[0], t.y[0], t.x[1], t.y[1], sx, sy) * inv
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				depth := w0*t.z[0] + w1*t.z[1] + w2*t.z[2]
				frame.plot(px, py, depth, t.c)
			}
		}
	}
}

// FillTriangle fills a single screen-space triangle with a flat color and depth test.
//
// Parameters:
//   - frame: the render target
//   - a, b, c: vertices as (x, y, depth) in frame pixels
//   - col: fill color
func FillTriangle(frame *Frame, a, b, c mgl32.Vec3, col color.RGBA) {
	t := screenTriangle{
		x: [3]float32{a.X(), b.X(), c.X()},
		y: [3]float32{a.Y(), b.Y(), c.Y()},
		z: [3]float32{a.Z(), b.Z(), c.Z()},
		c: col,
	}
	t.minY = int(min(t.y[0], t.y[1], t.y[2]))
	t.maxY = int(max(t.y[0], t.y[1], t.y[2])) + 1
	fillBand(frame, frame.Image.Bounds(), []screenTriangle{t})
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func shadeColor(c color.RGBA, shade float32) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float32(v) * shade
		if f > 255 {
			return 255
		}
		if f < 0 {
			return 0
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
