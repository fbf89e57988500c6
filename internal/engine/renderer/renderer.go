// Package renderer draws the generated polytope geometry with OpenGL.
package renderer

import (
	_ "embed"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/scene"
	"github.com/Faultbox/hyperview/internal/engine/shader"
	"github.com/Faultbox/hyperview/internal/logger"
)

var (
	//go:embed shaders/polytope.vert
	vertexSource string
	//go:embed shaders/polytope.frag
	fragmentSource string
)

const (
	pointSize    = int32(unsafe.Sizeof(mesh.ColouredPoint{}))
	colourOffset = unsafe.Offsetof(mesh.ColouredPoint{}.Colour)
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background mesh.RGBA
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	faces, markers, edges vertexBuffer

	// uploaded is the buffer set currently on the GPU.
	uploaded *mesh.Buffers
}

// vertexBuffer is one primitive class on the GPU.
type vertexBuffer struct {
	vao, vbo uint32
	count    int32
	capacity int
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)

	var err error
	r.program, err = shader.NewProgram(vertexSource, fragmentSource,
		"uMVP", "uLightDir", "uAmbient", "uShade")
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	for _, vb := range []*vertexBuffer{&r.faces, &r.markers, &r.edges} {
		vb.init()
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (vb *vertexBuffer) init() {
	gl.GenVertexArrays(1, &vb.vao)
	gl.BindVertexArray(vb.vao)
	gl.GenBuffers(1, &vb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)

	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, pointSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, pointSize, colourOffset)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// upload replaces the buffer contents. The GPU store only grows.
func (vb *vertexBuffer) upload(points []mesh.ColouredPoint) {
	vb.count = int32(len(points))
	if len(points) == 0 {
		return
	}
	size := len(points) * int(pointSize)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	if size > vb.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&points[0]), gl.DYNAMIC_DRAW)
		vb.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&points[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (vb *vertexBuffer) draw(mode uint32) {
	if vb.count == 0 {
		return
	}
	gl.BindVertexArray(vb.vao)
	gl.DrawArrays(mode, 0, vb.count)
	gl.BindVertexArray(0)
}

func (vb *vertexBuffer) delete() {
	if vb.vao != 0 {
		gl.DeleteVertexArrays(1, &vb.vao)
	}
	if vb.vbo != 0 {
		gl.DeleteBuffers(1, &vb.vbo)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vb := range []*vertexBuffer{&r.faces, &r.markers, &r.edges} {
		vb.delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize sets the viewport in framebuffer pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders one buffer set. New buffers are uploaded once; a nil or
// empty set draws nothing. Opaque markers and edges go first, then the
// translucent faces without depth writes.
func (r *Renderer) Draw(b *mesh.Buffers, c scene.Constants) {
	if b.Empty() {
		return
	}
	if b != r.uploaded {
		r.faces.upload(b.Faces)
		r.markers.upload(b.Markers)
		r.edges.upload(b.Edges)
		r.uploaded = b
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, c.MVP.Ptr())
	d := c.Light.Direction
	gl.Uniform3f(r.program.Uniform("uLightDir"), d.X, d.Y, d.Z)
	gl.Uniform1f(r.program.Uniform("uAmbient"), c.Light.Ambient)

	gl.Uniform1i(r.program.Uniform("uShade"), 1)
	r.markers.draw(gl.TRIANGLES)
	if b.EdgeMode == mesh.EdgeTubes {
		r.edges.draw(gl.TRIANGLES)
	} else {
		gl.Uniform1i(r.program.Uniform("uShade"), 0)
		r.edges.draw(gl.LINES)
		gl.Uniform1i(r.program.Uniform("uShade"), 1)
	}

	gl.DepthMask(false)
	r.faces.draw(gl.TRIANGLES)
	gl.DepthMask(true)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows. Call it after
// drawing and before swapping.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	width, height := r.config.Width, r.config.Height
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
