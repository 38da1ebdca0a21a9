package engine

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// OpenGLPresenter uploads frames to a texture and draws it on a fullscreen quad
type OpenGLPresenter struct {
	width         int
	height        int
	shaderProgram uint32
	frameTexture  uint32
	quadVAO       uint32
	quadVBO       uint32

	textureLocation int32
}

// NewOpenGLPresenter creates a presenter for frames of width x height.
// The GL context must be current.
func NewOpenGLPresenter(width, height int) (*OpenGLPresenter, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	p := &OpenGLPresenter{}
	if err := p.initOpenGL(); err != nil {
		return nil, err
	}
	p.UpdateResolution(width, height)
	return p, nil
}

// initOpenGL initializes OpenGL resources
func (p *OpenGLPresenter) initOpenGL() error {
	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	var err error
	if p.shaderProgram, err = createShaderProgram(presentVertexShader, presentFragmentShader); err != nil {
		return err
	}
	p.textureLocation = gl.GetUniformLocation(p.shaderProgram, gl.Str("frameTexture\x00"))

	gl.GenTextures(1, &p.frameTexture)
	gl.BindTexture(gl.TEXTURE_2D, p.frameTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	// Строки image.RGBA не выровнены на 4 байта в общем случае
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	p.setupScreenQuad()
	return nil
}

// setupScreenQuad creates a full-screen quad. Texture rows run top to
// bottom like image.RGBA, so V is flipped.
func (p *OpenGLPresenter) setupScreenQuad() {
	vertices := []float32{
		// Positions   // Texture coords
		-1.0, -1.0, 0.0, 0.0, 1.0,
		1.0, -1.0, 0.0, 1.0, 1.0,
		1.0, 1.0, 0.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &p.quadVAO)
	gl.GenBuffers(1, &p.quadVBO)
	gl.BindVertexArray(p.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Texture coord attribute
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// UpdateResolution reallocates the frame texture
func (p *OpenGLPresenter) UpdateResolution(width, height int) {
	if width <= 0 || height <= 0 || (width == p.width && height == p.height) {
		return
	}
	p.width = width
	p.height = height

	gl.BindTexture(gl.TEXTURE_2D, p.frameTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
}

// Present uploads img and draws it over the whole window
func (p *OpenGLPresenter) Present(img *image.RGBA, winWidth, winHeight int) {
	gl.Viewport(0, 0, int32(winWidth), int32(winHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if img == nil {
		return
	}

	b := img.Bounds()
	p.UpdateResolution(b.Dx(), b.Dy())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.frameTexture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(b.Dx()), int32(b.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.UseProgram(p.shaderProgram)
	gl.Uniform1i(p.textureLocation, 0)

	// Draw fullscreen quad
	gl.BindVertexArray(p.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

// Close releases GL objects
func (p *OpenGLPresenter) Close() {
	gl.DeleteTextures(1, &p.frameTexture)
	gl.DeleteBuffers(1, &p.quadVBO)
	gl.DeleteVertexArrays(1, &p.quadVAO)
	gl.DeleteProgram(p.shaderProgram)
}

// createShaderProgram compiles and links a shader program from source
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	// Vertex shader
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	// Fragment shader
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	// Create program and attach shaders
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Check for linking errors
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Шейдеры уже слинкованы в программу
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	// Check for compilation errors
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}
