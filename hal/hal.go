package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// CPU masks interrupt delivery and idles the processor.
//
// EnableAndHalt must be called with interrupts disabled. It unmasks and waits
// for the next interrupt as one step, so an interrupt raised while masked
// ends the wait immediately.
type CPU interface {
	DisableInterrupts()
	EnableInterrupts()
	EnableAndHalt()
}

// Interrupts installs handlers and turns on delivery.
//
// Handlers run in interrupt context: they must not block or allocate.
// Handlers must be installed before Enable.
type Interrupts interface {
	SetKeyboardHandler(fn func(scancode uint8))
	SetTimerHandler(fn func())
	Enable()
}

// Memory prepares the heap before any task runs.
type Memory interface {
	InitHeap() error
}

// ExitCode is reported to the test harness through Exit.
type ExitCode uint32

const (
	ExitSuccess ExitCode = 0x10
	ExitFailed  ExitCode = 0x11
)

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	CPU() CPU
	Interrupts() Interrupts
	Memory() Memory
	Exit(code ExitCode)
}
