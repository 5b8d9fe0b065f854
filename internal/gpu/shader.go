package gpu

import (
	"fmt"
	"log/slog"

	"render2d/core"
	"render2d/internal/reactable"
)

// ShaderSource is a vertex/fragment GLSL pair.
type ShaderSource struct {
	Vertex, Fragment string
}

// ShaderProgram is a linked GLSL program for one item type.
type ShaderProgram struct {
	gl        GL
	name      string
	batchType reactable.BatchType
	source    ShaderSource
	logger    *slog.Logger

	// samplers maps sampler uniforms to the texture unit they read.
	samplers map[string]int32

	program     uint32
	initialized bool
	locations   map[string]int32
	batchSize   uint32

	subs []*reactable.Subscription
}

// NewShaderProgram creates a program that compiles itself on
// GLContextCreated. samplers may be nil.
func NewShaderProgram(gl GL, bus *reactable.Bus, name string, batchType reactable.BatchType, source ShaderSource, samplers map[string]int32, logger *slog.Logger) (*ShaderProgram, error) {
	switch {
	case gl == nil:
		return nil, core.NilArgument("gl")
	case bus == nil:
		return nil, core.NilArgument("bus")
	case logger == nil:
		return nil, core.NilArgument("logger")
	}

	s := &ShaderProgram{
		gl:        gl,
		name:      name,
		batchType: batchType,
		source:    source,
		samplers:  samplers,
		logger:    logger.With("shader", name),
	}
	reactorName := name + "-shader"
	s.subs = append(s.subs,
		bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:   reactable.GLContextCreated,
			Name: reactorName,
			OnReceive: func(struct{}) {
				if err := s.Init(); err != nil {
					s.logger.Error("shader init failed", "err", err)
				}
			},
		}),
		bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:        reactable.SystemShuttingDown,
			Name:      reactorName,
			OnReceive: func(struct{}) { s.Dispose() },
		}),
		bus.BatchSize.Subscribe(reactable.Reactor[reactable.BatchSizeData]{
			ID:        reactable.BatchSizeChanged,
			Name:      reactorName,
			OnReceive: s.onBatchSize,
		}),
	)
	return s, nil
}

// Init compiles and links the program.
func (s *ShaderProgram) Init() error {
	if s.initialized {
		return nil
	}
	prog, err := s.gl.CreateProgram(s.source.Vertex, s.source.Fragment)
	if err != nil {
		return fmt.Errorf("%s shader: %w", s.name, err)
	}
	s.program = prog
	s.initialized = true
	s.gl.ObjectLabel(LabelProgram, prog, s.name+" shader")
	s.logger.Debug("shader program linked", "program", prog)
	return nil
}

// Use binds the program and sets its sampler uniforms. Uniform locations are
// looked up on the first call and cached.
func (s *ShaderProgram) Use() error {
	if !s.initialized {
		return fmt.Errorf("%s: use: %w", s.name, ErrShaderNotInitialized)
	}
	s.gl.UseProgram(s.program)

	if s.locations == nil {
		s.locations = make(map[string]int32, len(s.samplers))
		for name := range s.samplers {
			s.locations[name] = s.gl.GetUniformLocation(s.program, name)
		}
	}
	for name, unit := range s.samplers {
		s.gl.Uniform1i(s.locations[name], unit)
	}
	return nil
}

func (s *ShaderProgram) Name() string                   { return s.name }
func (s *ShaderProgram) Program() uint32                { return s.program }
func (s *ShaderProgram) Initialized() bool              { return s.initialized }
func (s *ShaderProgram) BatchType() reactable.BatchType { return s.batchType }

// BatchSize is the last batch size announced for this program's item type.
func (s *ShaderProgram) BatchSize() uint32 { return s.batchSize }

// Dispose drops the subscriptions and deletes the program. Safe to call more
// than once.
func (s *ShaderProgram) Dispose() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	if !s.initialized {
		return
	}
	s.gl.DeleteProgram(s.program)
	s.program = 0
	s.initialized = false
	s.locations = nil
	s.logger.Debug("shader program deleted")
}

func (s *ShaderProgram) onBatchSize(d reactable.BatchSizeData) {
	if d.TypeOfBatch != s.batchType {
		return
	}
	s.batchSize = d.Size
}
