package ebitenbackend

import (
	"strings"

	"github.com/pkg/errors"
)

// program stands in for a linked shader. Only the interface of the GLSL
// sources matters here: attribute and uniform names get locations in
// declaration order, and the vertex stage itself is run by the backend.
type program struct {
	attribs  map[string]int32
	uniforms map[string]int32
	sampler  bool
}

func (p *program) AttribLocation(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (p *program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func parseProgram(vertexSource, fragmentSource string) (*program, error) {
	p := &program{
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
	}

	if !strings.Contains(vertexSource, "void main") {
		return nil, errors.New("vertex shader: no main function")
	}
	if !strings.Contains(fragmentSource, "void main") {
		return nil, errors.New("fragment shader: no main function")
	}

	for _, stage := range []struct {
		name   string
		source string
		inputs bool
	}{
		{"vertex", vertexSource, true},
		{"fragment", fragmentSource, false},
	} {
		for n, line := range strings.Split(stage.source, "\n") {
			fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "in", "attribute":
				if !stage.inputs {
					continue
				}
				if len(fields) != 3 {
					return nil, errors.Errorf("%s shader line %d: malformed input %q", stage.name, n+1, line)
				}
				if _, ok := p.attribs[fields[2]]; !ok {
					p.attribs[fields[2]] = int32(len(p.attribs))
				}
			case "uniform":
				if len(fields) != 3 {
					return nil, errors.Errorf("%s shader line %d: malformed uniform %q", stage.name, n+1, line)
				}
				if _, ok := p.uniforms[fields[2]]; !ok {
					p.uniforms[fields[2]] = int32(len(p.uniforms))
				}
				if fields[1] == "sampler2D" {
					p.sampler = true
				}
			}
		}
	}

	if len(p.attribs) == 0 {
		return nil, errors.New("vertex shader declares no inputs")
	}
	return p, nil
}
