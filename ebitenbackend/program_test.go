package ebitenbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flatVertexShader = `#version 410
in vec3 aVertexPosition;
in vec4 aVertexColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
void main(void) {
	gl_Position = uProjectionMatrix * uModelViewMatrix * vec4(aVertexPosition, 1.0);
}
`

const flatFragmentShader = `#version 410
out vec4 fragColor;
void main(void) {
	fragColor = vec4(1.0);
}
`

const sampledFragmentShader = `#version 410
uniform sampler2D uSampler;
out vec4 fragColor;
void main(void) {
	fragColor = vec4(1.0);
}
`

func TestParseProgramLocations(t *testing.T) {
	p, err := parseProgram(flatVertexShader, sampledFragmentShader)
	require.NoError(t, err)

	assert.Equal(t, int32(0), p.AttribLocation("aVertexPosition"))
	assert.Equal(t, int32(1), p.AttribLocation("aVertexColor"))
	assert.Equal(t, int32(-1), p.AttribLocation("aVertexNormal"))

	assert.Equal(t, int32(0), p.UniformLocation("uModelViewMatrix"))
	assert.Equal(t, int32(1), p.UniformLocation("uProjectionMatrix"))
	assert.Equal(t, int32(2), p.UniformLocation("uSampler"))
	assert.True(t, p.sampler)
}

func TestParseProgramIgnoresFragmentInputs(t *testing.T) {
	fs := "in vec4 vColor;\nout vec4 fragColor;\nvoid main(void) {}\n"
	p, err := parseProgram(flatVertexShader, fs)
	require.NoError(t, err)

	assert.Equal(t, int32(-1), p.AttribLocation("vColor"))
	assert.False(t, p.sampler)
}

func TestParseProgramErrors(t *testing.T) {
	testCases := []struct {
		name   string
		vs, fs string
	}{
		{"Vertex without main", "in vec3 aVertexPosition;\n", flatFragmentShader},
		{"Fragment without main", flatVertexShader, "out vec4 fragColor;\n"},
		{"Malformed input", "in vec3;\nvoid main(void) {}\n", flatFragmentShader},
		{"Malformed uniform", "in vec3 a;\nuniform mat4 x y;\nvoid main(void) {}\n", flatFragmentShader},
		{"No inputs", "uniform mat4 m;\nvoid main(void) {}\n", flatFragmentShader},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseProgram(tc.vs, tc.fs)
			assert.Error(t, err)
		})
	}
}
