package orbit3d

// Attribute and uniform names shared by every program.
const (
	AttribPosition = "aVertexPosition"
	AttribColor    = "aVertexColor"
	AttribNormal   = "aVertexNormal"
	AttribUV       = "aTextureCoord"

	UniformModelView  = "uModelViewMatrix"
	UniformProjection = "uProjectionMatrix"
	UniformSampler    = "uSampler"
)

const colorVertexShader = `#version 410
in vec3 aVertexPosition;
in vec4 aVertexColor;
in vec3 aVertexNormal;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

out vec4 vColor;
out float vLight;

void main(void) {
	gl_Position = uProjectionMatrix * uModelViewMatrix * vec4(aVertexPosition, 1.0);
	vec3 n = normalize(mat3(uModelViewMatrix) * aVertexNormal);
	vLight = 0.35 + 0.65 * max(dot(n, normalize(vec3(0.5, 0.7, 1.0))), 0.0);
	vColor = aVertexColor;
}
`

const colorFragmentShader = `#version 410
in vec4 vColor;
in float vLight;
out vec4 fragColor;

void main(void) {
	fragColor = vec4(vColor.rgb * vLight, vColor.a);
}
`

const textureVertexShader = `#version 410
in vec3 aVertexPosition;
in vec4 aVertexColor;
in vec3 aVertexNormal;
in vec2 aTextureCoord;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

out vec4 vColor;
out vec2 vTextureCoord;
out float vLight;

void main(void) {
	gl_Position = uProjectionMatrix * uModelViewMatrix * vec4(aVertexPosition, 1.0);
	vec3 n = normalize(mat3(uModelViewMatrix) * aVertexNormal);
	vLight = 0.35 + 0.65 * max(dot(n, normalize(vec3(0.5, 0.7, 1.0))), 0.0);
	vColor = aVertexColor;
	vTextureCoord = aTextureCoord;
}
`

const textureFragmentShader = `#version 410
in vec4 vColor;
in vec2 vTextureCoord;
in float vLight;

uniform sampler2D uSampler;

out vec4 fragColor;

void main(void) {
	vec4 texel = texture(uSampler, vTextureCoord);
	fragColor = vec4(texel.rgb * vColor.rgb * vLight, texel.a * vColor.a);
}
`
