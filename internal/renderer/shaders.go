package renderer

import (
	"go.uber.org/zap"

	"Domino3D/internal/logger"
)

// =============================================================
//
//	Shader programs
//
// =============================================================

// ShaderProgram is one compiled-variant description. The external GPU backend
// compiles Sources once per program ID; materials only reference it.
type ShaderProgram struct {
	ID             uint32
	Algorithm      ShadingAlgorithm
	Textured       bool
	VertexSource   string
	FragmentSource string
}

type programKey struct {
	algorithm ShadingAlgorithm
	textured  bool
}

// ProgramLibrary hands out exactly one ShaderProgram per (algorithm, textured) variant
type ProgramLibrary struct {
	programs map[programKey]*ShaderProgram
	nextID   uint32
}

func NewProgramLibrary() *ProgramLibrary {
	return &ProgramLibrary{programs: make(map[programKey]*ShaderProgram)}
}

// Program returns the shared program for the variant, building it on first request
func (pl *ProgramLibrary) Program(algorithm ShadingAlgorithm, textured bool) *ShaderProgram {
	key := programKey{algorithm: algorithm, textured: textured}
	if p, ok := pl.programs[key]; ok {
		return p
	}

	pl.nextID++
	p := &ShaderProgram{ID: pl.nextID, Algorithm: algorithm, Textured: textured}
	header := "#version 330 core\n"
	if textured {
		header += "#define USE_TEXTURE\n"
	}
	if algorithm == VertexShading {
		p.VertexSource = header + lightingUniformsSource + gouraudVertexShaderSource + "\x00"
		p.FragmentSource = header + gouraudFragmentShaderSource + "\x00"
	} else {
		p.VertexSource = header + phongVertexShaderSource + "\x00"
		p.FragmentSource = header + lightingUniformsSource + phongFragmentShaderSource + "\x00"
	}
	pl.programs[key] = p

	logger.Log.Debug("Shader program created",
		zap.Uint32("programID", p.ID),
		zap.String("algorithm", algorithm.String()),
		zap.Bool("textured", textured))
	return p
}

// Len returns the number of distinct programs
func (pl *ProgramLibrary) Len() int {
	return len(pl.programs)
}

var lightingUniformsSource = `
uniform vec3 diffuseColor;
uniform float roughness;
uniform float metalness;
uniform vec3 ambientLightColor;
uniform vec3 viewPos;

struct PointLight {
    vec3 position;
    vec3 color;
    float intensity;
};
uniform PointLight pointLights[3];
uniform int numActiveLights;

vec3 illuminate(vec3 normal, vec3 worldPos) {
    vec3 color = ambientLightColor * diffuseColor;
    vec3 viewDir = normalize(viewPos - worldPos);
    for (int i = 0; i < 3; i++) {
        if (i >= numActiveLights) break;
        vec3 lightDir = normalize(pointLights[i].position - worldPos);
        vec3 radiance = pointLights[i].color * pointLights[i].intensity;
        float diffuseFactor = max(dot(normal, lightDir), 0.0);
        vec3 halfwayDir = normalize(lightDir + viewDir);
        float specularFactor = pow(max(dot(normal, halfwayDir), 0.0), 32.0 + 64.0 * metalness);
        color += radiance * diffuseFactor * diffuseColor + radiance * specularFactor * metalness;
    }
    color = mix(color, color * (1.0 - roughness * 0.5), roughness);
    return clamp(color, 0.0, 1.0);
}
`

var gouraudVertexShaderSource = `
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inTexCoord;
layout(location = 2) in vec3 inNormal;

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 vColor;
out vec2 fragTexCoord;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    vColor = illuminate(normalize(mat3(model) * inNormal), worldPos.xyz);
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * worldPos;
}
`

var gouraudFragmentShaderSource = `
in vec3 vColor;
in vec2 fragTexCoord;
uniform sampler2D textureSampler;
out vec4 FragColor;

void main() {
    vec3 color = vColor;
#ifdef USE_TEXTURE
    color *= texture(textureSampler, fragTexCoord).rgb;
#endif
    FragColor = vec4(color, 1.0);
}
`

var phongVertexShaderSource = `
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inTexCoord;
layout(location = 2) in vec3 inNormal;

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 Normal;
out vec3 FragPos;
out vec2 fragTexCoord;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    FragPos = worldPos.xyz;
    Normal = mat3(model) * inNormal;
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * worldPos;
}
`

var phongFragmentShaderSource = `
in vec3 Normal;
in vec3 FragPos;
in vec2 fragTexCoord;
uniform sampler2D textureSampler;
out vec4 FragColor;

void main() {
    vec3 color = illuminate(normalize(Normal), FragPos);
#ifdef USE_TEXTURE
    color *= texture(textureSampler, fragTexCoord).rgb;
#endif
    FragColor = vec4(color, 1.0);
}
`
