package render

import (
	"depot3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// boxMesh is a unit cube with a lit material. It is created on first draw so that GPU
// resources are allocated after the window/OpenGL context exists.
type boxMesh struct {
	mesh     rl.Mesh
	mtl      rl.Material
	loaded   bool
	viewPos  [3]float32
	lightDir [3]float32
}

func newBoxMesh() *boxMesh {
	return &boxMesh{lightDir: [3]float32{0.4, 1, 0.6}}
}

// setView sets the camera position for specular lighting. Call once per frame before drawing.
func (b *boxMesh) setView(pos geom.Vec3) {
	b.viewPos = [3]float32{pos.X, pos.Y, pos.Z}
}

func (b *boxMesh) ensure() {
	if b.loaded {
		return
	}
	b.mesh = rl.GenMeshCube(1, 1, 1)
	b.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		b.mtl.Shader = shader
	}
	b.loaded = true
}

// unload releases the GPU resources.
func (b *boxMesh) unload() {
	if !b.loaded {
		return
	}
	rl.UnloadMesh(&b.mesh)
	rl.UnloadMaterial(b.mtl)
	b.loaded = false
}

// draw draws one box centered at center with the given size and tint.
// Must be called between BeginMode3D and EndMode3D.
func (b *boxMesh) draw(center, size geom.Vec3, tint rl.Color) {
	b.ensure()
	if albedo := b.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	b.setUniforms()
	sx, sy, sz := size.X, size.Y, size.Z
	if sy == 0 {
		sy = 0.001
	}
	scaleM := rl.MatrixScale(sx, sy, sz)
	transM := rl.MatrixTranslate(center.X, center.Y, center.Z)
	rl.DrawMesh(b.mesh, b.mtl, rl.MatrixMultiply(scaleM, transM))
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform float lightIntensity;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), 32.0) * specularStrength;
  finalColor = vec4(amb + diffuse + vec3(spec) * (NdotL > 0.0 ? 1.0 : 0.0), tint.a);
}
`
)

// ambient is high so the light-grey archive reads well from every side.
var ambient = [4]float32{0.55, 0.56, 0.58, 1.0}

const (
	lightIntensity   = float32(0.5)
	specularStrength = float32(0.15)
)

func (b *boxMesh) setUniforms() {
	shader := b.mtl.Shader
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{b.viewPos[0], b.viewPos[1], b.viewPos[2]}
	lightDir := [3]float32{b.lightDir[0], b.lightDir[1], b.lightDir[2]}
	amb := [4]float32{ambient[0], ambient[1], ambient[2], ambient[3]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}
