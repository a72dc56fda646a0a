package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexSourceGL = `#version 410 core
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_color;
uniform mat4 u_transform;
out vec3 v_color;
void main() {
    v_color = in_color;
    gl_Position = u_transform * vec4(in_position, 1.0);
}
`

const fragmentSourceGL = `#version 410 core
in vec3 v_color;
out vec4 fragColor;
uniform vec3 u_tint;
void main() { fragColor = vec4(v_color * u_tint, 1.0); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

// The ES variants are WebGL2 sources; they go through the translator before
// reaching a desktop context.
const vertexSourceGLES = `#version 300 es
precision highp float;
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_color;
uniform mat4 u_transform;
out vec3 v_color;
void main() {
    v_color = in_color;
    gl_Position = u_transform * vec4(in_position, 1.0);
}
`

const fragmentSourceGLES = `#version 300 es
precision mediump float;
in vec3 v_color;
out vec4 fragColor;
uniform vec3 u_tint;
void main() { fragColor = vec4(v_color * u_tint, 1.0); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// VertexSource returns the built-in vertex stage: position at location 0,
// color at location 1, transformed by the u_transform uniform.
func VertexSource(isGLES bool) string {
	if isGLES {
		return vertexSourceGLES
	}
	return vertexSourceGL
}

// FragmentSource returns the built-in fragment stage, which multiplies the
// interpolated color by the u_tint uniform.
func FragmentSource(isGLES bool) string {
	if isGLES {
		return fragmentSourceGLES
	}
	return fragmentSourceGL
}
