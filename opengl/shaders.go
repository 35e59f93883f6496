//go:build !nogl
// +build !nogl

package opengl

// sources contains the GLSL sources of the shaders, by file name.
var sources = map[string]string{
	"disc.vert": `#version 330 core
layout(location = 0) in vec2 pos;
layout(location = 1) in float radius;
layout(location = 2) in float shade;

uniform vec2 size;   // extent of the tank, y pointing down
uniform float scale; // pixels per tank unit

out float vshade;

void main() {
	gl_Position = vec4(2 * pos.x / size.x - 1, 1 - 2 * pos.y / size.y, 0, 1);
	gl_PointSize = 2 * radius * scale;
	vshade = shade;
}
`,
	"disc.frag": `#version 330 core
in float vshade;

uniform vec3 color;

out vec4 frag;

void main() {
	vec2 c = 2 * gl_PointCoord - 1;
	if (dot(c, c) > 1) {
		discard;
	}
	frag = vec4(mix(0.4 * color, color, vshade), 1);
}
`,
	"wall.vert": `#version 330 core
layout(location = 0) in vec2 pos;

uniform vec2 size;

void main() {
	gl_Position = vec4(2 * pos.x / size.x - 1, 1 - 2 * pos.y / size.y, 0, 1);
}
`,
	"wall.frag": `#version 330 core
uniform vec3 color;

out vec4 frag;

void main() {
	frag = vec4(color, 1);
}
`,
}
