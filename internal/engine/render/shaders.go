package render

// Flat-color shaders shared by the arc, marker, and house meshes.

const flatVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;

uniform mat4 uMVP;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const flatFragmentShader = `#version 410 core
uniform vec4 uColor;

out vec4 fragColor;

void main() {
    fragColor = uColor;
}
`

const litVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;

uniform mat4 uMVP;

out vec3 vNormal;

void main() {
    vNormal = aNormal;
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const litFragmentShader = `#version 410 core
in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uLightDir;

out vec4 fragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), -normalize(uLightDir)), 0.0);
    vec3 shaded = uColor.rgb * (0.35 + 0.65 * diffuse);
    fragColor = vec4(shaded, uColor.a);
}
`
