package gpu

// MainTextureSampler is the sampler uniform of the texture and font shaders.
const MainTextureSampler = "mainTexture"

// TextureShader samples a texture and multiplies it by the vertex tint.
var TextureShader = ShaderSource{
	Vertex: `
#version 410 core
layout(location = 0) in vec2 vertexPos;
layout(location = 1) in vec2 texCoord;
layout(location = 2) in vec4 tintColor;

out vec2 fragTexCoord;
out vec4 fragTint;

void main() {
    gl_Position  = vec4(vertexPos, 0.0, 1.0);
    fragTexCoord = texCoord;
    fragTint     = tintColor;
}
`,
	Fragment: `
#version 410 core
in vec2 fragTexCoord;
in vec4 fragTint;

out vec4 outColor;

uniform sampler2D mainTexture;

void main() {
    outColor = texture(mainTexture, fragTexCoord) * fragTint;
}
`,
}

// FontShader reads glyph coverage from the red channel of a font atlas.
var FontShader = ShaderSource{
	Vertex: TextureShader.Vertex,
	Fragment: `
#version 410 core
in vec2 fragTexCoord;
in vec4 fragTint;

out vec4 outColor;

uniform sampler2D mainTexture;

void main() {
    float coverage = texture(mainTexture, fragTexCoord).r;
    outColor = vec4(fragTint.rgb, fragTint.a * coverage);
}
`,
}

// RectShader evaluates a rounded rectangle signed distance field per
// fragment. rectangle is (centerX, centerY, width, height) in window space.
var RectShader = ShaderSource{
	Vertex: `
#version 410 core
layout(location = 0) in vec2  vertexPos;
layout(location = 1) in vec4  rectangle;
layout(location = 2) in vec4  color;
layout(location = 3) in float isSolid;
layout(location = 4) in float borderThickness;
layout(location = 5) in float topLeftRadius;
layout(location = 6) in float bottomLeftRadius;
layout(location = 7) in float bottomRightRadius;
layout(location = 8) in float topRightRadius;

out vec4  fragRect;
out vec4  fragColor;
flat out float fragIsSolid;
flat out float fragBorder;
flat out vec4  fragRadius;

void main() {
    gl_Position = vec4(vertexPos, 0.0, 1.0);
    fragRect    = rectangle;
    fragColor   = color;
    fragIsSolid = isSolid;
    fragBorder  = borderThickness;
    // x: top-right, y: bottom-right, z: top-left, w: bottom-left
    fragRadius  = vec4(topRightRadius, bottomRightRadius, topLeftRadius, bottomLeftRadius);
}
`,
	Fragment: `
#version 410 core
in vec4  fragRect;
in vec4  fragColor;
flat in float fragIsSolid;
flat in float fragBorder;
flat in vec4  fragRadius;

out vec4 outColor;

float roundedBox(vec2 p, vec2 halfSize, vec4 r) {
    r.xy = (p.x > 0.0) ? r.xy : r.zw;
    r.x  = (p.y > 0.0) ? r.x  : r.y;
    vec2 q = abs(p) - halfSize + r.x;
    return min(max(q.x, q.y), 0.0) + length(max(q, 0.0)) - r.x;
}

void main() {
    vec2 p = gl_FragCoord.xy - fragRect.xy;
    vec2 halfSize = fragRect.zw * 0.5;
    float d = roundedBox(p, halfSize, fragRadius);

    float alpha = 1.0 - smoothstep(-0.5, 0.5, d);
    if (fragIsSolid < 0.5) {
        float inner = 1.0 - smoothstep(-0.5, 0.5, d + fragBorder);
        alpha = alpha - inner;
    }
    outColor = vec4(fragColor.rgb, fragColor.a * alpha);
}
`,
}

// LineShader fills the quad a segment is expanded into.
var LineShader = ShaderSource{
	Vertex: `
#version 410 core
layout(location = 0) in vec2 vertexPos;
layout(location = 1) in vec4 color;

out vec4 fragColor;

void main() {
    gl_Position = vec4(vertexPos, 0.0, 1.0);
    fragColor   = color;
}
`,
	Fragment: `
#version 410 core
in vec4 fragColor;
out vec4 outColor;

void main() {
    outColor = fragColor;
}
`,
}
