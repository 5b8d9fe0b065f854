package opengl

import (
	"fmt"
	"image"
	"image/draw"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render2d/core"
)

// UploadTexture copies img to a new GPU texture.
// Call this from the goroutine that owns the GL context.
func (g *GL) UploadTexture(name string, img image.Image) (*core.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture %q: nil image", name)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("texture %q has no pixel data", name)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	g.logger.Debug("texture uploaded", "name", name, "id", id)

	return &core.Texture{
		ID:     id,
		Name:   name,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}, nil
}

// DeleteTexture frees a previously uploaded GPU texture and zeroes its ID.
func (g *GL) DeleteTexture(tex *core.Texture) {
	if tex == nil || tex.ID == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.ID)
	tex.ID = 0
}
