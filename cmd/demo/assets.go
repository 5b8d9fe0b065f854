package main

import (
	"image"
	"image/color"
)

// checker is a size x size checkerboard of 8x8 blocks.
func checker(size int, c1, c2 color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	blockSize := max(size/8, 1)

	for y := range size {
		for x := range size {
			if ((x/blockSize)+(y/blockSize))%2 == 0 {
				img.SetRGBA(x, y, c1)
			} else {
				img.SetRGBA(x, y, c2)
			}
		}
	}
	return img
}
