//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

func xImageToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("screen pixels: empty image data")
	}
	bpp := 0
	for _, format := range setup.PixmapFormats {
		if format.Depth == reply.Depth {
			bpp = int(format.BitsPerPixel) / 8
			break
		}
	}
	return convertBGRA(reply.Data, int(reply.Depth), bpp, width, height)
}

// convertBGRA turns a ZPixmap in the server's B,G,R[,A] byte order into RGBA.
// Depth 24 carries no alpha and is made opaque.
func convertBGRA(data []byte, depth, bpp, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen has empty geometry")
	}
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported pixel format: depth %d, %d bytes per pixel", depth, bpp)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bpp {
		return nil, fmt.Errorf("screen pixels: unexpected stride")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			off := x * bpp
			a := byte(0xFF)
			if bpp >= 4 && depth == 32 {
				a = row[off+3]
			}
			pix := img.PixOffset(x, y)
			img.Pix[pix+0] = row[off+2]
			img.Pix[pix+1] = row[off+1]
			img.Pix[pix+2] = row[off]
			img.Pix[pix+3] = a
		}
	}
	return img, nil
}
