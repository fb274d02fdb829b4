package morph

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/whoisashish/Image-Transition/utils"
)

// ImageSource wraps a decoded image together with its natural pixel
// dimensions. The zero value represents an image that has not finished
// loading; sizing queries against it return ErrSizeNotReady.
type ImageSource struct {
	img    *image.NRGBA
	width  int
	height int
}

// NewImageSource normalizes a decoded image into an ImageSource.
func NewImageSource(img image.Image) *ImageSource {
	nrgba := ImgToNRGBA(img)
	return &ImageSource{
		img:    nrgba,
		width:  nrgba.Bounds().Dx(),
		height: nrgba.Bounds().Dy(),
	}
}

// Loaded reports whether pixels and dimensions are available.
func (s *ImageSource) Loaded() bool {
	return s != nil && s.img != nil
}

// Size returns the natural pixel dimensions.
func (s *ImageSource) Size() (w, h int, err error) {
	if !s.Loaded() {
		return 0, 0, ErrSizeNotReady
	}
	return s.width, s.height, nil
}

// FitSize answers the display sizing query: the largest size that fits
// within maxW x maxH while preserving the aspect ratio. Shrink only;
// an image smaller than the box keeps its natural size rather than
// upscaling.
func (s *ImageSource) FitSize(maxW, maxH int) (w, h int, err error) {
	if !s.Loaded() {
		return 0, 0, ErrSizeNotReady
	}
	scale := utils.Min(1.0, float64(maxW)/float64(s.width), float64(maxH)/float64(s.height))
	w = utils.Max(1, int(float64(s.width)*scale+0.5))
	h = utils.Max(1, int(float64(s.height)*scale+0.5))
	return w, h, nil
}

// Scaled resamples the image to w x h through a Catmull-Rom kernel.
// The natural-size case returns the backing image without copying.
func (s *ImageSource) Scaled(w, h int) (*image.NRGBA, error) {
	if !s.Loaded() {
		return nil, ErrSizeNotReady
	}
	if w == s.width && h == s.height {
		return s.img, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Blend cross-dissolves b over a into dst: out = (1-alpha)*a + alpha*b
// per channel. All three images must share dimensions. Hosts that
// composite the two morph buffers themselves (e.g. by stacking
// displays with an opacity) do not need this; it exists for writing
// single flattened frames.
func Blend(dst, a, b *image.NRGBA, alpha float64) {
	alpha = utils.Clamp(alpha, 0.0, 1.0)
	for i := range dst.Pix {
		av := float64(a.Pix[i])
		bv := float64(b.Pix[i])
		dst.Pix[i] = uint8(av + alpha*(bv-av) + 0.5)
	}
}

// ImgToNRGBA converts any image type to *image.NRGBA with min-point at
// (0, 0).
func ImgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
