package capture

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// Fixed detection resolution.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrDecode is returned when the bytes are not a decodable image.
var ErrDecode = errors.New("failed to decode image")

// Decode turns encoded image bytes into a BGR frame, optionally scaled to
// DefaultWidth x DefaultHeight. The caller is responsible for closing the
// returned Mat.
func Decode(data []byte, resize bool) (*gocv.Mat, error) {
	if len(data) == 0 {
		return nil, ErrDecode
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrDecode
	}

	if !resize || (mat.Cols() == DefaultWidth && mat.Rows() == DefaultHeight) {
		return &mat, nil
	}

	resized := gocv.NewMat()
	gocv.Resize(mat, &resized, image.Pt(DefaultWidth, DefaultHeight), 0, 0, gocv.InterpolationLinear)
	mat.Close()

	return &resized, nil
}
