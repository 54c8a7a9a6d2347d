package capture

import "image"

type platformBackend interface {
	Screens() ([]Screen, error)
	Grab(rect image.Rectangle) (*image.RGBA, error)
}

var backend = newBackend()
