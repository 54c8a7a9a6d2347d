// Package platform delivers desktop notifications through the host's
// notification service.
package platform

// AppName identifies markshot to the notification service.
const AppName = "markshot"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// Critical marks error notices so they are not dismissed automatically.
	Critical bool
}

// expiry returns the display timeout in milliseconds; 0 means never expire.
func (o Options) expiry() int32 {
	if o.Critical {
		return 0
	}
	return 5000
}
