//go:build !linux && !darwin && !windows

package platform

// Notify is a no-op on unsupported platforms.
func Notify(string, string, Options) error {
	return nil
}
