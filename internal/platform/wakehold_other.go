//go:build !linux && !darwin && !windows

package platform

func newInhibitor() inhibitor {
	return unsupportedInhibitor{}
}
