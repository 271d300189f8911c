//go:build !linux || baremetal

package findme

// powerDownAdapter does nothing: the radio is idle once advertising stopped
// and the chip is about to hibernate.
func powerDownAdapter(id string) error {
	return nil
}
