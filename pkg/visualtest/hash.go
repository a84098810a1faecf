package visualtest

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
	"golang.org/x/sync/errgroup"
)

// PerceptualDistance returns the Hamming distance between the perception
// hashes of a and b. 0 means perceptually identical; small values survive
// re-encoding and slight color drift, unlike a pixel comparison.
func PerceptualDistance(a, b image.Image) (int, error) {
	var ha, hb *goimagehash.ImageHash
	var eg errgroup.Group
	eg.Go(func() (err error) {
		ha, err = goimagehash.PerceptionHash(a)
		return err
	})
	eg.Go(func() (err error) {
		hb, err = goimagehash.PerceptionHash(b)
		return err
	})
	if err := eg.Wait(); err != nil {
		return 0, fmt.Errorf("failed to compute perceptual hash: %w", err)
	}
	return ha.Distance(hb)
}
