package software

import "github.com/gogpu/tex/internal/blit"

// buildMipChain box-filters the base level down to 1x1 and returns
// levels 1..n (the base level is not part of the result).
func buildMipChain(base []byte, width, height int) [][]byte {
	n := blit.MipLevelCount(width, height)
	if n <= 1 {
		return nil
	}

	mips := make([][]byte, 0, n-1)
	prev, pw, ph := base, width, height
	for level := 1; level < n; level++ {
		next, nw, nh := blit.Downsample(prev, pw, ph)
		mips = append(mips, next)
		prev, pw, ph = next, nw, nh
	}
	return mips
}
