package pcm

// Remap converts a chunk of interleaved samples from srcCh channels per
// frame to dstCh. The mapping favors cheap, deterministic math over
// perceptual mixing:
//
//	1 -> 2: duplicate the mono sample into both slots
//	2 -> 1: arithmetic mean of the pair
//	srcCh >= dstCh: keep the first dstCh samples of each frame
//	srcCh <  dstCh: broadcast the first sample to every slot
//
// When the counts match the input is returned unchanged. Trailing samples
// that do not form a whole frame are dropped.
func Remap(src []float32, srcCh, dstCh int) []float32 {
	if srcCh == dstCh || srcCh < 1 || dstCh < 1 {
		return src
	}

	frames := len(src) / srcCh
	dst := make([]float32, frames*dstCh)

	for f := 0; f < frames; f++ {
		in := src[f*srcCh:]
		out := dst[f*dstCh:]
		switch {
		case srcCh == 1 && dstCh == 2:
			out[0] = in[0]
			out[1] = in[0]
		case srcCh == 2 && dstCh == 1:
			out[0] = (in[0] + in[1]) / 2
		case srcCh >= dstCh:
			copy(out[:dstCh], in[:dstCh])
		default:
			for c := 0; c < dstCh; c++ {
				out[c] = in[0]
			}
		}
	}
	return dst
}
