package encoder

// toOpaque copies RGBA pixels into dst with the alpha byte forced to 255.
// Rendered alpha is not meaningful output.
func toOpaque(dst, src []byte) {
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		dst[i] = src[i]     // R
		dst[i+1] = src[i+1] // G
		dst[i+2] = src[i+2] // B
		dst[i+3] = 0xff
	}
}
