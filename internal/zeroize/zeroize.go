// Package zeroize implements best-effort overwriting of sensitive byte buffers
// before they are released, per the lifecycle contract in spec §5/§9: "best-
// effort zeroization of the buffers the library itself allocated."
package zeroize

// Zero overwrites every byte of b with 0. It is safe to call on a nil or empty
// slice.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroAll zeroizes every buffer in bs.
func ZeroAll(bs ...[]byte) {
	for _, b := range bs {
		Zero(b)
	}
}
