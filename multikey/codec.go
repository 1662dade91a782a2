package multikey

import (
	"fmt"
)

// Converts between Multikey public key bytes and JWK coordinates for one algorithm.
type pointCodec interface {
	// JWK coordinates to Multikey public key bytes. y is nil for EdDSA.
	compress(x, y []byte) ([]byte, error)
	// Multikey public key bytes to JWK coordinates. y is nil for EdDSA.
	decompress(raw []byte) (x, y []byte, err error)
	// Length of secret key bytes, in both Multikey and JWK "d".
	secretLength() int
}

func codecFor(alg KeyAlgorithm) pointCodec {
	switch alg {
	case ECDSAP256, ECDSAP384:
		return ecCodec{alg: alg}
	case EdDSA:
		return edCodec{}
	default:
		panic(fmt.Sprintf("unexpected key algorithm: %s", alg))
	}
}

type ecCodec struct {
	alg KeyAlgorithm
}

func (c ecCodec) compress(x, y []byte) ([]byte, error) {
	if y == nil {
		return nil, fmt.Errorf("%w: %s encoding requires a y coordinate", ErrMalformedKey, c.alg)
	}
	return CompressPoint(c.alg, x, y)
}

func (c ecCodec) decompress(raw []byte) ([]byte, []byte, error) {
	return DecompressPoint(c.alg, raw)
}

func (c ecCodec) secretLength() int {
	return CoordinateByteLength(c.alg)
}

func checkSecret(alg KeyAlgorithm, d []byte) error {
	size := codecFor(alg).secretLength()
	if len(d) != size {
		return fmt.Errorf("%w: %s secret key must be %d bytes, got %d", ErrMalformedKey, alg, size, len(d))
	}
	return nil
}
