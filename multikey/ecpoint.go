package multikey

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
)

// SEC1 compressed point prefixes, indicating the parity of y
const (
	compressedEven byte = 0x02
	compressedOdd  byte = 0x03
)

var (
	bigThree = big.NewInt(3)
	bigFour  = big.NewInt(4)
)

func curveParams(alg KeyAlgorithm) (*elliptic.CurveParams, error) {
	switch alg {
	case ECDSAP256:
		return elliptic.P256().Params(), nil
	case ECDSAP384:
		return elliptic.P384().Params(), nil
	default:
		return nil, fmt.Errorf("%w: %s is not an ECDSA curve", ErrUnsupportedAlgorithm, alg)
	}
}

// Computes x³ - 3x + b (mod p), the right-hand side of the short Weierstrass equation for the NIST curves.
func curveRHS(params *elliptic.CurveParams, x *big.Int) *big.Int {
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)

	threeX := new(big.Int).Mul(x, bigThree)
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, params.B)
	return rhs.Mod(rhs, params.P)
}

// Compresses an affine point on P-256 or P-384 to SEC1 compressed form: a parity byte followed by x.
//
// Both coordinates must be exactly the curve's coordinate length (see [CoordinateByteLength]). The point is checked to be on the curve; points which are not result in [ErrInvalidPoint].
func CompressPoint(alg KeyAlgorithm, x, y []byte) ([]byte, error) {
	params, err := curveParams(alg)
	if err != nil {
		return nil, err
	}
	size := CoordinateByteLength(alg)
	if len(x) != size || len(y) != size {
		return nil, fmt.Errorf("%w: %s coordinates must be %d bytes, got x=%d y=%d", ErrMalformedKey, alg, size, len(x), len(y))
	}

	xi := new(big.Int).SetBytes(x)
	yi := new(big.Int).SetBytes(y)
	if xi.Cmp(params.P) >= 0 || yi.Cmp(params.P) >= 0 {
		return nil, fmt.Errorf("%w: %s coordinate out of field range", ErrInvalidPoint, alg)
	}
	ySquared := new(big.Int).Exp(yi, big.NewInt(2), params.P)
	if ySquared.Cmp(curveRHS(params, xi)) != 0 {
		return nil, fmt.Errorf("%w: %s point not on curve", ErrInvalidPoint, alg)
	}

	out := make([]byte, 1+size)
	out[0] = compressedEven
	if yi.Bit(0) == 1 {
		out[0] = compressedOdd
	}
	copy(out[1:], x)
	return out, nil
}

// Recovers the affine (x, y) coordinates from a SEC1 compressed point on P-256 or P-384.
//
// The y coordinate is found by taking the square root of x³ - 3x + b modulo p. Both NIST primes are 3 (mod 4), so the root is rhs^((p+1)/4). The candidate root is squared and checked; x values without a root result in [ErrInvalidPoint].
//
// Returned coordinates are left-padded to the curve's coordinate length.
func DecompressPoint(alg KeyAlgorithm, compressed []byte) ([]byte, []byte, error) {
	params, err := curveParams(alg)
	if err != nil {
		return nil, nil, err
	}
	size := CoordinateByteLength(alg)
	if len(compressed) != 1+size {
		return nil, nil, fmt.Errorf("%w: %s compressed public key must be %d bytes, got %d", ErrMalformedKey, alg, 1+size, len(compressed))
	}
	prefix := compressed[0]
	if prefix != compressedEven && prefix != compressedOdd {
		return nil, nil, fmt.Errorf("%w: unexpected compressed point prefix 0x%02x", ErrMalformedKey, prefix)
	}

	x := new(big.Int).SetBytes(compressed[1:])
	if x.Cmp(params.P) >= 0 {
		return nil, nil, fmt.Errorf("%w: %s x coordinate out of field range", ErrInvalidPoint, alg)
	}
	rhs := curveRHS(params, x)

	exp := new(big.Int).Add(params.P, big.NewInt(1))
	exp.Div(exp, bigFour)
	y := new(big.Int).Exp(rhs, exp, params.P)

	check := new(big.Int).Mul(y, y)
	check.Mod(check, params.P)
	if check.Cmp(rhs) != 0 {
		return nil, nil, fmt.Errorf("%w: %s x coordinate has no corresponding y", ErrInvalidPoint, alg)
	}

	wantOdd := prefix == compressedOdd
	if (y.Bit(0) == 1) != wantOdd {
		if y.Sign() == 0 {
			// zero has no odd counterpart
			return nil, nil, fmt.Errorf("%w: %s point has no odd y", ErrInvalidPoint, alg)
		}
		y.Sub(params.P, y)
	}

	xb := make([]byte, size)
	yb := make([]byte, size)
	x.FillBytes(xb)
	y.FillBytes(yb)
	return xb, yb, nil
}
