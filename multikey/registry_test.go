package multikey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreambleTable(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		alg      KeyAlgorithm
		role     KeyRole
		preamble Preamble
		codec    string
	}{
		{ECDSAP256, RolePublic, Preamble{0x80, 0x24}, "p256-pub"},
		{ECDSAP384, RolePublic, Preamble{0x81, 0x24}, "p384-pub"},
		{EdDSA, RolePublic, Preamble{0xED, 0x01}, "ed25519-pub"},
		{ECDSAP256, RoleSecret, Preamble{0x86, 0x26}, "p256-priv"},
		{ECDSAP384, RoleSecret, Preamble{0x87, 0x26}, "p384-priv"},
		{EdDSA, RoleSecret, Preamble{0x80, 0x26}, "ed25519-priv"},
	}

	for _, row := range table {
		assert.Equal(row.preamble, AlgorithmAndRoleToPreamble(row.alg, row.role))
		assert.Equal(row.codec, Multicodec(row.alg, row.role).String())

		alg, role, err := PreambleToAlgorithmAndRole(row.preamble)
		assert.NoError(err)
		assert.Equal(row.alg, alg)
		assert.Equal(row.role, role)
	}
}

func TestUnknownPreamble(t *testing.T) {
	assert := assert.New(t)

	unknown := []Preamble{
		{0xE7, 0x01}, // secp256k1-pub
		{0x81, 0x26}, // secp256k1-priv
		{0x82, 0x24}, // p521-pub
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x80, 0x00}, // non-minimal varint
	}
	for _, p := range unknown {
		_, _, err := PreambleToAlgorithmAndRole(p)
		assert.ErrorIs(err, ErrUnsupportedAlgorithm, "preamble %x", p)
	}
}

func TestCurveNames(t *testing.T) {
	assert := assert.New(t)

	for _, alg := range []KeyAlgorithm{ECDSAP256, ECDSAP384, EdDSA} {
		name := AlgorithmToJWKCurveName(alg)
		got, err := JWKCurveNameToAlgorithm(name)
		assert.NoError(err)
		assert.Equal(alg, got)
	}
	assert.Equal("EC", AlgorithmToJWKKeyType(ECDSAP384))
	assert.Equal("OKP", AlgorithmToJWKKeyType(EdDSA))
	assert.Equal(32, CoordinateByteLength(ECDSAP256))
	assert.Equal(48, CoordinateByteLength(ECDSAP384))
	assert.Equal("ECDSA-P384", ECDSAP384.String())
	assert.Equal("secret", RoleSecret.String())

	for _, bad := range []string{"", "secp256k1", "P-521", "X25519", "p-256"} {
		_, err := JWKCurveNameToAlgorithm(bad)
		assert.ErrorIs(err, ErrUnsupportedAlgorithm, bad)
	}
}
