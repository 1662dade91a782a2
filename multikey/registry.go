package multikey

import (
	"fmt"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
)

type KeyAlgorithm uint8

const (
	ECDSAP256 KeyAlgorithm = 1
	ECDSAP384 KeyAlgorithm = 2
	EdDSA     KeyAlgorithm = 3
)

func (a KeyAlgorithm) String() string {
	switch a {
	case ECDSAP256:
		return "ECDSA-P256"
	case ECDSAP384:
		return "ECDSA-P384"
	case EdDSA:
		return "EdDSA"
	default:
		return fmt.Sprintf("KeyAlgorithm(%d)", uint8(a))
	}
}

// Whether public keys of this algorithm have both x and y coordinates.
func (a KeyAlgorithm) IsECDSA() bool {
	return a == ECDSAP256 || a == ECDSAP384
}

type KeyRole uint8

const (
	RolePublic KeyRole = 1
	RoleSecret KeyRole = 2
)

func (r KeyRole) String() string {
	switch r {
	case RolePublic:
		return "public"
	case RoleSecret:
		return "secret"
	default:
		return fmt.Sprintf("KeyRole(%d)", uint8(r))
	}
}

// Two-byte Multikey prefix: the unsigned-varint encoding of a multicodec code.
type Preamble [2]byte

type registryEntry struct {
	alg      KeyAlgorithm
	role     KeyRole
	codec    multicodec.Code
	preamble Preamble
}

// Fixed table of supported keys. Preambles are derived from the multicodec codes in init() and never change afterwards.
var registry = []registryEntry{
	// p256-pub, code 0x1200, varint-encoded bytes: [0x80, 0x24]
	{alg: ECDSAP256, role: RolePublic, codec: multicodec.P256Pub},
	// p384-pub, code 0x1201, varint-encoded bytes: [0x81, 0x24]
	{alg: ECDSAP384, role: RolePublic, codec: multicodec.P384Pub},
	// ed25519-pub, code 0xED, varint-encoded bytes: [0xED, 0x01]
	{alg: EdDSA, role: RolePublic, codec: multicodec.Ed25519Pub},
	// p256-priv, code 0x1306, varint-encoded bytes: [0x86, 0x26]
	{alg: ECDSAP256, role: RoleSecret, codec: multicodec.P256Priv},
	// p384-priv, code 0x1307, varint-encoded bytes: [0x87, 0x26]
	{alg: ECDSAP384, role: RoleSecret, codec: multicodec.P384Priv},
	// ed25519-priv, code 0x1300, varint-encoded bytes: [0x80, 0x26]
	{alg: EdDSA, role: RoleSecret, codec: multicodec.Ed25519Priv},
}

func init() {
	for i := range registry {
		buf := varint.ToUvarint(uint64(registry[i].codec))
		if len(buf) != len(Preamble{}) {
			panic(fmt.Sprintf("multicodec %s does not have a two-byte varint encoding", registry[i].codec))
		}
		copy(registry[i].preamble[:], buf)
	}
}

// Resolves a Multikey preamble to the key algorithm and role it indicates.
func PreambleToAlgorithmAndRole(p Preamble) (KeyAlgorithm, KeyRole, error) {
	code, n, err := varint.FromUvarint(p[:])
	if err != nil || n != len(p) {
		return 0, 0, fmt.Errorf("%w: preamble 0x%02x%02x is not a multicodec varint", ErrUnsupportedAlgorithm, p[0], p[1])
	}
	for _, e := range registry {
		if uint64(e.codec) == code {
			return e.alg, e.role, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: multicodec %s (0x%x)", ErrUnsupportedAlgorithm, multicodec.Code(code), code)
}

// Returns the Multikey preamble for the given algorithm and role. Panics on values not declared in this package.
func AlgorithmAndRoleToPreamble(alg KeyAlgorithm, role KeyRole) Preamble {
	return lookup(alg, role).preamble
}

// Returns the multicodec code for the given algorithm and role.
func Multicodec(alg KeyAlgorithm, role KeyRole) multicodec.Code {
	return lookup(alg, role).codec
}

func lookup(alg KeyAlgorithm, role KeyRole) *registryEntry {
	for i := range registry {
		if registry[i].alg == alg && registry[i].role == role {
			return &registry[i]
		}
	}
	panic(fmt.Sprintf("unexpected key algorithm/role: %s/%s", alg, role))
}

// Byte length of one affine coordinate (ECDSA) or of the key itself (EdDSA). This is also the length of the secret key bytes.
func CoordinateByteLength(alg KeyAlgorithm) int {
	switch alg {
	case ECDSAP256:
		return 32
	case ECDSAP384:
		return 48
	case EdDSA:
		return 32
	default:
		panic(fmt.Sprintf("unexpected key algorithm: %s", alg))
	}
}

// JWK "crv" value for the algorithm.
func AlgorithmToJWKCurveName(alg KeyAlgorithm) string {
	switch alg {
	case ECDSAP256:
		return "P-256"
	case ECDSAP384:
		return "P-384"
	case EdDSA:
		return "Ed25519"
	default:
		panic(fmt.Sprintf("unexpected key algorithm: %s", alg))
	}
}

// JWK "kty" value for the algorithm.
func AlgorithmToJWKKeyType(alg KeyAlgorithm) string {
	switch alg {
	case ECDSAP256, ECDSAP384:
		return "EC"
	case EdDSA:
		return "OKP"
	default:
		panic(fmt.Sprintf("unexpected key algorithm: %s", alg))
	}
}

// Resolves a JWK "crv" value. Unknown names result in [ErrUnsupportedAlgorithm].
func JWKCurveNameToAlgorithm(crv string) (KeyAlgorithm, error) {
	switch crv {
	case "P-256":
		return ECDSAP256, nil
	case "P-384":
		return ECDSAP384, nil
	case "Ed25519":
		return EdDSA, nil
	default:
		return 0, fmt.Errorf("%w: JWK curve %q", ErrUnsupportedAlgorithm, crv)
	}
}
