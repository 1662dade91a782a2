package webcrypto

import (
	"context"
	"fmt"

	"github.com/credkit/keyconv/multikey"
)

var importUsages = map[KeyType][]KeyUsage{
	KeyTypePublic:  {UsageVerify},
	KeyTypePrivate: {UsageSign},
}

// Converts a Multikey pair to engine keys. Keys are imported as extractable, with "verify" usage for the public key and "sign" for the private key.
func MultikeyToCrypto(ctx context.Context, eng Engine, pair multikey.MultikeyPair) (*CryptoKeyPair, error) {
	jp, err := multikey.MultikeyToJWK(pair)
	if err != nil {
		return nil, err
	}
	alg, err := jp.PublicKey.Algorithm()
	if err != nil {
		return nil, err
	}
	params := AlgorithmFor(alg)

	pub, err := eng.ImportKey(ctx, FormatJWK, &jp.PublicKey, params, true, importUsages[KeyTypePublic])
	if err != nil {
		return nil, fmt.Errorf("importing public key: %w", err)
	}
	out := &CryptoKeyPair{PublicKey: pub}
	if jp.PrivateKey != nil {
		priv, err := eng.ImportKey(ctx, FormatJWK, jp.PrivateKey, params, true, importUsages[KeyTypePrivate])
		if err != nil {
			return nil, fmt.Errorf("importing private key: %w", err)
		}
		out.PrivateKey = priv
	}
	return out, nil
}

// Converts a single public Multikey to an extractable engine key with "verify" usage.
func MultibaseToCrypto(ctx context.Context, eng Engine, publicMultibase string) (*CryptoKey, error) {
	kp, err := MultikeyToCrypto(ctx, eng, multikey.MultikeyPair{PublicKeyMultibase: publicMultibase})
	if err != nil {
		return nil, err
	}
	return kp.PublicKey, nil
}

// Exports engine keys and converts them to a Multikey pair. Keys must be extractable.
func CryptoToMultikey(ctx context.Context, eng Engine, pair CryptoKeyPair) (*multikey.MultikeyPair, error) {
	pub, err := exportAsJWK(ctx, eng, pair.PublicKey, KeyTypePublic)
	if err != nil {
		return nil, err
	}
	jp := multikey.JWKPair{PublicKey: *pub}
	if pair.PrivateKey != nil {
		priv, err := exportAsJWK(ctx, eng, pair.PrivateKey, KeyTypePrivate)
		if err != nil {
			return nil, err
		}
		jp.PrivateKey = priv
	}
	return multikey.JWKToMultikey(jp)
}

// Exports a public engine key as a Multikey string.
func CryptoToMultibase(ctx context.Context, eng Engine, key *CryptoKey) (string, error) {
	pub, err := exportAsJWK(ctx, eng, key, KeyTypePublic)
	if err != nil {
		return "", err
	}
	return multikey.JWKToMultibase(*pub)
}

func exportAsJWK(ctx context.Context, eng Engine, key *CryptoKey, kt KeyType) (*multikey.JWK, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: missing %s key", multikey.ErrMalformedKey, kt)
	}
	if key.Type != kt {
		return nil, fmt.Errorf("%w: expected %s key, got %s", multikey.ErrRoleMismatch, kt, key.Type)
	}
	out, err := eng.ExportKey(ctx, FormatJWK, key)
	if err != nil {
		return nil, fmt.Errorf("exporting %s key: %w", kt, err)
	}
	j, ok := out.(*multikey.JWK)
	if !ok {
		return nil, fmt.Errorf("unexpected JWK export type: %T", out)
	}
	return j, nil
}
