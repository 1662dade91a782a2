package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/credkit/keyconv/multikey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	p256Public = "zDnaea1SXs6HqvumyoVK64hP7thgT1dyNm1UoFMi4v7CcQUQc"
	p256Secret = "z42tmCmgMM46yrQAZ7MJ4X9HqWCu7Q2nD1tJa8CFFVEfS7CQ"
	edPublic   = "z6MktwupdmLXVVqTzCw4i46r4uGyosGXRnR3XjN4Zq7oMMsw"
	edSecret   = "z3u2bpACJXYj89Vh7HqHn8oVv2A2niEy9FcQUzzuQTYJ61AX"
)

func runCLI(args ...string) (string, error) {
	var buf bytes.Buffer
	err := newApp(&buf).Run(append([]string{"mkconv"}, args...))
	return buf.String(), err
}

func TestToJWK(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	out, err := runCLI("to-jwk", edPublic)
	require.NoError(err)
	assert.JSONEq(`{"kty":"OKP","crv":"Ed25519","x":"11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo","key_ops":["verify"],"ext":true}`, out)

	out, err = runCLI("to-jwk", "did:key:"+edPublic)
	require.NoError(err)
	assert.Contains(out, "11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo")

	out, err = runCLI("to-jwk", "--secret", edSecret, edPublic)
	require.NoError(err)
	var pair multikey.JWKPair
	require.NoError(json.Unmarshal([]byte(out), &pair))
	require.NotNil(pair.PrivateKey)
	assert.Equal("nWGxne_9WmC6hEr0kuwsxERJxWl7MmkZcDusAxyuf2A", pair.PrivateKey.D)

	_, err = runCLI("to-jwk", "--secret", edSecret, p256Public)
	assert.ErrorIs(err, multikey.ErrAlgorithmMismatch)
	_, err = runCLI("to-jwk")
	assert.Error(err)
}

func TestToMultikey(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	dir := t.TempDir()

	pub := filepath.Join(dir, "pub.json")
	require.NoError(os.WriteFile(pub, []byte(`{"kty":"EC","crv":"P-256","x":"jkxtrRi7e-DdUQFocbf9Q6-lBN74TUUFBeSXX2OFN80","y":"JXdxn5zI1S4Ya38RhDtfiJtnQv4I8dmpktCKMzo_7Qo"}`), 0644))
	out, err := runCLI("to-multikey", pub)
	require.NoError(err)
	assert.JSONEq(`{"publicKeyMultibase":"`+p256Public+`"}`, out)

	out, err = runCLI("to-multikey", "--controller", "did:example:123", pub)
	require.NoError(err)
	var vm multikey.VerificationMethod
	require.NoError(json.Unmarshal([]byte(out), &vm))
	assert.Equal("Multikey", vm.Type)
	assert.Equal("did:example:123", vm.Controller)
	assert.Equal("did:example:123#"+p256Public, vm.ID)
	assert.Equal(p256Public, vm.PublicKeyMultibase)

	// a single private JWK produces both halves
	priv := filepath.Join(dir, "priv.json")
	require.NoError(os.WriteFile(priv, []byte(`{"kty":"OKP","crv":"Ed25519","x":"11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo","d":"nWGxne_9WmC6hEr0kuwsxERJxWl7MmkZcDusAxyuf2A"}`), 0644))
	out, err = runCLI("to-multikey", priv)
	require.NoError(err)
	assert.JSONEq(`{"publicKeyMultibase":"`+edPublic+`","secretKeyMultibase":"`+edSecret+`"}`, out)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(os.WriteFile(bad, []byte(`{"kty":"RSA","n":"AQAB"}`), 0644))
	_, err = runCLI("to-multikey", bad)
	assert.ErrorIs(err, multikey.ErrUnsupportedAlgorithm)

	_, err = runCLI("to-multikey", filepath.Join(dir, "missing.json"))
	assert.Error(err)
}

func TestInspect(t *testing.T) {
	assert := assert.New(t)

	out, err := runCLI("inspect", p256Public)
	assert.NoError(err)
	assert.Contains(out, "Algorithm: ECDSA-P256\n")
	assert.Contains(out, "Role: public\n")
	assert.Contains(out, "Multicodec: p256-pub\n")
	assert.Contains(out, "Key Length: 33\n")
	assert.Contains(out, "DID Key: did:key:"+p256Public+"\n")

	out, err = runCLI("inspect", edSecret)
	assert.NoError(err)
	assert.Contains(out, "Role: secret\n")
	assert.NotContains(out, "DID Key")

	_, err = runCLI("inspect", "did:web:example.com")
	assert.ErrorIs(err, multikey.ErrEncoding)
}

func TestCheck(t *testing.T) {
	assert := assert.New(t)

	out, err := runCLI("check", "--secret", p256Secret, p256Public)
	assert.NoError(err)
	assert.Equal("public key: ok (ECDSA P-256)\nsecret key: ok\n", out)

	out, err = runCLI("check", edPublic)
	assert.NoError(err)
	assert.Equal("public key: ok (Ed25519)\n", out)

	_, err = runCLI("check", p256Secret)
	assert.ErrorIs(err, multikey.ErrRoleMismatch)
}

func TestLogLevel(t *testing.T) {
	assert := assert.New(t)

	var out, logs bytes.Buffer
	app := newApp(&out)
	app.ErrWriter = &logs
	err := app.Run([]string{"mkconv", "--log-level", "DEBUG", "to-jwk", edPublic})
	assert.NoError(err)
	assert.Contains(logs.String(), "level=DEBUG")
	assert.Contains(logs.String(), "converted multikey")

	logs.Reset()
	app = newApp(&out)
	app.ErrWriter = &logs
	err = app.Run([]string{"mkconv", "--log-level", "warn", "to-jwk", edPublic})
	assert.NoError(err)
	assert.Empty(logs.String())

	app = newApp(&out)
	app.ErrWriter = &logs
	err = app.Run([]string{"mkconv", "--log-level", "verbose", "to-jwk", edPublic})
	assert.ErrorContains(err, "invalid log level")
}
