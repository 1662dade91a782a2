package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/credkit/keyconv/multikey"
	"github.com/credkit/keyconv/multikey/webcrypto"

	"github.com/urfave/cli/v2"
)

var cmdToJWK = &cli.Command{
	Name:      "to-jwk",
	Usage:     "converts a public Multikey (and optional secret Multikey) to JWK",
	ArgsUsage: `<multikey|did:key>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "secret",
			Usage:   "secret Multikey for the same key; output is a JWK pair",
			EnvVars: []string{"MKCONV_SECRET_KEY"},
		},
	},
	Action: runToJWK,
}

var cmdToMultikey = &cli.Command{
	Name:      "to-multikey",
	Usage:     "converts a JWK, or JWK pair with publicKey and privateKey, to Multikey",
	ArgsUsage: `[<file>|-]`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "controller",
			Usage: "output a Multikey verification method with this controller DID",
		},
	},
	Action: runToMultikey,
}

var cmdInspect = &cli.Command{
	Name:      "inspect",
	Usage:     "parses and outputs metadata about a public or secret Multikey",
	ArgsUsage: `<multikey|did:key>`,
	Action:    runInspect,
}

var cmdCheck = &cli.Command{
	Name:      "check",
	Usage:     "imports a Multikey in to the crypto engine, to verify the key material",
	ArgsUsage: `<multikey|did:key>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "secret",
			Usage:   "secret Multikey for the same key",
			EnvVars: []string{"MKCONV_SECRET_KEY"},
		},
	},
	Action: runCheck,
}

// Returns the public Multikey argument, unwrapping did:key identifiers.
func publicKeyArg(cctx *cli.Context) (string, error) {
	s := cctx.Args().First()
	if s == "" {
		return "", fmt.Errorf("need to provide key as an argument")
	}
	if strings.HasPrefix(s, "did:") {
		return multikey.ParseDIDKey(s)
	}
	return s, nil
}

func runToJWK(cctx *cli.Context) error {
	pub, err := publicKeyArg(cctx)
	if err != nil {
		return err
	}
	pair := multikey.MultikeyPair{
		PublicKeyMultibase: pub,
		SecretKeyMultibase: cctx.String("secret"),
	}
	out, err := multikey.MultikeyToJWK(pair)
	if err != nil {
		return err
	}
	slog.Debug("converted multikey", "kty", out.PublicKey.KeyType, "crv", out.PublicKey.Curve, "secret", out.PrivateKey != nil)

	if out.PrivateKey == nil {
		return printJSON(cctx, out.PublicKey)
	}
	return printJSON(cctx, out)
}

func runToMultikey(cctx *cli.Context) error {
	r, err := getFileOrStdin(cctx.Args().First())
	if err != nil {
		return err
	}
	defer r.Close()
	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(buf, &probe); err != nil {
		return fmt.Errorf("%w: %v", multikey.ErrMalformedKey, err)
	}

	var pair *multikey.JWKPair
	if _, ok := probe["publicKey"]; ok {
		pair, err = multikey.ParseJWKPair(buf)
		if err != nil {
			return err
		}
	} else {
		jwk, err := multikey.ParseJWK(buf)
		if err != nil {
			return err
		}
		// a lone private JWK carries its public coordinates
		pair = &multikey.JWKPair{PublicKey: *jwk}
		if jwk.D != "" {
			pair.PrivateKey = jwk
		}
	}

	out, err := multikey.JWKToMultikey(*pair)
	if err != nil {
		return err
	}
	slog.Debug("converted JWK", "kty", pair.PublicKey.KeyType, "crv", pair.PublicKey.Curve, "secret", out.SecretKeyMultibase != "")

	if controller := cctx.String("controller"); controller != "" {
		vm := multikey.NewVerificationMethod(controller+"#"+out.PublicKeyMultibase, controller, *out)
		return printJSON(cctx, vm)
	}
	return printJSON(cctx, out)
}

func runInspect(cctx *cli.Context) error {
	s, err := publicKeyArg(cctx)
	if err != nil {
		return err
	}
	info, err := multikey.Inspect(s)
	if err != nil {
		return err
	}

	w := cctx.App.Writer
	fmt.Fprintf(w, "Algorithm: %s\n", info.Algorithm)
	fmt.Fprintf(w, "Role: %s\n", info.Role)
	fmt.Fprintf(w, "Multicodec: %s\n", info.Multicodec)
	fmt.Fprintf(w, "Key Length: %d\n", info.KeyLength)
	if info.Role == multikey.RolePublic {
		did, err := multikey.DIDKey(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "DID Key: %s\n", did)
	}
	return nil
}

func runCheck(cctx *cli.Context) error {
	ctx := cctx.Context
	pub, err := publicKeyArg(cctx)
	if err != nil {
		return err
	}
	pair := multikey.MultikeyPair{
		PublicKeyMultibase: pub,
		SecretKeyMultibase: cctx.String("secret"),
	}

	eng := webcrypto.NewJWXEngine()
	kp, err := webcrypto.MultikeyToCrypto(ctx, eng, pair)
	if err != nil {
		slog.Warn("key import failed", "err", err)
		return err
	}

	// exporting back must reproduce the input
	out, err := webcrypto.CryptoToMultikey(ctx, eng, *kp)
	if err != nil {
		return err
	}
	if *out != pair {
		return fmt.Errorf("key did not round-trip through crypto engine")
	}

	alg := kp.PublicKey.Algorithm.Name
	if kp.PublicKey.Algorithm.NamedCurve != "" {
		alg += " " + kp.PublicKey.Algorithm.NamedCurve
	}
	w := cctx.App.Writer
	fmt.Fprintf(w, "public key: ok (%s)\n", alg)
	if kp.PrivateKey != nil {
		fmt.Fprintf(w, "secret key: ok\n")
	}
	return nil
}
