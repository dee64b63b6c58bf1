package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"

	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/ethaddr"
	"github.com/attestlab/attestd/internal/schnorr"
)

// verifyOutput is the JSON shape for verify results.
type verifyOutput struct {
	Valid bool   `json:"valid"`
	Owner string `json:"owner"`
}

// AddVerifyCommand adds the verify command to the root command.
func AddVerifyCommand(root *cobra.Command, flags *GlobalFlags) {
	var (
		xHex    string
		yParity string
	)

	cmd := &cobra.Command{
		Use:   "verify <digest> <signature>",
		Short: "Verify an encoded signature offline",
		Long: `Verify an encoded Schnorr signature against a 32-byte digest.

The signer public key is supplied in minimal form: the x-coordinate via
--x and the y-parity via --parity. The digest and signature are 0x-prefixed
hex strings. The command succeeds whether or not the signature is valid;
the result is printed to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parseCompactKey(xHex, yParity)
			if err != nil {
				return err
			}

			digest, err := parseDigest(args[0])
			if err != nil {
				return err
			}

			out := verifyOutput{
				Valid: schnorr.VerifyEncoded(pub, digest, args[1]),
				Owner: ethaddr.Derive(pub),
			}

			if flags.Output == OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := cmd.OutOrStdout()
			if out.Valid {
				fmt.Fprintf(w, "valid signature from %s\n", out.Owner)
			} else {
				fmt.Fprintln(w, "invalid signature")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xHex, "x", "", "signer public key x-coordinate (0x-prefixed hex)")
	cmd.Flags().StringVar(&yParity, "parity", "0", "signer public key y-parity (0 or 1)")
	_ = cmd.MarkFlagRequired("x")

	root.AddCommand(cmd)
}

// parseCompactKey reconstructs a public key from its x-coordinate and
// y-parity.
func parseCompactKey(xHex, yParity string) (*secp256k1.PublicKey, error) {
	xBytes, err := hex.DecodeString(strings.TrimPrefix(xHex, "0x"))
	if err != nil || len(xBytes) != 32 {
		return nil, errors.Wrap(errors.ErrInvalidPoint, "x-coordinate must be 32 bytes of hex")
	}

	prefix := byte(secp256k1.PubKeyFormatCompressedEven)
	switch yParity {
	case "0":
	case "1":
		prefix = secp256k1.PubKeyFormatCompressedOdd
	default:
		return nil, errors.Wrap(errors.ErrInvalidPoint, "y-parity must be 0 or 1")
	}

	pub, err := secp256k1.ParsePubKey(append([]byte{prefix}, xBytes...))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidPoint, err.Error())
	}
	return pub, nil
}

// parseDigest decodes a 0x-prefixed 32-byte hex digest.
func parseDigest(s string) ([]byte, error) {
	digest, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(digest) != schnorr.DigestLen {
		return nil, errors.Wrap(errors.ErrDigestLength, "digest must be 32 bytes of hex")
	}
	return digest, nil
}
