package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"

	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/ethaddr"
	"github.com/attestlab/attestd/internal/keys"
)

// keygenOutput is the JSON shape for keygen results.
type keygenOutput struct {
	PrivateKey string       `json:"privateKey"`
	Address    string       `json:"address"`
	PublicKey  ethaddr.View `json:"publicKey"`
}

// AddKeygenCommand adds the keygen command to the root command.
func AddKeygenCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new signer key",
		Long: `Generate a fresh secp256k1 signer key.

The private key is printed once to stdout and never logged. Export it as
ATTESTD_SIGNER_KEY before starting the node:

  export ATTESTD_SIGNER_KEY=$(attestd keygen --output json | jq -r .privateKey)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			priv, err := secp256k1.GeneratePrivateKey()
			if err != nil {
				return errors.Wrap(err, "failed to generate key")
			}

			identity := keys.NewIdentity(priv)
			out := keygenOutput{
				PrivateKey: hex.EncodeToString(priv.Serialize()),
				Address:    identity.Address(),
				PublicKey:  ethaddr.NewView(identity.Public(), false),
			}

			if flags.Output == OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Private key: %s\n", out.PrivateKey)
			fmt.Fprintf(w, "Address:     %s\n", out.Address)
			fmt.Fprintf(w, "Public key:  %s (yParity %s)\n", out.PublicKey.X, out.PublicKey.YParity)
			return nil
		},
	}

	root.AddCommand(cmd)
}
