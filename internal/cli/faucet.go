package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yc365/storefront/internal/emoji"
	"github.com/yc365/storefront/internal/faucet"
)

func newFaucetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "faucet",
		Short: "Claim testnet USDT",
		Long: `Run a simulated faucet claim and print the result.

The claim waits for the configured mint delay, exactly like the faucet
button in the storefront header. Nothing is sent to a chain.`,
		Args: cobra.NoArgs,
		RunE: runFaucet,
	}
}

func runFaucet(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	lang := currentLanguage(cfg)
	f := faucet.New(faucet.Options{
		Amount:    cfg.Faucet.Amount,
		Token:     cfg.Faucet.Token,
		MintDelay: cfg.Faucet.MintDelay,
		Cooldown:  cfg.Faucet.Cooldown,
	})

	w := cmd.OutOrStdout()
	jsonOut := getOutputFormat() == "json"
	if !jsonOut {
		fmt.Fprintf(w, "%s Minting %g test %s...\n", emoji.GetEmoji("droplet"), cfg.Faucet.Amount, cfg.Faucet.Token)
	}

	claim, err := f.Claim(cmd.Context())
	if err != nil {
		return fmt.Errorf("faucet claim failed: %w", err)
	}

	if jsonOut {
		data, err := json.MarshalIndent(claim, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal claim: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", emoji.GetEmoji("success"), faucet.SuccessMessage(claim, lang))
	fmt.Fprintf(w, "%s Next claim in %s\n", emoji.GetEmoji("clock"), faucet.FormatCooldown(f.Remaining()))
	return nil
}
