package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/mailgallery/config"
)

var secretConsumerKey string

// secretCmd groups keyring operations
var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage the consumer secret stored in the OS keyring",
}

var secretSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the consumer secret in the OS keyring",
	Long: `Read the consumer secret from standard input and store it in the OS
keyring under the consumer key. When contextio.consumer_secret is left empty
in the configuration, the secret is looked up there.`,
	Example: `  mailgallery secret set --consumer-key abc123
  printf '%s' "$SECRET" | mailgallery secret set`,
	Args: cobra.NoArgs,
	RunE: runSecretSet,
}

func init() {
	secretSetCmd.Flags().StringVar(&secretConsumerKey, "consumer-key", "", "consumer key (default $MAILGALLERY_CONTEXTIO_CONSUMER_KEY)")
	secretCmd.AddCommand(secretSetCmd)
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	key := secretConsumerKey
	if key == "" {
		key = os.Getenv("MAILGALLERY_CONTEXTIO_CONSUMER_KEY")
	}
	if key == "" {
		return fmt.Errorf("no consumer key given: use --consumer-key")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Consumer secret: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read secret: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr())

	if err := config.StoreSecret(key, strings.TrimSpace(line)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Secret stored for consumer key %s\n", key)
	return nil
}
