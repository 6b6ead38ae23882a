package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	keyName string
	keyPath string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage SSH keys",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered SSH keys",
	RunE:  runKeysList,
}

var keysAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an SSH public key",
	RunE:  runKeysAdd,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <key-id>",
	Short: "Delete an SSH key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysDelete,
}

func init() {
	keysAddCmd.Flags().StringVar(&keyName, "name", "", "key name")
	keysAddCmd.Flags().StringVar(&keyPath, "file", "", "path to the public key file")
	_ = keysAddCmd.MarkFlagRequired("name")
	_ = keysAddCmd.MarkFlagRequired("file")

	keysCmd.AddCommand(keysListCmd, keysAddCmd, keysDeleteCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	keys, err := client.ListSSHKeys(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", k.ID, k.Name, k.CreatedAt)
	}
	return w.Flush()
}

func runKeysAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	key, err := client.AddSSHKey(ctx, keyName, strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	slog.Info("SSH key added", "key_id", key.ID, "name", key.Name)
	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	if err := client.DeleteSSHKey(ctx, args[0]); err != nil {
		return err
	}
	slog.Info("SSH key deleted", "key_id", args[0])
	return nil
}
