package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notemark/services"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash a password read from stdin",
	Long: `Read a password from the first line of stdin and print its argon2id
hash in the format stored for users.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.New("no password on stdin")
		}

		password := strings.TrimRight(line, "\r\n")
		if len(password) < 6 {
			return errors.New("password must be at least 6 characters")
		}

		hash, err := services.NewPasswordHasher(services.DefaultArgon2Params).HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %v", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
