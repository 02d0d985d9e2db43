package command

import (
	"fmt"
	"time"

	"moviehub/cmd/cli/authentication"
	"moviehub/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Register, log in and log out. Tokens are kept in the system keyring.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Email, _ = cmd.Flags().GetString("email")

		resp, err := newClient().Register(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("✓ Registered"), resp.Username, faint(resp.ID))
		fmt.Fprintln(cmd.OutOrStdout(), "Run `moviehub auth login` to continue.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		resp, err := newClient().Login(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		err = authentication.StoreTokens(&authentication.StoredCredentials{
			AccessToken:  resp.Access,
			RefreshToken: resp.Refresh,
			Username:     resp.Username,
			ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		})
		if err != nil {
			return fmt.Errorf("store tokens: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("✓ Logged in as"), resp.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget the tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		c := newClient()
		c.SetToken(creds.AccessToken)
		if err := c.Logout(cmd.Context(), creds.RefreshToken); err != nil {
			// the local session ends either way
			fmt.Fprintln(cmd.ErrOrStderr(), faint("server logout failed: "+err.Error()))
		}
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("✓ Logged out"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored user",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), creds.Username)
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
