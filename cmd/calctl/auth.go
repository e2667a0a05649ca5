package main

import (
	"fmt"

	"github.com/souramoo/calorie-counter-vibe/client"

	"github.com/spf13/cobra"
)

var (
	authUsername string
	authEmail    string
	authPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := apiClient().Register(cmd.Context(), authUsername, authEmail, authPassword)
		if err != nil {
			return err
		}
		if err := saveSession(s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", s.Username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := apiClient().Login(cmd.Context(), authEmail, authPassword)
		if err != nil {
			return err
		}
		if err := saveSession(s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", s.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := sessionPath()
		if err != nil {
			return err
		}
		if err := client.ClearSession(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		u, err := apiClient().Me(cmd.Context(), s)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>  goal %d kcal/day\n", u.Username, u.Email, u.CalorieGoal)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Email (required)")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "Password (required)")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Email (required)")
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
