package main

import (
	"fmt"
	"os"

	"github.com/souramoo/calorie-counter-vibe/client"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	sessionFlag string
	rootCmd     = &cobra.Command{
		Use:           "calctl",
		Short:         "Terminal client for the calorie tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	defaultAPI := os.Getenv("CALCTL_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", defaultAPI, "Calorie tracker API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "Session file (defaults to the user config dir)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func apiClient() *client.Client {
	return client.New(apiFlag)
}

func sessionPath() (string, error) {
	if sessionFlag != "" {
		return sessionFlag, nil
	}
	return client.DefaultSessionPath()
}

func loadSession() (client.Session, error) {
	path, err := sessionPath()
	if err != nil {
		return client.Session{}, err
	}
	return client.LoadSession(path)
}

func saveSession(s client.Session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	return client.SaveSession(path, s)
}
