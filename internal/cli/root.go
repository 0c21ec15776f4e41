// Package cli wires the cobra command tree for the notesnap client
package cli

import (
	"github.com/spf13/cobra"

	"github.com/notesnap/notesnap/config"
	"github.com/notesnap/notesnap/internal/version"
	"github.com/notesnap/notesnap/pkg/sdk"
)

type Dependencies struct {
	Client *sdk.Client
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notesnap",
		Short: "Turn photos of handwritten meeting notes into organized records",
		Long:  "A CLI client that uploads photos of handwritten meeting notes, has an AI organize them into structured records with action items, and manages the saved notes.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewSignupCmd(deps))
	rootCmd.AddCommand(NewConfirmCmd(deps))
	rootCmd.AddCommand(NewLoginCmd(deps))
	rootCmd.AddCommand(NewLogoutCmd(deps))
	rootCmd.AddCommand(NewWhoamiCmd(deps))
	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewShowCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))

	return rootCmd
}
