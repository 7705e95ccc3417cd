package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitlabteamcli",
		Short: "A CLI tool to analyze contributions of a GitLab group's members.",
		Long: `gitlabteamcli fetches commits from projects of a GitLab group,
groups them by author, categorizes them and prints a team overview.
The access token is read from the GITLAB_TOKEN environment variable.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")

	cmd.AddCommand(newAnalyzeCmd())

	return cmd
}

// newLogger returns stderr logger, showing only warnings unless verbose is set.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	l := logrus.New()
	l.Out = cmd.ErrOrStderr()
	l.Level = logrus.WarnLevel

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		l.Level = logrus.DebugLevel
	}

	return l
}
