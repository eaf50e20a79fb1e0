package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"dmglicense/internal/services"
)

// usageError marks failures caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose, quiet bool

	ctx := newCommandContext(&configFlag, &verbose, &quiet)

	rootCmd := &cobra.Command{
		Use:           "dmg-license",
		Short:         "Embed multi-language license agreements in disk images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return &usageError{err: errors.New("--verbose and --quiet are mutually exclusive")}
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors and suppress warnings")

	rootCmd.AddCommand(newAttachCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newLabelsCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	wrapArgValidators(rootCmd)

	return rootCmd
}

// wrapArgValidators marks positional argument errors as usage errors.
func wrapArgValidators(cmd *cobra.Command) {
	if validate := cmd.Args; validate != nil {
		cmd.Args = func(c *cobra.Command, args []string) error {
			if err := validate(c, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		}
	}
	for _, child := range cmd.Commands() {
		wrapArgValidators(child)
	}
}

// exitCode maps a command error to a sysexits status.
func exitCode(err error) int {
	if err == nil {
		return services.ExitOK
	}
	var usage *usageError
	if errors.As(err, &usage) || strings.HasPrefix(err.Error(), "unknown command") {
		return services.ExitUsage
	}
	return services.ExitCode(err)
}
