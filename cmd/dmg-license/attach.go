package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"dmglicense/internal/deps"
	"dmglicense/internal/fileutil"
	"dmglicense/internal/logging"
	"dmglicense/internal/services"
	"dmglicense/internal/services/hdiutil"
	"dmglicense/internal/udif"
)

func newAttachCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var plistPath string
	var dryRun bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "attach <spec> <image>",
		Short: "Assemble licenses and write them into a disk image",
		Long: "Assemble the licenses described by a JSON or TOML specification and merge\n" +
			"the resulting resources into a UDIF disk image with hdiutil udifrez.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			specPath, image := args[0], args[1]
			target := image
			if strings.TrimSpace(outputPath) != "" {
				target = outputPath
			}

			runCtx := runContext(cmd, target)
			baseLogger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(baseLogger, "attach")

			var warnOut io.Writer
			if !ctx.isQuiet() {
				warnOut = cmd.ErrOrStderr()
			}
			built, err := assembleFile(runCtx, cfg, baseLogger, specPath, assembleOptions{strict: strict, warnOut: warnOut})
			if err != nil {
				return err
			}

			plistData, err := udif.Marshal(built.Fork)
			if err != nil {
				return services.Wrap(services.ErrInternal, "udif", "marshal", "", err)
			}

			out := cmd.OutOrStdout()
			report := newSummary(out)
			if plistPath != "" {
				if err := os.WriteFile(plistPath, plistData, 0o644); err != nil {
					return services.Wrap(services.ErrInternal, "udif", "write plist", "", err)
				}
				report.line("Plist", outcomeDone, plistPath)
			}
			if dryRun {
				if plistPath == "" {
					_, err := out.Write(plistData)
					return err
				}
				report.line("Image", outcomeNote, "dry run, image not modified")
				return nil
			}

			if err := deps.Require(deps.CheckBinaries(deps.AttachRequirements(cfg))); err != nil {
				return err
			}
			if _, err := os.Stat(image); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return services.Wrap(services.ErrNotFound, "attach", "image", fmt.Sprintf("disk image %s does not exist", image), nil)
				}
				return services.Wrap(services.ErrInput, "attach", "image", "", err)
			}

			lockPath := target + ".lock"
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return services.Wrap(services.ErrInput, "attach", "lock", "", err)
			}
			if !locked {
				return services.Wrap(services.ErrValidation, "attach", "lock", fmt.Sprintf("%s is being modified by another process", target), nil)
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.WarnContext(runCtx, "failed to release image lock", logging.String("lock", lockPath), logging.Error(err))
				}
				_ = os.Remove(lockPath)
			}()

			client, err := hdiutil.New(cfg.HDIUtil.Binary, cfg.HDIUtil.TimeoutSeconds)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "hdiutil", "init", "", err)
			}

			attachPath := image
			var staged *fileutil.Staged
			if target != image {
				staged, err = fileutil.Stage(image, target)
				if err != nil {
					return services.Wrap(services.ErrInput, "attach", "stage", "", err)
				}
				defer staged.Discard()
				attachPath = staged.Path
			}

			logger.DebugContext(runCtx, "attaching license resources",
				logging.String("hdiutil", client.Binary()),
				logging.String("path", attachPath),
				logging.Int("plist_bytes", len(plistData)),
			)
			if err := client.AttachResources(runCtx, attachPath, plistData); err != nil {
				return err
			}
			if staged != nil {
				if err := staged.Commit(); err != nil {
					return services.Wrap(services.ErrInternal, "attach", "commit", "", err)
				}
			}

			languages := len(built.Result.ByLanguageID)
			logger.InfoContext(runCtx, "license resources attached",
				logging.Specification(built.Loaded.Path),
				logging.Assembly(len(built.Table.Licenses), languages),
				logging.Int("warnings", len(built.Warnings)),
			)
			report.line("Specification", outcomeDone, built.Loaded.Path)
			report.line("Licenses", outcomeDone, fmt.Sprintf("%d licenses for %d languages", len(built.Table.Licenses), languages))
			report.warnings(len(built.Warnings))
			report.line("Image", outcomeDone, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the licensed image here instead of modifying the input")
	cmd.Flags().StringVar(&plistPath, "plist", "", "Also write the resource plist to this path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Assemble only; print or save the plist without touching the image")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings instead of skipping languages")
	return cmd
}
