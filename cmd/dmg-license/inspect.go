package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dmglicense/internal/language"
	"dmglicense/internal/udif"
)

type inspectLanguage struct {
	ID         int    `json:"id"`
	Tag        string `json:"tag,omitempty"`
	Name       string `json:"name"`
	DoubleByte bool   `json:"double_byte"`
}

type inspectSlot struct {
	Slot       int               `json:"slot"`
	ResourceID int               `json:"resource_id"`
	BodyType   string            `json:"body_type"`
	BodyBytes  int               `json:"body_bytes"`
	LabelBytes int               `json:"label_bytes"`
	Languages  []inspectLanguage `json:"languages"`
}

type inspectReport struct {
	Specification   string          `json:"specification"`
	DefaultLanguage inspectLanguage `json:"default_language"`
	Slots           []inspectSlot   `json:"slots"`
	Warnings        []string        `json:"warnings"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect <spec>",
		Short: "Show how a specification maps languages to license resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := runContext(cmd, "")
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}

			var warnOut io.Writer
			if !asJSON && !ctx.isQuiet() {
				warnOut = cmd.ErrOrStderr()
			}
			built, err := assembleFile(runCtx, cfg, logger, args[0], assembleOptions{strict: strict, warnOut: warnOut})
			if err != nil {
				return err
			}

			report := buildInspectReport(built, language.Default())
			out := newSummary(cmd.OutOrStdout())
			if asJSON {
				return out.json(report)
			}
			renderInspectReport(out, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the layout as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings instead of skipping languages")
	return cmd
}

func buildInspectReport(built *assembly, catalog *language.Catalog) inspectReport {
	report := inspectReport{
		Specification:   built.Loaded.Path,
		DefaultLanguage: describeLanguage(built.Table.DefaultLanguageID, catalog),
		Slots:           make([]inspectSlot, 0, len(built.Table.Licenses)),
		Warnings:        built.Warnings,
	}
	if report.Warnings == nil {
		report.Warnings = []string{}
	}
	for slot, lic := range built.Table.Licenses {
		entry := inspectSlot{
			Slot:       slot,
			ResourceID: udif.BaseResourceID + slot,
			BodyType:   lic.Body.Type.ResourceType(),
			BodyBytes:  len(lic.Body.Data),
			LabelBytes: len(lic.Labels),
			Languages:  make([]inspectLanguage, 0, len(lic.LanguageIDs)),
		}
		for _, id := range lic.LanguageIDs {
			entry.Languages = append(entry.Languages, describeLanguage(id, catalog))
		}
		report.Slots = append(report.Slots, entry)
	}
	return report
}

func describeLanguage(id int, catalog *language.Catalog) inspectLanguage {
	l, ok := catalog.ByID(id)
	if !ok {
		return inspectLanguage{ID: id, Name: strconv.Itoa(id)}
	}
	desc := inspectLanguage{ID: id, Name: l.EnglishName, DoubleByte: l.DoubleByte}
	if len(l.Tags) > 0 {
		desc.Tag = l.Tags[0]
	}
	return desc
}

func (l inspectLanguage) label() string {
	if l.Tag == "" {
		return fmt.Sprintf("%s (%d)", l.Name, l.ID)
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.Tag)
}

var slotColumns = []column{
	{title: "Slot", numeric: true},
	{title: "Resource ID", numeric: true},
	{title: "Body type"},
	{title: "Body bytes", numeric: true},
	{title: "Label bytes", numeric: true},
	{title: "Languages"},
}

func renderInspectReport(out *summary, report inspectReport) {
	out.section("License resources")
	rows := make([][]string, 0, len(report.Slots))
	for _, slot := range report.Slots {
		names := make([]string, 0, len(slot.Languages))
		for _, l := range slot.Languages {
			names = append(names, l.label())
		}
		rows = append(rows, []string{
			strconv.Itoa(slot.Slot),
			strconv.Itoa(slot.ResourceID),
			strings.TrimSpace(slot.BodyType),
			strconv.Itoa(slot.BodyBytes),
			strconv.Itoa(slot.LabelBytes),
			strings.Join(names, ", "),
		})
	}
	out.table(slotColumns, rows)
	out.line("Default", outcomeNote, report.DefaultLanguage.label())
	out.warnings(len(report.Warnings))
}
