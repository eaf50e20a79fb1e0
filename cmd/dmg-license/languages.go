package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dmglicense/internal/language"
)

// languagesTSVHeader is the first line of `languages --tsv`.
const languagesTSVHeader = "Language ID\tLanguage tag\tNative charset\tName"

func newLanguagesCommand() *cobra.Command {
	var tsv bool

	cmd := &cobra.Command{
		Use:         "languages",
		Short:       "List the languages a license can be written for",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := language.Default()
			out := cmd.OutOrStdout()
			if tsv {
				fmt.Fprintln(out, languagesTSVHeader)
				for _, l := range catalog.All() {
					tags := l.Tags
					if len(tags) == 0 {
						tags = []string{""}
					}
					for _, tag := range tags {
						fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", l.ID, tag, nativeCharset(l), l.EnglishName)
					}
				}
				return nil
			}

			rows := make([][]string, 0, catalog.Len())
			for _, l := range catalog.All() {
				rows = append(rows, []string{
					strconv.Itoa(l.ID),
					strings.Join(l.Tags, ", "),
					nativeCharset(l),
					l.EnglishName,
					yesNo(l.Labels != nil),
					yesNo(l.DoubleByte),
				})
			}
			newSummary(out).table([]column{
				{title: "ID", numeric: true},
				{title: "Tags"},
				{title: "Native charset"},
				{title: "Name"},
				{title: "Labels"},
				{title: "Double-byte"},
			}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tsv, "tsv", false, "Print one tab-separated row per language tag")
	return cmd
}

func nativeCharset(l *language.Language) string {
	if len(l.Charsets) == 0 {
		return ""
	}
	return l.Charsets[0]
}
