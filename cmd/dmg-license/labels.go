package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"dmglicense/internal/charset"
	"dmglicense/internal/labels"
	"dmglicense/internal/language"
	"dmglicense/internal/services"
)

func newLabelsCommand() *cobra.Command {
	labelsCmd := &cobra.Command{
		Use:         "labels",
		Short:       "Label resource utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	labelsCmd.AddCommand(newLabelsDecodeCommand())
	return labelsCmd
}

func newLabelsDecodeCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Print the fields of a raw STR# label resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := language.Default().ByTag(tag)
			if !ok {
				return services.Wrap(services.ErrValidation, "labels", "decode", fmt.Sprintf("unknown language tag %q", tag), nil)
			}
			if len(lang.Charsets) == 0 {
				return services.Wrap(services.ErrValidation, "labels", "decode", fmt.Sprintf("%s has no charset", lang), nil)
			}
			enc, err := charset.Lookup(lang.Charsets[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "labels", "decode", "", err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return services.Wrap(services.ErrNotFound, "labels", "decode", "", err)
				}
				return services.Wrap(services.ErrInput, "labels", "decode", "", err)
			}
			set, err := labels.Unpack(data, labels.Position{File: args[0]})
			if err != nil {
				return services.Wrap(services.ErrSpecification, "labels", "decode", "", err)
			}

			decoder := enc.NewDecoder()
			rows := make([][]string, 0, labels.Count)
			for _, field := range labels.Fields() {
				text, err := decoder.Bytes(set.Get(field))
				if err != nil {
					return services.Wrap(services.ErrSpecification, "labels", "decode", fmt.Sprintf("%s is not valid %s", field, lang.Charsets[0]), err)
				}
				rows = append(rows, []string{field.Key(), string(text)})
			}
			newSummary(cmd.OutOrStdout()).table([]column{{title: "Field"}, {title: "Text"}}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "lang", "en-US", "Language whose native charset the resource uses")
	return cmd
}
