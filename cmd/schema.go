/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/humaidq/labwise/wizard"
)

var CmdSchema = &cli.Command{
	Name:  "schema",
	Usage: "Print the lab value field schema",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "test",
			Usage: "only print these tests (hair, urine, blood)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "output format: text or yaml",
		},
	},
	Action: printSchema,
}

type schemaField struct {
	Path     string `yaml:"path"`
	Label    string `yaml:"label"`
	Unit     string `yaml:"unit,omitempty"`
	Range    string `yaml:"range"`
	Required bool   `yaml:"required"`
}

type schemaSection struct {
	Key    string        `yaml:"key"`
	Title  string        `yaml:"title"`
	Fields []schemaField `yaml:"fields"`
}

type schemaTest struct {
	Test     wizard.TestType `yaml:"test"`
	Label    string          `yaml:"label"`
	Sections []schemaSection `yaml:"sections"`
}

func selectTests(names []string) (wizard.TestSet, error) {
	if len(names) == 0 {
		return wizard.NewTestSet(wizard.TestTypes...), nil
	}

	var tests []wizard.TestType

	for _, name := range names {
		test, err := wizard.ParseTestType(name)
		if err != nil {
			return 0, err
		}

		tests = append(tests, test)
	}

	return wizard.NewTestSet(tests...), nil
}

func describeSchema(tests wizard.TestSet) []schemaTest {
	out := make([]schemaTest, 0, tests.Len())

	for _, test := range tests.Tests() {
		st := schemaTest{Test: test, Label: test.Label()}

		for _, section := range wizard.SchemaFor(test) {
			ss := schemaSection{Key: section.Key, Title: section.Title}

			for _, field := range section.Fields {
				path := wizard.FieldPath{Test: test, Section: section.Key, Field: field.Key}
				ss.Fields = append(ss.Fields, schemaField{
					Path:     path.String(),
					Label:    field.Label,
					Unit:     field.Unit,
					Range:    field.Range,
					Required: field.Required,
				})
			}

			st.Sections = append(st.Sections, ss)
		}

		out = append(out, st)
	}

	return out
}

func writeSchema(w io.Writer, tests wizard.TestSet, format string) error {
	schema := describeSchema(tests)

	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		return enc.Close()
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

		for _, test := range schema {
			fmt.Fprintf(tw, "# %s\n", test.Label)
			fmt.Fprintln(tw, "PATH\tLABEL\tUNIT\tREFERENCE\tREQUIRED")

			for _, section := range test.Sections {
				for _, field := range section.Fields {
					required := ""
					if field.Required {
						required = "yes"
					}

					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", field.Path, field.Label, field.Unit, field.Range, required)
				}
			}

			fmt.Fprintln(tw)
		}

		return tw.Flush()
	default:
		return errUnknownSchemaFormat
	}
}

func printSchema(_ context.Context, cmd *cli.Command) error {
	tests, err := selectTests(cmd.StringSlice("test"))
	if err != nil {
		return err
	}

	return writeSchema(cmd.Root().Writer, tests, cmd.String("format"))
}
