package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/apparentlymart/x86-meta/opcodes"
)

func main() {
	log := logrus.New()
	err := newRootCommand(log).Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func newRootCommand(log *logrus.Logger) *cobra.Command {
	var configFile string
	flags := defaultConfig()

	cmd := &cobra.Command{
		Use:   "wrangle [flags] x86reference.xml [output]",
		Short: "Generate x86-64 opcode tables from the x86reference document",
		Long: `Generate x86-64 opcode tables from the x86reference document.

Every instruction form that is valid in 64-bit mode and whose operands the
assembler supports becomes one opcode variant. The variants are written
together with the table of mnemonic aliases, either as C source (the
default), as a text listing or as YAML.

If no output file is given, the tables are written to stdout.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			cfg.override(cmd.Flags(), &flags)
			err = cfg.validate()
			if err != nil {
				return err
			}

			level, _ := cfg.logLevel()
			log.SetLevel(level)

			output := ""
			if len(args) > 1 {
				output = args[1]
			}
			return run(log, cfg, args[0], output, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML file to read settings from")
	flags.addFlags(cmd.Flags())

	return cmd
}

// run builds the table for the document at input and renders it to output,
// or to stdout if output is empty.
func run(log logrus.FieldLogger, cfg Config, input, output string, stdout, stderr io.Writer) error {
	ref, err := loadReferenceFile(input)
	if err != nil {
		return err
	}

	skip, err := cfg.skipModes()
	if err != nil {
		return err
	}
	asm := opcodes.NewAssembler()
	asm.SkipModes = skip
	asm.InvalidNote = cfg.InvalidNote
	asm.Log = log

	table, err := asm.Assemble(ref)
	if err != nil {
		return fmt.Errorf("failed to assemble opcode table: %w", err)
	}
	log.WithFields(logrus.Fields{
		"variants": len(table.Variants),
		"aliases":  len(table.Aliases),
	}).Info("Assembled opcode table")

	var skipped *multierror.Error
	if errors.As(table.Skipped, &skipped) {
		log.WithField("count", len(skipped.Errors)).Warn("Some syntaxes have unsupported operands and were left out")
		for _, err := range skipped.Errors {
			log.Debug(err)
		}
	}

	if cfg.Dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			SortKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		}
		dumper.Fdump(stderr, table)
	}

	render := renderers[cfg.Format]
	source := filepath.Base(input)
	if output == "" {
		return render(stdout, source, table)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	err = render(w, source, table)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
