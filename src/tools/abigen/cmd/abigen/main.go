// Command abigen maintains the offset contract between the kernel
// core and its collaborators: it generates the Go constants from
// abi.yaml and checks a committed source file against it.
package main

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"poise/src/tools/abigen"
)

var (
	outFile    string
	sourceFile string
)

func main() {
	root := &cobra.Command{
		Use:           "abigen",
		Short:         "generate or check the kernel ABI contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	gen := &cobra.Command{
		Use:   "gen <abi.yaml>",
		Short: "emit the contract constants as Go source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := abigen.Load(args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := abigen.Generate(&buf, args[0], c); err != nil {
				return err
			}
			if outFile == "" {
				_, err = os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(outFile, buf.Bytes(), 0644); err != nil {
				return err
			}
			logrus.WithField("out", outFile).Info("contract written")
			return nil
		},
	}
	gen.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	check := &cobra.Command{
		Use:   "check <abi.yaml>",
		Short: "compare a committed source file against the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := abigen.Load(args[0])
			if err != nil {
				return err
			}
			problems, err := abigen.Check(sourceFile, c)
			if err != nil {
				return err
			}
			for _, p := range problems {
				logrus.Error(p)
			}
			if len(problems) > 0 {
				logrus.WithField("count", len(problems)).Fatal("contract drift")
			}
			logrus.WithField("source", sourceFile).Info("contract holds")
			return nil
		},
	}
	check.Flags().StringVarP(&sourceFile, "source", "s", "src/kernel/contract.go", "source file to check")

	root.AddCommand(gen, check)
	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
