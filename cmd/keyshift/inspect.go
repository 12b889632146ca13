package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sensiblebit/keyshift/internal"
	"github.com/spf13/cobra"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Identify a key's family, container, and serialization",
	Long:  "Detect whether a file holds an RSA or EC key, which container format and serialization it uses, and its curve or bit size.",
	Example: `  keyshift inspect key.pem
  keyshift inspect key.der --format json
  keyshift inspect bundle.pfx -p secret`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "Output format: text or json (default: text on a terminal, json otherwise)")

	registerCompletion(inspectCmd, "format", fixedCompletion("text", "json"))
}

func runInspect(cmd *cobra.Command, args []string) error {
	passwords, err := internal.ProcessPasswords(passwordList, passwordFile)
	if err != nil {
		return fmt.Errorf("loading passwords: %w", err)
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	info, err := internal.DetectKey(data, passwords)
	if err != nil {
		return err
	}

	format := inspectFormat
	if format == "" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			format = "text"
		} else {
			format = "json"
		}
	}

	switch format {
	case "json":
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Println(string(out))
	case "text":
		kind := "public"
		if info.Private {
			kind = "private"
		}
		fmt.Printf("Family:        %s (%s key)\n", info.Family, kind)
		fmt.Printf("Container:     %s\n", info.Container)
		fmt.Printf("Serialization: %s\n", info.Serialization)
		if info.Bits != "" {
			fmt.Printf("Bits:          %s\n", info.Bits)
		}
		if info.Curve != "" {
			fmt.Printf("Curve:         %s\n", info.Curve)
		}
		if info.Fingerprint != "" {
			fmt.Printf("Fingerprint:   %s\n", info.Fingerprint)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
