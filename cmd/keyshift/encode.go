package main

import (
	"fmt"
	"os"

	"github.com/sensiblebit/keyshift"
	"github.com/spf13/cobra"
)

var (
	encodeEncoding string
	decodeEncoding string
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode bytes as text",
	Long:  "Render raw bytes (from a file or stdin) as text under a selected encoding.",
	Example: `  keyshift encode key.der
  keyshift encode key.der --encoding hex
  cat key.der | keyshift encode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode text back to bytes",
	Long:  "Recover raw bytes from encoded text (from a file or stdin). The bytes are written to stdout.",
	Example: `  keyshift decode key.b64 > key.der
  keyshift decode key.hex --encoding hex > key.der`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeEncoding, "encoding", "e", "base64", "Text encoding: base64, base64url, hex, utf8")
	decodeCmd.Flags().StringVarP(&decodeEncoding, "encoding", "e", "base64", "Text encoding: base64, base64url, hex, utf8")

	registerCompletion(encodeCmd, "encoding", encodingCompletion)
	registerCompletion(decodeCmd, "encoding", encodingCompletion)
}

func runEncode(cmd *cobra.Command, args []string) error {
	encoding, err := keyshift.ParseEncoding(encodeEncoding)
	if err != nil {
		return err
	}
	data, err := readInput(inputArg(args))
	if err != nil {
		return err
	}
	text, err := keyshift.EncodeText(data, encoding)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	encoding, err := keyshift.ParseEncoding(decodeEncoding)
	if err != nil {
		return err
	}
	data, err := readInput(inputArg(args))
	if err != nil {
		return err
	}
	// Tolerate a trailing newline from shells and editors
	text := trimTrailingNewline(string(data))
	raw, err := keyshift.DecodeText(text, encoding)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(raw)
	return err
}

func inputArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "-"
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func encodingCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, e := range keyshift.Encodings() {
		out = append(out, string(e))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
