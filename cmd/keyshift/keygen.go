package main

import (
	"fmt"

	"github.com/sensiblebit/keyshift"
	"github.com/spf13/cobra"
)

var (
	keygenFamily string
	keygenBits   int
	keygenCurve  string
	keygenTo     string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a key pair in a chosen format",
	Long: `Generate a new RSA or EC key pair rendered directly in the requested
container format and serialization.

Output is printed to stdout (PEM formats only; use convert -o for DER files).`,
	Example: `  keyshift keygen
  keyshift keygen --family rsa --bits 2048 --to pkcs1/pem
  keyshift keygen --family ecc --curve nistp384 --to sec1/pem > key.pem`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().StringVarP(&keygenFamily, "family", "f", "ecc", "Key family: rsa or ecc")
	keygenCmd.Flags().IntVarP(&keygenBits, "bits", "b", 4096, "RSA key size in bits")
	keygenCmd.Flags().StringVar(&keygenCurve, "curve", "nistp256", "Curve: nistp256, nistp384, or nistp521")
	keygenCmd.Flags().StringVar(&keygenTo, "to", "pkcs8/pem", "Output format as container/serialization")

	registerCompletion(keygenCmd, "family", fixedCompletion("rsa", "ecc"))
	registerCompletion(keygenCmd, "curve", fixedCompletion("nistp256", "nistp384", "nistp521"))
	registerCompletion(keygenCmd, "to", formatCompletion)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	family, err := keyshift.ParseKeyFamily(keygenFamily)
	if err != nil {
		return err
	}
	spec, err := parseFormatSpec(keygenTo)
	if err != nil {
		return err
	}
	if spec.Serialization == keyshift.DER {
		return fmt.Errorf("DER output is binary; generate PEM and use convert -o for DER files")
	}

	var pair keyshift.KeyPair
	switch family {
	case keyshift.RSA:
		pair, err = keyshift.GenerateRSA(keygenBits, spec)
	case keyshift.ECC:
		var curve keyshift.Curve
		curve, err = keyshift.ParseCurve(keygenCurve)
		if err != nil {
			return err
		}
		pair, err = keyshift.GenerateECC(curve, spec)
	}
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	fmt.Print(pair.PrivateKey)
	fmt.Print(pair.PublicKey)
	return nil
}
