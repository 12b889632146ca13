package main

import (
	"github.com/sensiblebit/keyshift/internal"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	passwordList []string
	passwordFile string
)

var rootCmd = &cobra.Command{
	Use:   "keyshift",
	Short: "Asymmetric key format conversion tool",
	Long:  "Convert RSA and EC keys between PKCS#1, PKCS#8, and SEC1 containers and PEM/DER serializations, and re-encode key bytes as base64, hex, or raw text.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetupLogger(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringSliceVarP(&passwordList, "passwords", "p", nil, "Comma-separated passwords for PKCS#12/JKS inputs")
	rootCmd.PersistentFlags().StringVar(&passwordFile, "password-file", "", "File containing passwords, one per line")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
}
