package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sensiblebit/keyshift"
	"github.com/sensiblebit/keyshift/internal"
	"github.com/spf13/cobra"
)

var (
	convertFamily      string
	convertFrom        string
	convertTo          string
	convertCurve       string
	convertProfile     string
	convertProfilePath string
	convertKeyPath     string
	convertPubPath     string
	convertOutPath     string
	convertDBPath      string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert keys between container formats and serializations",
	Long: `Convert a private and/or public key between container formats (pkcs1, pkcs8, sec1)
and serializations (pem, der). RSA keys move between pkcs1 and pkcs8; EC keys
between sec1 and pkcs8. PKCS#12 and JKS inputs are unwrapped automatically.`,
	Example: `  keyshift convert --key key.pem --family rsa --from pkcs1/pem --to pkcs8/pem
  keyshift convert --key key.der --pub pub.der --family ecc --curve nistp256 --from sec1/der --to pkcs8/pem
  keyshift convert --key bundle.pfx -p secret --to pkcs8/pem -o ./out
  keyshift convert --key key.pem --profile java-import --profiles profiles.yaml`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFamily, "family", "", "Key family: rsa or ecc (detected from input when omitted)")
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source format as container/serialization, e.g. pkcs1/pem (detected when omitted)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Target format as container/serialization, e.g. pkcs8/der")
	convertCmd.Flags().StringVar(&convertCurve, "curve", "", "Curve for EC conversions: nistp256, nistp384, nistp521, secp256k1")
	convertCmd.Flags().StringVar(&convertProfile, "profile", "", "Named conversion profile from the profiles file")
	convertCmd.Flags().StringVar(&convertProfilePath, "profiles", "./profiles.yaml", "Path to conversion profiles YAML")
	convertCmd.Flags().StringVarP(&convertKeyPath, "key", "k", "", "Private key file (use - for stdin)")
	convertCmd.Flags().StringVar(&convertPubPath, "pub", "", "Public key file")
	convertCmd.Flags().StringVarP(&convertOutPath, "out-path", "o", "", "Output directory (default: print PEM to stdout)")
	convertCmd.Flags().StringVarP(&convertDBPath, "db", "d", "", "History database path (default: no history)")

	registerCompletion(convertCmd, "family", fixedCompletion("rsa", "ecc"))
	registerCompletion(convertCmd, "curve", fixedCompletion("nistp256", "nistp384", "nistp521", "secp256k1"))
	registerCompletion(convertCmd, "from", formatCompletion)
	registerCompletion(convertCmd, "to", formatCompletion)
	registerCompletion(convertCmd, "out-path", directoryCompletion)
}

// parseFormatSpec parses a container/serialization pair like "pkcs8/pem".
func parseFormatSpec(s string) (keyshift.FormatSpec, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return keyshift.FormatSpec{}, fmt.Errorf("format %q is not container/serialization (e.g. pkcs8/pem)", s)
	}
	container, err := keyshift.ParseContainerKind(parts[0])
	if err != nil {
		return keyshift.FormatSpec{}, err
	}
	serialization, err := keyshift.ParseSerialization(parts[1])
	if err != nil {
		return keyshift.FormatSpec{}, err
	}
	return keyshift.FormatSpec{Container: container, Serialization: serialization}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if convertKeyPath == "" && convertPubPath == "" {
		return fmt.Errorf("at least one of --key or --pub is required")
	}

	passwords, err := internal.ProcessPasswords(passwordList, passwordFile)
	if err != nil {
		return fmt.Errorf("loading passwords: %w", err)
	}

	if convertProfile != "" {
		if err := applyProfile(); err != nil {
			return err
		}
	}

	privText, pubText, info, err := loadInputs(passwords)
	if err != nil {
		return err
	}

	family, from, to, curve, err := resolveFormats(info)
	if err != nil {
		return err
	}

	pair, err := dispatch(cmd.Context(), family, curve, privText, pubText, from, to)
	if err != nil {
		return err
	}

	if err := writeResult(pair, to); err != nil {
		return err
	}

	// The conversion succeeded and its output is already written; a history
	// failure must not discard it.
	if convertDBPath != "" && info != nil {
		if err := recordConversion(info, family, from, to, curve); err != nil {
			slog.Warn("recording history", "db", convertDBPath, "error", err)
		}
	}
	return nil
}

// applyProfile overlays profile values onto any flags the user left unset.
func applyProfile() error {
	profiles, defaults, err := internal.LoadProfiles(convertProfilePath)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}
	profile, err := internal.FindProfile(profiles, convertProfile)
	if err != nil {
		return err
	}
	if convertFamily == "" {
		convertFamily = profile.Family
	}
	if convertFrom == "" {
		convertFrom = profile.FromFormat
	}
	if convertTo == "" {
		convertTo = profile.ToFormat
	}
	if convertCurve == "" {
		convertCurve = profile.Curve
		if convertCurve == "" {
			convertCurve = defaults.Curve
		}
	}
	return nil
}

// loadInputs reads the key files, unwrapping PKCS#12/JKS private inputs into
// a PKCS#8 PEM pair. The returned KeyInfo describes the private input (or
// the public one when no private key is given) for detection and history.
func loadInputs(passwords []string) (privText, pubText string, info *internal.KeyInfo, err error) {
	if convertKeyPath != "" {
		data, err := readInput(convertKeyPath)
		if err != nil {
			return "", "", nil, err
		}
		if pair, family, ok := unwrapContainer(data, passwords); ok {
			convertFamilyDefault(string(family))
			convertFromDefault("pkcs8/pem")
			detected, _ := internal.DetectKey([]byte(pair.PrivateKey), passwords)
			return pair.PrivateKey, pair.PublicKey, detected, nil
		}
		privText = string(data)
		info, _ = internal.DetectKey(data, passwords)
	}
	if convertPubPath != "" {
		data, err := readInput(convertPubPath)
		if err != nil {
			return "", "", nil, err
		}
		pubText = string(data)
		if info == nil {
			info, _ = internal.DetectKey(data, passwords)
		}
	}
	return privText, pubText, info, nil
}

// unwrapContainer tries to open the data as a PKCS#12 or JKS container with
// each password. Non-container inputs (plain PEM/DER) report ok=false.
func unwrapContainer(data []byte, passwords []string) (keyshift.KeyPair, keyshift.KeyFamily, bool) {
	for _, pw := range passwords {
		if pair, family, err := keyshift.DecodePKCS12Key(data, pw); err == nil {
			return pair, family, true
		}
	}
	for _, pw := range passwords {
		if pair, family, err := keyshift.DecodeJKSKey(data, pw); err == nil {
			return pair, family, true
		}
	}
	return keyshift.KeyPair{}, "", false
}

func convertFamilyDefault(family string) {
	if convertFamily == "" {
		convertFamily = family
	}
}

func convertFromDefault(from string) {
	if convertFrom == "" {
		convertFrom = from
	}
}

// resolveFormats turns flags (plus detection results) into the typed
// conversion parameters.
func resolveFormats(info *internal.KeyInfo) (keyshift.KeyFamily, keyshift.FormatSpec, keyshift.FormatSpec, keyshift.Curve, error) {
	if convertFamily == "" && info != nil {
		convertFamily = info.Family
	}
	if convertFrom == "" && info != nil {
		convertFrom = info.Container + "/" + info.Serialization
	}
	if convertTo == "" {
		return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", fmt.Errorf("--to is required")
	}
	if convertFrom == "" {
		return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", fmt.Errorf("--from is required (input format could not be detected)")
	}

	family, err := keyshift.ParseKeyFamily(convertFamily)
	if err != nil {
		return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", err
	}
	from, err := parseFormatSpec(convertFrom)
	if err != nil {
		return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", err
	}
	to, err := parseFormatSpec(convertTo)
	if err != nil {
		return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", err
	}

	var curve keyshift.Curve
	if family == keyshift.ECC {
		if convertCurve == "" {
			return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", fmt.Errorf("--curve is required for ecc conversions")
		}
		curve, err = keyshift.ParseCurve(convertCurve)
		if err != nil {
			return "", keyshift.FormatSpec{}, keyshift.FormatSpec{}, "", err
		}
	}
	return family, from, to, curve, nil
}

// dispatch picks the converter variant: container conversions when the
// container kind changes, serialization-only conversions otherwise.
func dispatch(ctx context.Context, family keyshift.KeyFamily, curve keyshift.Curve, priv, pub string, from, to keyshift.FormatSpec) (keyshift.KeyPair, error) {
	provider := keyshift.LocalProvider{}
	serializationOnly := from.Container == to.Container

	switch family {
	case keyshift.RSA:
		if serializationOnly {
			return keyshift.RSAEncodingConverter{Provider: provider}.Convert(ctx, priv, pub, from, to)
		}
		return keyshift.RSAContainerConverter{Provider: provider}.Convert(ctx, priv, pub, from, to)
	case keyshift.ECC:
		if serializationOnly {
			return keyshift.ECCEncodingConverter{Provider: provider}.Convert(ctx, curve, priv, pub, from, to)
		}
		return keyshift.ECCContainerConverter{Provider: provider}.Convert(ctx, curve, priv, pub, from, to)
	default:
		return keyshift.KeyPair{}, fmt.Errorf("unknown key family %q", family)
	}
}

func recordConversion(info *internal.KeyInfo, family keyshift.KeyFamily, from, to keyshift.FormatSpec, curve keyshift.Curve) error {
	db, err := internal.NewDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, statErr := os.Stat(convertDBPath); statErr == nil {
		if err := db.LoadFromDisk(convertDBPath); err != nil {
			return err
		}
	}

	if err := db.InsertConversion(internal.ConversionRecord{
		Fingerprint: info.Fingerprint,
		Family:      string(family),
		FromFormat:  from.String(),
		ToFormat:    to.String(),
		Curve:       string(curve),
		ConvertedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	// VACUUM INTO refuses to overwrite; replace the old file
	if err := os.Remove(convertDBPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return db.SaveToDisk(convertDBPath)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeResult prints PEM output to stdout, or writes files under -o (the
// only option for DER output when a private key half is present).
func writeResult(pair keyshift.KeyPair, to keyshift.FormatSpec) error {
	if convertOutPath == "" {
		if to.Serialization == keyshift.DER {
			return fmt.Errorf("DER output is binary; use -o to write files")
		}
		if pair.PrivateKey != "" {
			fmt.Print(pair.PrivateKey)
		}
		if pair.PublicKey != "" {
			fmt.Print(pair.PublicKey)
		}
		return nil
	}

	if err := os.MkdirAll(convertOutPath, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", convertOutPath, err)
	}
	ext := "pem"
	if to.Serialization == keyshift.DER {
		ext = "der"
	}
	if pair.PrivateKey != "" {
		path := filepath.Join(convertOutPath, "key."+ext)
		if err := os.WriteFile(path, []byte(pair.PrivateKey), 0600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Private key: %s\n", path)
	}
	if pair.PublicKey != "" {
		path := filepath.Join(convertOutPath, "key.pub."+ext)
		if err := os.WriteFile(path, []byte(pair.PublicKey), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Public key:  %s\n", path)
	}
	return nil
}

// formatCompletion suggests container/serialization combinations.
func formatCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, c := range keyshift.ContainerKinds() {
		out = append(out, string(c)+"/pem", string(c)+"/der")
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
