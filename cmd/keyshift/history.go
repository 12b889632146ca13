package main

import (
	"fmt"
	"time"

	"github.com/sensiblebit/keyshift/internal"
	"github.com/spf13/cobra"
)

var (
	historyDBPath      string
	historyFingerprint string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded conversions",
	Long:  "List conversions recorded by convert --db, most recent first.",
	Example: `  keyshift history --db history.db
  keyshift history --db history.db --fingerprint 6e2f...`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyDBPath, "db", "d", "", "History database path")
	historyCmd.Flags().StringVar(&historyFingerprint, "fingerprint", "", "Only show conversions of the key with this fingerprint")

	registerCompletion(historyCmd, "db", fileCompletion)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyDBPath == "" {
		return fmt.Errorf("--db is required")
	}

	db, err := internal.NewDB()
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := db.LoadFromDisk(historyDBPath); err != nil {
		return err
	}

	var recs []internal.ConversionRecord
	if historyFingerprint != "" {
		recs, err = db.GetConversionsByFingerprint(historyFingerprint)
	} else {
		recs, err = db.GetConversions()
	}
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}
	for _, rec := range recs {
		line := fmt.Sprintf("%s  %s  %s -> %s  %s",
			rec.ConvertedAt.Format(time.RFC3339), rec.Family, rec.FromFormat, rec.ToFormat, rec.Fingerprint)
		if rec.Curve != "" {
			line += "  (" + rec.Curve + ")"
		}
		fmt.Println(line)
	}
	return nil
}
