package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"billbook/internal/gst"
	"billbook/internal/hsnseed"
	"billbook/internal/logger"
	"billbook/internal/repository/postgres"
)

var (
	seedOutput string
	seedApply  bool
	seedBatch  int
)

var seedHSNCmd = &cobra.Command{
	Use:   "seed-hsn WORKBOOK.xlsx",
	Short: "Import the HSN/SAC master workbook",
	Long: `Reads the goods sheet and the SAC_Master sheet of the government HSN/SAC
workbook. With --out the entries are written as a SQL seed script; with
--apply they are inserted directly into hsn_codes. Existing rows are kept.`,
	Example: `  billctl seed-hsn hsn_master.xlsx --out db/seeds/hsn_codes.sql
  billctl seed-hsn hsn_master.xlsx --apply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedOutput == "" && !seedApply {
			return fmt.Errorf("nothing to do: pass --out, --apply or both")
		}
		log := logger.WithComponent("seed-hsn")

		f, err := excelize.OpenFile(args[0])
		if err != nil {
			return fmt.Errorf("opening workbook: %w", err)
		}
		defer func() { _ = f.Close() }()

		entries, err := hsnseed.Read(f)
		if err != nil {
			return err
		}
		log.Info().Int("entries", len(entries)).Str("workbook", args[0]).Msg("workbook read")

		if seedOutput != "" {
			if err := writeSeedFile(seedOutput, entries); err != nil {
				return err
			}
			log.Info().Str("path", seedOutput).Msg("seed script written")
		}

		if seedApply {
			db, err := postgres.NewDB(&cfg.DB)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			added, err := postgres.NewHSNRepo(db).Import(cmd.Context(), entries)
			if err != nil {
				return err
			}
			log.Info().Int("added", added).Int("skipped", len(entries)-added).Msg("HSN master imported")
		}
		return nil
	},
}

func writeSeedFile(path string, entries []gst.HSNEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating seed file: %w", err)
	}
	if err := hsnseed.WriteSQL(out, entries, seedBatch); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing seed file: %w", err)
	}
	return out.Close()
}

func init() {
	seedHSNCmd.Flags().StringVarP(&seedOutput, "out", "o", "", "write a SQL seed script to this path")
	seedHSNCmd.Flags().BoolVar(&seedApply, "apply", false, "insert entries into the database")
	seedHSNCmd.Flags().IntVar(&seedBatch, "batch", 500, "rows per INSERT in the seed script")
}
