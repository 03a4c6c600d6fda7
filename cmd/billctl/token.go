package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"billbook/internal/repository/postgres"
	"billbook/internal/service"
)

var tokenCmd = &cobra.Command{
	Use:   "token BUSINESS_ID",
	Short: "Issue an access token for an existing business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		businessID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid business ID: %w", err)
		}

		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		business, err := postgres.NewBusinessRepo(db).GetByID(cmd.Context(), businessID)
		if err != nil {
			return err
		}

		tok, err := service.NewAuthService(cfg.JWT).IssueToken(business.ID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"business_id":   business.ID,
			"business_name": business.Name,
			"access_token":  tok.AccessToken,
			"expires_at":    tok.ExpiresAt,
		})
	},
}
