package main

import (
	"fc-manager-backend/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates the schema on the configured backend.
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, st, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			defer st.Close()

			logger.Info("Creating database schema...")
			if err := st.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			logger.Info("Migration completed successfully")
			return nil
		},
	}
}

// seedDemoCmd loads a sample career for a user. Running it twice is a no-op.
func seedDemoCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Seed a demo career (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, st, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			defer st.Close()

			if err := st.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			seeded, err := st.SeedDemo(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if !seeded {
				logger.Info("Demo data already present", zap.String("user_id", userID))
				return nil
			}
			logger.Info("Demo data seeded", zap.String("user_id", userID))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", store.DemoUserID, "User that owns the demo career")
	return cmd
}
