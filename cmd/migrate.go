package main

import (
    "github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
    Use:   "migrate",
    Short: "Apply the database schema for the sql backends",
    RunE: func(cmd *cobra.Command, args []string) error {
        st, err := openStore(cmd.Context(), cfg)
        if err != nil { return exitOnError(err, "failed to open store") }
        defer st.Close()
        m, ok := st.(migrator)
        if !ok {
            logger.Info("nothing to migrate", "storage", cfg.Storage)
            return nil
        }
        if err := m.Migrate(cmd.Context()); err != nil { return exitOnError(err, "failed to migrate") }
        logger.Info("schema applied", "storage", cfg.Storage)
        return nil
    },
}
