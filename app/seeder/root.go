package main

import (
	"fmt"
	"os"

	"campusMatching/pkg/config"
	"campusMatching/pkg/database"
	"campusMatching/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Development tools for the campus club recommender",
	Long:  "Seeds students and clubs, prints feature vectors and runs offline bandit simulations.",
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
