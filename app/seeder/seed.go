package main

import (
	"fmt"

	"campusMatching/domain"
	"campusMatching/pkg/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace students, clubs and feedback with the development data set",
		Run:   runSeed,
	}

	rootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	hash, err := utils.HashPassword(seedPassword)
	if err != nil {
		exitErr("hash password", err)
	}

	students := seedStudents()
	for i := range students {
		students[i].Password = string(hash)
	}
	clubs := seedClubs()

	err = db.WithContext(cmd.Context()).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&domain.FeedbackEvent{}).Error; err != nil {
			return err
		}
		if err := all.Unscoped().Delete(&domain.Student{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&domain.Club{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&students).Error; err != nil {
			return err
		}
		return tx.Create(&clubs).Error
	})
	if err != nil {
		exitErr("seed", err)
	}

	fmt.Printf("Seed completed: %d students, %d clubs (password %q)\n", len(students), len(clubs), seedPassword)
}
