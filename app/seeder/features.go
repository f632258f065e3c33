package main

import (
	"encoding/json"
	"fmt"

	"campusMatching/business/bandit"
	"campusMatching/domain"

	"github.com/spf13/cobra"
)

var (
	featStudentID uint
	featClubID    uint
)

func init() {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the feature vector of one student and club",
		Run:   runFeatures,
	}
	cmd.Flags().UintVar(&featStudentID, "student", 0, "Student id (default: first student)")
	cmd.Flags().UintVar(&featClubID, "club", 0, "Club id (default: first club)")

	rootCmd.AddCommand(cmd)
}

func runFeatures(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	var student domain.Student
	var club domain.Club
	q := db.WithContext(cmd.Context()).Order("id")
	if featStudentID != 0 {
		err = q.First(&student, featStudentID).Error
	} else {
		err = q.First(&student).Error
	}
	if err != nil {
		exitErr("load student", err)
	}
	q = db.WithContext(cmd.Context()).Order("id")
	if featClubID != 0 {
		err = q.First(&club, featClubID).Error
	} else {
		err = q.First(&club).Error
	}
	if err != nil {
		exitErr("load club", err)
	}

	phi := bandit.BuildFeatureVector(student, club)

	fmt.Printf("Student: %d / %s / year=%s / interests=%s\n", student.ID, student.Email, student.Year, student.Interests)
	fmt.Printf("Club: %d / %s / tags=%s / meeting_time=%s\n", club.ID, club.Name, club.Tags, club.MeetingTime)
	b, _ := json.Marshal(phi)
	fmt.Printf("dim=%d\n%s\n", len(phi), b)
}
