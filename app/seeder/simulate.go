package main

import (
	"fmt"
	"io"
	"os"

	"campusMatching/business/bandit"
	"campusMatching/domain"

	"github.com/spf13/cobra"
)

var (
	simRounds     int
	simCandidates int
	simAlpha      float64
	simOffline    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run select/reward/update rounds against a fresh model",
		Long:  "The reward is 1 when the selected club shares a tag with the student, 0 otherwise.",
		Run:   runSimulate,
	}
	cmd.Flags().IntVar(&simRounds, "rounds", 100, "Number of rounds")
	cmd.Flags().IntVar(&simCandidates, "candidates", 5, "Number of candidate clubs")
	cmd.Flags().Float64Var(&simAlpha, "alpha", 1.0, "Exploration strength")
	cmd.Flags().BoolVar(&simOffline, "offline", false, "Use the built-in seed data instead of the database")

	rootCmd.AddCommand(cmd)
}

func runSimulate(cmd *cobra.Command, args []string) {
	students, clubs := seedStudents(), seedClubs()
	for i := range clubs {
		clubs[i].ID = uint(i + 1)
	}
	students[0].ID = 1

	if !simOffline {
		db, err := openDB()
		if err != nil {
			exitErr("open database", err)
		}
		if err := db.WithContext(cmd.Context()).Order("id").Find(&students).Error; err != nil {
			exitErr("load students", err)
		}
		if err := db.WithContext(cmd.Context()).Order("id").Find(&clubs).Error; err != nil {
			exitErr("load clubs", err)
		}
	}
	if len(students) == 0 || len(clubs) == 0 {
		exitErr("simulate", fmt.Errorf("no students or clubs; run seed first"))
	}

	if simCandidates > 0 && simCandidates < len(clubs) {
		clubs = clubs[:simCandidates]
	}

	if _, err := simulate(os.Stdout, students[0], clubs, simRounds, simAlpha); err != nil {
		exitErr("simulate", err)
	}
}

// overlapReward is 1 when the student and club share at least one tag.
func overlapReward(student domain.Student, club domain.Club) float64 {
	if bandit.ParseTags(student.Interests).IntersectionLen(bandit.ParseTags(club.Tags)) > 0 {
		return 1
	}
	return 0
}

// simulate runs the loop on a fresh model and returns the total reward.
func simulate(w io.Writer, student domain.Student, clubs []domain.Club, rounds int, alpha float64) (float64, error) {
	cfg := bandit.DefaultLinUCBConfig()
	cfg.Alpha = alpha
	model, err := bandit.NewLinUCB(nil, cfg)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(w, "student %d / %s / interests=%s\n", student.ID, student.Email, student.Interests)
	for _, c := range clubs {
		fmt.Fprintf(w, "- %d: %s (tags=%s)\n", c.ID, c.Name, c.Tags)
	}

	total := 0.0
	for t := 1; t <= rounds; t++ {
		best, score, ok, err := model.SelectBest(student, clubs)
		if err != nil {
			return total, err
		}
		if !ok {
			return total, fmt.Errorf("no candidate clubs")
		}

		reward := overlapReward(student, best)
		if err := model.Update(student, best, reward); err != nil {
			return total, err
		}
		total += reward

		fmt.Fprintf(w, "round %3d: club %d / %s score=%.4f reward=%.0f\n", t, best.ID, best.Name, score, reward)
	}

	fmt.Fprintf(w, "total reward %.0f over %d rounds\n", total, rounds)
	return total, nil
}
