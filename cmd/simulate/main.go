// Offline intake walkthrough: runs the questioning loop against the fixed
// question bank, no model or database required. Useful for demoing the flow
// and for eyeballing analytics output.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"project-intake-be/pkg/intake/analytics"
	"project-intake-be/pkg/intake/fallback"
	"project-intake-be/pkg/intake/validate"
	"project-intake-be/pkg/store"

	"github.com/fatih/color"
)

func main() {
	title := color.New(color.FgCyan, color.Bold)
	prompt := color.New(color.FgYellow)
	info := color.New(color.FgHiBlack)
	warn := color.New(color.FgRed)

	title.Println("=== Project Intake Simulator (offline) ===")
	info.Println("Answer questions, press enter to skip, type /finish to stop early.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	prompt.Print("Describe your project: ")
	description, _ := reader.ReadString('\n')
	description = strings.TrimSpace(description)

	if ok, reason := validate.Check(description); !ok {
		warn.Printf("Rejected: %s\n", reason)
		os.Exit(1)
	}

	var questions []store.Question
	answers := make(map[int]string)

	for len(questions) < fallback.Len() {
		q := fallback.For(description, len(questions))
		q.Sequence = len(questions) + 1
		questions = append(questions, q)

		fmt.Println()
		title.Printf("%s  Question %d/%d — %s\n", q.Icon, q.Sequence, fallback.Len(), q.Category)
		prompt.Printf("%s\n> ", q.Text)

		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(answer)

		if answer == "/finish" {
			break
		}
		if answer == "" {
			info.Println("(skipped)")
			continue
		}
		answers[len(questions)-1] = answer
	}

	result := analytics.Summarize(questions, answers)

	fmt.Println()
	title.Println("=== Summary ===")
	fmt.Printf("Questions asked:   %d\n", result.TotalQuestions)
	fmt.Printf("Answered:          %d\n", result.AnsweredCount)
	fmt.Printf("Completeness:      %d%%\n", result.Completeness)

	riskColor := color.New(color.FgGreen)
	switch result.ScopeRisk {
	case analytics.RiskMedium:
		riskColor = color.New(color.FgYellow)
	case analytics.RiskHigh:
		riskColor = color.New(color.FgRed)
	}
	riskColor.Printf("Scope risk:        %s\n", result.ScopeRisk)

	fmt.Printf("Budget covered:    %v\n", result.HasBudgetInfo)
	fmt.Printf("Timeline covered:  %v\n", result.HasTimelineInfo)
	fmt.Printf("Edge cases probed: %d\n", result.EdgeCaseAnsweredCount)
}
