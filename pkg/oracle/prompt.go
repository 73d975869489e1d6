package oracle

import (
	"fmt"
	"strings"

	"project-intake-be/pkg/store"
)

// Categories the oracle may choose from for a next question.
var Categories = []string{
	"Budget", "Timeline", "Requirements", "Risks", "Scope", "Technical", "Stakeholders",
}

// buildPrompt assembles the single prompt string for one invocation: the
// project description, every answered question/answer pair in order, and the
// decision instructions with the three allowed reply shapes.
func buildPrompt(description string, history []AnsweredQuestion) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are a project intake analyst. Your ONLY job is to decide the single next most valuable clarifying question about a project, or to stop.\n")
	prompt.WriteString("You do NOT answer questions and you do NOT give advice.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<project_description>\n")
	prompt.WriteString(description)
	prompt.WriteString("\n</project_description>\n\n")

	if len(history) > 0 {
		prompt.WriteString("<answers_so_far>\n")
		for i, qa := range history {
			prompt.WriteString(fmt.Sprintf("Q%d: %s\n", i+1, qa.Question))
			prompt.WriteString(fmt.Sprintf("A%d: %s\n", i+1, qa.Answer))
		}
		prompt.WriteString("</answers_so_far>\n\n")
	}

	prompt.WriteString("<instructions>\n")
	prompt.WriteString("Step 1 - Classify the description as one of: valid project, simple task, gibberish.\n")
	prompt.WriteString("If it is NOT a valid project, reject it with a short human-readable message and a reason category (simple_task or gibberish).\n\n")
	prompt.WriteString("Step 2 - If it IS a valid project, decide whether enough information has been gathered to stop, or whether one more question is worth asking.\n")
	prompt.WriteString("When asking, pick exactly one category from: ")
	prompt.WriteString(strings.Join(Categories, ", "))
	prompt.WriteString(".\n")
	prompt.WriteString("Classify the question as \"standard\" (core requirements) or \"edge_case\" (risk / what-if probing).\n\n")
	prompt.WriteString("Rules:\n")
	prompt.WriteString("- Ask at least 2 Budget questions and at least 2 Timeline questions before stopping.\n")
	prompt.WriteString(fmt.Sprintf("- Never exceed %d questions in total.\n", store.MaxQuestions))
	prompt.WriteString("- At question 15, check in with the user whether they want to continue.\n")
	prompt.WriteString("- Never repeat a question that was already answered.\n")
	prompt.WriteString("- Pick an emoji icon that matches the question.\n")
	prompt.WriteString("</instructions>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY one valid JSON object, in exactly one of these three shapes:\n\n")
	prompt.WriteString("Rejection (not a real project):\n")
	prompt.WriteString("{\"shouldContinue\": false, \"isValid\": false, \"validationType\": \"simple_task|gibberish\", \"validationMessage\": \"message for the user\", \"reasoning\": \"why\"}\n\n")
	prompt.WriteString("Stop (enough information gathered):\n")
	prompt.WriteString("{\"shouldContinue\": false, \"isValid\": true, \"reasoning\": \"why\"}\n\n")
	prompt.WriteString("Continue (ask one more question):\n")
	prompt.WriteString("{\"shouldContinue\": true, \"isValid\": true, \"category\": \"Budget\", \"question\": \"the question text\", \"icon\": \"💰\", \"type\": \"standard|edge_case\", \"reasoning\": \"why\"}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
