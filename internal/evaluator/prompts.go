package evaluator

import (
	"encoding/json"
	"fmt"

	"github.com/skillloop/backend/internal/models"
)

// Per-operation model budgets. Extraction is quick, generation needs room
// for full modules, evaluation sits in between.
const (
	extractionMaxTokens = 500
	generationMaxTokens = 8000
	evaluationMaxTokens = 1000

	extractionTemperature = 0.3
	generationTemperature = 0.7
	evaluationTemperature = 0.5
)

func extractionSystemPrompt() string {
	return `You are an expert at understanding learning requests.
Extract the topic and skill level from the user's message.

Rules:
- Topic should be clear and specific (e.g., "Python basics", "Machine Learning", "Product Management")
- Skill level must be one of: beginner, intermediate, or advanced
- If skill level is not explicitly mentioned, infer it from context clues
- Default to "beginner" if uncertain about skill level

Return ONLY valid JSON matching this schema - no markdown, no code blocks:
{
  "topic": "string (the learning topic)",
  "skill_level": "beginner|intermediate|advanced"
}`
}

func extractionUserPrompt(message string) string {
	return fmt.Sprintf(`Extract the topic and skill level from this message:

"%s"

Return ONLY the JSON object.`, message)
}

func generationSystemPrompt() string {
	return `You are an expert instructional designer creating active learning exercises.

Requirements:
- Application-first: users learn by doing, not reading
- Realistic scenarios from the target domain
- Clear validation criteria (what makes an answer good vs. poor)
- Progressive difficulty within the module

Exercise types:
1. Analysis tasks: Present realistic material, ask user to identify/extract insights
2. Comparative evaluation: Give 3-4 options, ask user to rank and justify
3. Structured frameworks: Provide structure, ask user to apply to scenario

Each exercise must include:
- Clear prompt with scenario/context
- Any material needed (customer feedback, data, examples)
- Exactly 3 progressive hints (conceptual, then specific, then near-solution)
- Validation criteria (what makes an answer strong/weak)
- Model answer with detailed explanation

Return ONLY valid JSON matching this exact schema - no markdown, no code blocks, just the JSON:
{
  "title": "string (concise module title)",
  "domain": "string (lowercase_with_underscores like 'product_management')",
  "exercises": [
    {
      "sequence": 1,
      "name": "string (short descriptive name, 2-5 words)",
      "type": "analysis|comparative|framework",
      "prompt": "string (clear task description)",
      "material": "string (content to analyze, required for analysis/framework)",
      "options": ["only for comparative exercises"],
      "scaffold": {"only": "for framework exercises"},
      "hints": ["hint1", "hint2", "hint3"],
      "validation_criteria": {
        "criterion1": "description",
        "criterion2": "description"
      },
      "model_answer": "string (example answer)",
      "model_explanation": "string (why this answer is strong)",
      "estimated_minutes": 8
    }
  ]
}`
}

func generationUserPrompt(topic string, skillLevel models.SkillLevel, exerciseCount int) string {
	return fmt.Sprintf(`Create a %s learning module on: %s

Generate %d exercises following this structure:

Exercise 1 (Analysis): Present realistic material, ask user to identify/extract insights
Exercise 2 (Comparative): Give 3-4 options, ask user to rank and justify
Exercise 3 (Framework): Provide structure, ask user to apply to scenario

For each exercise include:
1. A short descriptive name (2-5 words, e.g., "Analyzing Market Trends" or "Framework Application")
2. Clear prompt with scenario/context
3. Any material needed (customer feedback, data, examples)
4. Exactly 3 progressive hints (conceptual, then specific, then near-solution)
5. Validation criteria object with at least 2-4 criteria
6. Model answer with explanation of why it's strong

Ensure the topic is appropriate for %s level and exercises build on each other.

Return ONLY the JSON object, no markdown formatting or code blocks.`, skillLevel, topic, exerciseCount, skillLevel)
}

func evaluationSystemPrompt() string {
	return `You are an expert learning instructor evaluating student responses.

Provide constructive, specific feedback that:
- Acknowledges what the student did well
- Identifies specific areas for improvement
- Connects feedback to the validation criteria
- Encourages growth mindset

Assessment levels:
- "strong": Meets all validation criteria, shows clear understanding (score 80-100)
- "developing": Partially meets criteria, shows emerging understanding (score 50-79)
- "needs_support": Does not meet criteria, needs more guidance (score 0-49)

Return ONLY valid JSON matching this schema - no markdown, no code blocks:
{
  "assessment": "strong|developing|needs_support",
  "internal_score": 85,
  "feedback": "Specific, constructive feedback...",
  "should_advance": true
}

Rules:
- should_advance is true only if assessment is "strong"
- Feedback should be 2-3 sentences
- Score must match assessment level
- Be encouraging but honest`
}

func evaluationUserPrompt(exercise models.Exercise, answerText string, hintsUsed int) string {
	criteria, _ := json.MarshalIndent(exercise.ValidationCriteria, "", "  ")
	return fmt.Sprintf(`Exercise Type: %s
Exercise Prompt: %s

Validation Criteria:
%s

Model Answer: %s
Model Explanation: %s

Student Answer:
%s

Hints Used: %d/3

Evaluate this answer against the validation criteria. Consider that using hints is okay - focus on understanding demonstrated.

Return ONLY the JSON evaluation object.`,
		exercise.Type, exercise.Prompt, criteria,
		exercise.ModelAnswer, exercise.ModelExplanation,
		answerText, hintsUsed)
}
