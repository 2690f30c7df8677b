package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"

	"finance-tracker-go-be/analytics"
	"finance-tracker-go-be/config"
)

// Insight is the structure we expect back from Gemini for each category.
type Insight struct {
	Category   string `json:"category"`
	Insight    string `json:"insight"`
	Suggestion string `json:"suggestion"`
}

// SpendingInsights sends the current month's category breakdown to Gemini and
// returns its observations. Purely advisory; nothing is written.
func SpendingInsights(c *fiber.Ctx) error {
	userID := currentUserID(c)

	breakdown, err := analyticsSvc.CategoryBreakdown(userID, nil, analytics.ThisMonth())
	if err != nil {
		log.Printf("Failed to fetch breakdown for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch spending data"})
	}

	if len(breakdown) == 0 {
		return c.JSON(fiber.Map{
			"message":  "No categorized transactions this month",
			"insights": []Insight{},
		})
	}

	summary, err := analyticsSvc.OverallSummary(userID)
	if err != nil {
		log.Printf("Failed to fetch summary for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch spending data"})
	}

	// Construct the prompt
	var promptBuilder strings.Builder
	promptBuilder.WriteString("You are a personal finance advisor. Analyze this month's spending by category.\n")
	promptBuilder.WriteString("Return a RAW JSON ARRAY of objects. Do NOT use markdown formatting.\n")
	promptBuilder.WriteString("Each object must have: 'category', 'insight' (one observation), and 'suggestion' (one actionable tip).\n\n")
	promptBuilder.WriteString(fmt.Sprintf("Current net balance: %.2f\n\n", summary.CurrentNetBalance))

	for _, row := range breakdown {
		promptBuilder.WriteString(fmt.Sprintf(`{"category": "%s", "type": "%s", "total": %.2f, "transactions": %d}`+"\n",
			row.CategoryName, row.TransactionType, row.Total, row.Count))
	}

	apiKey := config.GeminiAPIKey()
	if apiKey == "" {
		log.Println("Error: GEMINI_API_KEY not set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "GEMINI_API_KEY not set"})
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Printf("Error initializing AI client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to init AI client"})
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-1.5-flash", genai.Text(promptBuilder.String()), nil)
	if err != nil {
		log.Printf("Error during AI generation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "AI generation failed: " + err.Error()})
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Println("Error: Empty response from AI")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Empty response from AI"})
	}

	rawText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			rawText += part.Text
		}
	}

	// Clean Markdown if present (Gemini loves adding ```json ... ```)
	rawText = strings.TrimSpace(rawText)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")

	var insights []Insight
	if err := json.Unmarshal([]byte(rawText), &insights); err != nil {
		log.Printf("Error parsing AI response: %v. Raw text: %s", err, rawText)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse AI response"})
	}

	return c.JSON(fiber.Map{
		"count":    len(insights),
		"insights": insights,
	})
}
