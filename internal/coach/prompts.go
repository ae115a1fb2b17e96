package coach

import "google.golang.org/genai"

const quotePrompt = "Generate a short, uplifting motivational quote about personal growth or consistency. Max 20 words."

const suggestionPrompt = `Suggest 3 specific, actionable goal ideas for the category "%s". Format the response as a JSON array of strings.`

const summaryPrompt = `Read the following journal entries from the past week and provide a short, encouraging summary of the user's progress, mood, and challenges. Speak in a supportive and motivational tone.

Entries:
%s`

const wordCloudPrompt = `Analyze the following journal entries and identify the 15 most frequent and meaningful keywords or short phrases. Ignore common stop words. Provide the result as a JSON array of objects, where each object has "text" (the keyword) and "value" (its frequency).

Entries:
%s`

const reflectionPrompt = `You are a supportive AI coach. Below is a user's goal progress for the last month. Each goal has a title and a list of dates it was completed.

Data: %s

Analyze this data to find patterns. Specifically, look for days of the week that are consistently missed for any given goal.
For example, if a user often misses their workout on Mondays.

Based on your analysis, generate a short, encouraging, and reflective message. The message should:
1. Gently point out ONE pattern you noticed (e.g., "I noticed Mondays seem to be a tricky day for your workouts...").
2. Ask an open-ended reflection question (e.g., "...Is there something about the start of the week that makes it tough?").
3. If no clear pattern is found, ask a more general reflection prompt like "What was one obstacle that got in your way this week, and what's one thing you could try differently next time?"

Keep the entire response under 50 words. The tone should be helpful and not judgmental.`

var suggestionSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

var wordCloudSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":  {Type: genai.TypeString},
			"value": {Type: genai.TypeNumber},
		},
		Required: []string{"text", "value"},
	},
}
