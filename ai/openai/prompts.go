package openai

import "fmt"

const summarySystemPrompt = `You summarize news articles for a press dossier.

Rules:
- Write the summary in the same language as the article.
- Use at most three sentences and no more than 80 words.
- State facts only: who, what, where and when. Do not add opinions.
- Do not include any preamble such as "Summary:" or "This article".
- If the text is not a news article, return a single sentence describing it.`

const summaryUserTemplate = "Summarize the following text: %s"

// maxArticleRunes bounds the article text sent to the model.
const maxArticleRunes = 12000

func buildSummaryPrompt(text string) string {
	return fmt.Sprintf(summaryUserTemplate, clipRunes(text, maxArticleRunes))
}
