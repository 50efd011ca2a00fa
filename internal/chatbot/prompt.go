package chatbot

import (
	"fmt"
	"sort"
	"strings"
)

// Summary is the persisted aggregate an answer is grounded on.
type Summary struct {
	VideoTitle     string
	TotalComments  int
	Sentiments     map[string]int
	Languages      map[string]int
	SampleComments map[string][]string
}

// BuildPrompt assembles the analysis context and the user's question into a
// single prompt. Map entries are emitted in sorted key order so the same
// summary always produces the same prompt.
func BuildPrompt(question string, summary *Summary) string {
	if summary == nil {
		return question
	}

	var b strings.Builder
	b.WriteString("You are an AI assistant analyzing YouTube comment sentiment data.\n")
	b.WriteString("Based on the following analysis data, answer the question at the end.\n\n")
	b.WriteString("=== ANALYSIS DATA ===\n")
	if summary.VideoTitle != "" {
		fmt.Fprintf(&b, "Video: %s\n", summary.VideoTitle)
	}
	fmt.Fprintf(&b, "Total Comments Analyzed: %d\n\n", summary.TotalComments)

	b.WriteString("Sentiment Distribution:\n")
	writeCounts(&b, summary.Sentiments)

	b.WriteString("\nLanguage Distribution:\n")
	writeCounts(&b, summary.Languages)

	if len(summary.SampleComments) > 0 {
		b.WriteString("\nSample Comments by Sentiment:\n")
		labels := make([]string, 0, len(summary.SampleComments))
		for label := range summary.SampleComments {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			comments := summary.SampleComments[label]
			if len(comments) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s comments:\n", capitalize(label))
			for i, comment := range comments {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, comment)
			}
		}
	}

	b.WriteString("\n=== QUESTION ===\n")
	b.WriteString(question)
	b.WriteString("\n\n=== INSTRUCTIONS ===\n")
	b.WriteString("Provide a concise and helpful response based on the data when relevant.\n")
	b.WriteString("When discussing what people are talking about, reference the sample comments\n")
	b.WriteString("to provide specific insights about the topics and themes in the comments.\n")
	b.WriteString("Keep your response under 200 words.\n")

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(b, "  %s: %d\n", key, counts[key])
	}
}
