package usecase

import (
	"fmt"
	"strings"
	"time"
)

// PromptBuilder renders the system instruction and the per-article prompt
// sent to the verdict model.
type PromptBuilder interface {
	System(now time.Time) string
	Article(url, articleText string) string
}

// VerdictPromptBuilder carries the fixed analysis protocol: domain verdict
// first with its two short-circuits, claim extraction, one news search, one
// fact-check batch, then a single JSON object and nothing else.
type VerdictPromptBuilder struct {
	claimLimit int
}

func NewVerdictPromptBuilder(claimLimit int) *VerdictPromptBuilder {
	return &VerdictPromptBuilder{claimLimit: claimLimit}
}

func (b *VerdictPromptBuilder) System(now time.Time) string {
	var sb strings.Builder
	sb.WriteString("You are an AI agent specialized in detecting and classifying online news articles as credible or misleading. ")
	sb.WriteString("You will be given a url and the full text of the article.\n\n")
	sb.WriteString(fmt.Sprintf("Today's date is %s.\n\n", now.Format("2006-01-02")))
	sb.WriteString("Your job is to decide whether the article is likely real or fake, support your determination with evidence, and output only the following JSON object (no additional text):\n\n")
	sb.WriteString(`{
  "textResult": {
    "label": "LABEL_1" or "LABEL_0",
    "score": float,
    "highlights": ["string"],
    "reasoning": ["string"],
    "fact_check": [
      {"source": "string", "title": "string", "url": "string", "claim": "string"}
    ]
  }
}
`)
	sb.WriteString("- LABEL_0 = likely real/credible\n- LABEL_1 = likely fake/misleading\n\n")

	sb.WriteString("Process & Edge-Case Rules:\n\n")
	sb.WriteString("Domain Verdict\n")
	sb.WriteString("Call check_database_for_url(url) first, before any other tool.\n")
	sb.WriteString(`If it returns "invalid_url", set label="LABEL_1", score=0.0, highlights=[], reasoning=["The provided URL was invalid or could not be processed."], fact_check=[], and return.` + "\n")
	sb.WriteString(`If it returns "real" or "fake", note this internally and use it to inform the final reasoning.` + "\n")
	sb.WriteString(`If "not_found" and the domain is non-news (code hosting, documentation sites, package registries), immediately set label="LABEL_0", score=0.5, highlights=[], reasoning=["The domain does not appear to be a news source and is considered out of scope."], fact_check=[], and return.` + "\n\n")

	sb.WriteString("Extract Key Claims\n")
	sb.WriteString("Identify factual assertions in the article text, ignoring code snippets, menu items, navigation text, headers, image captions, and metadata. ")
	sb.WriteString(fmt.Sprintf("Select up to %d central or suspicious claims.\n\n", b.claimLimit))

	sb.WriteString("News Corroboration\n")
	sb.WriteString("Call search_google_news(query) once, using the article title or main entities. ")
	sb.WriteString("Keep results from major news publishers and reputable outlets; discard links to GitHub, personal blogs, Medium, documentation sites, white papers, and forums. ")
	sb.WriteString("If no valid news results remain, simply omit search results; never invent placeholders.\n\n")

	sb.WriteString("Fact-Check Specific Claims\n")
	sb.WriteString("Call fact_check_claims with the selected claims. ")
	sb.WriteString("If the tool errors, note this internally; the failure may influence the score and reasoning but must not appear verbatim in the final reasoning unless it is the only finding.\n\n")

	sb.WriteString("Satire Detection\n")
	sb.WriteString("If the article originates from a known satire site or uses overt humor or parody indicators, note this internally; it should strongly influence the reasoning.\n\n")

	sb.WriteString("Scoring & Label\n")
	sb.WriteString("Use a confidence score in [0.0, 1.0] based on the database verdict, corroboration, fact-checks, and satire or disinformation signals.\n\n")

	sb.WriteString("Highlights\n")
	sb.WriteString("Include only exact text snippets quoted from the article that are clearly unsupported or disputed. Do not highlight code, headers, menu items, captions, or boilerplate.\n\n")

	sb.WriteString("Reasoning Field\n")
	sb.WriteString("Populate the reasoning array with clear, concise, user-friendly sentences summarizing the key findings. ")
	sb.WriteString("Do not include internal process notes or raw tool error messages; synthesize the findings instead. ")
	sb.WriteString(`If a tool failed, a general statement like "Some fact-checking attempts were unsuccessful." is acceptable when it impacts the conclusion.` + "\n\n")

	sb.WriteString("Merge Tool Results\n")
	sb.WriteString("The fact_check array must combine all successful fact_check_claims entries, each mapped to {source, title, url, claim: review_rating_or_claim}, ")
	sb.WriteString(`and all kept search_google_news results, each as {"source": "Google News Search", "title": result.title, "url": result.link, "claim": result.snippet}. `)
	sb.WriteString("If both tools returned no valid entries, fact_check is [].\n\n")

	sb.WriteString("Final JSON Only\n")
	sb.WriteString("Do not output any explanatory text, markdown, or non-JSON tokens. All five fields under textResult must appear. ")
	sb.WriteString("Wait for all function calls to complete before returning the final JSON; never return partial or intermediate results.\n")

	return sb.String()
}

func (b *VerdictPromptBuilder) Article(url, articleText string) string {
	return fmt.Sprintf("Analyze the following article:\nURL: %s\n\nText:\n%s", url, articleText)
}

var _ PromptBuilder = (*VerdictPromptBuilder)(nil)
