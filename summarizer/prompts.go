package summarizer

import (
	"fmt"

	"yt-summarizer/internal/models"
)

// podcastPromptTemplate demands strict JSON; the "JSON" marker also
// tells the requester to constrain the model's output format.
const podcastPromptTemplate = `Analyze this podcast. Return STRICT JSON:
{
    "guest_info": { "name": "Name", "bio": "Role/Bio" },
    "questions": ["List 5-8 key questions"],
    "talking_ratio": { "host_percentage": 40, "guest_percentage": 60 },
    "controversy": ["List 1-3 controversies or 'None'"],
    "summary": "Comprehensive summary (200 words)."
}
%s`

// transcribeInstruction requests a verbatim transcript from an audio
// payload; used by the on-demand transcript feature for audio runs.
const transcribeInstruction = "Generate a verbatim transcript of this audio. Do not summarize, just transcribe."

// Instruction builds the mode-specific instruction sent to the model,
// with the output-language preference folded in.
func Instruction(mode models.AnalysisMode, language string) string {
	langInstruction := fmt.Sprintf("Respond in %s.", language)

	switch mode {
	case models.ModePodcastAnalysis:
		return fmt.Sprintf(podcastPromptTemplate, langInstruction)
	case models.ModeBulletSummary:
		return fmt.Sprintf("Summarize into bullet points. %s", langInstruction)
	case models.ModeTimestampSummary:
		return fmt.Sprintf("Create a timeline summary. %s", langInstruction)
	case models.ModeKeyInsights:
		return fmt.Sprintf("Extract top 5 insights. %s", langInstruction)
	default:
		return fmt.Sprintf("Provide a general summary. %s", langInstruction)
	}
}
