package prompts

const postSpec = `Respond with a JSON object matching this exact structure:

{
  "title": "<title>",
  "hook": "<opening line>",
  "content": "<body>",
  "call_to_action": "<closing prompt>",
  "hashtags": ["#Tag1", "#Tag2"],
  "engagement_score": 7.5
}

Field constraints:
- title: Short, specific headline for the post.
- hook: One or two sentences that open the post and earn attention.
- content: The post body, 150 to 1300 characters. Plain text with line
  breaks permitted; no markdown headings.
- call_to_action: One sentence inviting the reader to respond or act.
- hashtags: 5 to 8 entries, each beginning with "#", most specific first.
- engagement_score: Your own 0-10 estimate of how well this post will
  perform with the stated audience.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Every field is required and must be non-empty
- Do not include commentary outside the JSON object`

const critiqueSpec = `Respond with a JSON object matching this exact structure:

{
  "overall_score": 7.2,
  "dimension_scores": {
    "clarity": 8.0,
    "engagement": 6.5,
    "professionalism": 8.0,
    "platform_optimization": 6.5,
    "value": 7.0
  },
  "strengths": ["<strength>"],
  "weaknesses": ["<weakness>"],
  "improvement_suggestions": ["<suggestion>"]
}

Field constraints:
- overall_score: Mean of the five dimension scores, 0-10.
- dimension_scores: All five dimensions are required, each 0-10.
- strengths: Elements of the post that must be preserved in revision.
- weaknesses: Specific problems, not restatements of low scores.
- improvement_suggestions: Concrete edits a writer could apply directly.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Score the post as given; do not consider how many times it has been revised
- Do not include commentary outside the JSON object`

var specs = map[Stage]string{
	StageGenerate: postSpec,
	StageCritique: critiqueSpec,
	StageRefine:   postSpec,
	StagePolish:   postSpec,
}

// Spec returns the response-format specification for a workflow stage.
// Generate, refine, and polish share the post schema; critique has its own.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

// StrictFormat is appended to a prompt when a prior response failed schema
// validation and the call is retried.
const StrictFormat = `

IMPORTANT: Your previous response could not be parsed. Respond with ONLY the JSON object described above. No prose, no markdown fencing, no explanation before or after the JSON.`
