package dto

// GeminiAPIRequest is the request body for the Gemini generateContent endpoint.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single conversation turn in a Gemini request or response.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one piece of content.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response body from the Gemini generateContent
// endpoint.
type GeminiAPIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content Content `json:"content"`
}

// NewsCommentaryResult is the structured output the commentary prompt asks
// Gemini to produce for an ingested article.
type NewsCommentaryResult struct {
	Commentary string   `json:"commentary"`
	Keywords   []string `json:"keywords"`
}
