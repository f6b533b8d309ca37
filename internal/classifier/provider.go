package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const systemPrompt = `You are TrustLink, a security analyst who protects students from fraudulent online content.
Classify every submission (text, links, or screenshots of them) as PROMOTION, INTERNSHIP, SCAM or UNKNOWN.
When an image is attached, read the text in it and analyse that text together with any message text.
Be strict about scams and point out every risk. If there is not enough information, say so and use UNKNOWN.
Never invent company names or verification.
Return ONLY a JSON object with these exact fields:
{"category":"PROMOTION|INTERNSHIP|SCAM|UNKNOWN",
 "riskScore":0-100,
 "confidenceScore":0-100,
 "analysis":"one or two sentences explaining the classification",
 "redFlags":["2-5 short red flags, or an empty array"],
 "recommendation":"Safe to apply|Needs manual verification|Likely scam — stay away|Confirmed scam — avoid",
 "linkAnalysis":{"domainAge":"New|Established|Unknown","sslStatus":"Secure|Not Secure|Unknown","redirects":0,"malwareScan":"Clean|Infected|Unknown"},
 "keywordHighlights":["suspicious phrases from the text"],
 "similarScamsCount":0}
If there is no link, use "Unknown" and 0 in linkAnalysis.`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content interface{} `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func userPrompt(text string) string {
	return fmt.Sprintf("Analyze the following content and return the JSON verdict. "+
		"If there is only an image, analyze the image. If there is text and an image, consider them together. Text: %q", text)
}

func buildMessages(p Provider, req Request) []chatMessage {
	if p.Vision && req.Image != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", req.Image.MimeType, base64.StdEncoding.EncodeToString(req.Image.Data))
		return []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []chatContentPart{
				{Type: "text", Text: userPrompt(req.Text)},
				{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL, Detail: "auto"}},
			}},
		}
	}
	return []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt(req.Text)},
	}
}

func (c *Client) callProvider(ctx context.Context, p Provider, req Request) (Verdict, error) {
	payload, err := json.Marshal(chatRequest{Model: p.Model, Messages: buildMessages(p, req), Temperature: 0.2})
	if err != nil {
		return Verdict{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Verdict{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verdict{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Verdict{}, fmt.Errorf("AI API error: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return Verdict{}, err
	}
	if len(completion.Choices) == 0 {
		return Verdict{}, errors.New("no response from AI")
	}

	var content string
	switch v := completion.Choices[0].Message.Content.(type) {
	case string:
		content = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Verdict{}, fmt.Errorf("failed to extract content from AI response")
		}
		content = string(b)
	}

	return ParseVerdict(content)
}

// extractJSON strips markdown fences and, failing that, returns the span
// between the first '{' and the last '}'.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	if json.Valid([]byte(content)) {
		return content
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
