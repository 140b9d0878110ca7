package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Gist stores every blob as one file inside a single GitHub gist. This is
// the production backend of the original deployment: the gist API offers
// whole-file read and whole-file replace, nothing finer.
type Gist struct {
	http   *resty.Client
	gistID string
}

func NewGist(gistID, token string) *Gist {
	client := resty.New().
		SetBaseURL("https://api.github.com").
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "gatewaymon/1.0").
		SetAuthToken(token)
	return &Gist{http: client, gistID: gistID}
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	RawURL    string `json:"raw_url"`
}

type gistEnvelope struct {
	Files map[string]*gistFile `json:"files"`
}

func (g *Gist) Read(ctx context.Context, name string) (string, error) {
	var env gistEnvelope
	resp, err := g.http.R().
		SetContext(ctx).
		SetResult(&env).
		Get("/gists/" + g.gistID)
	if err != nil {
		return "", fmt.Errorf("blob: gist read %s: %w", name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("blob: gist read %s: status %d", name, resp.StatusCode())
	}
	file, ok := env.Files[name]
	if !ok || file == nil {
		return "", ErrNotFound
	}
	if !file.Truncated {
		return file.Content, nil
	}
	// The gist API truncates large files inline; fetch the raw content.
	raw, err := g.http.R().SetContext(ctx).Get(file.RawURL)
	if err != nil {
		return "", fmt.Errorf("blob: gist raw read %s: %w", name, err)
	}
	if raw.IsError() {
		return "", fmt.Errorf("blob: gist raw read %s: status %d", name, raw.StatusCode())
	}
	return string(raw.Body()), nil
}

func (g *Gist) Write(ctx context.Context, name, content string) error {
	body := map[string]any{
		"files": map[string]any{
			name: map[string]string{"content": content},
		},
	}
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(body).
		Patch("/gists/" + g.gistID)
	if err != nil {
		return fmt.Errorf("blob: gist write %s: %w", name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("blob: gist write %s: status %d", name, resp.StatusCode())
	}
	return nil
}

func (g *Gist) Append(ctx context.Context, name, chunk string) error {
	return appendViaRewrite(ctx, g, name, chunk)
}
