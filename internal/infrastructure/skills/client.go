package skills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"jobboard/internal/domain/policy"

	"github.com/google/uuid"
)

// Skill is a catalog entry in the external skill directory.
type Skill struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id"`
}

// Directory is the external skill service: the authoritative catalog and
// the per-user completed-skill sets.
type Directory interface {
	CatalogIDs(ctx context.Context) (policy.SkillSet, error)
	CompletedSkills(ctx context.Context, userID uuid.UUID) (policy.SkillSet, error)
}

type httpDirectory struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewHTTPDirectory(baseURL string, timeout time.Duration, logger *log.Logger) Directory {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (d *httpDirectory) CatalogIDs(ctx context.Context) (policy.SkillSet, error) {
	var catalog []Skill
	if err := d.getJSON(ctx, "/skills", &catalog); err != nil {
		return nil, err
	}
	ids := make(policy.SkillSet, len(catalog))
	for _, s := range catalog {
		ids[s.ID] = struct{}{}
	}
	return ids, nil
}

func (d *httpDirectory) CompletedSkills(ctx context.Context, userID uuid.UUID) (policy.SkillSet, error) {
	var raw json.RawMessage
	if err := d.getJSON(ctx, "/skills/"+userID.String(), &raw); err != nil {
		return nil, err
	}
	return decodeCompleted(raw)
}

// decodeCompleted accepts either a plain array of skill ids or a leveled
// map keyed by skill id; both shapes exist in the wild.
func decodeCompleted(raw json.RawMessage) (policy.SkillSet, error) {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		return policy.NewSkillSet(ids), nil
	}

	var leveled map[string]int
	if err := json.Unmarshal(raw, &leveled); err != nil {
		return nil, fmt.Errorf("unexpected completed-skills payload: %w", err)
	}
	out := make(policy.SkillSet, len(leveled))
	for id := range leveled {
		out[id] = struct{}{}
	}
	return out, nil
}

func (d *httpDirectory) getJSON(ctx context.Context, path string, out any) error {
	if d == nil || d.client == nil {
		return errors.New("nil skill directory client")
	}
	endpoint := d.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("skill directory request failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if d.logger != nil {
			d.logger.Printf("[Skills] GET error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return err
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ Directory = (*httpDirectory)(nil)
