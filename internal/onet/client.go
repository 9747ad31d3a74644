package onet

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobtracker/internal/config"

	"golang.org/x/time/rate"
)

var ErrNotFound = errors.New("onet occupation not found")

// Client talks to the O*NET Web Services API. Credentials come from
// the developer registration: username plus application key, sent as
// HTTP Basic auth.
type Client struct {
	cfg     config.ONetConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

func NewClient(cfg config.ONetConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

func (c *Client) authHeader() string {
	credentials := c.cfg.Username + ":" + c.cfg.AppKey
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if c == nil || c.client == nil {
		return errors.New("nil onet client")
	}

	full := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")

	var lastErr error
	backoff := 2 * time.Second
	for attempt := 0; attempt < 3; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.authHeader())
		req.Header.Set("Accept", "application/json")

		retry, err := c.decode(req, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
		c.logger.Printf("[ONet] Retryable error endpoint=%s attempt=%d err=%v", endpoint, attempt+1, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return lastErr
}

func (c *Client) decode(req *http.Request, out any) (retry bool, err error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return true, fmt.Errorf("onet request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("onet request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	dec := json.NewDecoder(resp.Body)
	return false, dec.Decode(out)
}

type occupationList struct {
	Total      int             `json:"total"`
	Occupation []OccupationRef `json:"occupation"`
}

// OccupationRef is one entry from the occupations listing.
type OccupationRef struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// ListOccupations returns one page of the occupation taxonomy, 1-based
// inclusive indices.
func (c *Client) ListOccupations(ctx context.Context, start, end int) ([]OccupationRef, error) {
	var out occupationList
	endpoint := fmt.Sprintf("online/occupations?start=%d&end=%d", start, end)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Occupation, nil
}

// AllOccupations pages through the full taxonomy.
func (c *Client) AllOccupations(ctx context.Context) ([]OccupationRef, error) {
	const pageSize = 1000
	all := make([]OccupationRef, 0, pageSize)
	for start := 1; ; start += pageSize {
		page, err := c.ListOccupations(ctx, start, start+pageSize-1)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}
	return all, nil
}

// Search runs a keyword search over occupation titles.
func (c *Client) Search(ctx context.Context, keyword string) ([]OccupationRef, error) {
	var out occupationList
	endpoint := "online/search?keyword=" + url.QueryEscape(keyword)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Occupation, nil
}

type aboutResponse struct {
	API struct {
		Version string `json:"version"`
	} `json:"api"`
	Database struct {
		Release string `json:"release"`
	} `json:"database"`
}

// DatabaseRelease returns the published O*NET database release string
// (for example "29.1"). Used for change detection.
func (c *Client) DatabaseRelease(ctx context.Context) (string, error) {
	var out aboutResponse
	if err := c.get(ctx, "about", &out); err != nil {
		return "", err
	}
	release := strings.TrimSpace(out.Database.Release)
	if release == "" {
		return "", errors.New("onet about response missing database release")
	}
	return release, nil
}

type occupationResponse struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        struct {
		BrightOutlook bool `json:"bright_outlook"`
	} `json:"tags"`
}

type elementList struct {
	Element []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Score       []score `json:"score"`
	} `json:"element"`
}

type score struct {
	Scale struct {
		ID string `json:"id"`
	} `json:"scale"`
	Value json.Number `json:"value"`
}

const (
	scaleImportance = "IM"
	scaleLevel      = "LV"
)

// ElementRating is one skill, knowledge area or ability with its IM and
// LV scale scores for one occupation.
type ElementRating struct {
	ID          string
	Name        string
	Description string
	Importance  float64
	Level       float64
}

func (c *Client) elements(ctx context.Context, code, summary string) ([]ElementRating, error) {
	var out elementList
	endpoint := "online/occupations/" + url.PathEscape(code) + "/summary/" + summary
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}

	ratings := make([]ElementRating, 0, len(out.Element))
	for _, el := range out.Element {
		r := ElementRating{ID: el.ID, Name: el.Name, Description: el.Description}
		for _, s := range el.Score {
			v, err := strconv.ParseFloat(s.Value.String(), 64)
			if err != nil {
				continue
			}
			switch s.Scale.ID {
			case scaleImportance:
				r.Importance = v
			case scaleLevel:
				r.Level = v
			}
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

func (c *Client) Skills(ctx context.Context, code string) ([]ElementRating, error) {
	return c.elements(ctx, code, "skills")
}

func (c *Client) Knowledge(ctx context.Context, code string) ([]ElementRating, error) {
	return c.elements(ctx, code, "knowledge")
}

func (c *Client) Abilities(ctx context.Context, code string) ([]ElementRating, error) {
	return c.elements(ctx, code, "abilities")
}

// TechnologySkill is one software/tool example, flagged when O*NET
// marks it a hot technology.
type TechnologySkill struct {
	Name          string
	HotTechnology bool
}

type technologyList struct {
	Category []struct {
		Title struct {
			Name string `json:"name"`
		} `json:"title"`
		Example []struct {
			Name          string `json:"name"`
			HotTechnology bool   `json:"hot_technology"`
		} `json:"example"`
	} `json:"category"`
}

func (c *Client) TechnologySkills(ctx context.Context, code string) ([]TechnologySkill, error) {
	var out technologyList
	endpoint := "online/occupations/" + url.PathEscape(code) + "/summary/technology_skills"
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}

	var skills []TechnologySkill
	for _, cat := range out.Category {
		for _, ex := range cat.Example {
			skills = append(skills, TechnologySkill{Name: ex.Name, HotTechnology: ex.HotTechnology})
		}
	}
	return skills, nil
}

type taskList struct {
	Task []struct {
		ID        json.Number `json:"id"`
		Statement string      `json:"statement"`
		Score     []score     `json:"score"`
	} `json:"task"`
}

// Task is one work task with its importance score.
type Task struct {
	ID          string
	Description string
	Importance  float64
}

func (c *Client) Tasks(ctx context.Context, code string) ([]Task, error) {
	var out taskList
	endpoint := "online/occupations/" + url.PathEscape(code) + "/summary/tasks"
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(out.Task))
	for _, t := range out.Task {
		task := Task{ID: t.ID.String(), Description: t.Statement}
		for _, s := range t.Score {
			if s.Scale.ID == scaleImportance {
				if v, err := strconv.ParseFloat(s.Value.String(), 64); err == nil {
					task.Importance = v
				}
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

type educationResponse struct {
	Level []struct {
		Name       string  `json:"name"`
		Percentage float64 `json:"percentage"`
	} `json:"level"`
}

// EducationLevel returns the most commonly reported education level for
// the occupation, or "" when O*NET publishes none.
func (c *Client) EducationLevel(ctx context.Context, code string) (string, error) {
	var out educationResponse
	endpoint := "online/occupations/" + url.PathEscape(code) + "/summary/education"
	if err := c.get(ctx, endpoint, &out); err != nil {
		return "", err
	}

	best := ""
	bestPct := -1.0
	for _, lvl := range out.Level {
		if lvl.Percentage > bestPct {
			best = lvl.Name
			bestPct = lvl.Percentage
		}
	}
	return best, nil
}

type jobZoneResponse struct {
	JobZone struct {
		Value int `json:"value"`
	} `json:"job_zone"`
}

// JobZone returns the occupation's 1-5 preparation classification.
func (c *Client) JobZone(ctx context.Context, code string) (int, error) {
	var out jobZoneResponse
	endpoint := "online/occupations/" + url.PathEscape(code) + "/summary/job_zone"
	if err := c.get(ctx, endpoint, &out); err != nil {
		return 0, err
	}
	return out.JobZone.Value, nil
}

// OccupationDetails is everything the pipeline needs from O*NET for one
// occupation.
type OccupationDetails struct {
	Code             string
	Title            string
	Description      string
	JobZone          int
	BrightOutlook    bool
	EducationLevel   string
	Skills           []ElementRating
	Knowledge        []ElementRating
	Abilities        []ElementRating
	TechnologySkills []TechnologySkill
	Tasks            []Task
}

// OccupationDetails fetches the full detail set for one O*NET code.
// The basic record and job zone are required; the per-summary endpoints
// degrade to empty slices since not every occupation publishes all of
// them.
func (c *Client) OccupationDetails(ctx context.Context, code string) (*OccupationDetails, error) {
	var basic occupationResponse
	if err := c.get(ctx, "online/occupations/"+url.PathEscape(code), &basic); err != nil {
		return nil, err
	}

	jobZone, err := c.JobZone(ctx, code)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	details := &OccupationDetails{
		Code:          code,
		Title:         basic.Title,
		Description:   basic.Description,
		JobZone:       jobZone,
		BrightOutlook: basic.Tags.BrightOutlook,
	}

	if details.Skills, err = c.Skills(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if details.Knowledge, err = c.Knowledge(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if details.Abilities, err = c.Abilities(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if details.TechnologySkills, err = c.TechnologySkills(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if details.Tasks, err = c.Tasks(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if details.EducationLevel, err = c.EducationLevel(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return details, nil
}
