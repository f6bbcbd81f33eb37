// Package board fetches the job catalog and member list from the job board API.
package board

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://bn-hiring-challenge.fly.dev/"
	userAgent      = "spigell/job-recommender"

	jobsPath    = "jobs.json"
	membersPath = "members.json"

	defaultTimeout = 10 * time.Second
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

func New(ctx context.Context, logger *zap.Logger, baseURL string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		ctx:     ctx,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// GetJobs returns the whole job catalog in the order served by the API.
func (c *Client) GetJobs() (*Jobs, error) {
	var jobs []*Job
	if err := c.getList(jobsPath, &jobs); err != nil {
		return nil, err
	}

	return &Jobs{Items: jobs}, nil
}

// GetMembers returns all members in the order served by the API.
func (c *Client) GetMembers() (*Members, error) {
	var members []*Member
	if err := c.getList(membersPath, &members); err != nil {
		return nil, err
	}

	return &Members{Items: members}, nil
}
