package client

import (
	"context"
	"fmt"
	"time"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// JobsClient implements the immich.JobsClient interface.
type JobsClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(httpClient *http.Client) *JobsClient {
	return &JobsClient{
		httpClient:   httpClient,
		pollInterval: constants.DefaultJobPollInterval,
		pollTimeout:  constants.DefaultJobPollTimeout,
	}
}

// List returns the status of every job queue keyed by queue name.
func (c *JobsClient) List(ctx context.Context) (map[string]immich.JobStatus, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathJobs, nil)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	jobs := map[string]immich.JobStatus{}

	err = http.Decode(result, &jobs)
	if err != nil {
		return nil, fmt.Errorf("parsing jobs response: %w", err)
	}

	return jobs, nil
}

// Command sends a command to a job queue and returns its new status.
func (c *JobsClient) Command(ctx context.Context, name immich.JobName, request *immich.JobCommandRequest) (*immich.JobStatus, error) {
	if request == nil || request.Command == "" {
		return nil, immich.ErrJobCommandRequired
	}

	result, err := c.httpClient.Put(ctx, constants.APIPathJobs+"/"+string(name), request)
	if err != nil {
		return nil, fmt.Errorf("sending %s to job %s: %w", request.Command, name, err)
	}

	var status immich.JobStatus

	err = http.Decode(result, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing job status: %w", err)
	}

	return &status, nil
}

// WaitIdle polls the job queue until nothing is active or waiting. On timeout
// the last known status is returned with the error.
func (c *JobsClient) WaitIdle(ctx context.Context, name immich.JobName) (*immich.JobStatus, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	status, err := c.status(pollCtx, name)
	if err != nil {
		return nil, err
	}

	for !status.Idle() {
		select {
		case <-pollCtx.Done():
			return status, fmt.Errorf("timeout waiting for job %s to finish: %w", name, pollCtx.Err())
		case <-ticker.C:
			next, err := c.status(pollCtx, name)
			if err != nil {
				if pollCtx.Err() != nil {
					return status, fmt.Errorf("timeout waiting for job %s to finish: %w", name, pollCtx.Err())
				}

				return nil, err
			}

			status = next
		}
	}

	return status, nil
}

func (c *JobsClient) status(ctx context.Context, name immich.JobName) (*immich.JobStatus, error) {
	jobs, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting job status: %w", err)
	}

	status, ok := jobs[string(name)]
	if !ok {
		return nil, fmt.Errorf("%w: job %s", immich.ErrNotFound, name)
	}

	return &status, nil
}
