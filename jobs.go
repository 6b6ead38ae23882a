package mimiry

import (
	"context"
	"net/url"
	"slices"
	"time"
)

// SubmitJobRequest describes a new batch job. Name, InstanceType, Image,
// Location and SSHKeyIDs are required by the API. Zero values for Provider,
// AutoShutdown and HeartbeatTimeoutSeconds are replaced with the server-side
// defaults ("datacrunch", true, 600) before sending. MaxRuntimeSeconds is
// omitted from the payload entirely when nil, meaning no runtime limit.
type SubmitJobRequest struct {
	Name                    string   `json:"name"`
	InstanceType            string   `json:"instance_type"`
	Image                   string   `json:"image"`
	Location                string   `json:"location"`
	SSHKeyIDs               []string `json:"ssh_key_ids"`
	StartupScript           string   `json:"startup_script"`
	Provider                string   `json:"provider"`
	AutoShutdown            *bool    `json:"auto_shutdown"`
	HeartbeatTimeoutSeconds int      `json:"heartbeat_timeout_seconds"`
	MaxRuntimeSeconds       *int     `json:"max_runtime_seconds,omitempty"`
}

// WaitConfig controls WaitForJob. Zero values fall back to DefaultWaitConfig;
// a negative PollInterval is rejected.
type WaitConfig struct {
	PollInterval     time.Duration
	Timeout          time.Duration
	TerminalStatuses []string
}

// DefaultWaitConfig provides sensible defaults.
var DefaultWaitConfig = WaitConfig{
	PollInterval:     10 * time.Second,
	Timeout:          time.Hour,
	TerminalStatuses: []string{JobStatusCompleted, JobStatusFailed, JobStatusCancelled},
}

// ListJobs lists all batch jobs for the authenticated user.
//
// Required scope: jobs:read
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.get(ctx, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches a single job by id.
//
// Required scope: jobs:read
func (c *Client) GetJob(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	if err := c.get(ctx, "/jobs/"+url.PathEscape(jobID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SubmitJob submits a new batch job and returns the created record, including
// its id and initial status.
//
// Required scopes: jobs:write, instances:read
func (c *Client) SubmitJob(ctx context.Context, req SubmitJobRequest) (*Job, error) {
	payload := req
	if payload.Provider == "" {
		payload.Provider = "datacrunch"
	}
	if payload.AutoShutdown == nil {
		payload.AutoShutdown = Bool(true)
	}
	if payload.HeartbeatTimeoutSeconds == 0 {
		payload.HeartbeatTimeoutSeconds = 600
	}

	var job Job
	if err := c.post(ctx, "/jobs", payload, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelJob cancels a running or queued job, terminating the underlying cloud
// instance if one is running. Returns the updated job record.
//
// Required scope: jobs:write
func (c *Client) CancelJob(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	if err := c.del(ctx, "/jobs/"+url.PathEscape(jobID), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// WaitForJob polls a job until its status enters the terminal set, then
// returns the final record. If the next poll would land past the timeout, a
// *TimeoutError carrying the last observed status is returned instead; the
// deadline check happens before each sleep so the wait never overshoots the
// timeout by a full interval. The underlying job is not cancelled on timeout.
func (c *Client) WaitForJob(ctx context.Context, jobID string, cfg WaitConfig) (*Job, error) {
	if cfg.PollInterval < 0 {
		return nil, configError("poll interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultWaitConfig.PollInterval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultWaitConfig.Timeout
	}
	terminal := cfg.TerminalStatuses
	if terminal == nil {
		terminal = DefaultWaitConfig.TerminalStatuses
	}

	start := c.now()
	for {
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if slices.Contains(terminal, job.Status) {
			return job, nil
		}

		elapsed := c.now().Sub(start)
		if elapsed+cfg.PollInterval > cfg.Timeout {
			return nil, &TimeoutError{JobID: jobID, Timeout: cfg.Timeout, LastStatus: job.Status}
		}

		c.log.Debug("job not terminal yet",
			"job_id", jobID, "status", job.Status, "elapsed", elapsed)
		if err := c.sleep(ctx, cfg.PollInterval); err != nil {
			return nil, err
		}
	}
}

// SubmitJobAndWait submits a job and blocks until it reaches a terminal
// status, forwarding cfg to WaitForJob.
func (c *Client) SubmitJobAndWait(ctx context.Context, req SubmitJobRequest, cfg WaitConfig) (*Job, error) {
	job, err := c.SubmitJob(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.WaitForJob(ctx, job.ID, cfg)
}
