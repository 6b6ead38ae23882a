package mimiry

// Known job statuses. The API may introduce new statuses at any time; Job.Status
// is an open string and is only ever compared by equality against the terminal
// set, never validated.
const (
	JobStatusQueued       = "queued"
	JobStatusProvisioning = "provisioning"
	JobStatusRunning      = "running"
	JobStatusCompleted    = "completed"
	JobStatusFailed       = "failed"
	JobStatusCancelled    = "cancelled"
)

// Job is a batch job as returned by the API. Timestamps are RFC 3339 strings.
type Job struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name,omitempty"`
	Status                  string         `json:"status"`
	Provider                string         `json:"provider,omitempty"`
	InstanceType            string         `json:"instance_type,omitempty"`
	Image                   string         `json:"image,omitempty"`
	Location                string         `json:"location,omitempty"`
	SSHKeyIDs               []string       `json:"ssh_key_ids,omitempty"`
	StartupScript           string         `json:"startup_script,omitempty"`
	ProviderInstanceID      string         `json:"provider_instance_id,omitempty"`
	ErrorMessage            string         `json:"error_message,omitempty"`
	Output                  string         `json:"output,omitempty"`
	Config                  map[string]any `json:"config,omitempty"`
	HeartbeatTimeoutSeconds int            `json:"heartbeat_timeout_seconds,omitempty"`
	MaxRuntimeSeconds       *int           `json:"max_runtime_seconds,omitempty"`
	CreatedAt               string         `json:"created_at,omitempty"`
	StartedAt               string         `json:"started_at,omitempty"`
	CompletedAt             string         `json:"completed_at,omitempty"`
	LastHeartbeat           string         `json:"last_heartbeat,omitempty"`
}

// SSHKey is a registered SSH public key.
type SSHKey struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DatacrunchID string `json:"datacrunch_id,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// InstanceType describes a rentable GPU instance configuration with pricing.
type InstanceType struct {
	InstanceType string  `json:"instance_type"`
	Description  string  `json:"description,omitempty"`
	GPUType      string  `json:"gpu_type,omitempty"`
	GPUCount     int     `json:"gpu_count,omitempty"`
	GPUMemoryGB  float64 `json:"gpu_memory_gb,omitempty"`
	CPUCores     int     `json:"cpu_cores,omitempty"`
	RAMGB        float64 `json:"ram_gb,omitempty"`
	StorageGB    float64 `json:"storage_gb,omitempty"`
	PricePerHour float64 `json:"price_per_hour,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Provider     string  `json:"provider,omitempty"`
}

// Location is a datacenter location.
type Location struct {
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Availability reports real-time capacity for an instance type.
type Availability struct {
	InstanceType string   `json:"instance_type"`
	IsAvailable  bool     `json:"is_available"`
	Locations    []string `json:"locations,omitempty"`
	Provider     string   `json:"provider,omitempty"`
}

// OSImage is a bootable OS image.
type OSImage struct {
	Code        string `json:"code"`
	Name        string `json:"name,omitempty"`
	OS          string `json:"os,omitempty"`
	Version     string `json:"version,omitempty"`
	CUDAVersion string `json:"cuda_version,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// Provider is a supported cloud provider.
type Provider struct {
	Slug     string `json:"slug"`
	Name     string `json:"name,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Bool returns a pointer to v, for optional request fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional request fields.
func Int(v int) *int { return &v }
