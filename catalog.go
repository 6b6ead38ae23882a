package mimiry

import (
	"context"
	"net/url"
)

// ListInstanceTypesOptions filters ListInstanceTypes. An empty Currency means
// "usd"; an empty Provider returns all providers.
type ListInstanceTypesOptions struct {
	Currency string
	Provider string
}

// ListImagesOptions filters ListImages. Empty fields apply no filter.
type ListImagesOptions struct {
	InstanceType string
	Provider     string
}

// ListInstanceTypes lists available GPU instance types with pricing.
//
// Required scope: instances:read
func (c *Client) ListInstanceTypes(ctx context.Context, opts ListInstanceTypesOptions) ([]InstanceType, error) {
	currency := opts.Currency
	if currency == "" {
		currency = "usd"
	}
	q := url.Values{}
	q.Set("currency", currency)
	if opts.Provider != "" {
		q.Set("provider", opts.Provider)
	}

	var types []InstanceType
	if err := c.get(ctx, "/instances", q, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// CheckAvailability reports real-time availability for all instance types.
// provider may be empty to query all providers.
//
// Required scope: instances:read
func (c *Client) CheckAvailability(ctx context.Context, provider string) ([]Availability, error) {
	q := url.Values{}
	if provider != "" {
		q.Set("provider", provider)
	}

	var avail []Availability
	if err := c.get(ctx, "/availability", q, &avail); err != nil {
		return nil, err
	}
	return avail, nil
}

// CheckInstanceAvailability reports real-time availability for one instance
// type. provider may be empty to query all providers.
//
// Required scope: instances:read
func (c *Client) CheckInstanceAvailability(ctx context.Context, instanceType, provider string) (*Availability, error) {
	q := url.Values{}
	if provider != "" {
		q.Set("provider", provider)
	}

	var avail Availability
	if err := c.get(ctx, "/availability/"+url.PathEscape(instanceType), q, &avail); err != nil {
		return nil, err
	}
	return &avail, nil
}

// ListLocations lists datacenter locations. provider may be empty.
//
// Required scope: instances:read
func (c *Client) ListLocations(ctx context.Context, provider string) ([]Location, error) {
	q := url.Values{}
	if provider != "" {
		q.Set("provider", provider)
	}

	var locs []Location
	if err := c.get(ctx, "/locations", q, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// ListImages lists available OS images.
//
// Required scope: instances:read
func (c *Client) ListImages(ctx context.Context, opts ListImagesOptions) ([]OSImage, error) {
	q := url.Values{}
	if opts.InstanceType != "" {
		q.Set("instance_type", opts.InstanceType)
	}
	if opts.Provider != "" {
		q.Set("provider", opts.Provider)
	}

	var images []OSImage
	if err := c.get(ctx, "/images", q, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// ListProviders lists all supported cloud providers.
//
// Required scope: instances:read
func (c *Client) ListProviders(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if err := c.get(ctx, "/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}
