package mimiry

import (
	"context"
	"net/url"
)

// ListSSHKeys lists all SSH keys for the authenticated user.
//
// Required scope: ssh_keys:read
func (c *Client) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	var keys []SSHKey
	if err := c.get(ctx, "/ssh-keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// AddSSHKey registers a new SSH public key. publicKey is the full key string,
// e.g. "ssh-ed25519 AAAA... user@host".
//
// Required scope: ssh_keys:write
func (c *Client) AddSSHKey(ctx context.Context, name, publicKey string) (*SSHKey, error) {
	body := map[string]string{"name": name, "public_key": publicKey}
	var key SSHKey
	if err := c.post(ctx, "/ssh-keys", body, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// DeleteSSHKey deletes an SSH key by id.
//
// Required scope: ssh_keys:write
func (c *Client) DeleteSSHKey(ctx context.Context, keyID string) error {
	return c.del(ctx, "/ssh-keys/"+url.PathEscape(keyID), nil)
}
