package client

import "context"

// Repository provides persistence for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Client, error)
}

// DocumentPaths lists storage paths of documents under a client's projects.
type DocumentPaths interface {
	PathsForClient(ctx context.Context, clientID string) ([]string, error)
}

// FileRemover deletes stored document files.
type FileRemover interface {
	Delete(path string) error
}
