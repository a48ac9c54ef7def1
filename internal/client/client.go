package client

import (
	"context"

	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// Client implements the immich.Client interface.
type Client struct {
	httpClient *http.Client
	logger     immich.Logger

	// Resource clients
	albums   *AlbumsClient
	assets   *AssetsClient
	search   *SearchClient
	people   *PeopleClient
	tags     *TagsClient
	stacks   *StacksClient
	trash    *TrashClient
	partners *PartnersClient
	users    *UsersClient
	server   *ServerClient
	timeline *TimelineClient
	apiKeys  *APIKeysClient
	library  *LibraryClient
	jobs     *JobsClient
	features *FeaturesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *immich.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// New creates a new Immich API client. The context is accepted for symmetry
// with the public constructor; construction performs no I/O.
func New(_ context.Context, config *immich.Config) (*Client, error) {
	if config == nil {
		return nil, immich.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, immich.ErrServerURLRequired
	}

	if config.APIKey == "" {
		return nil, immich.ErrAPIKeyRequired
	}

	httpClient := http.NewClient(config.ServerURL, config.APIKey, createHTTPClientOptions(config)...)

	return newFromHTTP(httpClient), nil
}

func newFromHTTP(httpClient *http.Client) *Client {
	client := &Client{
		httpClient: httpClient,
		logger:     httpClient.Logger(),
	}

	client.initializeResourceClients()

	return client
}

// CheckAuth implements immich.Client.CheckAuth.
func (c *Client) CheckAuth(ctx context.Context) *immich.ServerVersion {
	return c.server.CheckAuth(ctx)
}

// Albums returns the albums client.
func (c *Client) Albums() immich.AlbumsClient {
	return c.albums
}

// Assets returns the assets client.
func (c *Client) Assets() immich.AssetsClient {
	return c.assets
}

// Search returns the search client.
func (c *Client) Search() immich.SearchClient {
	return c.search
}

// People returns the people client.
func (c *Client) People() immich.PeopleClient {
	return c.people
}

// Tags returns the tags client.
func (c *Client) Tags() immich.TagsClient {
	return c.tags
}

// Stacks returns the stacks client.
func (c *Client) Stacks() immich.StacksClient {
	return c.stacks
}

// Trash returns the trash client.
func (c *Client) Trash() immich.TrashClient {
	return c.trash
}

// Partners returns the partners client.
func (c *Client) Partners() immich.PartnersClient {
	return c.partners
}

// Users returns the users client.
func (c *Client) Users() immich.UsersClient {
	return c.users
}

// Server returns the server client.
func (c *Client) Server() immich.ServerClient {
	return c.server
}

// Timeline returns the timeline client.
func (c *Client) Timeline() immich.TimelineClient {
	return c.timeline
}

// APIKeys returns the API keys client.
func (c *Client) APIKeys() immich.APIKeysClient {
	return c.apiKeys
}

// Library returns the library client.
func (c *Client) Library() immich.LibraryClient {
	return c.library
}

// Jobs returns the jobs client.
func (c *Client) Jobs() immich.JobsClient {
	return c.jobs
}

// Features returns the server features client.
func (c *Client) Features() immich.FeaturesClient {
	return c.features
}

func (c *Client) initializeResourceClients() {
	c.albums = NewAlbumsClient(c.httpClient)
	c.assets = NewAssetsClient(c.httpClient, c.logger)
	c.search = NewSearchClient(c.httpClient)
	c.people = NewPeopleClient(c.httpClient)
	c.tags = NewTagsClient(c.httpClient)
	c.stacks = NewStacksClient(c.httpClient)
	c.trash = NewTrashClient(c.httpClient)
	c.partners = NewPartnersClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.server = NewServerClient(c.httpClient, c.logger)
	c.timeline = NewTimelineClient(c.httpClient)
	c.apiKeys = NewAPIKeysClient(c.httpClient)
	c.library = NewLibraryClient(c.httpClient)
	c.jobs = NewJobsClient(c.httpClient)
	c.features = NewFeaturesClient(c.httpClient)
}

var _ immich.Client = (*Client)(nil)
