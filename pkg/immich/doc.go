// Package immich provides types, interfaces, and helpers for working with the
// Immich photo server API.
//
// # Overview
//
// The immich package defines the domain types (e.g., Album, Asset, Person,
// Tag) and the interfaces for resource-oriented clients (e.g., AlbumsClient,
// AssetsClient). A concrete implementation of these clients is provided by
// the immichclient package, which wires configuration and transport. Most
// consumers should import immichclient to construct a client and then
// interact with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/guanana/immich-lib/pkg/immich"
//	  "github.com/guanana/immich-lib/pkg/immichclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := immichclient.NewWithAPIKey(ctx, "http://immich.local:2283", "key")
//	  if err != nil { log.Fatal(err) }
//
//	  album, err := cli.Albums().Find(ctx, "Summer 2024")
//	  if err != nil { log.Fatal(err) }
//
//	  for _, asset := range album.Assets {
//	    cli.Assets().DownloadToFile(ctx, asset.ID, asset.OriginalFileName, nil)
//	  }
//	}
//
// # Albums
//
// Albums().List with AlbumFilterUnspecified fetches owned and shared albums and
// merges them by id. An album that is both owned and shared appears once, as
// returned by the owned listing. Find matches an id exactly or a name without
// regard to case, and returns the first match.
//
// # Assets and downloads
//
// Assets().List runs an empty metadata search and returns every asset the key
// can see. Download returns an open stream; DownloadToFile copies it to disk in
// fixed-size chunks, reports progress through a ProgressReporter, and reports
// failure as false after logging it.
//
// # Error handling
//
// Non-2xx responses are returned as *APIError, which wraps a status sentinel:
//
//	if errors.Is(err, immich.ErrNotFound) { /* ... */ }
//
// Network failures are *TransportError and malformed JSON is *DecodeError.
// Requests are never retried.
package immich
