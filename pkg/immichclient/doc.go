// Package immichclient provides the primary entry point for constructing an
// Immich API client that implements the immich.Client interface.
//
// It layers configuration and the HTTP transport on top of the resource
// interfaces and types defined in the immich package. Most applications should
// import immichclient to build a client, then use the returned immich.Client to
// access resource-specific clients, for example Albums(), Assets(), People().
//
// Quick start
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
//
//	  cli, err := immichclient.New(ctx, &immich.Config{
//	    ServerURL: "http://immich.local:2283",
//	    APIKey:    "your-api-key",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Verify the key before doing real work.
//	  if cli.CheckAuth(ctx) == nil { log.Fatal("cannot authenticate") }
//
//	  // Owned and shared albums, merged by id.
//	  albums, err := cli.Albums().List(ctx, immich.AlbumFilterUnspecified)
//	  if err != nil { log.Fatal(err) }
//	  _ = albums
//	}
//
// # Server URLs
//
// New trims trailing slashes and adds "https://" when the URL has no scheme.
// Requests are sent to the URL followed by "/api".
//
// # TLS and development mode
//
// For self-signed test servers, you can set Config.SkipTLSVerify=true. This is
// gated by the environment variable IMMICH_DEV_MODE to avoid accidental
// insecure usage in production environments.
//
// # Helpers
//
// NewWithAPIKey wraps New for the common case, and Ping checks that a URL
// points at an Immich server without needing credentials.
package immichclient
