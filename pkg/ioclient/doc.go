// Package ioclient provides the primary entry point for constructing a
// platform client that implements the ioconnect.Client interface.
//
// It layers configuration, the retrying HTTP transport, and authentication on
// top of the resource interfaces and types defined in the ioconnect package.
// Most applications should import ioclient to build a client, then use the
// returned ioconnect.Client to access resource-specific clients, for example
// Devices(), Users(), Insights().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/Faclon-Labs/connector-go/pkg/ioclient"
//	  "github.com/Faclon-Labs/connector-go/pkg/ioconnect"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With an access token you already have:
//	  cli, err := ioclient.New(&ioconnect.Config{
//	    BackendHost: "datads.iosense.io",
//	    AccessToken: "eyJhbGciOi...", // bearer token
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or by logging in with credentials:
//	  cli, err = ioclient.NewWithLogin(ctx, "datads.iosense.io", "user", "pass")
//	  if err != nil { log.Fatal(err) }
//
//	  devices, err := cli.Devices().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = devices
//	}
//
// # On-premise backends
//
// Set Config.OnPrem=true (or pass an http:// URL as the backend host) to reach
// installations served over plain HTTP.
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken and
// NewWithLogin that wrap New with the appropriate configuration.
package ioclient
