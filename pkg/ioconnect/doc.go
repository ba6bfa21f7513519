// Package ioconnect defines the public contract of the platform SDK: the
// Client interface, configuration, typed models, and the error taxonomy.
//
// Construct clients with github.com/Faclon-Labs/connector-go/pkg/ioclient:
//
//	client, err := ioclient.New(&ioconnect.Config{
//		BackendHost: "api.example.com",
//		AccessToken: token,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	devices, err := client.Devices().List(ctx)
//
// This package has no dependencies beyond the standard library so importers
// do not inherit the SDK's tooling.
package ioconnect
