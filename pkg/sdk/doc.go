// Package sdk is a Go client for the searchgate HTTP API.
//
// The client talks to a running searchgate instance and exposes the four
// query operations: facets, products, product search and search metadata.
//
//	client, err := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	products, err := client.Products(ctx, sdk.SearchQuery{Query: "shoes", To: 9})
package sdk
