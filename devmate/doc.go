// Package devmate provides a client for the DevMate public API.
//
// DevMate manages customers and software licenses. This package covers the
// customer and license endpoints: it builds authenticated requests, encodes
// list filters, unwraps the API's {"data": ..., "meta": ...} envelope and
// maps HTTP status codes to typed errors.
//
// # Usage
//
// Create a client with an API token:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := devmate.NewClient(
//		"your-token",
//		logger,
//		devmate.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	customers, err := client.ListCustomers(ctx, devmate.CustomerListOptions{
//		Email:        "someone@example.com",
//		WithLicenses: true,
//	})
//
// # Error Handling
//
// Invalid ids and missing required fields fail with ErrIllegalArgument
// before any request is sent. Non-2xx responses are returned as
// *RequestError, whose kind can be matched with errors.Is:
//
//	_, err := client.GetCustomerByID(ctx, 42)
//	switch {
//	case errors.Is(err, devmate.ErrNotFound):
//		// 404
//	case errors.Is(err, devmate.ErrServer):
//		// 5xx
//	}
//
// The API's own error descriptions are available on RequestError.Errors.
// Redirects are not followed by default, so a 3xx surfaces as ErrRequest;
// use WithFollowRedirects to change that. The client never retries.
package devmate
