// Package api provides the HTTP client for the bookstore REST backend.
//
// # Overview
//
// This package defines the single wrapper every remote operation goes
// through. It handles HTTP communication, JSON serialization, bearer
// token attachment, and type-safe representation of books, carts and
// orders.
//
// # Architecture
//
//   - client.go: request execution, auth header handling, endpoints
//   - query.go: /books query construction (default fields omitted)
//   - types.go: data structures mirroring the backend schema
//   - errors.go: the Error/NetworkError taxonomy
//
// # Error Handling
//
// No call panics or leaks raw transport errors past this boundary.
// A request that reached the server but was rejected yields *Error with
// the backend's message; a request that produced no response yields
// *NetworkError. Call sites turn either into a single user notification
// via UserMessage.
//
// # Usage
//
//	client, err := api.NewClient("http://localhost:3000/api")
//	if err != nil {
//		return err
//	}
//	client.SetTokenSource(session.Token)
//
//	books, err := client.ListBooks(ctx, api.BookQuery{SortBy: api.SortTitle})
package api
