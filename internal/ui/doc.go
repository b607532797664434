// Package ui implements the Bubble Tea terminal interface for Folio.
//
// # Overview
//
// The interface is a single Bubble Tea model with three views (Home,
// Cart, Orders) and a set of overlays (auth, checkout, price filter,
// help) layered on top. All backend traffic happens in tea.Cmd
// functions; the Update loop only consumes the resulting messages and
// never blocks.
//
// # Architecture
//
//   - app.go: root model, view switching, key routing
//   - commands.go: tea.Cmd constructors and their result messages
//   - home.go / cart.go / orders.go: the three views
//   - auth.go / checkout.go / price.go: form overlays
//   - notify.go: transient toast notifications
//   - theme.go / style_helpers.go: color themes and background-safe
//     rendering helpers
package ui
