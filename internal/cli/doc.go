// Package cli provides the GamingClub terminal storefront.
//
// It wires configuration, the key-value store and the storefront services,
// and exposes them through a cobra command tree. The default command starts
// an interactive REPL where customers browse the catalog, fill the cart and
// check out, and administrators manage products.
//
// Non-interactive subcommands (products, stats, seed, version) print to
// stdout in text or JSON and are meant for scripts.
package cli
