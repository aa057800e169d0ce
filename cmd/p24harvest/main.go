// Package main provides the entry point for the p24harvest CLI.
//
// p24harvest collects residential property listings from Property24
// search results and detail pages, routed through an authenticated proxy.
//
// Usage:
//
//	p24harvest scrape
//	p24harvest scrape --province western-cape --pages 5
//	p24harvest export --markdown
//
// See --help for all available options.
package main

// main is the entry point for p24harvest.
func main() {
	Execute()
}
