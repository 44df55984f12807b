// Package main provides the safeurl command line tool.
//
// Usage:
//
//	safeurl analyze <url>
//	safeurl resolve <url>
//	safeurl check <url>
//	safeurl rules
//
// See --help for all available options.
package main

func main() {
	Execute()
}
