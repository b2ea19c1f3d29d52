// Package main provides the CLI entrypoint for gemdesk.
package main

func main() {
	Execute()
}
