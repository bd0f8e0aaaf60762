// Package main implements the bookarcadmin CLI tool.
// It provides operator commands for migrations, seeding, and moderation.
package main

import "github.com/bookarc/bookarc/cmd/bookarcadmin/cmd"

func main() {
	cmd.Execute()
}
